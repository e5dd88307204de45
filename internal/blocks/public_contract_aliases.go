package blocks

import pkblocks "github.com/goliatone/go-pagekit/blocks"

type (
	Block         = pkblocks.Block
	Type          = pkblocks.Type
	Breakpoint    = pkblocks.Breakpoint
	ContainerType = pkblocks.ContainerType
	GridColumn    = pkblocks.GridColumn
	Grid          = pkblocks.Grid
	Layout        = pkblocks.Layout
	Styles        = pkblocks.Styles
	StyleProperty = pkblocks.StyleProperty
)

const (
	TypeText           = pkblocks.TypeText
	TypeLayout         = pkblocks.TypeLayout
	TypeInlineEditView = pkblocks.TypeInlineEditView
	TypeLiveView       = pkblocks.TypeLiveView
	TypeMediaCard      = pkblocks.TypeMediaCard
	TypeQRCode         = pkblocks.TypeQRCode

	BreakpointMobile  = pkblocks.BreakpointMobile
	BreakpointTablet  = pkblocks.BreakpointTablet
	BreakpointDesktop = pkblocks.BreakpointDesktop

	ContainerDefault   = pkblocks.ContainerDefault
	ContainerFullWidth = pkblocks.ContainerFullWidth
	ContainerBoxed     = pkblocks.ContainerBoxed
)
