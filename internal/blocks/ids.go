package blocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
)

const (
	blockIDPrefix  = "block-"
	columnIDPrefix = "column-"
)

// IDGenerator allocates identifiers for new blocks and grid columns.
type IDGenerator interface {
	BlockID() string
	ColumnID() string
}

// ULIDGenerator issues lexicographically sortable ids from ulid's monotonic
// process-wide source, so ids created in the same millisecond stay distinct.
type ULIDGenerator struct{}

// NewULIDGenerator returns the default generator.
func NewULIDGenerator() IDGenerator {
	return ULIDGenerator{}
}

func (ULIDGenerator) BlockID() string {
	return blockIDPrefix + strings.ToLower(ulid.Make().String())
}

func (ULIDGenerator) ColumnID() string {
	return columnIDPrefix + strings.ToLower(ulid.Make().String())
}

// SequenceGenerator issues predictable ids (block-1, column-1, ...).
type SequenceGenerator struct {
	mu      sync.Mutex
	blocks  int
	columns int
}

// NewSequenceGenerator constructs a counter based generator.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) BlockID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.blocks++
	return fmt.Sprintf("%s%d", blockIDPrefix, g.blocks)
}

func (g *SequenceGenerator) ColumnID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.columns++
	return fmt.Sprintf("%s%d", columnIDPrefix, g.columns)
}

func ensureIDs(ids IDGenerator) IDGenerator {
	if ids == nil {
		return NewULIDGenerator()
	}
	return ids
}
