package blocks

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"math"
	"strings"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/profiles"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// DisplayEnv carries the render-scoped collaborators handed to display
// functions. Profile blocks read from Profiles; nothing reaches for globals.
type DisplayEnv struct {
	Breakpoint   Breakpoint
	Sizing       Sizing
	Profiles     profiles.Provider
	URLs         *profiles.URLBuilder
	Markdown     func(source string) (template.HTML, error)
	RenderBlocks func(ctx context.Context, list []Block) template.HTML
	Logger       interfaces.Logger
}

func (env *DisplayEnv) logger() interfaces.Logger {
	if env == nil || env.Logger == nil {
		return logging.NoOp()
	}
	return env.Logger
}

func (env *DisplayEnv) renderBlocks(ctx context.Context, list []Block) template.HTML {
	if env == nil || env.RenderBlocks == nil || len(list) == 0 {
		return ""
	}
	return env.RenderBlocks(ctx, list)
}

func (env *DisplayEnv) profile(ctx context.Context) *profiles.Profile {
	if env == nil || env.Profiles == nil {
		return nil
	}
	profile, err := env.Profiles.Profile(ctx)
	if err != nil {
		env.logger().Debug("blocks.profile.unavailable", "error", err)
		return nil
	}
	return profile
}

// ProfileURL returns the block profileUrl override or the derived public
// profile URL.
func (env *DisplayEnv) ProfileURL(block Block, profile *profiles.Profile) string {
	if override := block.StringProp("profileUrl"); override != "" {
		return override
	}
	if env == nil || env.URLs == nil || profile == nil {
		return ""
	}
	url, err := env.URLs.ProfileURL(profile.Slug)
	if err != nil {
		env.logger().Warn("blocks.profile_url.failed", "slug", profile.Slug, "error", err)
		return ""
	}
	return url
}

var displayTemplates = template.Must(template.New("blocks").Parse(`
{{define "text-block"}}<div class="pk-text">{{.}}</div>{{end}}

{{define "layout-block"}}<div class="pk-layout pk-layout--{{.Container}}" data-block-id="{{.ID}}"{{with .WrapperCSS}} style="{{.}}"{{end}}>
{{- if .Columns}}<div class="pk-grid" style="{{.GridCSS}}">
{{- range .Columns}}<div class="pk-column" data-column-id="{{.ID}}" data-column-name="{{.Name}}">
{{- if .Body}}{{.Body}}{{else}}<div class="pk-placeholder pk-placeholder--column">Empty column</div>{{end -}}
</div>{{end -}}
</div>
{{- else if .Children}}<div class="pk-grid" style="{{.GridCSS}}">{{.Children}}</div>
{{- else}}<div class="pk-placeholder pk-placeholder--layout">Empty layout</div>{{end -}}
</div>{{end}}

{{define "profile"}}<section class="pk-profile pk-profile--{{.Mode}} pk-profile--{{.Variant}}" data-block-id="{{.ID}}" data-profile="{{.Profile.Slug}}"{{if .Editable}} data-editable="true"{{end}}>
{{- if and .ShowBanner .Profile.Banner}}<div class="pk-profile__banner"><img src="{{.Profile.Banner}}" alt=""></div>{{end -}}
{{- with .Profile.Photo}}<img class="pk-profile__photo" src="{{.}}" alt="{{$.Name}}">{{end -}}
<h2 class="pk-profile__name">{{.Name}}</h2>
{{- with .Profile.Headline}}<p class="pk-profile__headline">{{.}}</p>{{end -}}
{{- with .Profile.Bio}}<p class="pk-profile__bio">{{.}}</p>{{end -}}
{{- with .Profile.SocialLinks}}<ul class="pk-profile__links">{{range .}}<li><a href="{{.URL}}" rel="noopener">{{.Platform}}</a></li>{{end}}</ul>{{end -}}
{{- with .URL}}<a class="pk-profile__url" href="{{.}}">{{.}}</a>{{end -}}
</section>{{end}}

{{define "media-card-block"}}<article class="pk-card pk-card--{{.Variant}}" data-block-id="{{.ID}}">
{{- if and (ne .Variant "compact") .Profile.Banner}}<div class="pk-card__banner"><img src="{{.Profile.Banner}}" alt=""></div>{{end -}}
{{- with .Profile.Photo}}<img class="pk-card__photo" src="{{.}}" alt="{{$.Name}}">{{end -}}
<h3 class="pk-card__name">{{.Name}}</h3>
{{- with .Hashtag}}<span class="pk-card__hashtag">{{.}}</span>{{end -}}
{{- with .URL}}<a class="pk-card__link" href="{{.}}">{{.}}</a>{{end -}}
</article>{{end}}

{{define "qr-code-block"}}<figure class="pk-qr" data-block-id="{{.ID}}">
<img src="{{.DataURI}}" width="{{.Size}}" height="{{.Size}}" alt="QR code for {{.URL}}">
{{- with .Caption}}<figcaption>{{.}}</figcaption>{{end -}}
</figure>{{end}}

{{define "placeholder"}}<div class="pk-placeholder pk-placeholder--{{.Class}}" data-block-type="{{.Type}}">{{.Message}}</div>{{end}}
`))

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := displayTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Placeholder renders an inline notice in place of a block.
func Placeholder(class string, t Type, message string) template.HTML {
	out, err := execute("placeholder", map[string]any{
		"Class":   class,
		"Type":    string(t),
		"Message": message,
	})
	if err != nil {
		return template.HTML(template.HTMLEscapeString(message))
	}
	return out
}

func displayText(_ context.Context, env *DisplayEnv, block Block) (template.HTML, error) {
	content, _ := block.Prop("content")
	source, _ := content.(string)
	var body template.HTML
	if strings.EqualFold(block.StringProp("format"), "markdown") && env != nil && env.Markdown != nil {
		rendered, err := env.Markdown(source)
		if err != nil {
			return "", err
		}
		body = rendered
	} else {
		// Text blocks are authored by trusted admins.
		body = template.HTML(source)
	}
	return execute("text-block", body)
}

type columnView struct {
	ID   string
	Name string
	Body template.HTML
}

func displayLayout(ctx context.Context, env *DisplayEnv, block Block) (template.HTML, error) {
	var bp Breakpoint
	var sizing Sizing
	if env != nil {
		bp = env.Breakpoint
		sizing = env.Sizing
	}
	layout := block.Layout
	data := map[string]any{
		"ID":         block.ID,
		"Container":  string(layout.ContainerType()),
		"WrapperCSS": WrapperCSS(block, bp, sizing),
	}

	var grid *Grid
	if layout != nil {
		grid = layout.Grid
	}
	if layout != nil && len(layout.Columns) > 0 {
		columns := make([]columnView, len(layout.Columns))
		for i, column := range layout.Columns {
			columns[i] = columnView{
				ID:   column.ID,
				Name: column.Name,
				Body: env.renderBlocks(ctx, column.Blocks),
			}
		}
		data["Columns"] = columns
		data["GridCSS"] = GridCSS(grid, bp, len(columns))
	} else if len(block.Children) > 0 {
		data["Children"] = env.renderBlocks(ctx, block.Children)
		if grid != nil {
			data["GridCSS"] = GridCSS(grid, bp, 1)
		} else {
			data["GridCSS"] = FlexCSS()
		}
	}
	return execute("layout-block", data)
}

type profileView struct {
	ID         string
	Mode       string
	Variant    string
	Name       string
	URL        string
	Editable   bool
	ShowBanner bool
	Profile    *profiles.Profile
}

func displayInlineEditView(ctx context.Context, env *DisplayEnv, block Block) (template.HTML, error) {
	return displayProfile(ctx, env, block, "inline", true)
}

func displayLiveView(ctx context.Context, env *DisplayEnv, block Block) (template.HTML, error) {
	return displayProfile(ctx, env, block, "live", false)
}

func displayProfile(ctx context.Context, env *DisplayEnv, block Block, mode string, editable bool) (template.HTML, error) {
	profile := env.profile(ctx)
	if profile == nil {
		return Placeholder("profile", block.BlockType, "Profile unavailable"), nil
	}
	variant := stringOr(block.StringProp("variant"), "full")
	return execute("profile", profileView{
		ID:         block.ID,
		Mode:       mode,
		Variant:    variant,
		Name:       profile.DisplayName(),
		URL:        env.ProfileURL(block, profile),
		Editable:   editable,
		ShowBanner: variant != "compact",
		Profile:    profile,
	})
}

func displayMediaCard(ctx context.Context, env *DisplayEnv, block Block) (template.HTML, error) {
	profile := env.profile(ctx)
	if profile == nil {
		return Placeholder("profile", block.BlockType, "Profile unavailable"), nil
	}
	hashtag := stringOr(block.StringProp("hashtag"), profile.Hashtag)
	if hashtag != "" && !strings.HasPrefix(hashtag, "#") {
		hashtag = "#" + hashtag
	}
	return execute("media-card-block", map[string]any{
		"ID":      block.ID,
		"Variant": stringOr(block.StringProp("variant"), "default"),
		"Name":    profile.DisplayName(),
		"Hashtag": hashtag,
		"URL":     env.ProfileURL(block, profile),
		"Profile": profile,
	})
}

func displayQRCode(ctx context.Context, env *DisplayEnv, block Block) (template.HTML, error) {
	var profile *profiles.Profile
	if block.StringProp("profileUrl") == "" {
		profile = env.profile(ctx)
		if profile == nil {
			return Placeholder("profile", block.BlockType, "Profile unavailable"), nil
		}
	}
	url := env.ProfileURL(block, profile)
	if url == "" {
		return Placeholder("profile", block.BlockType, "Profile URL unavailable"), nil
	}
	size := intProp(block, "size", defaultQRSize)
	dataURI, err := QRCodeDataURI(url, size)
	if err != nil {
		return "", err
	}
	return execute("qr-code-block", map[string]any{
		"ID":      block.ID,
		"URL":     url,
		"Size":    size,
		"DataURI": dataURI,
		"Caption": block.StringProp("label"),
	})
}

func intProp(block Block, key string, fallback int) int {
	value, ok := block.Prop(key)
	if !ok {
		return fallback
	}
	switch typed := value.(type) {
	case int:
		return typed
	case int64:
		return int(typed)
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return fallback
		}
		return int(typed)
	case json.Number:
		if parsed, err := typed.Int64(); err == nil {
			return int(parsed)
		}
	}
	return fallback
}

func stringOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
