package shortcode

import (
	"fmt"
	"time"

	"github.com/apexmd/apex/pkg/interfaces"
)

// BuiltInDefinitions returns the catalogue of embedded-block directives Apex
// registers by default on internal/shortcode.RegisterBuiltIns(registry, nil).
func BuiltInDefinitions() []interfaces.ShortcodeDefinition {
	return []interfaces.ShortcodeDefinition{
		youTubeDefinition(),
		alertDefinition(),
		noteDefinition(),
		galleryDefinition(),
		figureDefinition(),
		codeDefinition(),
	}
}

func youTubeDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "youtube",
		Version:     "1.0.0",
		Description: "Embeds a responsive YouTube iframe player",
		Category:    "media",
		Icon:        "youtube",
		AllowInner:  false,
		CacheTTL:    time.Hour,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "id",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
				},
				{
					Name:    "start",
					Type:    interfaces.ShortcodeParamInt,
					Default: 0,
				},
				{
					Name:    "autoplay",
					Type:    interfaces.ShortcodeParamBool,
					Default: false,
				},
			},
		},
		Template: `{{- $start := printf "?start=%d" .start -}}
<div class="shortcode shortcode--youtube">
  <iframe src="https://www.youtube.com/embed/{{ .id }}{{ if gt .start 0 }}{{ $start }}{{ end }}{{ if .autoplay }}&autoplay=1{{ end }}" title="YouTube video" loading="lazy" allowfullscreen></iframe>
</div>`,
	}
}

// alertDefinition renders its body with the same class vocabulary
// internal/rewrite.CalloutHTML emits for native "[!TYPE]" blockquote
// callouts (callout/callout-<type>/callout-title/callout-content), so a
// document can mix "{{< alert type="warning" >}}" directives and native
// callout syntax and have both styled and selected identically.
func alertDefinition() interfaces.ShortcodeDefinition {
	validateType := func(value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("alert type must be string")
		}
		switch str {
		case "info", "success", "warning", "danger":
			return nil
		default:
			return fmt.Errorf("alert type %q not supported", str)
		}
	}

	return interfaces.ShortcodeDefinition{
		Name:        "alert",
		Version:     "1.0.0",
		Description: "Displays a contextual callout, styled like a native blockquote callout",
		Category:    "content",
		Icon:        "alert",
		AllowInner:  true,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "type",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
					Validate: validateType,
				},
				{
					Name: "title",
					Type: interfaces.ShortcodeParamString,
				},
			},
		},
		Template: `<div class="callout callout-{{ .type }}">
  {{ if .title }}<div class="callout-title">{{ .title }}</div>{{ end }}
  <div class="callout-content">{{ .Inner }}</div>
</div>`,
	}
}

// noteDefinition renders a "callout callout-note" block with no title
// line, unlike a native "[!NOTE]" callout, which shows a default "Note"
// title.
func noteDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "note",
		Version:     "1.0.0",
		Description: "Shorthand for an info-style callout with no title",
		Category:    "content",
		Icon:        "note",
		AllowInner:  true,
		Template: `<div class="callout callout-note">
  <div class="callout-content">{{ .Inner }}</div>
</div>`,
	}
}

func galleryDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "gallery",
		Version:     "1.0.0",
		Description: "Renders an image gallery grid",
		Category:    "media",
		Icon:        "image",
		AllowInner:  false,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "images",
					Type:     interfaces.ShortcodeParamArray,
					Required: true,
				},
				{
					Name:    "columns",
					Type:    interfaces.ShortcodeParamInt,
					Default: 3,
				},
			},
		},
		Template: `<div class="shortcode shortcode--gallery columns-{{ .columns }}">
  {{ range .images }}
    <figure class="shortcode__gallery-item">
      <img src="{{ . }}" loading="lazy" />
    </figure>
  {{ end }}
</div>`,
	}
}

// figureDefinition tags its wrapper with a "data-caption" attribute.
// Table figures written by internal/inject carry no such attribute; they
// are marked by class="table-figure" instead.
func figureDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "figure",
		Version:     "1.0.0",
		Description: "Image figure with caption support",
		Category:    "media",
		Icon:        "figure",
		AllowInner:  false,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "src",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
				},
				{
					Name:    "alt",
					Type:    interfaces.ShortcodeParamString,
					Default: "",
				},
				{
					Name: "caption",
					Type: interfaces.ShortcodeParamString,
				},
			},
		},
		Template: `<figure class="shortcode shortcode--figure"{{ if .caption }} data-caption="{{ .caption }}"{{ end }}>
  <img src="{{ .src }}" alt="{{ .alt }}" loading="lazy" />
  {{ if .caption }}<figcaption>{{ .caption }}</figcaption>{{ end }}
</figure>`,
	}
}

func codeDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "code",
		Version:     "1.0.0",
		Description: "Syntax highlighted code block",
		Category:    "content",
		Icon:        "code",
		AllowInner:  true,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "lang",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
				},
				{
					Name: "title",
					Type: interfaces.ShortcodeParamString,
				},
				{
					Name:    "line_numbers",
					Type:    interfaces.ShortcodeParamBool,
					Default: true,
				},
			},
		},
		Template: `<div class="shortcode shortcode--code">
  {{ if .title }}<div class="shortcode__code-title">{{ .title }}</div>{{ end }}
  <pre class="shortcode__code-block language-{{ .lang }}{{ if .line_numbers }} shortcode__code-block--lines{{ end }}"><code>{{ .Inner }}</code></pre>
</div>`,
	}
}
