package render

import (
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

// One parsed set shared by both dispatch tables. The preview and storefront
// renderers feed the same templates different data (skeletons vs live rows,
// inert vs real links).
var tmpl = template.Must(template.New("sections").Funcs(sprig.HtmlFuncMap()).Parse(sectionTemplates))

const sectionTemplates = `
{{define "hero"}}
<div class="sf-hero">
  <h1>{{.Section.Title}}</h1>
  {{with .Section.Subtitle}}<p class="sf-hero-sub">{{.}}</p>{{end}}
  {{template "cta-link" dict "Interactive" .Interactive "Href" "/products" "Label" "Shop now"}}
</div>
{{end}}

{{define "cta-link"}}
{{- if .Interactive -}}
<a class="sf-btn" href="{{.Href}}">{{.Label}}</a>
{{- else -}}
<span class="sf-btn" aria-disabled="true">{{.Label}}</span>
{{- end -}}
{{end}}

{{define "products"}}
<div class="sf-grid" style="--cols: {{.Section.Settings.Columns | default 4}}; --gap: {{.Section.Settings.Gap | default 24}}px">
  {{range .Products}}
  <div class="sf-card">
    {{if .Image}}<img src="{{.Image}}" alt="{{.Name}}">{{else}}<div class="sf-card-img"></div>{{end}}
    {{if $.Interactive}}<a href="/products/{{.Slug}}">{{.Name}}</a>{{else}}<span>{{.Name}}</span>{{end}}
    <span class="sf-price">{{.PriceLabel}}</span>
  </div>
  {{end}}
  {{range until .Skeletons}}
  <div class="sf-card sf-skeleton"><div class="sf-card-img"></div><span class="sf-line"></span></div>
  {{end}}
</div>
{{end}}

{{define "categories"}}
<div class="sf-grid" style="--cols: {{.Section.Settings.Columns | default 4}}; --gap: {{.Section.Settings.Gap | default 16}}px">
  {{range .Categories}}
  <div class="sf-tile">
    {{if $.Interactive}}<a href="/categories/{{.Slug}}">{{.Name}}</a>{{else}}<span>{{.Name}}</span>{{end}}
  </div>
  {{end}}
  {{range until .Skeletons}}
  <div class="sf-tile sf-skeleton"><span class="sf-line"></span></div>
  {{end}}
</div>
{{end}}

{{define "brands"}}
<div class="sf-grid sf-brands" style="--cols: {{.Section.Settings.Columns | default 6}}">
  {{range .Brands}}
  <div class="sf-brand">
    {{if .Logo}}<img src="{{.Logo}}" alt="{{.Name}}">{{else}}<span>{{.Name}}</span>{{end}}
  </div>
  {{end}}
  {{range until .Skeletons}}
  <div class="sf-brand sf-skeleton"></div>
  {{end}}
</div>
{{end}}

{{define "heading"}}
<h2 class="sf-heading">{{.Section.Title}}</h2>
{{end}}

{{define "text"}}
<div class="sf-text">
  {{with .Section.Title}}<h3>{{.}}</h3>{{end}}
  <p>{{.Section.Subtitle | default "Add your text here."}}</p>
</div>
{{end}}

{{define "banner"}}
<div class="sf-banner">
  <strong>{{.Section.Title}}</strong>
  {{with .Section.Subtitle}}<span>{{.}}</span>{{end}}
</div>
{{end}}

{{define "cta"}}
<div class="sf-cta">
  <h2>{{.Section.Title}}</h2>
  {{with .Section.Subtitle}}<p>{{.}}</p>{{end}}
  {{template "cta-link" dict "Interactive" .Interactive "Href" "/products" "Label" "Get started"}}
</div>
{{end}}

{{define "newsletter"}}
<div class="sf-newsletter">
  <h2>{{.Section.Title}}</h2>
  {{with .Section.Subtitle}}<p>{{.}}</p>{{end}}
  {{if .Interactive}}
  <form method="post" action="/newsletter/subscribe">
    <input type="email" name="email" placeholder="you@example.com" required>
    <button type="submit">Subscribe</button>
  </form>
  {{else}}
  <div class="sf-form-placeholder"><span class="sf-input"></span><span class="sf-btn" aria-disabled="true">Subscribe</span></div>
  {{end}}
</div>
{{end}}

{{define "spacer"}}
<div class="sf-spacer" style="height: {{.Section.Settings.Height | default "48px"}}"></div>
{{end}}

{{define "divider"}}
<hr class="sf-divider">
{{end}}

{{define "unknown"}}
<div class="sf-unknown">
  <span class="sf-unknown-tag">{{.Label}}</span>
  <p>This block type isn't recognized by the editor.</p>
</div>
{{end}}

{{define "video"}}
{{if .VideoURL}}
<div class="sf-video"><video controls {{if not .Interactive}}tabindex="-1"{{end}} src="{{.VideoURL}}"></video></div>
{{else}}
<div class="sf-video sf-skeleton"><span class="sf-play"></span></div>
{{end}}
{{end}}
`
