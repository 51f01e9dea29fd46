// Package sanitize makes merchant-supplied HTML and CSS safe to inline into
// the authoring canvas and the live storefront. Every "insert raw markup"
// path in the renderer routes through this package; stored values are never
// trusted even when they were sanitized at edit time.
package sanitize

import (
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	// headings and text
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "span", "div", "br", "hr",
		"strong", "em", "b", "i", "u", "s", "small", "sub", "sup",
		"blockquote", "pre", "code",
	)
	// lists
	p.AllowElements("ul", "ol", "li", "dl", "dt", "dd")
	// links and media containers
	p.AllowElements("a", "img", "picture", "figure", "figcaption", "source")
	// table elements
	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "td", "th", "caption", "colgroup", "col")
	// semantic sectioning
	p.AllowElements("section", "article", "header", "footer", "nav", "aside", "main")

	p.AllowAttrs("href", "src", "alt", "class", "target", "rel", "id", "width", "height").Globally()
	p.AllowStyles(
		"color", "background", "background-color",
		"text-align", "font-size", "font-weight",
		"margin", "padding", "border", "border-radius",
		"width", "height", "max-width", "display",
	).Globally()

	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)

	return p
}

// HTML strips script content, inline event handlers and anything outside the
// allowed tag/attribute vocabulary. It never fails: on any internal error it
// degrades to an empty safe value instead of propagating unsafe content.
func HTML(raw string) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	return htmlPolicy.Sanitize(raw)
}

// ScopeCSS rewrites every top-level selector block `selector { ... }` into
// `#containerID selector { ... }` so merchant CSS cannot leak outside its own
// node's subtree. Selectors inside at-rule blocks (@media and friends) are
// scoped the same way; at-rule preludes themselves pass through untouched,
// which is best effort for exotic at-rules. Statement at-rules without a
// block (@import, @charset) cannot be scoped and are dropped. The rewrite
// is a single deterministic pass over the raw input, not a fixed point.
func ScopeCSS(raw, containerID string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	var (
		out     strings.Builder
		prelude strings.Builder
		// ruleDepth > 0 means we are inside a declaration block and copy
		// tokens verbatim until it closes.
		ruleDepth int
	)

	s := scanner.New(raw)
	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF || tok.Type == scanner.TokenError {
			break
		}

		if ruleDepth > 0 {
			switch tok.Value {
			case "{":
				ruleDepth++
			case "}":
				ruleDepth--
			}
			out.WriteString(tok.Value)
			continue
		}

		switch tok.Value {
		case "{":
			p := strings.TrimSpace(prelude.String())
			prelude.Reset()
			if strings.HasPrefix(p, "@") {
				// at-rule: keep the prelude, scope the rules inside
				out.WriteString(p)
				out.WriteString(" {\n")
				continue
			}
			out.WriteString(scopeSelectors(p, containerID))
			out.WriteString(" {")
			ruleDepth = 1
		case ";":
			// a statement at-rule just ended; discard it so the next
			// rule's selector starts from a clean prelude
			prelude.Reset()
		case "}":
			// closes an at-rule block
			prelude.Reset()
			out.WriteString("}\n")
		default:
			prelude.WriteString(tok.Value)
		}
	}

	return out.String()
}

func scopeSelectors(prelude, containerID string) string {
	parts := strings.Split(prelude, ",")
	scoped := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		scoped = append(scoped, "#"+containerID+" "+part)
	}
	return strings.Join(scoped, ", ")
}
