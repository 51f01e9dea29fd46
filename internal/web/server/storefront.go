package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/pagewright/storefront-builder/internal/gateway"
	"github.com/pagewright/storefront-builder/internal/httputil"
	"github.com/pagewright/storefront-builder/internal/node"
	"github.com/pagewright/storefront-builder/internal/render"
	"github.com/pagewright/storefront-builder/internal/web/middleware"
)

// handleSave persists the session's current snapshot as the draft. A
// primary-store outage degrades to 202: the work is safe in the local
// fallback and will reach the primary on a later save.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	tenantID := session.TenantID()

	err := s.Gateway.SaveDraft(r.Context(), tenantID, session.Current())
	switch {
	case err == nil:
		httputil.RespondJSON(w, r, http.StatusOK, map[string]string{"status": "saved"})
	case errors.Is(err, gateway.ErrPrimaryUnavailable):
		httputil.RespondJSON(w, r, http.StatusAccepted, map[string]string{"status": "saved locally"})
	default:
		s.Log.Error(err, "save draft", "tenant", tenantID)
		httputil.RespondError(w, r, http.StatusInternalServerError, "save failed")
	}
}

// handlePublish stamps the current snapshot as the next published version
// and cycles the page cache to it, so the storefront re-renders at most one
// page per key instead of serving the old version forever.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	tenantID := session.TenantID()

	version, err := s.Gateway.Publish(r.Context(), tenantID, session.Current())
	if err != nil && !errors.Is(err, gateway.ErrPrimaryUnavailable) {
		s.Log.Error(err, "publish", "tenant", tenantID)
		httputil.RespondError(w, r, http.StatusInternalServerError, "publish failed")
		return
	}

	if cerr := s.Pages.Cycle(tenantID, version, false); cerr != nil {
		s.Log.Error(cerr, "cycle page cache", "tenant", tenantID)
	}

	status := http.StatusOK
	if errors.Is(err, gateway.ErrPrimaryUnavailable) {
		status = http.StatusAccepted
	}
	httputil.RespondJSON(w, r, status, map[string]any{"status": "published", "version": version})
}

// handleStorefront serves the public page for a tenant from the published
// layout, cached per language until the next publish cycles it out.
func (s *Server) handleStorefront(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantID(r.Context())
	lang := s.lang(r)
	key := "home:" + lang.String()

	if page, found, fresh, err := s.Pages.Get(r.Context(), tenantID, key); err == nil && found && fresh {
		writeHTML(w, page)
		return
	}

	rec, err := s.Gateway.LoadPublished(r.Context(), tenantID)
	if errors.Is(err, gateway.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.Log.Error(err, "load published", "tenant", tenantID)
		httputil.RespondError(w, r, http.StatusInternalServerError, "storefront unavailable")
		return
	}

	renderer := s.storefrontRenderer(lang)
	body := renderer.RenderLayout(render.WithTenant(r.Context(), tenantID), tenantID, rec.Doc)
	page := pageShell(tenantID, lang, rec.Doc, body)

	if cerr := s.Pages.Set(r.Context(), tenantID, key, page); cerr != nil {
		s.Log.Error(cerr, "cache storefront page", "tenant", tenantID)
	}
	writeHTML(w, page)
}

func writeHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page)) //nolint:errcheck
}

// pageShell wraps the rendered sections in the fixed chrome. Header and
// footer come from the layout's host-supplied configuration.
func pageShell(tenantID string, lang language.Tag, doc node.Layout, body template.HTML) string {
	esc := template.HTMLEscapeString

	var buf strings.Builder
	fmt.Fprintf(&buf, `<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`, esc(lang.String()))
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	fmt.Fprintf(&buf, `<title>%s</title></head><body class="sf-body">`, esc(tenantID))

	headerClass := "sf-header"
	if doc.Header.Sticky {
		headerClass += " sf-header-sticky"
	}
	fmt.Fprintf(&buf, `<header class="%s">`, headerClass)
	if doc.Header.Logo != "" {
		fmt.Fprintf(&buf, `<img class="sf-logo" src="%s" alt="%s">`, esc(doc.Header.Logo), esc(tenantID))
	} else {
		fmt.Fprintf(&buf, `<span class="sf-logo">%s</span>`, esc(tenantID))
	}
	if doc.Header.ShowCart {
		buf.WriteString(`<a class="sf-cart" href="/cart">Cart</a>`)
	}
	buf.WriteString(`</header><main>`)

	buf.WriteString(string(body))

	buf.WriteString(`</main><footer class="sf-footer">`)
	if doc.Footer.Copyright != "" {
		fmt.Fprintf(&buf, `<span>%s</span>`, esc(doc.Footer.Copyright))
	}
	buf.WriteString(`</footer></body></html>`)
	return buf.String()
}
