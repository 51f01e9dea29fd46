// Package server wires the HTTP surface: the editor API the authoring UI
// drives and the public storefront pages rendered from published layouts.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"golang.org/x/text/language"

	"github.com/pagewright/storefront-builder/internal/cache"
	"github.com/pagewright/storefront-builder/internal/canvas"
	"github.com/pagewright/storefront-builder/internal/catalog"
	"github.com/pagewright/storefront-builder/internal/editor"
	"github.com/pagewright/storefront-builder/internal/gateway"
	"github.com/pagewright/storefront-builder/internal/httputil"
	"github.com/pagewright/storefront-builder/internal/node"
	"github.com/pagewright/storefront-builder/internal/render"
	"github.com/pagewright/storefront-builder/internal/web/middleware"
)

// Server holds the collaborators the handlers need. Renderers are cheap
// per-request values; everything else is shared.
type Server struct {
	Catalog         catalog.Source
	DefaultLanguage string
	Gateway         *gateway.Gateway
	Languages       []language.Tag
	Log             logr.Logger
	Pages           cache.PageCache
	Sessions        *editor.Sessions
}

// New builds the http.Server around the routed handler.
func New(addr string, s *Server) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}
}

// Routes assembles the router. The editor API lives under
// /api/tenants/{tenant}; the storefront is the public /{tenant} page.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithLogger(s.Log))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/tenants/{tenant}", func(r chi.Router) {
		r.Use(middleware.WithTenant())

		r.Get("/layout", s.handleGetLayout)
		r.Get("/canvas", s.handleGetCanvas)
		r.Get("/palette", s.handleGetPalette)

		r.Post("/sections", s.handleAddSection)
		r.Patch("/sections/{id}", s.handleUpdateSection)
		r.Delete("/sections/{id}", s.handleDeleteSection)
		r.Post("/sections/{id}/duplicate", s.handleDuplicateSection)
		r.Post("/sections/reorder", s.handleReorderSections)

		r.Post("/blocks", s.handleAddBlock)
		r.Patch("/blocks/{id}", s.handleUpdateBlock)
		r.Delete("/blocks/{id}", s.handleDeleteBlock)
		r.Post("/blocks/{id}/duplicate", s.handleDuplicateBlock)
		r.Post("/blocks/reorder", s.handleReorderBlocks)

		r.Post("/undo", s.handleUndo)
		r.Post("/redo", s.handleRedo)
		r.Post("/select", s.handleSelect)
		r.Post("/device", s.handleDevice)
		r.Post("/collapse", s.handleCollapse)
		r.Post("/drop", s.handleDrop)

		r.Post("/save", s.handleSave)
		r.Post("/publish", s.handlePublish)
	})

	r.Route("/{tenant}", func(r chi.Router) {
		r.Use(middleware.WithTenant())
		r.Get("/", s.handleStorefront)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, r, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.Sessions.Count(),
	})
}

// session returns the tenant's editing session, seeding it from the stored
// draft on first visit.
func (s *Server) session(r *http.Request) *editor.Session {
	tenantID := middleware.TenantID(r.Context())
	return s.Sessions.GetOrCreate(tenantID, func() node.Layout {
		rec, err := s.Gateway.LoadDraft(r.Context(), tenantID)
		if err != nil {
			return node.NewLayout()
		}
		return rec.Doc
	})
}

func (s *Server) previewRenderer(lang language.Tag) *render.Renderer {
	return &render.Renderer{
		Catalog:  s.Catalog,
		Language: lang,
		Log:      s.Log.WithName("preview"),
		Mode:     render.Preview,
	}
}

func (s *Server) storefrontRenderer(lang language.Tag) *render.Renderer {
	return &render.Renderer{
		Catalog:  s.Catalog,
		Language: lang,
		Log:      s.Log.WithName("storefront"),
		Mode:     render.Storefront,
	}
}

func (s *Server) lang(r *http.Request) language.Tag {
	return httputil.GetLang(r, s.DefaultLanguage, s.Languages)
}

// editorState is the envelope every mutating editor endpoint returns, so
// the UI can redraw from one response.
type editorState struct {
	Layout     node.Layout `json:"layout"`
	SelectedID string      `json:"selectedId,omitempty"`
	Device     node.Device `json:"device"`
	CanUndo    bool        `json:"canUndo"`
	CanRedo    bool        `json:"canRedo"`
}

func (s *Server) respondState(w http.ResponseWriter, r *http.Request, session *editor.Session, layout node.Layout) {
	httputil.RespondJSON(w, r, http.StatusOK, editorState{
		Layout:     layout,
		SelectedID: session.SelectedID(),
		Device:     session.Device(),
		CanUndo:    session.CanUndo(),
		CanRedo:    session.CanRedo(),
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	s.respondState(w, r, session, session.Current())
}

func (s *Server) handleGetCanvas(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	c := &canvas.Canvas{
		Log:      s.Log.WithName("canvas"),
		Renderer: s.previewRenderer(s.lang(r)),
	}
	ctx := render.WithTenant(r.Context(), session.TenantID())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(c.Render(ctx, session))); err != nil {
		s.Log.Error(err, "write canvas", "tenant", session.TenantID())
	}
}

func (s *Server) handleGetPalette(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, r, http.StatusOK, canvas.Palette())
}

