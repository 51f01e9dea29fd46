package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagewright/storefront-builder/internal/dnd"
	"github.com/pagewright/storefront-builder/internal/editor"
	"github.com/pagewright/storefront-builder/internal/httputil"
	"github.com/pagewright/storefront-builder/internal/node"
)

type addSectionRequest struct {
	Type    node.SectionType `json:"type"`
	AtIndex *int             `json:"atIndex,omitempty"`
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req addSectionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Type.Valid() {
		httputil.RespondError(w, r, http.StatusBadRequest, "unknown section type")
		return
	}

	session := s.session(r)
	s.respondState(w, r, session, session.AddSection(req.Type, req.AtIndex))
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var patch editor.SectionPatch
	if err := httputil.DecodeJSON(r, &patch); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	s.respondState(w, r, session, session.UpdateSection(chi.URLParam(r, "id"), patch))
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	s.respondState(w, r, session, session.DeleteSection(chi.URLParam(r, "id")))
}

func (s *Server) handleDuplicateSection(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	s.respondState(w, r, session, session.DuplicateSection(chi.URLParam(r, "id")))
}

type reorderRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

func (s *Server) handleReorderSections(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	s.respondState(w, r, session, session.ReorderSections(req.FromIndex, req.ToIndex))
}

type addBlockRequest struct {
	Target  editor.BlockTarget `json:"target"`
	Type    node.BlockType     `json:"type"`
	AtIndex *int               `json:"atIndex,omitempty"`
}

func (s *Server) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	var req addBlockRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Type.Valid() {
		httputil.RespondError(w, r, http.StatusBadRequest, "unknown block type")
		return
	}

	session := s.session(r)
	s.respondState(w, r, session, session.AddBlock(req.Target, req.Type, req.AtIndex))
}

type updateBlockRequest struct {
	Target editor.BlockTarget `json:"target"`
	Patch  editor.BlockPatch  `json:"patch"`
}

func (s *Server) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	var req updateBlockRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	s.respondState(w, r, session, session.UpdateBlock(req.Target, chi.URLParam(r, "id"), req.Patch))
}

type blockTargetRequest struct {
	Target editor.BlockTarget `json:"target"`
}

func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	var req blockTargetRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	s.respondState(w, r, session, session.DeleteBlock(req.Target, chi.URLParam(r, "id")))
}

func (s *Server) handleDuplicateBlock(w http.ResponseWriter, r *http.Request) {
	var req blockTargetRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	s.respondState(w, r, session, session.DuplicateBlock(req.Target, chi.URLParam(r, "id")))
}

type reorderBlocksRequest struct {
	Target    editor.BlockTarget `json:"target"`
	FromIndex int                `json:"fromIndex"`
	ToIndex   int                `json:"toIndex"`
}

func (s *Server) handleReorderBlocks(w http.ResponseWriter, r *http.Request) {
	var req reorderBlocksRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	s.respondState(w, r, session, session.ReorderBlocks(req.Target, req.FromIndex, req.ToIndex))
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	s.respondState(w, r, session, session.Undo())
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	s.respondState(w, r, session, session.Redo())
}

type selectRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	session.Select(req.ID)
	s.respondState(w, r, session, session.Current())
}

type deviceRequest struct {
	Device node.Device `json:"device"`
}

func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	var req deviceRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	session.SetDevice(req.Device)
	s.respondState(w, r, session, session.Current())
}

func (s *Server) handleCollapse(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	session.ToggleCollapsed(req.ID)
	s.respondState(w, r, session, session.Current())
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var drop dnd.Drop
	if err := httputil.DecodeJSON(r, &drop); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session := s.session(r)
	s.respondState(w, r, session, dnd.Resolve(session, drop))
}
