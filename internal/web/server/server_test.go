package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/pagewright/storefront-builder/internal/cache"
	"github.com/pagewright/storefront-builder/internal/catalog"
	"github.com/pagewright/storefront-builder/internal/editor"
	"github.com/pagewright/storefront-builder/internal/gateway"
	"github.com/pagewright/storefront-builder/internal/node"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	local, err := gateway.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	pages, err := cache.New("", time.Minute)
	require.NoError(t, err)

	return &Server{
		Catalog:         catalog.NewDemoSource("acme"),
		DefaultLanguage: "en",
		Gateway:         &gateway.Gateway{Local: local, Log: logr.Discard()},
		Languages:       []language.Tag{language.English, language.German},
		Log:             logr.Discard(),
		Pages:           pages,
		Sessions:        editor.NewSessions(logr.Discard()),
	}
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) editorState {
	t.Helper()
	var state editorState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAddSectionAndGetLayout(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "hero"})
	require.Equal(t, http.StatusOK, rec.Code)

	state := decodeState(t, rec)
	require.Len(t, state.Layout.Sections, 1)
	assert.Equal(t, node.SectionHero, state.Layout.Sections[0].Type)
	assert.Equal(t, state.Layout.Sections[0].ID, state.SelectedID)
	assert.True(t, state.CanUndo)
	assert.False(t, state.CanRedo)

	rec = do(t, s, http.MethodGet, "/api/tenants/acme/layout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeState(t, rec).Layout.Sections, 1)
}

func TestAddSection_UnknownType(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "carousel_3d"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tenants/acme/sections",
		bytes.NewReader([]byte(`{"type":`))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidTenantRejected(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/tenants/NOT..OK/layout", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUndoRedoOverAPI(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "hero"})
	do(t, s, http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "text"})

	state := decodeState(t, do(t, s, http.MethodPost, "/api/tenants/acme/undo", nil))
	assert.Len(t, state.Layout.Sections, 1)
	assert.True(t, state.CanRedo)

	state = decodeState(t, do(t, s, http.MethodPost, "/api/tenants/acme/redo", nil))
	assert.Len(t, state.Layout.Sections, 2)
	assert.False(t, state.CanRedo)
}

func TestDropFromPalette(t *testing.T) {
	s := newTestServer(t)

	state := decodeState(t, do(t, s, http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "hero"}))
	anchor := state.Layout.Sections[0].ID

	state = decodeState(t, do(t, s, http.MethodPost, "/api/tenants/acme/drop", map[string]any{
		"source": map[string]any{"paletteType": "products"},
		"target": map[string]any{"position": "before", "anchorId": anchor},
	}))

	require.Len(t, state.Layout.Sections, 2)
	assert.Equal(t, node.SectionProducts, state.Layout.Sections[0].Type)
	assert.Equal(t, node.SectionHero, state.Layout.Sections[1].Type)
	assert.Equal(t, state.Layout.Sections[0].ID, state.SelectedID)
}

func TestSaveWithoutPrimaryDegrades(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "hero"})
	rec := do(t, s, http.MethodPost, "/api/tenants/acme/save", nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "saved locally")

	// the draft survives a process restart (new sessions store)
	s.Sessions = editor.NewSessions(logr.Discard())
	state := decodeState(t, do(t, s, http.MethodGet, "/api/tenants/acme/layout", nil))
	assert.Len(t, state.Layout.Sections, 1)
}

func TestPublishAndStorefront(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "hero"})
	rec := do(t, s, http.MethodPost, "/api/tenants/acme/publish", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":1`)

	rec = do(t, s, http.MethodGet, "/acme/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to our store")
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")

	// cached second read
	rec = do(t, s, http.MethodGet, "/acme/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to our store")
}

func TestPublishCyclesCache(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "hero"})
	do(t, s, http.MethodPost, "/api/tenants/acme/publish", nil)
	rec := do(t, s, http.MethodGet, "/acme/", nil)
	require.Contains(t, rec.Body.String(), "Welcome to our store")

	// change the hero title and publish again
	state := decodeState(t, do(t, s, http.MethodGet, "/api/tenants/acme/layout", nil))
	id := state.Layout.Sections[0].ID
	title := "Summer collection"
	do(t, s, http.MethodPatch, fmt.Sprintf("/api/tenants/acme/sections/%s", id), map[string]any{"title": title})
	rec = do(t, s, http.MethodPost, "/api/tenants/acme/publish", nil)
	assert.Contains(t, rec.Body.String(), `"version":2`)

	rec = do(t, s, http.MethodGet, "/acme/", nil)
	assert.Contains(t, rec.Body.String(), title)
}

func TestStorefront_NothingPublished(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/acme/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlocksOverAPI(t *testing.T) {
	s := newTestServer(t)

	state := decodeState(t, do(t, s, http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "columns"}))
	secID := state.Layout.Sections[0].ID

	state = decodeState(t, do(t, s, http.MethodPost, "/api/tenants/acme/blocks", map[string]any{
		"target": map[string]any{"sectionId": secID},
		"type":   "heading",
	}))
	require.Len(t, state.Layout.Sections[0].Blocks, 1)
	blockID := state.Layout.Sections[0].Blocks[0].ID

	state = decodeState(t, do(t, s, http.MethodPost,
		fmt.Sprintf("/api/tenants/acme/blocks/%s/duplicate", blockID),
		map[string]any{"target": map[string]any{"sectionId": secID}}))
	assert.Len(t, state.Layout.Sections[0].Blocks, 2)

	state = decodeState(t, do(t, s, http.MethodDelete,
		fmt.Sprintf("/api/tenants/acme/blocks/%s", blockID),
		map[string]any{"target": map[string]any{"sectionId": secID}}))
	assert.Len(t, state.Layout.Sections[0].Blocks, 1)
}

func TestCanvasEndpoint(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodPost, "/api/tenants/acme/sections", map[string]any{"type": "hero"})
	rec := do(t, s, http.MethodGet, "/api/tenants/acme/canvas", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "canvas-node")
	assert.Contains(t, rec.Body.String(), "drop-zone")
}

func TestPaletteEndpoint(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/tenants/acme/palette", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, len(node.SectionTypes()))
}
