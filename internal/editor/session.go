// Package editor implements the layout editing engine: an explicit session
// object holding the current document snapshot, its undo/redo history and
// the view state, plus the mutation operations that produce new snapshots.
// There are no hidden globals; the engine is testable headlessly.
package editor

import (
	"sync"

	"github.com/go-logr/logr"

	"github.com/pagewright/storefront-builder/internal/history"
	"github.com/pagewright/storefront-builder/internal/node"
)

// Session is one tenant's editing session. All document mutations go through
// it; each operation clones the current snapshot, mutates the clone,
// renumbers orders and pushes the result exactly once.
//
// The system assumes one active editor per tenant draft; the mutex only
// serializes commands arriving over the wire, it is not a collaboration
// mechanism.
type Session struct {
	collapsed  map[string]bool
	device     node.Device
	history    *history.History[node.Layout]
	log        logr.Logger
	mu         sync.Mutex
	selectedID string
	tenantID   string
}

// NewSession starts a session from an initial document, typically the loaded
// draft or an empty layout on first visit.
func NewSession(tenantID string, initial node.Layout, log logr.Logger) *Session {
	node.Renumber(initial.Sections)
	return &Session{
		collapsed: map[string]bool{},
		device:    node.DeviceDesktop,
		history:   history.New(initial),
		log:       log,
		tenantID:  tenantID,
	}
}

func (s *Session) TenantID() string {
	return s.tenantID
}

// Current returns the snapshot shown to the user.
func (s *Session) Current() node.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Current()
}

// Undo steps back one snapshot. At the oldest entry it is a no-op.
func (s *Session) Undo() node.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Undo()
}

// Redo steps forward one snapshot. At the newest entry it is a no-op.
func (s *Session) Redo() node.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Redo()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Select marks a node as selected. Selection is view state only and never
// touches the document or its history.
func (s *Session) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

func (s *Session) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// SetDevice switches the device-width preview. View state only.
func (s *Session) SetDevice(d node.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch d {
	case node.DeviceDesktop, node.DeviceTablet, node.DeviceMobile:
		s.device = d
	}
}

func (s *Session) Device() node.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device
}

// ToggleCollapsed flips a section's collapsed marker in the canvas.
func (s *Session) ToggleCollapsed(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed[id] = !s.collapsed[id]
}

func (s *Session) Collapsed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed[id]
}

// apply clones the current snapshot, runs the mutation and pushes the result
// when the mutation reports a change. A no-op mutation leaves history
// untouched and returns the current snapshot unchanged.
func (s *Session) apply(mutate func(doc *node.Layout) bool) node.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.history.Current().Clone()
	if !mutate(&doc) {
		return s.history.Current()
	}
	node.Renumber(doc.Sections)
	s.history.Push(doc)
	return doc
}
