package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"business_document_generator/charts"
)

// ErrInvalidState is returned when an action is not allowed in the current state.
var ErrInvalidState = errors.New("action not allowed in current session state")

// State is the document page's lifecycle.
type State int

const (
	StateIdle State = iota
	StateGenerating
	StateAssembled
	StateEditing
	StateExporting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateAssembled:
		return "assembled"
	case StateEditing:
		return "editing"
	case StateExporting:
		return "exporting"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Session 持有一个用户的文档生成状态。
type Session struct {
	ID string

	mu        sync.Mutex
	state     State
	exports   int
	doc       *Document
	edited    string
	createdAt time.Time
	updatedAt time.Time
	assembler *Assembler
}

// View is a point-in-time copy of a session for callers.
type View struct {
	ID        string           `json:"session_id"`
	State     State            `json:"state"`
	Fields    *FieldSet        `json:"fields,omitempty"`
	Sections  []string         `json:"sections,omitempty"`
	Generated string           `json:"generated,omitempty"`
	Text      string           `json:"text,omitempty"`
	Charts    []charts.Request `json:"charts"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewSession 创建 session，尚未生成文档。
func NewSession(id string, assembler *Assembler) *Session {
	now := time.Now()
	return &Session{ID: id, assembler: assembler, createdAt: now, updatedAt: now}
}

// State reports the current state; Exporting while any export runs.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentState()
}

func (s *Session) currentState() State {
	if s.exports > 0 {
		return StateExporting
	}
	return s.state
}

// Generate runs a full generation. On success the document, the edit buffer
// and the chart list are replaced; on failure the previous ones are kept.
func (s *Session) Generate(ctx context.Context, f FieldSet) (Document, error) {
	if strings.TrimSpace(f.Overview) == "" {
		return Document{}, ErrMissingOverview
	}

	s.mu.Lock()
	if st := s.currentState(); st == StateGenerating || st == StateExporting {
		s.mu.Unlock()
		return Document{}, ErrInvalidState
	}
	prev := s.state
	s.state = StateGenerating
	s.mu.Unlock()

	doc, err := s.assembler.Assemble(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = prev
		return Document{}, err
	}
	s.doc = &doc
	s.edited = doc.Text
	s.state = StateAssembled
	s.updatedAt = time.Now()
	return doc, nil
}

// Edit replaces the working text. Charts are not regenerated.
func (s *Session) Edit(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.currentState() {
	case StateAssembled, StateEditing:
	default:
		return ErrInvalidState
	}
	s.edited = text
	s.state = StateEditing
	s.updatedAt = time.Now()
	return nil
}

// Export hands the working text and chart list to render. Several exports
// may run at once; none of them changes the document.
func (s *Session) Export(render func(text string, reqs []charts.Request) ([]byte, error)) ([]byte, error) {
	s.mu.Lock()
	switch s.currentState() {
	case StateAssembled, StateEditing, StateExporting:
	default:
		s.mu.Unlock()
		return nil, ErrInvalidState
	}
	s.exports++
	text := s.edited
	reqs := append([]charts.Request(nil), s.doc.Charts...)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.exports--
		s.mu.Unlock()
	}()
	return render(text, reqs)
}

// Text returns the working (possibly edited) text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edited
}

// Charts returns a copy of the chart requests of the last successful run.
func (s *Session) Charts() []charts.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil
	}
	return append([]charts.Request(nil), s.doc.Charts...)
}

// Document returns the last successfully assembled document.
func (s *Session) Document() (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return Document{}, false
	}
	return *s.doc, true
}

// Snapshot copies the session for rendering.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:        s.ID,
		State:     s.currentState(),
		Charts:    []charts.Request{},
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
	if s.doc != nil {
		fields := s.doc.Fields
		v.Fields = &fields
		for _, sec := range s.doc.Sections {
			v.Sections = append(v.Sections, sec.Name)
		}
		v.Generated = s.doc.Text
		v.Text = s.edited
		v.Charts = append(v.Charts, s.doc.Charts...)
	}
	return v
}
