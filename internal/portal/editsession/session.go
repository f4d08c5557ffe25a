// Package editsession tracks a page's single form: whether it is creating
// or editing a record, and which in-flight responses may still land.
package editsession

import "sync"

type Mode int

const (
	Idle Mode = iota
	Creating
	Editing
)

func (m Mode) String() string {
	switch m {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	}
	return "idle"
}

// Token marks a request issued under one session state.
type Token uint64

// Session holds the form value F. Every transition invalidates the tokens
// issued before it.
type Session[F any] struct {
	mu    sync.Mutex
	blank func() F
	form  F
	mode  Mode
	id    int64
	seq   Token
	floor Token
}

// New starts an idle session. blank builds the empty form.
func New[F any](blank func() F) *Session[F] {
	return &Session[F]{blank: blank, form: blank()}
}

// Begin arms the Add action on a cleared form.
func (s *Session[F]) Begin() {
	s.transition(Creating, 0, s.blank())
}

// Edit loads form for record id. An edit already in progress is replaced.
func (s *Session[F]) Edit(id int64, form F) {
	s.transition(Editing, id, form)
}

// Cancel abandons the form without a network call.
func (s *Session[F]) Cancel() {
	s.transition(Idle, 0, s.blank())
}

// Reset clears the form after a successful submit.
func (s *Session[F]) Reset() {
	s.transition(Idle, 0, s.blank())
}

func (s *Session[F]) transition(mode Mode, id int64, form F) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.id = id
	s.form = form
	s.floor = s.seq
}

// Update applies a field edit. It is not a transition.
func (s *Session[F]) Update(fn func(*F)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.form)
}

// Issue returns a token for a request about to be sent.
func (s *Session[F]) Issue() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Current reports whether a response for tok may still be applied.
func (s *Session[F]) Current(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tok > s.floor
}

func (s *Session[F]) Form() F {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

func (s *Session[F]) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// EditingID returns the record under edit.
func (s *Session[F]) EditingID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.mode == Editing
}
