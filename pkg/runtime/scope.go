package runtime

import "sort"

// Scope is a stack of frames. Frame 0 holds the globals; every other frame
// belongs to an active call. Lookups only ever see the globals and the
// innermost call frame, so a function body cannot read its caller's locals.
type Scope struct {
	frames []map[string]Value
}

func NewScope() *Scope {
	return &Scope{frames: []map[string]Value{make(map[string]Value)}}
}

func (s *Scope) top() map[string]Value {
	return s.frames[len(s.frames)-1]
}

func (s *Scope) global() map[string]Value {
	return s.frames[0]
}

// Push opens a frame for a call.
func (s *Scope) Push() {
	s.frames = append(s.frames, make(map[string]Value))
}

// Pop discards the innermost call frame.
func (s *Scope) Pop() error {
	if len(s.frames) == 1 {
		return ErrGlobalFramePop
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Depth reports the number of open call frames.
func (s *Scope) Depth() int {
	return len(s.frames) - 1
}

// Register binds name in the innermost frame, shadowing any global.
func (s *Scope) Register(name string, value Value) {
	s.top()[name] = value
}

// Query returns the innermost binding, falling back to the globals.
func (s *Scope) Query(name string) (Value, error) {
	if v, ok := s.top()[name]; ok {
		return v, nil
	}
	if v, ok := s.global()[name]; ok {
		return v, nil
	}
	return nil, &NameError{Name: name}
}

// Set updates an existing binding in the innermost frame or the globals, in
// that order, and otherwise creates it in the innermost frame.
func (s *Scope) Set(name string, value Value) {
	if _, ok := s.top()[name]; ok {
		s.top()[name] = value
		return
	}
	if _, ok := s.global()[name]; ok {
		s.global()[name] = value
		return
	}
	s.top()[name] = value
}

func (s *Scope) Find(name string) bool {
	if _, ok := s.top()[name]; ok {
		return true
	}
	_, ok := s.global()[name]
	return ok
}

// Globals returns the global names in sorted order.
func (s *Scope) Globals() []string {
	keys := make([]string, 0, len(s.global()))
	for k := range s.global() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
