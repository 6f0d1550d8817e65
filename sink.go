package formgraph

import "sync"

// MessageSink stores failure messages addressable by field identity. The
// host owns the sink and reads it to refresh displayed failure state after
// each validation run.
type MessageSink interface {
	Clear(ref FieldRef)
	ClearAll()
	Add(ref FieldRef, messages []string)
	Get(ref FieldRef) []string
	All() []string
}

// MemorySink is the default in-memory MessageSink, keyed by field identity.
type MemorySink struct {
	mu       sync.RWMutex
	messages map[FieldRef][]string
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{messages: make(map[FieldRef][]string)}
}

// Clear removes all messages for one field identity.
func (s *MemorySink) Clear(ref FieldRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, ref)
}

// ClearAll removes every stored message.
func (s *MemorySink) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = make(map[FieldRef][]string)
}

// Add appends messages for a field identity.
func (s *MemorySink) Add(ref FieldRef, messages []string) {
	if len(messages) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[ref] = append(s.messages[ref], messages...)
}

// Get returns the messages stored for a field identity.
func (s *MemorySink) Get(ref FieldRef) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[ref]
	if len(msgs) == 0 {
		return nil
	}
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// Has reports whether any messages are stored for a field identity.
func (s *MemorySink) Has(ref FieldRef) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages[ref]) > 0
}

// All returns every stored message. Ordering across field identities is
// unspecified.
func (s *MemorySink) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, msgs := range s.messages {
		out = append(out, msgs...)
	}
	return out
}
