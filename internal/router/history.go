package router

import "sync"

// History abstracts the address bar and its entry stack.
//
// [MemoryHistory] models the browser contract: pushing while positioned
// mid-stack discards the forward entries, and Back/Forward move the
// position without changing the entry count.
type History interface {
	// Location returns the current address-bar value.
	Location() string
	// Push appends a new entry and moves to it.
	Push(loc string)
	// Replace overwrites the current entry without adding one.
	Replace(loc string)
	// Back moves one entry backwards, reporting whether it could.
	Back() (string, bool)
	// Forward moves one entry forwards, reporting whether it could.
	Forward() (string, bool)
	// Len returns the number of entries.
	Len() int
}

// MemoryHistory is the in-process History implementation.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	pos     int
}

// NewMemoryHistory creates a history with a single initial entry.
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{entries: []string{initial}}
}

func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.pos]
}

func (h *MemoryHistory) Push(loc string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.pos+1], loc)
	h.pos = len(h.entries) - 1
}

func (h *MemoryHistory) Replace(loc string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.pos] = loc
}

func (h *MemoryHistory) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

func (h *MemoryHistory) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos == len(h.entries)-1 {
		return "", false
	}
	h.pos++
	return h.entries[h.pos], true
}

func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Stash holds the path the asset server's not-found fallback captured
// before redirecting to the home document. The router consumes it
// exactly once on the next load.
type Stash interface {
	Put(path string)
	Consume() (string, bool)
}

// MemoryStash is the volatile per-session Stash implementation.
type MemoryStash struct {
	mu    sync.Mutex
	value string
	set   bool
}

// NewMemoryStash creates an empty stash.
func NewMemoryStash() *MemoryStash {
	return &MemoryStash{}
}

func (s *MemoryStash) Put(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = path
	s.set = true
}

// Consume returns the stashed path, clearing it so a second call finds
// nothing.
func (s *MemoryStash) Consume() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", false
	}
	s.set = false
	value := s.value
	s.value = ""
	return value, true
}
