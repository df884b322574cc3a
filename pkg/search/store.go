package search

import (
	"net/url"
	"sync"
)

// StateStore is where the current State lives. The URL of a page is the
// canonical store; tests and terminal front ends use History.
type StateStore interface {
	Read() State
	Write(State)
}

// Navigable stores keep a history that can be walked.
type Navigable interface {
	Back() bool
	Forward() bool
}

// URLStore keeps the state in a URL's query string.
type URLStore struct {
	mu sync.Mutex
	u  *url.URL
}

// NewURLStore wraps u. Writes modify u in place.
func NewURLStore(u *url.URL) *URLStore {
	if u == nil {
		u = &url.URL{}
	}
	return &URLStore{u: u}
}

func (s *URLStore) Read() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ParseState(s.u.Query())
}

func (s *URLStore) Write(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.u.RawQuery = st.Encode()
}

// URL returns a copy of the current URL.
func (s *URLStore) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *s.u
	return &u
}

// History is an in-memory browser style history. Write pushes a new entry
// and discards any entries ahead of the current one.
type History struct {
	path    string
	entries []State
	pos     int
}

// NewHistory starts a history at path with the given initial state.
func NewHistory(path string, initial State) *History {
	if initial.Page < 1 {
		initial.Page = 1
	}
	return &History{path: path, entries: []State{initial.clone()}}
}

// NewHistoryFromURL starts a history from a URL such as "/search?q=go".
func NewHistoryFromURL(raw string) (*History, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return NewHistory(u.Path, ParseState(u.Query())), nil
}

func (h *History) Read() State {
	return h.entries[h.pos].clone()
}

func (h *History) Write(s State) {
	h.Push(s)
}

// Push appends s after the current entry.
func (h *History) Push(s State) {
	h.entries = append(h.entries[:h.pos+1], s.clone())
	h.pos = len(h.entries) - 1
}

// Back moves to the previous entry. It reports false at the oldest entry.
func (h *History) Back() bool {
	if h.pos == 0 {
		return false
	}
	h.pos--
	return true
}

// Forward moves to the next entry. It reports false at the newest entry.
func (h *History) Forward() bool {
	if h.pos >= len(h.entries)-1 {
		return false
	}
	h.pos++
	return true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// URL returns the current entry as a path with its query string.
func (h *History) URL() string {
	return h.entries[h.pos].Link(h.path)
}
