package guard

import "sync"

// History is the shell's Navigator. It tracks the current route and the
// redirect raised while the current request is handled.
type History struct {
	mu      sync.Mutex
	current string
	pending string
}

func NewHistory(start string) *History {
	return &History{current: start}
}

func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = path
	h.pending = path
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Take returns the pending redirect, if any, and clears it.
func (h *History) Take() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.pending
	h.pending = ""
	return p, p != ""
}
