package urlutil

import "sync"

// Location is the current page location as seen by the session controller.
// ReplaceState rewrites the current history entry without navigating.
type Location interface {
	Href() string
	ReplaceState(url string)
}

// StaticLocation is a Location over a fixed URL that records in-place
// replacements. Hosts that receive the current URL per request use it.
type StaticLocation struct {
	mu       sync.Mutex
	href     string
	replaced []string
}

var _ Location = (*StaticLocation)(nil)

// NewStaticLocation creates a Location positioned at href
func NewStaticLocation(href string) *StaticLocation {
	return &StaticLocation{href: href}
}

func (l *StaticLocation) Href() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.href
}

func (l *StaticLocation) ReplaceState(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.href = url
	l.replaced = append(l.replaced, url)
}

// Replaced returns every URL passed to ReplaceState, oldest first
func (l *StaticLocation) Replaced() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.replaced...)
}
