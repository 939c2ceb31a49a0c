package widget

import (
	"sync"

	"github.com/artpar/apitester/internal/core"
)

// Badge is the status indicator for backend availability. It is shared by
// handle between the widget, which displays it, and the poller, which sets it.
type Badge struct {
	mu           sync.RWMutex
	availability core.Availability
}

// NewBadge creates a badge in the unknown state.
func NewBadge() *Badge {
	return &Badge{}
}

// Set records a new availability and reports whether it changed.
func (b *Badge) Set(a core.Availability) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	changed := b.availability != a
	b.availability = a
	return changed
}

// Availability returns the last availability set.
func (b *Badge) Availability() core.Availability {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.availability
}

// Text returns the badge label.
func (b *Badge) Text() string {
	return b.Availability().BadgeText()
}

// Style returns the visual style for the current availability.
func (b *Badge) Style() Style {
	switch b.Availability() {
	case core.AvailabilityOnline:
		return StyleSuccess
	case core.AvailabilityOffline:
		return StyleError
	default:
		return StyleNone
	}
}
