package catalog

import "sync"

// Navigator owns the current ViewState of one figure-finder view and keeps
// the address bar in step with it. Every transition updates the state and
// calls navigate with the new query while holding the same lock, so
// observers never see one without the other.
type Navigator struct {
	mu       sync.Mutex
	state    ViewState
	navigate func(query string)
}

// NewNavigator parses rawQuery before anything renders, so a shared URL
// reproduces its view directly. navigate may be nil.
func NewNavigator(rawQuery string, navigate func(query string)) *Navigator {
	return &Navigator{
		state:    ParseQuery(rawQuery),
		navigate: navigate,
	}
}

func (n *Navigator) State() ViewState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func (n *Navigator) Query() string {
	return n.State().Encode()
}

func (n *Navigator) SetFilter(name, value string) ViewState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.transition(n.state.WithFilter(name, value))
}

func (n *Navigator) SetSort(mode SortMode) ViewState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.transition(n.state.WithSort(mode))
}

// GoToPage moves to page when it lies within 1..totalPages. Out-of-range
// requests leave the state untouched and report false.
func (n *Navigator) GoToPage(page, totalPages int) (ViewState, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if page < 1 || page > totalPages {
		return n.state, false
	}
	return n.transition(n.state.WithPage(page)), true
}

// Reset returns to the default view at the bare path.
func (n *Navigator) Reset() ViewState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.transition(DefaultViewState())
}

// Sync adopts a query that changed outside the navigator, such as a
// back-button navigation. It does not navigate again.
func (n *Navigator) Sync(rawQuery string) ViewState {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state = ParseQuery(rawQuery)
	return n.state
}

func (n *Navigator) transition(next ViewState) ViewState {
	n.state = next
	if n.navigate != nil {
		n.navigate(next.Encode())
	}
	return next
}
