package cart

// Subscribe registers for the mutation events of one cart. Each subscriber
// holds at most one pending event; a newer event replaces an unread one, so
// a slow reader only ever sees the latest state. The returned cancel func
// closes the channel.
func (s *Store) Subscribe(cartID string) (<-chan Event, func()) {
	ch := make(chan Event, 1)

	s.subMu.Lock()
	if s.subs[cartID] == nil {
		s.subs[cartID] = make(map[chan Event]struct{})
	}
	s.subs[cartID][ch] = struct{}{}
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[cartID][ch]; !ok {
			return
		}
		delete(s.subs[cartID], ch)
		if len(s.subs[cartID]) == 0 {
			delete(s.subs, cartID)
		}
		close(ch)
	}
	return ch, cancel
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for ch := range s.subs[ev.CartID] {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Drop the stale event and deliver the new one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
