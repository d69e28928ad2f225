package ingest

const subscriberBuffer = 32

// Subscribe returns a channel of progress updates and a function that
// unsubscribes. Slow subscribers miss intermediate updates rather than
// stalling the loop, but always receive the final one.
func (r *Run) Subscribe() (<-chan Progress, func()) {
	ch := make(chan Progress, subscriberBuffer)
	r.subMu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = ch
	r.subMu.Unlock()

	cancel := func() {
		r.subMu.Lock()
		defer r.subMu.Unlock()
		if c, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (r *Run) publish(p Progress) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- p:
		default:
			if p.Done {
				// make room so the final update always lands
				select {
				case <-ch:
				default:
				}
				ch <- p
			}
		}
	}
}

// closeSubscribers ends every subscription.
func (r *Run) closeSubscribers() {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for id, ch := range r.subs {
		delete(r.subs, id)
		close(ch)
	}
}
