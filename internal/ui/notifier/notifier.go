// Package notifier broadcasts change events to live dashboard connections.
package notifier

import "sync"

// Event describes what changed. An empty Profile means every profile is
// affected (for example, the underlying data was reloaded).
type Event struct {
	Reason  string
	Profile string
}

// Affects reports whether e concerns profile.
func (e Event) Affects(profile string) bool {
	return e.Profile == "" || e.Profile == profile
}

// Notifier fans events out to subscribed listeners.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Event]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives events.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Listeners returns the number of subscribed listeners.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Broadcast sends ev to all listeners without blocking. A listener that has
// not yet taken its previous event gets one merged event instead, so no
// profile loses an update.
func (n *Notifier) Broadcast(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.listeners {
		select {
		case ch <- ev:
			continue
		default:
		}
		merged := ev
		select {
		case queued := <-ch:
			merged = merge(queued, ev)
		default:
		}
		select {
		case ch <- merged:
		default:
		}
	}
}

// merge combines two pending events into one that affects everyone either
// of them affects.
func merge(a, b Event) Event {
	out := b
	if a.Profile != b.Profile {
		out.Profile = ""
	}
	if a.Reason != b.Reason {
		out.Reason = a.Reason + ", " + b.Reason
	}
	return out
}
