// Package session tracks sign-in state changes and fans them out to
// subscribers registered at startup.
package session

import (
	"sync"
	"time"
)

// State is the authentication state of an identity.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Event is published on every sign-in and on every sign-out of a known
// identity. State is the identity's state after the change.
type Event struct {
	IdentityID string
	Email      string
	State      State
	Reason     string // "sign-in", "sign-out", "refresh-rejected", ...
	At         time.Time
}

// Tracker holds the live session count per identity. An identity is
// Authenticated while it has at least one live session.
type Tracker struct {
	mu     sync.Mutex
	live   map[string]int
	subs   map[int]func(Event)
	nextID int
	now    func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		live: make(map[string]int),
		subs: make(map[int]func(Event)),
		now:  time.Now,
	}
}

// Subscribe registers fn for every future event. The returned func removes
// the subscription.
func (t *Tracker) Subscribe(fn func(Event)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

// SignedIn records a new session for the identity.
func (t *Tracker) SignedIn(identityID, email string) {
	t.mu.Lock()
	t.live[identityID]++
	t.mu.Unlock()
	t.publish(Event{IdentityID: identityID, Email: email, State: Authenticated, Reason: "sign-in"})
}

// SignedOut ends one session of the identity. reason names what ended it.
// The identity stays Authenticated while other sessions remain. Signing out
// an identity with no live session publishes nothing.
func (t *Tracker) SignedOut(identityID, email, reason string) {
	t.mu.Lock()
	n := t.live[identityID]
	if n == 0 {
		t.mu.Unlock()
		return
	}
	state := Authenticated
	if n > 1 {
		t.live[identityID] = n - 1
	} else {
		delete(t.live, identityID)
		state = Unauthenticated
	}
	t.mu.Unlock()
	t.publish(Event{IdentityID: identityID, Email: email, State: state, Reason: reason})
}

// State reports whether the identity has a live session.
func (t *Tracker) State(identityID string) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.live[identityID] > 0 {
		return Authenticated
	}
	return Unauthenticated
}

// Live returns the number of live sessions across all identities.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.live {
		n += c
	}
	return n
}

func (t *Tracker) publish(ev Event) {
	ev.At = t.now()
	t.mu.Lock()
	subs := make([]func(Event), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}
