package journy

import (
	"maps"
	"strings"
	"time"
)

// Event is something a user or account did. Build one with EventForUser,
// EventForAccount or EventForUserInAccount; the With/HappenedAt helpers
// return modified copies.
type Event struct {
	name        string
	user        *UserIdentified
	account     *AccountIdentified
	triggeredAt time.Time
	metadata    Metadata
}

// EventForUser creates an event performed by a user.
func EventForUser(name string, user UserIdentified) Event {
	return Event{name: name, user: &user}
}

// EventForAccount creates an event performed on behalf of an account.
func EventForAccount(name string, account AccountIdentified) Event {
	return Event{name: name, account: &account}
}

// EventForUserInAccount creates an event performed by a user within an account.
func EventForUserInAccount(name string, user UserIdentified, account AccountIdentified) Event {
	return Event{name: name, user: &user, account: &account}
}

// HappenedAt returns a copy of e with the time the event occurred.
func (e Event) HappenedAt(t time.Time) Event {
	e.triggeredAt = t
	return e
}

// WithMetadata returns a copy of e with m merged into its metadata.
// Keys in m replace existing keys.
func (e Event) WithMetadata(m Metadata) Event {
	merged := make(Metadata, len(e.metadata)+len(m))
	maps.Copy(merged, e.metadata)
	maps.Copy(merged, m)
	e.metadata = merged
	return e
}

// Name returns the event name.
func (e Event) Name() string { return e.name }

// User returns the user the event belongs to, if any.
func (e Event) User() (UserIdentified, bool) {
	if e.user == nil {
		return UserIdentified{}, false
	}
	return *e.user, true
}

// Account returns the account the event belongs to, if any.
func (e Event) Account() (AccountIdentified, bool) {
	if e.account == nil {
		return AccountIdentified{}, false
	}
	return *e.account, true
}

// TriggeredAt returns the time set with HappenedAt, or the zero time.
func (e Event) TriggeredAt() time.Time { return e.triggeredAt }

// Metadata returns a copy of the event metadata.
func (e Event) Metadata() Metadata {
	return maps.Clone(e.metadata)
}

// Validate reports whether the event can be sent.
func (e Event) Validate() error {
	if strings.TrimSpace(e.name) == "" {
		return invalid("name", "event name cannot be empty")
	}
	if e.user == nil && e.account == nil {
		return invalid("event", "event needs a user or an account")
	}
	if e.user != nil {
		if err := e.user.Validate(); err != nil {
			return err
		}
	}
	if e.account != nil {
		if err := e.account.Validate(); err != nil {
			return err
		}
	}
	return nil
}
