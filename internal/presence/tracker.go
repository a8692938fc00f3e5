// Package presence tracks currently-connected identified users in process
// memory and streams full-snapshot updates to privileged observers. State is
// owned by a single Tracker; lifetime is the process lifetime.
package presence

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Entry is the last-known activity of a connected, identified client.
// One entry per user: a new signal for the same user overwrites, never appends.
type Entry struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Path     string `json:"path"`
	LastSeen int64  `json:"lastSeen"` // unix milliseconds
}

// Observer receives full entry-set snapshots. SendSnapshot is called with the
// tracker lock held, so implementations must not block (e.g. hand off to a
// buffered writer and drop when full).
type Observer interface {
	SendSnapshot(entries []Entry)
}

// Tracker is the single in-process authority over presence state: the entry
// registry plus the set of admin observers.
type Tracker struct {
	mu        sync.Mutex
	entries   map[string]Entry
	observers map[string]Observer
	logger    *slog.Logger
	nowF      func() time.Time
}

// NewTracker returns an empty Tracker.
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		entries:   make(map[string]Entry),
		observers: make(map[string]Observer),
		logger:    logger.With("component", "presence"),
		nowF:      time.Now,
	}
}

// AdminJoin registers connID as a privileged observer and immediately pushes
// the full current entry set to it.
func (t *Tracker) AdminJoin(connID string, obs Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers[connID] = obs
	t.logger.Info("admin observer joined", "conn_id", connID)
	obs.SendSnapshot(t.snapshotLocked())
}

// Ping upserts the presence entry for userID and broadcasts the full updated
// entry set to all observers. No-op when userID is empty. The mutation and
// the snapshot the broadcast carries happen under one lock hold, so observers
// always see the state immediately following the mutation.
func (t *Tracker) Ping(userID, email, username, path string) {
	if userID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[userID] = Entry{
		UserID:   userID,
		Email:    email,
		Username: username,
		Path:     path,
		LastSeen: t.nowF().UnixMilli(),
	}
	snapshot := t.snapshotLocked()
	for _, obs := range t.observers {
		obs.SendSnapshot(snapshot)
	}
}

// Disconnect removes connID from the observer set. Presence entries are
// deliberately NOT removed: the upstream protocol has no leave signal, so
// entries go stale until the next ping overwrites them. Known gap; an
// eviction sweep would be the fix if this ever serves more than the admin
// dashboard.
func (t *Tracker) Disconnect(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.observers[connID]; ok {
		delete(t.observers, connID)
		t.logger.Info("observer disconnected", "conn_id", connID)
	}
}

// Snapshot returns the current entry set, sorted by user ID.
func (t *Tracker) Snapshot() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
