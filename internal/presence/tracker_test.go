package presence

import (
	"sync"
	"testing"
	"time"
)

type memObserver struct {
	mu        sync.Mutex
	snapshots [][]Entry
}

func (o *memObserver) SendSnapshot(entries []Entry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	o.snapshots = append(o.snapshots, cp)
}

func (o *memObserver) last(t *testing.T) []Entry {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.snapshots) == 0 {
		t.Fatal("observer received no snapshots")
	}
	return o.snapshots[len(o.snapshots)-1]
}

func (o *memObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.snapshots)
}

func TestTracker_AdminJoinGetsImmediateSnapshot(t *testing.T) {
	tr := NewTracker(nil)
	tr.Ping("u1", "u1@example.com", "one", "/dashboard")

	obs := &memObserver{}
	tr.AdminJoin("c1", obs)

	got := obs.last(t)
	if len(got) != 1 {
		t.Fatalf("snapshot len = %d, want 1", len(got))
	}
	if got[0].UserID != "u1" || got[0].Path != "/dashboard" {
		t.Errorf("snapshot[0] = %+v", got[0])
	}
}

func TestTracker_PingUpsertsLastWriteWins(t *testing.T) {
	tr := NewTracker(nil)
	obs := &memObserver{}
	tr.AdminJoin("c1", obs)

	tr.Ping("u1", "u1@example.com", "one", "/todos")
	tr.Ping("u1", "u1@example.com", "one", "/products")

	got := obs.last(t)
	if len(got) != 1 {
		t.Fatalf("two pings for one user left %d entries, want 1", len(got))
	}
	if got[0].Path != "/products" {
		t.Errorf("path = %q, want last write %q", got[0].Path, "/products")
	}
}

func TestTracker_PingWithoutUserIDIsNoop(t *testing.T) {
	tr := NewTracker(nil)
	obs := &memObserver{}
	tr.AdminJoin("c1", obs)
	before := obs.count()

	tr.Ping("", "x@example.com", "x", "/nowhere")

	if obs.count() != before {
		t.Error("ping without userId must not broadcast")
	}
	if len(tr.Snapshot()) != 0 {
		t.Error("ping without userId must not create an entry")
	}
}

func TestTracker_BroadcastReachesAllObservers(t *testing.T) {
	tr := NewTracker(nil)
	a, b := &memObserver{}, &memObserver{}
	tr.AdminJoin("c1", a)
	tr.AdminJoin("c2", b)

	tr.Ping("u1", "", "", "/")

	if len(a.last(t)) != 1 || len(b.last(t)) != 1 {
		t.Error("broadcast should reach every observer")
	}
}

func TestTracker_DisconnectRemovesObserverKeepsEntries(t *testing.T) {
	tr := NewTracker(nil)
	obs := &memObserver{}
	tr.AdminJoin("c1", obs)
	tr.Ping("u1", "", "", "/")
	after := obs.count()

	tr.Disconnect("c1")
	tr.Ping("u2", "", "", "/")

	if obs.count() != after {
		t.Error("disconnected observer must not receive broadcasts")
	}
	if len(tr.Snapshot()) != 2 {
		t.Errorf("entries = %d, want 2 (disconnect keeps presence entries)", len(tr.Snapshot()))
	}
}

func TestTracker_LastSeenUsesServerTime(t *testing.T) {
	tr := NewTracker(nil)
	fixed := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	tr.nowF = func() time.Time { return fixed }

	tr.Ping("u1", "", "", "/")
	got := tr.Snapshot()
	if got[0].LastSeen != fixed.UnixMilli() {
		t.Errorf("lastSeen = %d, want %d", got[0].LastSeen, fixed.UnixMilli())
	}
}

func TestTracker_ConcurrentPings(t *testing.T) {
	tr := NewTracker(nil)
	obs := &memObserver{}
	tr.AdminJoin("c1", obs)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if n%2 == 0 {
				tr.Ping("u1", "", "", "/a")
			} else {
				tr.Ping("u2", "", "", "/b")
			}
		}(i)
	}
	wg.Wait()

	if len(tr.Snapshot()) != 2 {
		t.Errorf("entries = %d, want 2", len(tr.Snapshot()))
	}
	// Every broadcast must reflect the state right after its own mutation:
	// snapshots only ever grow in this scenario (no removals).
	obs.mu.Lock()
	defer obs.mu.Unlock()
	prev := 0
	for _, s := range obs.snapshots {
		if len(s) < prev {
			t.Fatalf("snapshot shrank from %d to %d entries", prev, len(s))
		}
		prev = len(s)
	}
}
