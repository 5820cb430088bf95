package app

import (
	"sort"
	"sync"
	"time"

	"ai-learning-service/internal/domain"
)

// StandingsBoard keeps a live ranking of users by total points and fans
// updated snapshots out to subscribers.
type StandingsBoard struct {
	now func() time.Time

	mu          sync.RWMutex
	points      map[string]*domain.StandingsEntry
	subscribers map[chan domain.Standings]struct{}
}

func NewStandingsBoard() *StandingsBoard {
	return newStandingsBoardWithClock(time.Now)
}

// newStandingsBoardWithClock allows deterministic timestamps in tests.
func newStandingsBoardWithClock(now func() time.Time) *StandingsBoard {
	return &StandingsBoard{
		now:         now,
		points:      make(map[string]*domain.StandingsEntry),
		subscribers: make(map[chan domain.Standings]struct{}),
	}
}

// Record updates a user's standing and broadcasts the new snapshot.
func (b *StandingsBoard) Record(userID, name string, totalPoints int) domain.Standings {
	b.mu.Lock()
	defer b.mu.Unlock()

	if entry, ok := b.points[userID]; ok {
		entry.Name = name
		entry.TotalPoints = totalPoints
	} else {
		b.points[userID] = &domain.StandingsEntry{
			UserID:      userID,
			Name:        name,
			TotalPoints: totalPoints,
		}
	}
	return b.broadcastLocked()
}

// Snapshot returns the current ordered standings.
func (b *StandingsBoard) Snapshot() domain.Standings {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// Subscribe returns a channel receiving standings updates, primed with the
// current snapshot. The caller must invoke cancel to avoid leaks.
func (b *StandingsBoard) Subscribe() (<-chan domain.Standings, func()) {
	ch := make(chan domain.Standings, 8)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	initial := b.snapshotLocked()
	b.mu.Unlock()

	ch <- initial

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *StandingsBoard) broadcastLocked() domain.Standings {
	snap := b.snapshotLocked()
	for ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so a slow reader never blocks broadcast.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (b *StandingsBoard) snapshotLocked() domain.Standings {
	entries := make([]domain.StandingsEntry, 0, len(b.points))
	for _, entry := range b.points {
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].Name < entries[j].Name
	})

	return domain.Standings{
		Entries:   entries,
		UpdatedAt: b.now(),
	}
}
