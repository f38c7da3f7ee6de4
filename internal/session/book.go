// Package session holds the reinvestment events a user has added during the
// lifetime of the process. Projections are computed from snapshots of the
// book, never from the live book.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrUnknownCategory is returned for categories other than compra and colocacion.
var ErrUnknownCategory = errors.New("unknown reinvestment category")

// Entry is one reinvestment added to the book.
type Entry struct {
	ID       uuid.UUID             `json:"id"`
	Category schedule.Category     `json:"category"`
	AddedAt  time.Time             `json:"addedAt"`
	Event    schedule.FundingEvent `json:"-"`
}

// Book is an append-only, clearable list of reinvestments per category. It is
// safe for concurrent use.
type Book struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	now     func() time.Time
	entries map[schedule.Category][]Entry
}

// NewBook creates an empty book.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewBook(logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Book{
		logger:  logger,
		now:     time.Now,
		entries: make(map[schedule.Category][]Entry),
	}
}

func known(category schedule.Category) bool {
	for _, c := range schedule.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Add appends a reinvestment to the given category.
func (b *Book) Add(category schedule.Category, event schedule.FundingEvent) (Entry, error) {
	if !known(category) {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	entry := Entry{
		ID:       uuid.New(),
		Category: category,
		AddedAt:  b.now(),
		Event:    event,
	}

	b.mu.Lock()
	b.entries[category] = append(b.entries[category], entry)
	count := len(b.entries[category])
	b.mu.Unlock()

	b.logger.Info("reinvestment added",
		zap.String("op", "session.Add"),
		zap.String("category", string(category)),
		zap.String("id", entry.ID.String()),
		zap.Int("startPeriod", event.StartPeriod()),
		zap.Float64("principal", event.Principal()),
		zap.Int("operations", event.Operations()),
		zap.Int("count", count),
	)
	return entry, nil
}

// Clear removes every reinvestment of one category.
func (b *Book) Clear(category schedule.Category) error {
	if !known(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	b.mu.Lock()
	removed := len(b.entries[category])
	delete(b.entries, category)
	b.mu.Unlock()

	b.logger.Info("reinvestments cleared",
		zap.String("op", "session.Clear"),
		zap.String("category", string(category)),
		zap.Int("removed", removed),
	)
	return nil
}

// ClearAll empties the book.
func (b *Book) ClearAll() {
	b.mu.Lock()
	b.entries = make(map[schedule.Category][]Entry)
	b.mu.Unlock()

	b.logger.Info("all reinvestments cleared", zap.String("op", "session.ClearAll"))
}

// Counts returns the number of reinvestments per category.
func (b *Book) Counts() map[schedule.Category]int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	counts := make(map[schedule.Category]int, len(schedule.Categories()))
	for _, c := range schedule.Categories() {
		counts[c] = len(b.entries[c])
	}
	return counts
}

// Snapshot returns a copy of the book that later changes do not affect.
func (b *Book) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap := Snapshot{Entries: make(map[schedule.Category][]Entry, len(b.entries))}
	for c, entries := range b.entries {
		snap.Entries[c] = append([]Entry(nil), entries...)
	}
	return snap
}

// Snapshot is a point-in-time copy of a Book.
type Snapshot struct {
	Entries map[schedule.Category][]Entry
}

// Events flattens the snapshot into the reinvestments to project, compra
// entries first and each category in insertion order.
func (s Snapshot) Events() []schedule.FundingEvent {
	var events []schedule.FundingEvent
	for _, c := range schedule.Categories() {
		for _, entry := range s.Entries[c] {
			events = append(events, entry.Event)
		}
	}
	return events
}

// Len returns the number of entries in the snapshot.
func (s Snapshot) Len() int {
	n := 0
	for _, entries := range s.Entries {
		n += len(entries)
	}
	return n
}

type exportedEvent struct {
	Category        schedule.Category `yaml:"category"`
	schedule.Fields `yaml:",inline"`
}

// YAML renders the snapshot as the reinvestments section of a configuration
// file, so a session can be replayed from the CLI.
func (s Snapshot) YAML() ([]byte, error) {
	var exported []exportedEvent
	for _, c := range schedule.Categories() {
		for _, entry := range s.Entries[c] {
			exported = append(exported, exportedEvent{Category: c, Fields: entry.Event.Fields()})
		}
	}
	out, err := yaml.Marshal(map[string]interface{}{"reinvestments": exported})
	if err != nil {
		return nil, fmt.Errorf("failed to encode reinvestments: %w", err)
	}
	return out, nil
}
