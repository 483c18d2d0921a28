package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/CrowderSoup/taskboard/board"
)

// BoardRepository loads and saves tenant snapshots. Load returns nil when
// the tenant has nothing stored.
type BoardRepository interface {
	Load(ctx context.Context, tenant string) (*board.Snapshot, error)
	Save(ctx context.Context, tenant string, snap board.Snapshot) error
}

// EventPublisher receives every audit event of every tenant.
type EventPublisher interface {
	Publish(tenant string, event board.Event)
}

type tenantBoard struct {
	board *board.Board
	dirty atomic.Bool
}

// Registry owns one board per tenant. Boards are loaded lazily and kept in
// memory; the in-memory board stays authoritative until Flush saves it.
type Registry struct {
	repo       BoardRepository
	publisher  EventPublisher
	categories []string
	options    []board.Option

	mu     sync.Mutex
	boards map[string]*tenantBoard
}

// NewRegistry creates a registry. publisher may be nil.
func NewRegistry(repo BoardRepository, publisher EventPublisher, categories []string, opts ...board.Option) *Registry {
	return &Registry{
		repo:       repo,
		publisher:  publisher,
		categories: categories,
		options:    opts,
		boards:     make(map[string]*tenantBoard),
	}
}

// Board returns the tenant's board, loading it on first use. Tenants with
// nothing stored get the seed board, which is saved on the next flush.
func (r *Registry) Board(ctx context.Context, tenant string) (*board.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tb, ok := r.boards[tenant]; ok {
		return tb.board, nil
	}

	snap, err := r.repo.Load(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to load board for tenant %s: %w", tenant, err)
	}

	tb := &tenantBoard{}
	opts := append([]board.Option{
		board.WithCategories(r.categories),
		board.WithEventHook(func(e board.Event) { r.record(tenant, tb, e) }),
	}, r.options...)
	tb.board = board.New(snap, opts...)
	if snap == nil {
		log.Printf("Seeded new board for tenant %s", tenant)
		tb.dirty.Store(true)
	}

	r.boards[tenant] = tb
	return tb.board, nil
}

func (r *Registry) record(tenant string, tb *tenantBoard, e board.Event) {
	log.Printf("[audit] tenant=%s event=%s task=%s column=%s", tenant, e.Type, e.TaskID, e.ColumnID)
	tb.dirty.Store(true)
	if r.publisher != nil {
		r.publisher.Publish(tenant, e)
	}
}

// Tenants lists the tenants currently held in memory.
func (r *Registry) Tenants() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	tenants := make([]string, 0, len(r.boards))
	for tenant := range r.boards {
		tenants = append(tenants, tenant)
	}
	sort.Strings(tenants)
	return tenants
}

// Dirty reports whether tenant has changes that are not saved yet.
func (r *Registry) Dirty(tenant string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	tb, ok := r.boards[tenant]
	return ok && tb.dirty.Load()
}

// Flush saves every board changed since its last successful save. A failed
// save leaves the board dirty so the next flush retries it.
func (r *Registry) Flush(ctx context.Context) error {
	r.mu.Lock()
	pending := make(map[string]*tenantBoard, len(r.boards))
	for tenant, tb := range r.boards {
		pending[tenant] = tb
	}
	r.mu.Unlock()

	var errs []error
	for tenant, tb := range pending {
		if !tb.dirty.Swap(false) {
			continue
		}
		if err := r.repo.Save(ctx, tenant, tb.board.Snapshot()); err != nil {
			tb.dirty.Store(true)
			log.Printf("Warning: board for tenant %s is not synced: %v", tenant, err)
			errs = append(errs, fmt.Errorf("tenant %s: %w", tenant, err))
		}
	}
	return errors.Join(errs...)
}
