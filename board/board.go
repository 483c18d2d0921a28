package board

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTaskCreated      EventType = "task.created"
	EventTaskUpdated      EventType = "task.updated"
	EventTaskMoved        EventType = "task.moved"
	EventTaskCompleted    EventType = "task.completed"
	EventTaskDeleted      EventType = "task.deleted"
	EventColumnCreated    EventType = "column.created"
	EventColumnUpdated    EventType = "column.updated"
	EventColumnDeleted    EventType = "column.deleted"
	EventColumnsReordered EventType = "columns.reordered"
	EventFiltersChanged   EventType = "filters.changed"
	EventBoardLoaded      EventType = "board.loaded"
)

// Event is the audit record emitted after every successful mutation.
type Event struct {
	Type     EventType `json:"type"`
	TaskID   string    `json:"taskId,omitempty"`
	ColumnID string    `json:"columnId,omitempty"`
	At       time.Time `json:"at"`
}

// Board owns the tasks and columns of a single board. Mutations are
// serialized; reads work on copies and may run concurrently.
type Board struct {
	mu         sync.RWMutex
	tasks      []Task
	columns    []Column
	filters    Filters
	categories []string
	now        func() time.Time
	newID      func() string
	onEvent    func(Event)
}

type Option func(*Board)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithCategories sets the allow-list checked when tasks are written.
// An empty list accepts any non-empty category.
func WithCategories(categories []string) Option {
	return func(b *Board) { b.categories = append([]string(nil), categories...) }
}

// WithEventHook registers fn to receive audit events. fn is called after
// the board lock is released, so it may read from the board.
func WithEventHook(fn func(Event)) Option {
	return func(b *Board) { b.onEvent = fn }
}

func WithIDGenerator(fn func() string) Option {
	return func(b *Board) { b.newID = fn }
}

// New builds a board from snap. A nil snapshot seeds the sample board.
func New(snap *Snapshot, opts ...Option) *Board {
	b := &Board{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	if snap == nil {
		seed := SeedSnapshot(b.now().UTC())
		snap = &seed
	}
	b.replace(*snap)
	return b
}

func (b *Board) replace(snap Snapshot) {
	b.tasks = make([]Task, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		b.tasks = append(b.tasks, t.clone())
	}
	b.columns = append(make([]Column, 0, len(snap.Columns)), snap.Columns...)
	b.filters = snap.Filters.clone()
}

// Load swaps the whole board state for snap without validating it. It is
// meant for snapshots this board saved itself; use Import for anything else.
func (b *Board) Load(snap Snapshot) {
	b.mu.Lock()
	b.replace(snap)
	at := b.now().UTC()
	b.mu.Unlock()

	b.emit(Event{Type: EventBoardLoaded, At: at})
}

// Snapshot returns a copy of the board state suitable for persisting.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap := Snapshot{
		Tasks:   b.cloneTasks(),
		Columns: append([]Column(nil), b.columns...),
		Filters: b.filters.clone(),
		SavedAt: b.now().UTC(),
	}
	return snap
}

// Categories returns the configured category allow-list.
func (b *Board) Categories() []string {
	return append([]string(nil), b.categories...)
}

// Tasks returns every task in insertion order, ignoring filters.
func (b *Board) Tasks() []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cloneTasks()
}

func (b *Board) Task(id string) (Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.taskIndex(id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	return b.tasks[i].clone(), nil
}

func (b *Board) Column(id string) (Column, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.columnIndex(id)
	if i < 0 {
		return Column{}, ErrColumnNotFound
	}
	return b.columns[i], nil
}

// SortedColumns returns the columns ordered by Order, ties kept in
// insertion order.
func (b *Board) SortedColumns() []Column {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedColumns(b.columns)
}

func sortedColumns(columns []Column) []Column {
	out := append([]Column(nil), columns...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (b *Board) Filters() Filters {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filters.clone()
}

func (b *Board) SetFilters(f Filters) {
	b.mu.Lock()
	b.filters = f.clone()
	at := b.now().UTC()
	b.mu.Unlock()

	b.emit(Event{Type: EventFiltersChanged, At: at})
}

// FilteredTasks applies the board's current filters.
func (b *Board) FilteredTasks() []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return FilterTasks(b.tasks, b.filters)
}

// TasksByStatus groups the filtered tasks by column.
func (b *Board) TasksByStatus() map[string][]Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return GroupByStatus(FilterTasks(b.tasks, b.filters), b.columns)
}

// Analytics summarizes the unfiltered task set as of now.
func (b *Board) Analytics() Analytics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ComputeAnalytics(b.tasks, b.now())
}

func (b *Board) emit(e Event) {
	if b.onEvent != nil {
		b.onEvent(e)
	}
}

// touch returns a timestamp strictly later than prev.
func (b *Board) touch(prev time.Time) time.Time {
	now := b.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func (b *Board) cloneTasks() []Task {
	out := make([]Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		out = append(out, t.clone())
	}
	return out
}

func (b *Board) taskIndex(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) columnIndex(id string) int {
	for i := range b.columns {
		if b.columns[i].ID == id {
			return i
		}
	}
	return -1
}
