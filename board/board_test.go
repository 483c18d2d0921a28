package board

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testColumns() []Column {
	return []Column{
		{ID: AllColumnID, Title: "All Tasks", Order: 0},
		{ID: "to-do", Title: "To Do", Order: 1},
		{ID: "in-progress", Title: "In Progress", Order: 2},
		{ID: CompletedColumnID, Title: "Completed", Order: 3},
	}
}

func newTestBoard(t *testing.T, clock *fakeClock, events *[]Event) *Board {
	t.Helper()
	opts := []Option{
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs()),
		WithCategories([]string{"Structural", "MEP", "Civil"}),
	}
	if events != nil {
		opts = append(opts, WithEventHook(func(e Event) { *events = append(*events, e) }))
	}
	return New(&Snapshot{Columns: testColumns()}, opts...)
}

func validInput(title, category string) TaskInput {
	return TaskInput{
		Title:       title,
		Description: "Detailed description of the work",
		Status:      "to-do",
		Priority:    PriorityMedium,
		Category:    category,
		Assignees:   []string{"u-1"},
		DueDate:     NewDate(2024, time.March, 1),
	}
}

func TestNew_NilSnapshotSeeds(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := New(nil, WithClock(clock.Now))

	cols := b.SortedColumns()
	require.NotEmpty(t, cols)
	assert.Equal(t, AllColumnID, cols[0].ID)
	assert.NotEmpty(t, b.Tasks())

	for _, task := range b.Tasks() {
		_, err := b.Column(task.Status)
		assert.NoError(t, err, "seed task %s points at missing column", task.ID)
	}
}

func TestAddTask(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var events []Event
	b := newTestBoard(t, clock, &events)

	in := validInput("  Beam sizing  ", "Structural")
	in.Assignees = []string{"u-1", "u-2", "u-1"}
	in.Tags = []string{"steel", "", "steel", "level-2"}

	task, err := b.AddTask(in)
	require.NoError(t, err)

	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, "Beam sizing", task.Title)
	assert.Equal(t, clock.Now(), task.CreatedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.Equal(t, []string{"u-1", "u-2"}, task.Assignees)
	assert.Equal(t, []string{"steel", "level-2"}, task.Tags)
	assert.Zero(t, task.ActualHours)

	require.Len(t, events, 1)
	assert.Equal(t, EventTaskCreated, events[0].Type)
	assert.Equal(t, task.ID, events[0].TaskID)

	// titles may repeat across tasks
	_, err = b.AddTask(in)
	require.NoError(t, err)
	assert.Len(t, b.Tasks(), 2)
}

func TestAddTask_ValidationIsAllOrNothing(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var events []Event
	b := newTestBoard(t, clock, &events)

	negative := -1.0
	zero := 0.0
	in := TaskInput{
		Title:          "ab",
		Description:    "short",
		Status:         "nowhere",
		Priority:       "Urgent",
		Category:       "Landscaping",
		EstimatedHours: &zero,
		ActualHours:    negative,
	}

	_, err := b.AddTask(in)
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"title", "description", "status", "priority", "category", "dueDate", "estimatedHours", "actualHours", "assignees"} {
		assert.Contains(t, verr, field)
	}
	assert.Empty(t, b.Tasks())
	assert.Empty(t, events)
}

func TestAddTask_RejectsAllColumnStatus(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := newTestBoard(t, clock, nil)

	in := validInput("Beam sizing", "Structural")
	in.Status = AllColumnID

	_, err := b.AddTask(in)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr["status"], AllColumnID)
}

func TestAddTask_CategoryAllowListIsCaseInsensitive(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := newTestBoard(t, clock, nil)

	task, err := b.AddTask(validInput("Duct layout", "mep"))
	require.NoError(t, err)
	assert.Equal(t, "MEP", task.Category)

	other, err := b.AddTask(validInput("Pile caps", "Structural"))
	require.NoError(t, err)
	lower := "civil"
	other, err = b.UpdateTask(other.ID, TaskPatch{Category: &lower})
	require.NoError(t, err)
	assert.Equal(t, "Civil", other.Category)

	b.SetFilters(Filters{Categories: []string{"MEP"}})
	assert.Equal(t, []string{task.ID}, ids(b.FilteredTasks()))
	assert.Equal(t, map[string]int{"MEP": 1, "Civil": 1}, b.Analytics().ByCategory)
}

func TestUpdateTask(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var events []Event
	b := newTestBoard(t, clock, &events)

	task, err := b.AddTask(validInput("Beam sizing", "Structural"))
	require.NoError(t, err)

	clock.Advance(time.Hour)
	title := "Beam and column sizing"
	hours := 4.5
	updated, err := b.UpdateTask(task.ID, TaskPatch{Title: &title, ActualHours: &hours})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, 4.5, updated.ActualHours)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))
	assert.Equal(t, task.Description, updated.Description)

	require.Len(t, events, 2)
	assert.Equal(t, EventTaskUpdated, events[1].Type)
}

func TestUpdateTask_InvalidPatchLeavesTaskUnchanged(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := newTestBoard(t, clock, nil)

	task, err := b.AddTask(validInput("Beam sizing", "Structural"))
	require.NoError(t, err)

	title := "Beam sizing v2"
	desc := "tiny"
	_, err = b.UpdateTask(task.ID, TaskPatch{Title: &title, Description: &desc})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "description")

	got, err := b.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestUpdateTask_EmptyAssigneesRejected(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := newTestBoard(t, clock, nil)

	task, err := b.AddTask(validInput("Beam sizing", "Structural"))
	require.NoError(t, err)

	_, err = b.UpdateTask(task.ID, TaskPatch{Assignees: []string{}})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "assignees")
}

func TestMutations_NotFound(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var events []Event
	b := newTestBoard(t, clock, &events)

	title := "Anything goes"
	_, err := b.UpdateTask("missing", TaskPatch{Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = b.MoveTask("missing", "to-do")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = b.CompleteTask("missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.ErrorIs(t, b.DeleteTask("missing"), ErrTaskNotFound)
	assert.ErrorIs(t, b.DeleteColumn("missing"), ErrColumnNotFound)

	_, err = b.UpdateColumn("missing", ColumnPatch{Title: &title})
	assert.ErrorIs(t, err, ErrColumnNotFound)

	assert.Empty(t, events)
}

func TestMoveTask(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var events []Event
	b := newTestBoard(t, clock, &events)

	task, err := b.AddTask(validInput("Beam sizing", "Structural"))
	require.NoError(t, err)

	moved, err := b.MoveTask(task.ID, "in-progress")
	require.NoError(t, err)
	assert.Equal(t, "in-progress", moved.Status)

	last := events[len(events)-1]
	assert.Equal(t, EventTaskMoved, last.Type)
	assert.Equal(t, "in-progress", last.ColumnID)

	_, err = b.MoveTask(task.ID, "no-such-column")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "status")

	_, err = b.MoveTask(task.ID, AllColumnID)
	require.ErrorAs(t, err, &verr)

	got, _ := b.Task(task.ID)
	assert.Equal(t, "in-progress", got.Status)
}

func TestUpdateTask_OrphanStatusToleratedUntilMoved(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	snap := Snapshot{
		Columns: testColumns(),
		Tasks: []Task{{
			ID:          "orphan",
			Title:       "Left behind",
			Description: "Status column was removed in an older version",
			Status:      "archived",
			Priority:    PriorityLow,
			Category:    "Civil",
			Assignees:   []string{"u-3"},
			DueDate:     NewDate(2024, 7, 1),
		}},
	}
	b := New(&snap, WithClock(clock.Now))

	title := "Left behind, revisited"
	_, err := b.UpdateTask("orphan", TaskPatch{Title: &title})
	require.NoError(t, err)

	moved, err := b.MoveTask("orphan", "to-do")
	require.NoError(t, err)
	assert.Equal(t, "to-do", moved.Status)
}

func TestCompleteTask_RefreshesUpdatedAt(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var events []Event
	b := newTestBoard(t, clock, &events)

	task, err := b.AddTask(validInput("Beam sizing", "Structural"))
	require.NoError(t, err)
	require.Equal(t, "to-do", task.Status)

	done, err := b.CompleteTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, CompletedColumnID, done.Status)
	assert.True(t, done.UpdatedAt.After(task.UpdatedAt), "updatedAt must move forward even when the clock has not")

	assert.Equal(t, EventTaskCompleted, events[len(events)-1].Type)
}

func TestDeleteTask(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := newTestBoard(t, clock, nil)

	first, err := b.AddTask(validInput("First task", "Civil"))
	require.NoError(t, err)
	second, err := b.AddTask(validInput("Second task", "Civil"))
	require.NoError(t, err)

	require.NoError(t, b.DeleteTask(first.ID))

	tasks := b.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, second.ID, tasks[0].ID)

	_, err = b.Task(first.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := newTestBoard(t, clock, nil)

	in := validInput("Beam sizing", "Structural")
	in.Tags = []string{"steel"}
	task, err := b.AddTask(in)
	require.NoError(t, err)

	tasks := b.Tasks()
	tasks[0].Tags[0] = "mutated"
	tasks[0].Title = "mutated"

	got, err := b.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "steel", got.Tags[0])
	assert.Equal(t, "Beam sizing", got.Title)
}

func TestSnapshotAndLoad(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var events []Event
	b := newTestBoard(t, clock, &events)

	_, err := b.AddTask(validInput("Beam sizing", "Structural"))
	require.NoError(t, err)
	b.SetFilters(Filters{Categories: []string{"Structural"}})

	snap := b.Snapshot()
	assert.Len(t, snap.Tasks, 1)
	assert.Len(t, snap.Columns, 4)
	assert.Equal(t, []string{"Structural"}, snap.Filters.Categories)
	assert.Equal(t, clock.Now(), snap.SavedAt)

	other := New(&Snapshot{}, WithClock(clock.Now))
	other.Load(snap)
	assert.Equal(t, b.Tasks(), other.Tasks())
	assert.Equal(t, b.SortedColumns(), other.SortedColumns())
	assert.Equal(t, b.Filters(), other.Filters())

	assert.Equal(t, EventFiltersChanged, events[len(events)-1].Type)
}
