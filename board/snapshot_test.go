package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importTask() Task {
	return Task{
		ID: "t-1", Title: "Imported task", Description: "Came from a spreadsheet import",
		Status: "to-do", Priority: PriorityLow, Category: "civil",
		Assignees: []string{"u-3"}, DueDate: NewDate(2024, 5, 1),
	}
}

func TestValidateSnapshot(t *testing.T) {
	bad := Snapshot{
		Columns: []Column{
			{ID: "a", Title: "Review", Order: -5},
			{ID: "b", Title: "review"},
			{ID: "a", Title: "Dup id"},
		},
		Tasks: []Task{{
			ID: "t-1", Title: "Imported task", Description: "Came from a spreadsheet import",
			Status: AllColumnID, Priority: "Bogus", Category: "Civil", DueDate: NewDate(2024, 5, 1),
		}},
		Filters: Filters{Priorities: []Priority{"Urgent"}},
	}

	err := ValidateSnapshot(bad, DefaultCategories)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "columns[0].order")
	assert.Contains(t, verr["columns[1].title"], "already exists")
	assert.Contains(t, verr["columns[2].id"], "more than once")
	assert.Contains(t, verr["tasks[0].status"], AllColumnID)
	assert.Contains(t, verr, "tasks[0].priority")
	assert.Contains(t, verr, "tasks[0].assignees")
	assert.Contains(t, verr, "filters.priorities[0]")
	assert.NotContains(t, verr, "columns[0].title")
}

func TestValidateSnapshot_TaskRules(t *testing.T) {
	cols := []Column{{ID: "to-do", Title: "To Do"}}

	missing := importTask()
	missing.Status = "gone"
	dup := importTask()
	blankStatus := importTask()
	blankStatus.ID = "t-2"
	blankStatus.Status = ""

	err := ValidateSnapshot(Snapshot{Columns: cols, Tasks: []Task{missing, dup, blankStatus}}, nil)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr["tasks[0].status"], "does not exist")
	assert.Contains(t, verr["tasks[1].id"], "more than once")
	assert.Contains(t, verr["tasks[2].status"], "required")

	assert.NoError(t, ValidateSnapshot(Snapshot{Columns: cols, Tasks: []Task{importTask()}}, nil))
	assert.NoError(t, ValidateSnapshot(Snapshot{}, DefaultCategories))
}

func TestImport(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var events []Event
	b := newTestBoard(t, clock, &events)

	err := b.Import(Snapshot{
		Columns: []Column{{ID: "to-do", Title: "To Do"}},
		Tasks:   []Task{importTask()},
	})
	require.NoError(t, err)

	tasks := b.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Civil", tasks[0].Category)
	assert.Len(t, b.SortedColumns(), 1)
	require.Len(t, events, 1)
	assert.Equal(t, EventBoardLoaded, events[0].Type)
}

func TestImport_InvalidLeavesBoardUnchanged(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var events []Event
	b := newTestBoard(t, clock, &events)
	before := b.Snapshot()

	landscaping := importTask()
	landscaping.Category = "Landscaping"
	err := b.Import(Snapshot{
		Columns: []Column{{ID: "to-do", Title: "To Do"}},
		Tasks:   []Task{landscaping},
	})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "tasks[0].category")

	assert.Equal(t, before.Columns, b.SortedColumns())
	assert.Empty(t, b.Tasks())
	assert.Empty(t, events)
}
