package board

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// AllColumnID is the synthetic column that shows every filtered task.
	// Tasks are never assigned to it.
	AllColumnID = "all"

	// CompletedColumnID is the column that marks a task as done.
	CompletedColumnID = "completed"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

// Date is a calendar date, stored as midnight UTC.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD as well as full RFC3339 timestamps, in which
// case only the calendar date in the timestamp's own zone is kept.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d Date) Time() time.Time { return d.t }
func (d Date) IsZero() bool { return d.t.IsZero() }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		if string(data) == "null" {
			*d = Date{}
			return nil
		}
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Column is a status bucket on the board.
type Column struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Task is a unit of work tracked by the board.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	Priority       Priority  `json:"priority"`
	Category       string    `json:"category"`
	Assignees      []string  `json:"assignees"`
	DueDate        Date      `json:"dueDate"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	ProjectID      string    `json:"projectId,omitempty"`
	EstimatedHours *float64  `json:"estimatedHours,omitempty"`
	ActualHours    float64   `json:"actualHours"`
	Tags           []string  `json:"tags"`
	Attachments    []string  `json:"attachments,omitempty"`
}

func (t Task) clone() Task {
	c := t
	c.Assignees = append([]string(nil), t.Assignees...)
	c.Tags = append([]string(nil), t.Tags...)
	if t.Attachments != nil {
		c.Attachments = append([]string(nil), t.Attachments...)
	}
	if t.EstimatedHours != nil {
		h := *t.EstimatedHours
		c.EstimatedHours = &h
	}
	return c
}

// HasAssignee reports whether id is one of the task's assignees.
func (t Task) HasAssignee(id string) bool {
	for _, a := range t.Assignees {
		if a == id {
			return true
		}
	}
	return false
}

// Assignee is owned outside the board and referenced by ID only.
type Assignee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Initials   string `json:"initials"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// DateRange bounds a task's due date. Either side may be open.
type DateRange struct {
	Start *Date `json:"start,omitempty"`
	End   *Date `json:"end,omitempty"`
}

// Filters shapes every filtered read. Empty fields match everything.
type Filters struct {
	Categories []string   `json:"categories"`
	Priorities []Priority `json:"priorities"`
	Assignees  []string   `json:"assignees"`
	Search     string     `json:"search"`
	DateRange  DateRange  `json:"dateRange"`
}

func (f Filters) clone() Filters {
	c := f
	c.Categories = append([]string(nil), f.Categories...)
	c.Priorities = append([]Priority(nil), f.Priorities...)
	c.Assignees = append([]string(nil), f.Assignees...)
	if f.DateRange.Start != nil {
		s := *f.DateRange.Start
		c.DateRange.Start = &s
	}
	if f.DateRange.End != nil {
		e := *f.DateRange.End
		c.DateRange.End = &e
	}
	return c
}

// Snapshot is the persisted form of a board.
type Snapshot struct {
	Tasks   []Task    `json:"tasks"`
	Columns []Column  `json:"columns"`
	Filters Filters   `json:"filters"`
	SavedAt time.Time `json:"savedAt"`
}

// TaskInput carries the fields for a new task.
type TaskInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	Priority       Priority `json:"priority"`
	Category       string   `json:"category"`
	Assignees      []string `json:"assignees"`
	DueDate        Date     `json:"dueDate"`
	ProjectID      string   `json:"projectId,omitempty"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
	ActualHours    float64  `json:"actualHours"`
	Tags           []string `json:"tags"`
	Attachments    []string `json:"attachments,omitempty"`
}

// TaskPatch holds a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Status         *string   `json:"status,omitempty"`
	Priority       *Priority `json:"priority,omitempty"`
	Category       *string   `json:"category,omitempty"`
	Assignees      []string  `json:"assignees,omitempty"`
	DueDate        *Date     `json:"dueDate,omitempty"`
	ProjectID      *string   `json:"projectId,omitempty"`
	EstimatedHours *float64  `json:"estimatedHours,omitempty"`
	ActualHours    *float64  `json:"actualHours,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Attachments    []string  `json:"attachments,omitempty"`
}

// ColumnInput carries the fields for a new column. An empty ID gets a
// generated one; a nil Order appends the column at the end.
type ColumnInput struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Order *int   `json:"order,omitempty"`
}

type ColumnPatch struct {
	Title *string `json:"title,omitempty"`
	Order *int    `json:"order,omitempty"`
}
