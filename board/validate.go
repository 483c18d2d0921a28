package board

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minColumnTitle = 2
	maxColumnTitle = 50
	minTaskTitle   = 3
	minTaskDesc    = 10
)

// ValidateColumnTitle checks a column title against the length rules and
// against the titles already on the board. selfID is skipped so a column
// can keep its own title on update.
func ValidateColumnTitle(title string, columns []Column, selfID string) error {
	title = strings.TrimSpace(title)
	n := utf8.RuneCountInString(title)
	switch {
	case n == 0:
		return ValidationError{"title": "title is required"}
	case n < minColumnTitle:
		return ValidationError{"title": fmt.Sprintf("title must be at least %d characters", minColumnTitle)}
	case n > maxColumnTitle:
		return ValidationError{"title": fmt.Sprintf("title must be at most %d characters", maxColumnTitle)}
	}
	for _, r := range title {
		if !unicode.IsPrint(r) {
			return ValidationError{"title": "title must contain only printable characters"}
		}
	}
	for _, col := range columns {
		if col.ID == selfID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(col.Title), title) {
			return ValidationError{"title": fmt.Sprintf("a column titled %q already exists", col.Title)}
		}
	}
	return nil
}

// taskChecks selects the rules that only apply to fields being written.
type taskChecks struct {
	assignees bool
	status    bool
	category  bool
}

var createChecks = taskChecks{assignees: true, status: true, category: true}

func (p TaskPatch) checks() taskChecks {
	return taskChecks{
		assignees: p.Assignees != nil,
		status:    p.Status != nil,
		category:  p.Category != nil,
	}
}

// validateTask checks a fully merged task record.
func (b *Board) validateTask(t *Task, checks taskChecks) ValidationError {
	errs := ValidationError{}

	if utf8.RuneCountInString(strings.TrimSpace(t.Title)) < minTaskTitle {
		errs["title"] = fmt.Sprintf("title must be at least %d characters", minTaskTitle)
	}
	if utf8.RuneCountInString(strings.TrimSpace(t.Description)) < minTaskDesc {
		errs["description"] = fmt.Sprintf("description must be at least %d characters", minTaskDesc)
	}
	if !t.Priority.Valid() {
		errs["priority"] = "priority must be one of High, Medium, Low"
	}

	if strings.TrimSpace(t.Category) == "" {
		errs["category"] = "category is required"
	} else if checks.category && len(b.categories) > 0 {
		// stored with the allow-list's spelling so filters and analytics
		// see a single bucket per category
		if canonical, ok := lookupFold(b.categories, t.Category); ok {
			t.Category = canonical
		} else {
			errs["category"] = fmt.Sprintf("category %q is not allowed", t.Category)
		}
	}

	if t.DueDate.IsZero() {
		errs["dueDate"] = "due date is required"
	}
	if t.EstimatedHours != nil && *t.EstimatedHours <= 0 {
		errs["estimatedHours"] = "estimated hours must be greater than 0"
	}
	if t.ActualHours < 0 {
		errs["actualHours"] = "actual hours cannot be negative"
	}
	if checks.assignees && len(t.Assignees) == 0 {
		errs["assignees"] = "at least one assignee is required"
	}

	if checks.status {
		if msg := b.checkStatus(t.Status); msg != "" {
			errs["status"] = msg
		}
	}
	return errs
}

// checkStatus returns a message when status does not name a real,
// assignable column.
func (b *Board) checkStatus(status string) string {
	switch {
	case status == "":
		return "status is required"
	case status == AllColumnID:
		return fmt.Sprintf("tasks cannot be assigned to the %q column", AllColumnID)
	case b.columnIndex(status) < 0:
		return fmt.Sprintf("column %q does not exist", status)
	}
	return ""
}

// dedupe drops blank and repeated entries, keeping first occurrences.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// lookupFold returns the entry of values equal to s ignoring case.
func lookupFold(values []string, s string) (string, bool) {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return v, true
		}
	}
	return "", false
}
