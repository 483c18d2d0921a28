package board

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateSnapshot checks an untrusted snapshot against the rules the
// mutation API enforces: unique column ids and titles, non-negative
// orders, and tasks that would pass AddTask against the snapshot's own
// columns. categories is the allow-list; an empty list allows any
// category. Field keys are prefixed with the offending record, e.g.
// "columns[1].title" or "tasks[0].status".
func ValidateSnapshot(snap Snapshot, categories []string) error {
	errs := ValidationError{}

	columnIDs := make(map[string]bool, len(snap.Columns))
	for i, col := range snap.Columns {
		field := fmt.Sprintf("columns[%d]", i)
		switch {
		case strings.TrimSpace(col.ID) == "":
			errs[field+".id"] = "id is required"
		case columnIDs[col.ID]:
			errs[field+".id"] = fmt.Sprintf("column id %q is used more than once", col.ID)
		}
		columnIDs[col.ID] = true

		if col.Order < 0 {
			errs[field+".order"] = "order cannot be negative"
		}
		// earlier columns only, so each duplicate is reported once
		if err := ValidateColumnTitle(col.Title, snap.Columns[:i], col.ID); err != nil {
			var verr ValidationError
			if errors.As(err, &verr) {
				errs[field+".title"] = verr["title"]
			}
		}
	}

	scratch := &Board{columns: snap.Columns, categories: categories}
	taskIDs := make(map[string]bool, len(snap.Tasks))
	for i, t := range snap.Tasks {
		field := fmt.Sprintf("tasks[%d]", i)
		switch {
		case strings.TrimSpace(t.ID) == "":
			errs[field+".id"] = "id is required"
		case taskIDs[t.ID]:
			errs[field+".id"] = fmt.Sprintf("task id %q is used more than once", t.ID)
		}
		taskIDs[t.ID] = true

		t = t.clone()
		for key, msg := range scratch.validateTask(&t, createChecks) {
			errs[field+"."+key] = msg
		}
	}

	for i, p := range snap.Filters.Priorities {
		if !p.Valid() {
			errs[fmt.Sprintf("filters.priorities[%d]", i)] = "priority must be one of High, Medium, Low"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Import validates snap against the board's category allow-list and then
// replaces the board state with it. Categories are stored with the
// allow-list's spelling. Nothing changes when validation fails.
func (b *Board) Import(snap Snapshot) error {
	categories := b.Categories()
	if err := ValidateSnapshot(snap, categories); err != nil {
		return err
	}

	if len(categories) > 0 {
		tasks := make([]Task, len(snap.Tasks))
		for i, t := range snap.Tasks {
			if canonical, ok := lookupFold(categories, t.Category); ok {
				t.Category = canonical
			}
			tasks[i] = t
		}
		snap.Tasks = tasks
	}

	b.Load(snap)
	return nil
}
