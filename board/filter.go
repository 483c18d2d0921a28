package board

import "strings"

// FilterTasks returns copies of the tasks matching every non-empty
// criterion in f, in their original order. Within a criterion any member
// may match.
func FilterTasks(tasks []Task, f Filters) []Task {
	// a blank search is unset; otherwise spaces are part of the query
	search := strings.ToLower(f.Search)
	searching := strings.TrimSpace(search) != ""

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if searching && !matchesSearch(t, search) {
			continue
		}
		if len(f.Categories) > 0 && !containsString(f.Categories, t.Category) {
			continue
		}
		if len(f.Priorities) > 0 && !containsPriority(f.Priorities, t.Priority) {
			continue
		}
		if len(f.Assignees) > 0 && !sharesAssignee(t, f.Assignees) {
			continue
		}
		if !inRange(t.DueDate, f.DateRange) {
			continue
		}
		out = append(out, t.clone())
	}
	return out
}

// GroupByStatus maps every column id to the tasks in that column. The
// all-tasks column gets every task passed in.
func GroupByStatus(tasks []Task, columns []Column) map[string][]Task {
	grouped := make(map[string][]Task, len(columns))
	for _, col := range columns {
		if col.ID == AllColumnID {
			all := make([]Task, 0, len(tasks))
			for _, t := range tasks {
				all = append(all, t.clone())
			}
			grouped[col.ID] = all
			continue
		}

		inColumn := []Task{}
		for _, t := range tasks {
			if t.Status == col.ID {
				inColumn = append(inColumn, t.clone())
			}
		}
		grouped[col.ID] = inColumn
	}
	return grouped
}

func matchesSearch(t Task, search string) bool {
	if strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func sharesAssignee(t Task, ids []string) bool {
	for _, id := range ids {
		if t.HasAssignee(id) {
			return true
		}
	}
	return false
}

func inRange(due Date, r DateRange) bool {
	if r.Start != nil && !r.Start.IsZero() && due.Before(*r.Start) {
		return false
	}
	if r.End != nil && !r.End.IsZero() && due.After(*r.End) {
		return false
	}
	return true
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(values []Priority, p Priority) bool {
	for _, v := range values {
		if v == p {
			return true
		}
	}
	return false
}
