package board

import "time"

const completionWindow = 7 * 24 * time.Hour

// Analytics is computed from the full task set on every call.
type Analytics struct {
	Total             int              `json:"total"`
	ByStatus          map[string]int   `json:"byStatus"`
	ByPriority        map[Priority]int `json:"byPriority"`
	ByCategory        map[string]int   `json:"byCategory"`
	Overdue           int              `json:"overdue"`
	CompletedThisWeek int              `json:"completedThisWeek"`
}

// ComputeAnalytics summarizes tasks as of now. A task is overdue when it is
// not completed and its due date is before now; it counts as completed this
// week when it sits in the completed column and was last updated within
// the seven days ending at now.
func ComputeAnalytics(tasks []Task, now time.Time) Analytics {
	now = now.UTC()
	weekStart := now.Add(-completionWindow)

	a := Analytics{
		Total:      len(tasks),
		ByStatus:   make(map[string]int),
		ByPriority: make(map[Priority]int),
		ByCategory: make(map[string]int),
	}
	for _, t := range tasks {
		a.ByStatus[t.Status]++
		a.ByPriority[t.Priority]++
		a.ByCategory[t.Category]++

		if t.Status == CompletedColumnID {
			updated := t.UpdatedAt.UTC()
			if !updated.Before(weekStart) && !updated.After(now) {
				a.CompletedThisWeek++
			}
			continue
		}
		if !t.DueDate.IsZero() && t.DueDate.Time().Before(now) {
			a.Overdue++
		}
	}
	return a
}
