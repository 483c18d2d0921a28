package board

import "time"

// DefaultCategories is used when no category allow-list is configured.
var DefaultCategories = []string{
	"Structural",
	"MEP",
	"Civil",
	"Architectural",
	"Geotechnical",
	"Electrical",
}

// SeedAssignees returns the sample people referenced by the seed tasks.
func SeedAssignees() []Assignee {
	return []Assignee{
		{ID: "u-1", Name: "Priya Raman", Initials: "PR", Role: "Lead Structural Engineer", Department: "Structural"},
		{ID: "u-2", Name: "Tomás Okafor", Initials: "TO", Role: "MEP Coordinator", Department: "MEP"},
		{ID: "u-3", Name: "Lena Fischer", Initials: "LF", Role: "Civil Engineer", Department: "Civil"},
		{ID: "u-4", Name: "Sam Whitaker", Initials: "SW", Role: "Project Manager", Department: "Delivery"},
	}
}

// SeedSnapshot builds the sample board used for empty installations.
func SeedSnapshot(now time.Time) Snapshot {
	now = now.UTC()
	day := func(offset int) Date {
		d := now.AddDate(0, 0, offset)
		return NewDate(d.Year(), d.Month(), d.Day())
	}
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	hours := func(h float64) *float64 { return &h }

	columns := []Column{
		{ID: AllColumnID, Title: "All Tasks", Order: 0},
		{ID: "to-do", Title: "To Do", Order: 1},
		{ID: "in-progress", Title: "In Progress", Order: 2},
		{ID: "review", Title: "Review", Order: 3},
		{ID: CompletedColumnID, Title: "Completed", Order: 4},
	}
	for i := range columns {
		columns[i].CreatedAt = ago(30 * 24 * time.Hour)
		columns[i].UpdatedAt = columns[i].CreatedAt
	}

	tasks := []Task{
		{
			ID:             "task-1",
			Title:          "Foundation load calculations",
			Description:    "Verify pile capacities against the revised geotechnical report for block B.",
			Status:         "to-do",
			Priority:       PriorityHigh,
			Category:       "Structural",
			Assignees:      []string{"u-1"},
			DueDate:        day(5),
			CreatedAt:      ago(10 * 24 * time.Hour),
			UpdatedAt:      ago(2 * 24 * time.Hour),
			ProjectID:      "proj-harbor",
			EstimatedHours: hours(16),
			Tags:           []string{"foundations", "block-b"},
		},
		{
			ID:             "task-2",
			Title:          "HVAC duct routing review",
			Description:    "Resolve clashes between supply ducts and the level 3 transfer beams.",
			Status:         "in-progress",
			Priority:       PriorityMedium,
			Category:       "MEP",
			Assignees:      []string{"u-2", "u-1"},
			DueDate:        day(-3),
			CreatedAt:      ago(14 * 24 * time.Hour),
			UpdatedAt:      ago(24 * time.Hour),
			ProjectID:      "proj-harbor",
			EstimatedHours: hours(12),
			ActualHours:    7.5,
			Tags:           []string{"clash-detection", "hvac"},
		},
		{
			ID:          "task-3",
			Title:       "Stormwater drainage layout",
			Description: "Prepare drainage plan for the east parking area and submit for council comments.",
			Status:      "review",
			Priority:    PriorityLow,
			Category:    "Civil",
			Assignees:   []string{"u-3"},
			DueDate:     day(12),
			CreatedAt:   ago(20 * 24 * time.Hour),
			UpdatedAt:   ago(3 * 24 * time.Hour),
			ActualHours: 22,
			Tags:        []string{"drainage"},
		},
		{
			ID:             "task-4",
			Title:          "Issue steel connection drawings",
			Description:    "Final issue of moment connection details to the fabricator.",
			Status:         CompletedColumnID,
			Priority:       PriorityHigh,
			Category:       "Structural",
			Assignees:      []string{"u-1", "u-4"},
			DueDate:        day(-1),
			CreatedAt:      ago(25 * 24 * time.Hour),
			UpdatedAt:      ago(2 * 24 * time.Hour),
			ProjectID:      "proj-harbor",
			EstimatedHours: hours(8),
			ActualHours:    9,
			Tags:           []string{"steel", "issued"},
		},
	}

	return Snapshot{
		Tasks:   tasks,
		Columns: columns,
		SavedAt: now,
	}
}
