package board

import "strings"

// AddTask validates in and appends it as a new task.
func (b *Board) AddTask(in TaskInput) (Task, error) {
	b.mu.Lock()
	now := b.now().UTC()
	task := Task{
		ID:             b.newID(),
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Status:         in.Status,
		Priority:       in.Priority,
		Category:       strings.TrimSpace(in.Category),
		Assignees:      dedupe(in.Assignees),
		DueDate:        in.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
		ProjectID:      in.ProjectID,
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
		Tags:           dedupe(in.Tags),
		Attachments:    in.Attachments,
	}
	task = task.clone()

	if errs := b.validateTask(&task, createChecks); len(errs) > 0 {
		b.mu.Unlock()
		return Task{}, errs
	}
	b.tasks = append(b.tasks, task)
	b.mu.Unlock()

	b.emit(Event{Type: EventTaskCreated, TaskID: task.ID, At: now})
	return task.clone(), nil
}

// UpdateTask merges patch into the task and re-validates the result.
// Nothing is applied unless the merged task is valid.
func (b *Board) UpdateTask(id string, patch TaskPatch) (Task, error) {
	task, err := b.updateTask(id, patch)
	if err != nil {
		return Task{}, err
	}
	b.emit(Event{Type: EventTaskUpdated, TaskID: id, ColumnID: task.Status, At: task.UpdatedAt})
	return task, nil
}

// MoveTask changes the task's status to another column.
func (b *Board) MoveTask(id, status string) (Task, error) {
	task, err := b.updateTask(id, TaskPatch{Status: &status})
	if err != nil {
		return Task{}, err
	}
	b.emit(Event{Type: EventTaskMoved, TaskID: id, ColumnID: status, At: task.UpdatedAt})
	return task, nil
}

// CompleteTask moves the task to the completed column.
func (b *Board) CompleteTask(id string) (Task, error) {
	status := CompletedColumnID
	task, err := b.updateTask(id, TaskPatch{Status: &status})
	if err != nil {
		return Task{}, err
	}
	b.emit(Event{Type: EventTaskCompleted, TaskID: id, ColumnID: status, At: task.UpdatedAt})
	return task, nil
}

func (b *Board) DeleteTask(id string) error {
	b.mu.Lock()
	i := b.taskIndex(id)
	if i < 0 {
		b.mu.Unlock()
		return ErrTaskNotFound
	}
	b.tasks = append(b.tasks[:i:i], b.tasks[i+1:]...)
	at := b.now().UTC()
	b.mu.Unlock()

	b.emit(Event{Type: EventTaskDeleted, TaskID: id, At: at})
	return nil
}

func (b *Board) updateTask(id string, patch TaskPatch) (Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.taskIndex(id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}

	next := b.tasks[i].clone()
	patch.apply(&next)
	if errs := b.validateTask(&next, patch.checks()); len(errs) > 0 {
		return Task{}, errs
	}
	next.UpdatedAt = b.touch(next.UpdatedAt)
	b.tasks[i] = next
	return next.clone(), nil
}

func (p TaskPatch) apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = strings.TrimSpace(*p.Category)
	}
	if p.Assignees != nil {
		t.Assignees = dedupe(p.Assignees)
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.EstimatedHours != nil {
		h := *p.EstimatedHours
		t.EstimatedHours = &h
	}
	if p.ActualHours != nil {
		t.ActualHours = *p.ActualHours
	}
	if p.Tags != nil {
		t.Tags = dedupe(p.Tags)
	}
	if p.Attachments != nil {
		t.Attachments = append([]string(nil), p.Attachments...)
	}
}
