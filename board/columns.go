package board

import (
	"fmt"
	"strings"
)

// AddColumn validates in and appends a new column.
func (b *Board) AddColumn(in ColumnInput) (Column, error) {
	b.mu.Lock()

	if err := ValidateColumnTitle(in.Title, b.columns, ""); err != nil {
		b.mu.Unlock()
		return Column{}, err
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = b.newID()
	} else if b.columnIndex(id) >= 0 {
		b.mu.Unlock()
		return Column{}, ValidationError{"id": fmt.Sprintf("column id %q already exists", id)}
	}

	order := len(b.columns)
	if in.Order != nil {
		if *in.Order < 0 {
			b.mu.Unlock()
			return Column{}, ValidationError{"order": "order cannot be negative"}
		}
		order = *in.Order
	}

	now := b.now().UTC()
	col := Column{
		ID:        id,
		Title:     strings.TrimSpace(in.Title),
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.columns = append(b.columns, col)
	b.mu.Unlock()

	b.emit(Event{Type: EventColumnCreated, ColumnID: col.ID, At: now})
	return col, nil
}

func (b *Board) UpdateColumn(id string, patch ColumnPatch) (Column, error) {
	b.mu.Lock()

	i := b.columnIndex(id)
	if i < 0 {
		b.mu.Unlock()
		return Column{}, ErrColumnNotFound
	}

	next := b.columns[i]
	if patch.Title != nil {
		if err := ValidateColumnTitle(*patch.Title, b.columns, id); err != nil {
			b.mu.Unlock()
			return Column{}, err
		}
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Order != nil {
		if *patch.Order < 0 {
			b.mu.Unlock()
			return Column{}, ValidationError{"order": "order cannot be negative"}
		}
		next.Order = *patch.Order
	}
	next.UpdatedAt = b.touch(next.UpdatedAt)
	b.columns[i] = next
	b.mu.Unlock()

	b.emit(Event{Type: EventColumnUpdated, ColumnID: id, At: next.UpdatedAt})
	return next, nil
}

// DeleteColumn removes a column that no task points at. Tasks are never
// removed along with it; the caller has to move or delete them first.
func (b *Board) DeleteColumn(id string) error {
	b.mu.Lock()

	i := b.columnIndex(id)
	if i < 0 {
		b.mu.Unlock()
		return ErrColumnNotFound
	}

	var blocking []string
	for _, t := range b.tasks {
		if t.Status == id {
			blocking = append(blocking, t.ID)
		}
	}
	if len(blocking) > 0 {
		b.mu.Unlock()
		return &ColumnInUseError{ColumnID: id, TaskIDs: blocking}
	}

	b.columns = append(b.columns[:i:i], b.columns[i+1:]...)
	at := b.now().UTC()
	b.mu.Unlock()

	b.emit(Event{Type: EventColumnDeleted, ColumnID: id, At: at})
	return nil
}

// ReorderColumns gives the listed columns orders 0..n-1 in list order.
// Unknown and repeated ids are ignored. Columns left out of ids are placed
// after the listed ones, keeping their previous relative order.
func (b *Board) ReorderColumns(ids []string) []Column {
	b.mu.Lock()

	placed := make(map[string]bool, len(ids))
	next := make([]string, 0, len(b.columns))
	for _, id := range ids {
		if placed[id] || b.columnIndex(id) < 0 {
			continue
		}
		placed[id] = true
		next = append(next, id)
	}
	for _, col := range sortedColumns(b.columns) {
		if !placed[col.ID] {
			next = append(next, col.ID)
		}
	}

	for order, id := range next {
		i := b.columnIndex(id)
		if b.columns[i].Order == order {
			continue
		}
		b.columns[i].Order = order
		b.columns[i].UpdatedAt = b.touch(b.columns[i].UpdatedAt)
	}
	out := sortedColumns(b.columns)
	at := b.now().UTC()
	b.mu.Unlock()

	b.emit(Event{Type: EventColumnsReordered, At: at})
	return out
}
