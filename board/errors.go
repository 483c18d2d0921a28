package board

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrColumnInUse    = errors.New("column in use")
)

// ValidationError maps a field name to the rule it violated.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ColumnInUseError is returned when deleting a column that tasks still use.
type ColumnInUseError struct {
	ColumnID string
	TaskIDs  []string
}

func (e *ColumnInUseError) Error() string {
	return fmt.Sprintf("column %q is used by %d task(s)", e.ColumnID, len(e.TaskIDs))
}

func (e *ColumnInUseError) Is(target error) bool {
	return target == ErrColumnInUse
}
