package board

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.January, 31), d)

	// the calendar date of the timestamp wins over the UTC instant
	d, err = ParseDate("2024-01-31T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", d.String())

	_, err = ParseDate("31/01/2024")
	assert.Error(t, err)
}

func TestTaskJSON_DueDate(t *testing.T) {
	var in TaskInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Beam sizing","dueDate":"2024-03-01"}`), &in))
	assert.Equal(t, NewDate(2024, time.March, 1), in.DueDate)

	out, err := json.Marshal(Task{ID: "t", DueDate: in.DueDate})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"dueDate":"2024-03-01"`)

	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &in))
	assert.True(t, in.DueDate.IsZero())
}
