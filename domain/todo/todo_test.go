package todo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	item := New("Buy milk", "", now)

	require.NotNil(t, item)
	_, err := uuid.Parse(item.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Buy milk", item.Title)
	assert.Equal(t, "", item.Description)
	assert.False(t, item.Completed)
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
	assert.Equal(t, time.UTC, item.CreatedAt.Location())
	assert.True(t, item.CreatedAt.Equal(now))
}

func TestNew_GeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		item := New("t", "", time.Now())
		_, dup := seen[item.ID]
		require.False(t, dup, "duplicate id %s", item.ID)
		seen[item.ID] = struct{}{}
	}
}

func TestUpdateFields_IsEmpty(t *testing.T) {
	empty := ""
	no := false

	tests := []struct {
		name   string
		fields UpdateFields
		want   bool
	}{
		{name: "nothing set", fields: UpdateFields{}, want: true},
		{name: "empty title counts as present", fields: UpdateFields{Title: &empty}, want: false},
		{name: "empty description counts as present", fields: UpdateFields{Description: &empty}, want: false},
		{name: "false completed counts as present", fields: UpdateFields{Completed: &no}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fields.IsEmpty())
		})
	}
}

func TestTodo_Apply(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	item := &Todo{
		ID:          "abc",
		Title:       "Old",
		Description: "keep me",
		Completed:   false,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	title := "New"
	done := true
	later := created.Add(time.Minute)
	item.Apply(UpdateFields{Title: &title, Completed: &done}, later)

	assert.Equal(t, "abc", item.ID)
	assert.Equal(t, "New", item.Title)
	assert.Equal(t, "keep me", item.Description)
	assert.True(t, item.Completed)
	assert.Equal(t, created, item.CreatedAt)
	assert.Equal(t, later, item.UpdatedAt)
}

func TestTodo_Clone(t *testing.T) {
	var nilTodo *Todo
	assert.Nil(t, nilTodo.Clone())

	item := New("a", "b", time.Now())
	c := item.Clone()
	c.Title = "changed"
	assert.Equal(t, "a", item.Title)
}
