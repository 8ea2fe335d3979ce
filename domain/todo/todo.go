package todo

import (
	"time"

	"github.com/google/uuid"
)

// Todo is the single entity managed by the API
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateFields is a partial update. A nil field is left untouched.
type UpdateFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

// NewID generates a fresh todo identifier
func NewID() string {
	return uuid.NewString()
}

// New creates an active todo stamped with the given time.
// createdAt and updatedAt start out equal.
func New(title, description string, now time.Time) *Todo {
	now = now.UTC()
	return &Todo{
		ID:          NewID(),
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsEmpty reports whether no field is set
func (f UpdateFields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.Completed == nil
}

// Apply copies the present fields onto the todo and rewrites UpdatedAt.
// ID and CreatedAt are never touched.
func (t *Todo) Apply(f UpdateFields, updatedAt time.Time) {
	if f.Title != nil {
		t.Title = *f.Title
	}
	if f.Description != nil {
		t.Description = *f.Description
	}
	if f.Completed != nil {
		t.Completed = *f.Completed
	}
	t.UpdatedAt = updatedAt.UTC()
}

// Clone returns a copy that shares no state with t
func (t *Todo) Clone() *Todo {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
