package ports

import (
	"context"
	"time"

	"todo-api/domain/todo"
)

// TodoStore defines the interface for todo persistence.
// Implementations report a missing key with an errors.ErrorTypeNotFound AppError;
// any other failure is an infrastructure error.
type TodoStore interface {
	// Get retrieves a todo by its ID
	Get(ctx context.Context, id string) (*todo.Todo, error)

	// Put writes the full item unconditionally
	Put(ctx context.Context, item *todo.Todo) error

	// Update applies the present fields plus updatedAt to an existing item
	// and returns the post-update image
	Update(ctx context.Context, id string, fields todo.UpdateFields, updatedAt time.Time) (*todo.Todo, error)

	// Delete removes an existing item
	Delete(ctx context.Context, id string) error

	// Scan returns every stored item in a single pass
	Scan(ctx context.Context) ([]*todo.Todo, error)
}

// MetricsSink is a best-effort counter sink
type MetricsSink interface {
	EmitCount(ctx context.Context, name string, value float64) error
}
