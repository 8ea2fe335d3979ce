package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"todo-api/domain/todo"
	apperrors "todo-api/pkg/errors"
)

// TodoStore provides an in-memory implementation of ports.TodoStore.
// Items are copied on the way in and out.
type TodoStore struct {
	mu    sync.RWMutex
	todos map[string]*todo.Todo
}

// NewTodoStore creates an empty in-memory todo store
func NewTodoStore() *TodoStore {
	return &TodoStore{
		todos: make(map[string]*todo.Todo),
	}
}

// Get retrieves a todo by ID
func (s *TodoStore) Get(ctx context.Context, id string) (*todo.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.todos[id]
	if !exists {
		return nil, apperrors.NewNotFoundError("Todo")
	}
	return item.Clone(), nil
}

// Put stores the item, replacing any previous value
func (s *TodoStore) Put(ctx context.Context, item *todo.Todo) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("invalid todo")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos[item.ID] = item.Clone()
	return nil
}

// Update applies fields to an existing todo
func (s *TodoStore) Update(ctx context.Context, id string, fields todo.UpdateFields, updatedAt time.Time) (*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.todos[id]
	if !exists {
		return nil, apperrors.NewNotFoundError("Todo")
	}

	item.Apply(fields, updatedAt)
	return item.Clone(), nil
}

// Delete removes an existing todo
func (s *TodoStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[id]; !exists {
		return apperrors.NewNotFoundError("Todo")
	}

	delete(s.todos, id)
	return nil
}

// Scan returns all todos ordered by creation time
func (s *TodoStore) Scan(ctx context.Context) ([]*todo.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*todo.Todo, 0, len(s.todos))
	for _, item := range s.todos {
		items = append(items, item.Clone())
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

// Len returns the number of stored todos
func (s *TodoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.todos)
}
