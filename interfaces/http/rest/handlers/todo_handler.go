package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"todo-api/application/ports"
	"todo-api/domain/todo"
	apperrors "todo-api/pkg/errors"
	"todo-api/pkg/observability"
	"todo-api/pkg/utils"

	"go.uber.org/zap"
)

// PathParamID is the path parameter carrying the todo identifier
const PathParamID = "id"

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// UpdateTodoRequest represents the request body for updating a todo.
// A field that is absent or null is left untouched.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Fields converts the request into a partial update
func (r UpdateTodoRequest) Fields() todo.UpdateFields {
	return todo.UpdateFields{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// TodoHandler dispatches todo requests to the store
type TodoHandler struct {
	store   ports.TodoStore
	metrics ports.MetricsSink
	tracer  *observability.Tracer
	logger  *zap.Logger
	now     func() time.Time
}

// Option customises a TodoHandler
type Option func(*TodoHandler)

// WithClock replaces the wall clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(h *TodoHandler) {
		h.now = now
	}
}

// WithTracer records a subsegment per operation
func WithTracer(tracer *observability.Tracer) Option {
	return func(h *TodoHandler) {
		h.tracer = tracer
	}
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(
	store ports.TodoStore,
	metrics ports.MetricsSink,
	logger *zap.Logger,
	opts ...Option,
) *TodoHandler {
	h := &TodoHandler{
		store:   store,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		h.metrics = observability.NopSink{}
	}
	return h
}

// Handle routes a request to its operation and always returns a complete response
func (h *TodoHandler) Handle(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("Panic while handling request",
				zap.Any("panic", rec),
				zap.String("method", req.Method),
				zap.String("path", req.Path),
				zap.String("requestID", req.RequestID),
				zap.Stack("stack"),
			)
			resp = InternalErrorResponse()
		}
	}()

	id := req.PathParameters[PathParamID]

	var operation string
	var handle func(context.Context, Request) (Response, error)
	switch {
	case req.Method == http.MethodPost:
		operation, handle = "CreateTodo", h.createTodo
	case req.Method == http.MethodGet && id != "":
		operation, handle = "GetTodo", h.getTodo
	case req.Method == http.MethodGet:
		operation, handle = "ListTodos", h.listTodos
	case req.Method == http.MethodPut && id != "":
		operation, handle = "UpdateTodo", h.updateTodo
	case req.Method == http.MethodDelete && id != "":
		operation, handle = "DeleteTodo", h.deleteTodo
	default:
		return h.respondError(req, apperrors.NewMethodNotAllowedError())
	}

	err := h.tracer.TraceFunction(ctx, operation, func(ctx context.Context) error {
		if id != "" {
			h.tracer.AddAnnotation(ctx, "todoID", id)
		}
		var err error
		resp, err = handle(ctx, req)
		return err
	})
	if err != nil {
		return h.respondError(req, err)
	}
	return resp
}

// createTodo handles POST /todos
func (h *TodoHandler) createTodo(ctx context.Context, req Request) (Response, error) {
	var body *CreateTodoRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return Response{}, err
	}

	if err := utils.ValidateStruct(body); err != nil {
		return Response{}, apperrors.NewValidationError(err.Error())
	}

	item := todo.New(body.Title, body.Description, h.now())
	if err := h.store.Put(ctx, item); err != nil {
		return Response{}, fmt.Errorf("failed to create todo: %w", err)
	}

	if err := h.metrics.EmitCount(ctx, observability.MetricTodoCreated, 1); err != nil {
		h.logger.Warn("Failed to emit metric",
			zap.String("metric", observability.MetricTodoCreated),
			zap.String("todoID", item.ID),
			zap.Error(err),
		)
	}

	h.logger.Info("Todo created", zap.String("todoID", item.ID))
	return JSONResponse(http.StatusCreated, item)
}

// getTodo handles GET /todos/{id}
func (h *TodoHandler) getTodo(ctx context.Context, req Request) (Response, error) {
	item, err := h.store.Get(ctx, req.PathParameters[PathParamID])
	if err != nil {
		return Response{}, err
	}
	return JSONResponse(http.StatusOK, item)
}

// listTodos handles GET /todos
func (h *TodoHandler) listTodos(ctx context.Context, _ Request) (Response, error) {
	items, err := h.store.Scan(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("failed to list todos: %w", err)
	}
	if items == nil {
		items = []*todo.Todo{}
	}
	return JSONResponse(http.StatusOK, ListBody{Todos: items})
}

// updateTodo handles PUT /todos/{id}
func (h *TodoHandler) updateTodo(ctx context.Context, req Request) (Response, error) {
	var body *UpdateTodoRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return Response{}, err
	}

	fields := body.Fields()
	if fields.IsEmpty() {
		return Response{}, apperrors.NewValidationError("No valid fields to update")
	}

	id := req.PathParameters[PathParamID]
	item, err := h.store.Update(ctx, id, fields, h.now())
	if err != nil {
		return Response{}, err
	}

	h.logger.Info("Todo updated", zap.String("todoID", id))
	return JSONResponse(http.StatusOK, item)
}

// deleteTodo handles DELETE /todos/{id}
func (h *TodoHandler) deleteTodo(ctx context.Context, req Request) (Response, error) {
	id := req.PathParameters[PathParamID]
	if err := h.store.Delete(ctx, id); err != nil {
		return Response{}, err
	}

	h.logger.Info("Todo deleted", zap.String("todoID", id))
	return NoContentResponse(), nil
}

// respondError maps request and not-found errors to their status and
// everything else to a detail-free 500
func (h *TodoHandler) respondError(req Request, err error) Response {
	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.IsClientError() {
		h.logger.Debug("Request rejected",
			zap.String("errorType", string(appErr.Type)),
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Int("status", appErr.HTTPStatus),
		)
		return ErrorResponse(appErr.HTTPStatus, appErr.Message)
	}

	h.logger.Error("Unhandled error",
		zap.Error(err),
		zap.String("errorType", string(apperrors.TypeOf(err))),
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("requestID", req.RequestID),
	)
	return InternalErrorResponse()
}

// decodeBody parses a JSON object into dst, a pointer to a struct pointer.
// A missing, malformed or null body is an error.
func decodeBody[T any](body string, dst **T) error {
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return fmt.Errorf("failed to parse request body: %w", err)
	}
	if *dst == nil {
		return fmt.Errorf("failed to parse request body: not a JSON object")
	}
	return nil
}
