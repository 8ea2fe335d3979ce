package apigateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"todo-api/domain/todo"
	"todo-api/infrastructure/persistence/memory"
	"todo-api/interfaces/http/rest/handlers"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAdapter() *Handler {
	h := handlers.NewTodoHandler(memory.NewTodoStore(), nil, zap.NewNop())
	return NewHandler(h, zap.NewNop())
}

func TestHandler_CreateAndGet(t *testing.T) {
	adapter := newAdapter()
	ctx := context.Background()

	resp, err := adapter.Handle(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/todos",
		Resource:   "/todos",
		Body:       `{"title":"From Lambda"}`,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, handlers.DefaultHeaders(), resp.Headers)

	var created todo.Todo
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &created))

	resp, err = adapter.Handle(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodGet,
		Path:           "/todos/" + created.ID,
		Resource:       "/todos/{id}",
		PathParameters: map[string]string{"id": created.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_Base64Body(t *testing.T) {
	adapter := newAdapter()

	resp, err := adapter.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/todos",
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"title":"encoded"}`)),
		IsBase64Encoded: true,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHandler_InvalidBase64(t *testing.T) {
	adapter := newAdapter()

	resp, err := adapter.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/todos",
		Body:            "%%%not-base64",
		IsBase64Encoded: true,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, `{"error":"Internal server error"}`, resp.Body)
}

func TestHandler_UsesLambdaRequestID(t *testing.T) {
	adapter := newAdapter()
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-1"})

	resp, err := adapter.Handle(ctx, events.APIGatewayProxyRequest{HTTPMethod: http.MethodPatch, Path: "/todos/x"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
