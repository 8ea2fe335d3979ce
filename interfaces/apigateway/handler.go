package apigateway

import (
	"context"
	"encoding/base64"

	"todo-api/interfaces/http/rest/handlers"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"
)

// Handler adapts API Gateway REST proxy events to the todo handler
type Handler struct {
	todoHandler *handlers.TodoHandler
	logger      *zap.Logger
}

// NewHandler creates a new API Gateway adapter
func NewHandler(todoHandler *handlers.TodoHandler, logger *zap.Logger) *Handler {
	return &Handler{
		todoHandler: todoHandler,
		logger:      logger,
	}
}

// Handle is the Lambda entry point. It never returns an error so that API
// Gateway always relays the handler's own response.
func (a *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID := event.RequestContext.RequestID
	if lc, ok := lambdacontext.FromContext(ctx); ok && requestID == "" {
		requestID = lc.AwsRequestID
	}

	a.logger.Info("Lambda received request",
		zap.String("method", event.HTTPMethod),
		zap.String("path", event.Path),
		zap.String("resource", event.Resource),
		zap.String("requestID", requestID),
	)

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			a.logger.Error("Failed to decode base64 body",
				zap.String("requestID", requestID),
				zap.Error(err),
			)
			return toProxyResponse(handlers.InternalErrorResponse()), nil
		}
		body = string(decoded)
	}

	resp := a.todoHandler.Handle(ctx, handlers.Request{
		Method:         event.HTTPMethod,
		Path:           event.Path,
		PathParameters: event.PathParameters,
		Headers:        event.Headers,
		Body:           body,
		RequestID:      requestID,
	})

	a.logger.Info("Lambda response",
		zap.String("method", event.HTTPMethod),
		zap.String("path", event.Path),
		zap.String("requestID", requestID),
		zap.Int("statusCode", resp.StatusCode),
	)

	return toProxyResponse(resp), nil
}

func toProxyResponse(resp handlers.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}
