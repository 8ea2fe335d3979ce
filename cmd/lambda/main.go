package main

import (
	"context"
	"log"
	"time"

	"todo-api/infrastructure/config"
	"todo-api/infrastructure/di"
	"todo-api/interfaces/apigateway"
	"todo-api/interfaces/http/rest"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"
)

var (
	container *di.Container

	// proxyHandler serves REST API (payload 1.0) events
	proxyHandler *apigateway.Handler

	// chiLambda serves HTTP API (payload 2.0) events through the chi router
	chiLambda *chiadapter.ChiLambdaV2

	coldStartTime time.Time
)

// init runs during cold start
func init() {
	coldStartTime = time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	switch cfg.LambdaPayloadVersion {
	case config.PayloadV2:
		router := rest.NewRouter(container.TodoHandler, nil, container.Logger)
		chiLambda = chiadapter.NewV2(router.Setup())
	default:
		proxyHandler = apigateway.NewHandler(container.TodoHandler, container.Logger)
	}

	container.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(coldStartTime)),
		zap.String("payloadVersion", cfg.LambdaPayloadVersion),
		zap.String("storeBackend", cfg.StoreBackend),
		zap.String("metricsBackend", cfg.MetricsBackend),
	)
}

// handleV2 serves HTTP API events
func handleV2(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := chiLambda.ProxyWithContextV2(ctx, req)
	if err != nil {
		container.Logger.Error("Failed to proxy request",
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.String("requestID", req.RequestContext.RequestID),
			zap.Error(err),
		)
	}
	return resp, err
}

func main() {
	if chiLambda != nil {
		lambda.Start(handleV2)
		return
	}
	lambda.Start(proxyHandler.Handle)
}
