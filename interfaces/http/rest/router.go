package rest

import (
	"io"
	"net/http"

	"todo-api/interfaces/http/rest/handlers"
	"todo-api/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// maxBodyBytes mirrors the API Gateway payload limit
const maxBodyBytes = 10 << 20

// Router creates and configures the HTTP router
type Router struct {
	todoHandler    *handlers.TodoHandler
	metricsHandler http.Handler
	logger         *zap.Logger
}

// NewRouter creates a new router instance. metricsHandler is optional.
func NewRouter(
	todoHandler *handlers.TodoHandler,
	metricsHandler http.Handler,
	logger *zap.Logger,
) *Router {
	return &Router{
		todoHandler:    todoHandler,
		metricsHandler: metricsHandler,
		logger:         logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// Answers preflight requests the way the API Gateway CORS configuration does
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", rt.healthCheck)
	if rt.metricsHandler != nil {
		router.Handle("/metrics", rt.metricsHandler)
	}

	router.Route("/todos", func(r chi.Router) {
		r.HandleFunc("/", rt.dispatch)
		r.HandleFunc("/{"+handlers.PathParamID+"}", rt.dispatch)
	})

	return router
}

// dispatch converts the HTTP request for the todo handler and writes its response
func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		rt.logger.Error("Failed to read request body", zap.Error(err))
		writeResponse(w, handlers.InternalErrorResponse())
		return
	}

	params := map[string]string{}
	if id := chi.URLParam(r, handlers.PathParamID); id != "" {
		params[handlers.PathParamID] = id
	}

	headers := make(map[string]string, len(r.Header))
	for name := range r.Header {
		headers[name] = r.Header.Get(name)
	}

	resp := rt.todoHandler.Handle(r.Context(), handlers.Request{
		Method:         r.Method,
		Path:           r.URL.Path,
		PathParameters: params,
		Headers:        headers,
		Body:           string(body),
		RequestID:      chimiddleware.GetReqID(r.Context()),
	})

	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp handlers.Response) {
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		_, _ = io.WriteString(w, resp.Body)
	}
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
