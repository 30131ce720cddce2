package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yesoreyeram/nodeflow/backend/pkg/config"
	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
	"github.com/yesoreyeram/nodeflow/backend/pkg/graph"
	"github.com/yesoreyeram/nodeflow/backend/pkg/health"
	"github.com/yesoreyeram/nodeflow/backend/pkg/logging"
	"github.com/yesoreyeram/nodeflow/backend/pkg/middleware"
	"github.com/yesoreyeram/nodeflow/backend/pkg/modelserver"
	"github.com/yesoreyeram/nodeflow/backend/pkg/observer"
	"github.com/yesoreyeram/nodeflow/backend/pkg/registry"
	"github.com/yesoreyeram/nodeflow/backend/pkg/storage"
	"github.com/yesoreyeram/nodeflow/backend/pkg/telemetry"
	"github.com/yesoreyeram/nodeflow/backend/pkg/validator"
	"github.com/yesoreyeram/nodeflow/backend/pkg/vectorstore"
	"github.com/yesoreyeram/nodeflow/backend/pkg/workflow"
)

// Config holds server configuration
type Config struct {
	// Address to listen on (e.g., ":8080")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration

	// ShutdownTimeout for graceful shutdown
	ShutdownTimeout time.Duration

	// MaxRequestBodySize limits request body size
	MaxRequestBodySize int64

	// EnableCORS enables CORS headers
	EnableCORS bool
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Address:            ":8080",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 10 * 1024 * 1024, // 10MB
		EnableCORS:         true,
	}
}

// Server is the HTTP API server fronting the demand engine and
// orchestration executor.
type Server struct {
	config            Config
	httpServer        *http.Server
	healthChecker     *health.Checker
	telemetryProvider *telemetry.Provider
	logger            *logging.Logger
	engineConfig      config.Config
	registry          *registry.Registry
	store             storage.Store
	nodeChain         *middleware.Chain
	extensions        *engine.Extensions
}

// New creates a new server instance. reg supplies the node types this
// server can execute; an empty registry still serves health, metrics,
// and validation endpoints, but every execute call will fail with
// "unknown node type" for any node.
func New(cfg Config, engineConfig config.Config, reg *registry.Registry) (*Server, error) {
	logger := logging.New(logging.DefaultConfig())

	telemetryConfig := telemetry.DefaultConfig()
	telemetryProvider, err := telemetry.NewProvider(context.Background(), telemetryConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry provider: %w", err)
	}

	if reg == nil {
		reg = registry.New()
	}

	healthChecker := health.NewChecker("nodeflow-engine", "0.1.0")
	healthChecker.RegisterCheck("registry", func(ctx context.Context) error {
		if len(reg.NodeTypes()) == 0 {
			return fmt.Errorf("no node types registered")
		}
		return nil
	}, 5*time.Second, true)

	nodeChain := middleware.NewChain().
		Use(middleware.NewLoggingMiddleware(logger)).
		Use(middleware.NewSizeLimitMiddleware())
	if engineConfig.MaxNodeExecutionTime > 0 {
		nodeChain.Use(middleware.NewTimeoutMiddleware(engineConfig.MaxNodeExecutionTime))
	}

	extensions := engine.NewExtensions()
	if engineConfig.ModelServerBaseURL != "" {
		modelClient, err := modelserver.New(modelserver.Config{
			BaseURL:      engineConfig.ModelServerBaseURL,
			EngineConfig: engineConfig,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build model server client: %w", err)
		}
		engine.Set(extensions, modelClient)
		healthChecker.RegisterCheck("model-server", modelClient.Health, 5*time.Second, false)
	}
	if engineConfig.VectorStoreURL != "" {
		if store, err := vectorstore.New(vectorstore.ConfigFromURL(engineConfig.VectorStoreURL)); err != nil {
			logger.Warnf("vector store client unavailable, vector-search node will fail: %v", err)
		} else {
			engine.Set(extensions, store)
		}
	}

	server := &Server{
		config:            cfg,
		healthChecker:     healthChecker,
		telemetryProvider: telemetryProvider,
		logger:            logger,
		engineConfig:      engineConfig,
		registry:          reg,
		store:             storage.NewInMemoryStore(),
		nodeChain:         nodeChain,
		extensions:        extensions,
	}

	mux := http.NewServeMux()
	server.registerRoutes(mux)

	server.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      server.middlewareChain(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, nil
}

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.healthChecker.HTTPHandler())
	mux.HandleFunc("/health/live", s.healthChecker.LivenessHandler())
	mux.HandleFunc("/health/ready", s.healthChecker.ReadinessHandler())

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/v1/workflow/execute", s.handleExecuteWorkflow)
	mux.HandleFunc("/api/v1/workflow/validate", s.handleValidateWorkflow)
	mux.HandleFunc("/api/v1/workflow/save", s.handleSaveWorkflow)
	mux.HandleFunc("/api/v1/workflow/list", s.handleListWorkflows)
	mux.HandleFunc("/api/v1/workflow/load/", s.handleLoadWorkflow)
	mux.HandleFunc("/api/v1/workflow/delete/", s.handleDeleteWorkflow)
	mux.HandleFunc("/api/v1/workflow/execute/", s.handleExecuteWorkflowByID)

	mux.HandleFunc("/", s.handleStaticFiles)
}

// middlewareChain applies middleware to the handler
func (s *Server) middlewareChain(handler http.Handler) http.Handler {
	if s.config.EnableCORS {
		handler = s.corsMiddleware(handler)
	}
	handler = s.loggingMiddleware(handler)
	handler = s.recoveryMiddleware(handler)
	return handler
}

// graphRequest is the wire format for a data graph submitted to the
// execute/validate endpoints.
type graphRequest struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

func (s *Server) decodeGraph(body []byte) (*graph.Graph, error) {
	var req graphRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("invalid graph payload: %w", err)
	}
	return graph.New(req.ID, req.Name, req.Nodes, req.Edges), nil
}

// executeGraph runs g to completion by demanding every terminal node and
// returns the outputs each one produced, keyed by node ID.
func (s *Server) executeGraph(ctx context.Context, executionID string, g *graph.Graph) (map[string]map[string]interface{}, error) {
	taskExec := registry.NewTaskExecutor(s.registry).Use(s.nodeChain)
	w := workflow.NewWithExtensions(executionID, g, taskExec, s.extensions)
	w.SetEventSink(telemetry.NewSink(s.telemetryProvider))

	terminals := g.TerminalNodes()
	w.SendEvent(ctx, observer.WorkflowEvent{Kind: observer.EventWorkflowStarted, Message: executionID})
	outputs, err := w.DemandMultiple(ctx, terminals)
	if err != nil {
		w.SendEvent(ctx, observer.WorkflowEvent{Kind: observer.EventWorkflowFailed, Message: executionID, Error: err.Error()})
		return nil, err
	}
	w.SendEvent(ctx, observer.WorkflowEvent{Kind: observer.EventWorkflowCompleted, Message: executionID})
	return outputs, nil
}

// handleExecuteWorkflow handles ad-hoc workflow execution requests: the
// graph is submitted inline in the request body and discarded after
// execution.
func (s *Server) handleExecuteWorkflow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	g, err := s.decodeGraph(body)
	if err != nil {
		s.writeErrorResponse(w, "Failed to parse workflow graph", http.StatusBadRequest, err)
		return
	}

	if errs := validator.ValidateWorkflow(g, s.registry); len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	startTime := time.Now()
	outputs, err := s.executeGraph(r.Context(), g.ID, g)
	duration := time.Since(startTime)

	if err != nil {
		s.writeErrorResponse(w, "Workflow execution failed", http.StatusInternalServerError, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"results":        outputs,
		"execution_time": duration.String(),
	})
}

// handleValidateWorkflow handles workflow validation requests
func (s *Server) handleValidateWorkflow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	g, err := s.decodeGraph(body)
	if err != nil {
		s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	errs := validator.ValidateWorkflow(g, s.registry)
	if len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"valid": true,
	})
}

func (s *Server) writeValidationErrors(w http.ResponseWriter, errs []validator.Error) {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Error()
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"valid":  false,
		"errors": messages,
	})
}

// writeJSONResponse writes a JSON response
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// writeErrorResponse writes an error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int, err error) {
	s.logger.WithError(err).WithField("status_code", statusCode).Error(message)

	s.writeJSONResponse(w, statusCode, map[string]interface{}{
		"success": false,
		"error":   message,
		"details": errString(err),
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("address", s.config.Address).Info("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}

	if err := s.telemetryProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown telemetry: %w", err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(startTime)

		s.logger.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": rw.statusCode,
			"duration_ms": duration.Milliseconds(),
			"remote_addr": r.RemoteAddr,
		}).Info("http request")
	})
}

// recoveryMiddleware recovers from panics
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.WithField("error", fmt.Sprintf("%v", err)).
					WithField("path", r.URL.Path).
					Error("panic recovered")

				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
