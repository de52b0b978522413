// Package api stylegraph REST API
//
// @title           stylegraph REST API
// @version         1.0.0
// @description     Decodes persisted cartographic style records into inspectable snapshots.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/stylegraph/pkg/codec"
)

const shutdownTimeout = 10 * time.Second

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>stylegraph API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// Router builds the HTTP routes. metricsHandler serves /metrics; nil
// selects the default Prometheus registry.
func (s *Server) Router(metricsHandler http.Handler) http.Handler {
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	m := s.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Decoding
		r.Post("/decode", m.InstrumentHandler("POST", "/api/v1/decode", s.handleDecode))
		r.Get("/classes", m.InstrumentHandler("GET", "/api/v1/classes", s.handleListClasses))
		r.Get("/classes/{id}", m.InstrumentHandler("GET", "/api/v1/classes/{id}", s.handleGetClass))

		// Record library
		r.Post("/library", m.InstrumentHandler("POST", "/api/v1/library", s.handlePutRecord))
		r.Get("/library", m.InstrumentHandler("GET", "/api/v1/library", s.handleListRecords))
		r.Post("/library/decode", m.InstrumentHandler("POST", "/api/v1/library/decode", s.handleDecodeLibrary))
		r.Get("/library/{id}", m.InstrumentHandler("GET", "/api/v1/library/{id}", s.handleGetRecord))
		r.Delete("/library/{id}", m.InstrumentHandler("DELETE", "/api/v1/library/{id}", s.handleDeleteRecord))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", s.handleSwagger)

	return r
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))

	case "/swagger/swagger.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.log.Error().Err(err).Msg("failed to generate swagger doc")
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))

	case "/swagger/swagger.yaml":
		doc, err := swaggerYAML()
		if err != nil {
			s.log.Error().Err(err).Msg("failed to generate swagger doc")
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(doc)

	default:
		http.NotFound(w, r)
	}
}

// swaggerYAML renders the registered document as YAML. JSON is a subset of
// YAML, so the JSON document parses directly.
func swaggerYAML() ([]byte, error) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &node); err != nil {
		return nil, fmt.Errorf("failed to parse swagger doc: %w", err)
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

// clearStyle drops the flow style the JSON source carries so the output
// reads as block YAML.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully. Metrics are registered with the default Prometheus registry.
func StartServer(ctx context.Context, reg *codec.Registry, lib RecordLibrary, config ServerConfig, log zerolog.Logger) error {
	if config.APIKey == "" {
		return errors.New("an API key is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port %d", config.Port)
	}

	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	SwaggerInfo.Host = addr

	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(reg, lib, config, metrics, log)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(promhttp.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting stylegraph REST API server")
		log.Info().Str("url", fmt.Sprintf("http://%s/metrics", addr)).Msg("metrics available")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
