package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/stylegraph/pkg/objects"
)

func TestRouter_RequiresAPIKey(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name           string
		key            string
		expectedStatus int
	}{
		{"no key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusUnauthorized},
		{"right key", testAPIKey, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/classes", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			w := httptest.NewRecorder()
			env.handler.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	env := setupTestServer(t)

	w, _ := env.do(t, "POST", "/api/v1/decode", rendererRecord())
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(t, "POST", "/api/v1/decode", unknownRecord())
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// no API key needed for scraping
	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `stylegraph_decodes_total{class="SimpleRenderer",outcome="ok"} 1`)
	assert.Contains(t, body, `stylegraph_decodes_total{class="none",outcome="unknown"} 1`)
	assert.Contains(t, body, `stylegraph_http_requests_total{endpoint="/api/v1/decode",method="POST",status_code="200"} 1`)
	assert.Contains(t, body, `stylegraph_auth_requests_total{status="success"} 2`)

	families, err := env.gather.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestRouter_Swagger(t *testing.T) {
	env := setupTestServer(t)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		env.handler.ServeHTTP(w, req)
		return w
	}

	t.Run("ui", func(t *testing.T) {
		w := get("/swagger/index.html")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "swagger-ui")
	})

	t.Run("json", func(t *testing.T) {
		w := get("/swagger/swagger.json")
		require.Equal(t, http.StatusOK, w.Code)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "2.0", doc["swagger"])
		assert.Equal(t, "/api/v1", doc["basePath"])
		paths := doc["paths"].(map[string]interface{})
		for _, p := range []string{"/health", "/decode", "/classes", "/classes/{id}", "/library", "/library/{id}", "/library/decode"} {
			assert.Contains(t, paths, p)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		w := get("/swagger/swagger.yaml")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

		var doc map[string]interface{}
		require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "2.0", doc["swagger"])
		assert.NotEqual(t, byte('{'), w.Body.Bytes()[0])
	})

	t.Run("missing", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/swagger/nothing").Code)
	})
}

func TestStartServer_InvalidConfig(t *testing.T) {
	reg := objects.MustRegistry()

	tests := []struct {
		name   string
		config ServerConfig
	}{
		{"missing API key", ServerConfig{Port: 8080}},
		{"port zero", ServerConfig{Port: 0, APIKey: "k"}},
		{"port too large", ServerConfig{Port: 70000, APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := StartServer(context.Background(), reg, nil, tt.config, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

func TestStartServer_GracefulShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- StartServer(ctx, objects.MustRegistry(), nil, ServerConfig{
			Port:   port,
			Bind:   "127.0.0.1",
			APIKey: testAPIKey,
		}, zerolog.Nop())
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/health", port)
	var resp *http.Response
	require.Eventually(t, func() bool {
		req, _ := http.NewRequest("GET", url, nil)
		req.Header.Set("X-API-Key", testAPIKey)
		resp, err = http.DefaultClient.Do(req)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}
