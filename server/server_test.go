package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/curator/server/mocks"
)

// testServer creates a server with the given stores, unset dependencies are empty mocks
func testServer(t *testing.T, p Params) *Server {
	t.Helper()
	if p.Config == nil {
		p.Config = &mocks.ConfigProviderMock{GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		}}
	}
	if p.Users == nil {
		p.Users = &mocks.UserStoreMock{}
	}
	if p.Preferences == nil {
		p.Preferences = &mocks.PreferenceStoreMock{}
	}
	if p.Content == nil {
		p.Content = &mocks.ContentStoreMock{}
	}
	if p.Summaries == nil {
		p.Summaries = &mocks.SummaryStoreMock{}
	}
	if p.Generator == nil {
		p.Generator = &mocks.GeneratorMock{}
	}
	if p.Version == "" {
		p.Version = "test"
	}
	return New(p)
}

func TestServer_New(t *testing.T) {
	srv := testServer(t, Params{Version: "1.0.0"})
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.Equal(t, 30, srv.statsDays)
	assert.NotNil(t, srv.pageTmpl.Lookup("summary.html"))
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{GetServerConfigFunc: func() (string, time.Duration) {
		return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
	}}
	srv := testServer(t, Params{Config: cfg, Version: "1.0.0", Debug: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/status", port)
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url) //nolint:gosec // test url
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "curator", resp.Header.Get("App-Name"))

	var status map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.0.0", status["version"])

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_Ping(t *testing.T) {
	srv := testServer(t, Params{})
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
}

func TestRenderJSON(t *testing.T) {
	w := httptest.NewRecorder()
	renderJSON(w, nil, http.StatusTeapot, map[string]int{"a": 1})
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, w.Body.String())
}

func TestRenderError(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		w := httptest.NewRecorder()
		renderError(w, nil, errors.New("bad thing"), http.StatusBadRequest)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"bad thing"}`, w.Body.String())
	})
	t.Run("nil error", func(t *testing.T) {
		w := httptest.NewRecorder()
		renderError(w, nil, nil, http.StatusInternalServerError)
		assert.JSONEq(t, `{"error":"unknown error"}`, w.Body.String())
	})
}
