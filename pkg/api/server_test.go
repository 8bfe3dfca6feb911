package api

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/binsave/pkg/codec"
	"github.com/ssargent/binsave/pkg/store"
)

var testSchema = codec.MustCompile(
	codec.F("version", codec.Uint8, 1),
	codec.F("flags", codec.BoolPacked8, 1),
	codec.F("enabled", codec.Bool, 1),
	codec.F("counter", codec.Int32, 1),
	codec.F("name", codec.CharASCII, 4),
	codec.F("raw", codec.Byte, 2),
)

// setupTestSession opens a session backed by a temporary file
func setupTestSession(t *testing.T) *store.Session {
	t.Helper()
	target := store.NewFileTarget(filepath.Join(t.TempDir(), "record.bin"))
	session, err := store.Open(target, testSchema)
	require.NoError(t, err)
	return session
}

// setupTestServer creates a test server with its own metrics registry
func setupTestServer(t *testing.T) (*Server, *store.Session) {
	t.Helper()
	session := setupTestSession(t)
	server := NewServer(session, ServerConfig{Port: 0, APIKey: "test-key"}, NewMetrics())
	return server, session
}

func TestNewServer(t *testing.T) {
	server, session := setupTestServer(t)

	assert.Equal(t, session, server.session)
	assert.Equal(t, "test-key", server.config.APIKey)
	assert.NotNil(t, server.metrics.Registry())
}

func TestRoutes_WithoutMetrics(t *testing.T) {
	session := setupTestSession(t)
	server := NewServer(session, ServerConfig{APIKey: "k"}, nil)

	handler := server.Routes()
	require.NotNil(t, handler)
	assert.NotNil(t, server.metrics)
}

func TestNewMetrics_Independent(t *testing.T) {
	// registering twice in one process must not panic
	m1 := NewMetrics()
	m2 := NewMetrics()
	assert.NotSame(t, m1.Registry(), m2.Registry())
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestStartServer_ShutsDownOnCancel(t *testing.T) {
	session := setupTestSession(t)
	port := freePort(t)
	config := ServerConfig{Port: port, Bind: "127.0.0.1", APIKey: "test-key"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServerFactory().CreateServerStarter().StartServer(ctx, session, config)
	}()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/api/v1/health"
	require.Eventually(t, func() bool {
		req, _ := http.NewRequest("GET", url, nil)
		req.Header.Set("X-API-Key", "test-key")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
