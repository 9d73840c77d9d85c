package integration_test

import (
	"os"
	"sync"
	"testing"

	"adops_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer lazily starts the shared test server. Tests calling it
// are skipped when DATABASE_URL does not point at a test database.
func GetTestServer(t *testing.T) *helpers.TestServer {
	serverOnce.Do(func() {
		globalTestServer = helpers.NewTestServer(t)
	})
	if globalTestServer == nil {
		t.Skip("DATABASE_URL is not set, skipping integration tests")
	}
	return globalTestServer
}

func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		globalTestServer.Close()
	}

	os.Exit(code)
}
