// Package testutil provides utilities for testing, including database setup and fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/indexes"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// TestDBURI is the default MongoDB connection string for tests.
	TestDBURI = "mongodb://localhost:27017"
	// TestDBName is the database name prefix used for tests.
	TestDBName = "strataministry_test"

	// EnvTestMongoURI overrides TestDBURI.
	EnvTestMongoURI = "STRATAMINISTRY_TEST_MONGO_URI"
	// EnvTestContainer set to "1" starts a disposable mongo container
	// instead of using a local server. Requires a Docker daemon.
	EnvTestContainer = "STRATAMINISTRY_TEST_CONTAINER"

	testMongoImage = "mongo:7"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// testURI resolves the connection string for the shared test client.
func testURI(ctx context.Context) (string, error) {
	if os.Getenv(EnvTestContainer) == "1" {
		return startMongoContainer(ctx)
	}
	if uri := os.Getenv(EnvTestMongoURI); uri != "" {
		return uri, nil
	}
	return TestDBURI, nil
}

// startMongoContainer runs a throwaway mongo container and returns its URI.
// The container lives for the rest of the test binary; the testcontainers
// reaper removes it when the process exits.
func startMongoContainer(ctx context.Context) (string, error) {
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        testMongoImage,
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start mongo container: %w", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("mongo container host: %w", err)
	}
	port, err := c.MappedPort(ctx, "27017/tcp")
	if err != nil {
		return "", fmt.Errorf("mongo container port: %w", err)
	}
	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), nil
}

// getClient returns a shared MongoDB client for all tests.
// The client is created once and reused across tests.
func getClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		uri, err := testURI(ctx)
		if err != nil {
			clientErr = err
			return
		}

		// Configure connection pool for parallel test execution
		clientOpts := options.Client().
			ApplyURI(uri).
			SetMaxPoolSize(200).                  // Increase pool for parallel tests
			SetMinPoolSize(10).                   // Keep some connections warm
			SetMaxConnIdleTime(30 * time.Second). // Release idle connections faster
			SetConnectTimeout(10 * time.Second).  // Connection timeout
			SetServerSelectionTimeout(10 * time.Second)

		client, clientErr = mongo.Connect(ctx, clientOpts)
		if clientErr != nil {
			return
		}

		// Verify connection
		clientErr = client.Ping(ctx, nil)
	})
	return client, clientErr
}

// SetupTestDB returns a test database instance with indexes created.
// Each test gets a unique database based on the test name to avoid conflicts
// when running tests in parallel across packages.
// The database is dropped when the test completes via t.Cleanup.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	client, err := getClient()
	if err != nil {
		t.Fatalf("failed to connect to test MongoDB: %v", err)
	}

	// Create unique database name from test name to avoid conflicts
	dbName := fmt.Sprintf("%s_%s", TestDBName, sanitizeTestName(t.Name()))
	db := client.Database(dbName)

	// Drop database to ensure clean state
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Drop(ctx); err != nil {
		t.Fatalf("failed to drop test database: %v", err)
	}

	// Create indexes to match production behavior
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	// Clean up after test
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop test database on cleanup: %v", err)
		}
	})

	return db
}

// sanitizeTestName converts a test name to a valid database name suffix.
// MongoDB limits database names to 63 characters, so we truncate if needed.
func sanitizeTestName(name string) string {
	// Replace characters that aren't valid in database names
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	// MongoDB has a 63 character limit for database names.
	// The prefix "strataministry_test_" is 20 characters, so limit suffix to 43.
	const maxLen = 43
	if len(result) > maxLen {
		result = result[:maxLen]
	}
	return string(result)
}

// TestContext returns a context with a reasonable timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
