//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	journy "github.com/journy-io/sdk-go"
)

var (
	apiKey  string
	baseURL string
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	apiKey = os.Getenv("JOURNY_API_KEY")
	baseURL = os.Getenv("JOURNY_API_URL")

	if apiKey == "" {
		os.Stderr.WriteString("Skipping integration tests: JOURNY_API_KEY not set\n")
		os.Exit(0)
	}
	if baseURL == "" {
		baseURL = "https://api.journy.io"
	}

	os.Stderr.WriteString("Running integration tests...\n")
	os.Stderr.WriteString("API URL: " + baseURL + "\n")

	os.Exit(m.Run())
}

func newClient(t *testing.T, opts ...journy.Option) *journy.Client {
	t.Helper()

	opts = append([]journy.Option{
		journy.WithBaseURL(baseURL),
		journy.WithTimeout(30 * time.Second),
	}, opts...)

	client, err := journy.New(apiKey, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	t.Cleanup(func() {
		client.Close(context.Background())
	})

	return client
}

func testUser(t *testing.T) journy.UserIdentified {
	return journy.UserByID("go-sdk-integration-" + t.Name())
}

func TestIntegration_GetAPIKeyDetails(t *testing.T) {
	client := newClient(t)

	result, err := client.GetAPIKeyDetails(context.Background())
	if err != nil {
		t.Fatalf("GetAPIKeyDetails() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("GetAPIKeyDetails() failed: %s", result.Error)
	}
	if result.RequestID == "" {
		t.Error("RequestID is empty")
	}
	if _, ok := result.Remaining(); !ok {
		t.Error("CallsRemaining is not reported")
	}
	t.Logf("Permissions: %v", result.Data.Permissions)
}

func TestIntegration_InvalidKey(t *testing.T) {
	client, err := journy.New("definitely-not-a-key", journy.WithBaseURL(baseURL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, _ := client.GetAPIKeyDetails(context.Background())
	if result.Success {
		t.Fatal("GetAPIKeyDetails() succeeded with an invalid key")
	}
	if !errors.Is(result.Err(), journy.UnauthorizedError) {
		t.Errorf("Error = %s, want %s", result.Error, journy.UnauthorizedError)
	}
}

func TestIntegration_UserLifecycle(t *testing.T) {
	client := newClient(t, journy.WithQueue(1))
	ctx := context.Background()
	user := testUser(t)

	upsert, err := client.UpsertUser(ctx, journy.UpsertUserArgs{
		User:       user,
		Properties: journy.Properties{"source": "integration", "checked_at": time.Now()},
	})
	if err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if !upsert.Success {
		t.Fatalf("UpsertUser() failed: %s", upsert.Error)
	}

	event, err := client.AddEvent(ctx, journy.EventForUser("integration_test", user).HappenedAt(time.Now()))
	if err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if !event.Success {
		t.Errorf("AddEvent() failed: %s", event.Error)
	}

	deleted, err := client.DeleteUser(ctx, user)
	if err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if !deleted.Success {
		t.Errorf("DeleteUser() failed: %s", deleted.Error)
	}
}

func TestIntegration_Tracker(t *testing.T) {
	client := newClient(t)
	tracker := journy.NewTracker(client)

	for _, name := range []string{"first", "second", "third"} {
		if err := tracker.AddEvent(journy.EventForUser(name, testUser(t))); err != nil {
			t.Fatalf("AddEvent() error = %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := tracker.Close(ctx); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
