package factory

import (
	"time"

	"github.com/mcoot/coup-go/internal/dependencies/mocks"
	"github.com/mcoot/coup-go/internal/events"
	"github.com/mcoot/coup-go/internal/services/auth"
	"github.com/mcoot/coup-go/internal/sse"
	"github.com/mcoot/coup-go/internal/storage/memory"
	"github.com/mcoot/coup-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Shuffles leave the deck and seating in order unless Intn results are queued.
func NewTestApp() *TestApp {
	logger := testutil.NopLogger()
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewStableRandom()
	hubs := sse.NewHubManager(logger)

	app := newWithDependencies(store, mockClock, mockRandom, hubs, events.NewHubPublisher(hubs, logger), auth.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
