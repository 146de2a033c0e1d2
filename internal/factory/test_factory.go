package factory

import (
	"time"

	"github.com/statline-game/statline/internal/dependencies/mocks"
	"github.com/statline-game/statline/internal/services/session"
	"github.com/statline-game/statline/internal/storage/memory"
	"github.com/statline-game/statline/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Storage for direct seeding
	Storage *memory.Storage

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app, err := newWithDependencies(store, store, mockClock, mockRandom, session.DefaultConfig(), testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		Storage:    store,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
