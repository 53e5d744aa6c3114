package services

import (
	"log/slog"
	"strikeup/auth"
	"strikeup/clock"
	"strikeup/repositories"
	"strikeup/storage"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var testParams = auth.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type testEnv struct {
	store    *repositories.Store
	clock    *clock.MockClock
	auth     IAuthService
	sessions ISessionService
	matches  IMatchService
	messages IMessageService
	profiles IProfileService
}

// newTestEnv opens an in-memory store seeded with the sample community:
// 1 Sarah (New York), 2 Mike (Brooklyn), 3 Alex (Queens), all with password123.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	hasher := auth.NewHasher(testParams)
	seed, err := repositories.SampleSnapshot(hasher.Hash)
	req.NoError(err)
	store, err := repositories.Open(storage.NewBadgerAdapter(db, log), log, &seed)
	req.NoError(err)

	mockClock := clock.NewMockClock(time.Date(2024, time.January, 10, 18, 0, 0, 0, time.UTC))
	return testEnv{
		store:    store,
		clock:    mockClock,
		auth:     NewAuthService(log, store, hasher),
		sessions: NewSessionService(log, store),
		matches:  NewMatchService(log, store, mockClock),
		messages: NewMessageService(log, store, mockClock, nil, 500, 5),
		profiles: NewProfileService(log, store),
	}
}
