package internal

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strikeup/auth"
	"strikeup/storage"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var testParams = auth.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func newTestApp(t *testing.T) *App {
	t.Helper()
	config := Config{InMemory: true, SeedSampleData: true, RecentActivityLimit: 5, MaxContentLength: 500}
	app, err := NewApp(config, logs.GetLoggerFromLevel(slog.LevelError), testParams)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestInspectHandler_RendersSnapshot(t *testing.T) {
	req := require.New(t)
	app := newTestApp(t)
	_, err := app.Auth.Login("alex@example.com", "password123")
	req.NoError(err)

	stats := func() map[string]any { return map[string]any{"Status": "Test"} }
	handler := NewInspectHandler(app.db, logs.GetLoggerFromLevel(slog.LevelError), nil, stats)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/inspect", nil))

	req.Equal(http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	req.Contains(body, storage.UsersKey)
	req.Contains(body, "Sarah M.")
	req.Contains(body, "Bowlero Downtown")
	req.Contains(body, "2024-01-15 19:00")
	req.Contains(body, "Logged in: <b>Alex K.</b>")
	req.NotContains(body, "password123")
}

func TestDefaultMapper(t *testing.T) {
	tests := []struct {
		description string
		key         string
		val         string
		want        InspectRow
	}{
		{"Collection", storage.SessionsKey, `[{"id":1},{"id":2}]`, InspectRow{Key: storage.SessionsKey, Type: "COLLECTION", Count: "2", Detail: "Size: 19 bytes"}},
		{"Corrupt collection", storage.UsersKey, `{`, InspectRow{Key: storage.UsersKey, Type: "CORRUPT", Count: "-", Detail: "Size: 1 bytes"}},
		{"Session marker", storage.CurrentUserKey, `{"id":3,"name":"Alex K."}`, InspectRow{Key: storage.CurrentUserKey, Type: "SESSION", Count: "-", Detail: "#3 Alex K."}},
		{"Initialized flag", storage.InitializedKey, `true`, InspectRow{Key: storage.InitializedKey, Type: "FLAG", Count: "-", Detail: "true"}},
		{"Unknown key", "strikeup_other", `xyz`, InspectRow{Key: "strikeup_other", Type: "RAW", Count: "-", Detail: "Size: 3 bytes"}},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.want, DefaultMapper(tt.key, []byte(tt.val)))
		})
	}
}
