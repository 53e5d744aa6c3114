package main

import (
	"bytes"
	"log/slog"
	"strikeup/auth"
	"strikeup/errors"
	"strikeup/internal"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()
	config := internal.Config{
		InMemory:            true,
		LogLevel:            "ERROR",
		SeedSampleData:      true,
		RecentActivityLimit: 5,
		MaxContentLength:    500,
	}
	params := auth.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	app, err := internal.NewApp(config, logs.GetLoggerFromLevel(slog.LevelError), params)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	out := &bytes.Buffer{}
	return newCLI(app, out), out
}

func TestCLI_RequiresLogin(t *testing.T) {
	req := require.New(t)
	c, out := newTestCLI(t)

	err := c.execute([]string{"whoami"})
	req.ErrorIs(err, errors.ErrAuth)
	req.Contains(out.String(), "not logged in")
	req.Equal(exitRuntime, c.exitCode(err))
}

func TestCLI_UnknownCommand(t *testing.T) {
	req := require.New(t)
	c, out := newTestCLI(t)

	err := c.execute([]string{"bowl"})
	req.ErrorIs(err, errUsage)
	req.Equal(exitUsage, c.exitCode(err))
	req.Contains(out.String(), "Usage: strikeup")
}

func TestCLI_Scenario(t *testing.T) {
	req := require.New(t)
	c, out := newTestCLI(t)

	req.NoError(c.execute([]string{"login", "--email", "sarah@example.com", "--password", "password123"}))
	req.Contains(out.String(), "Logged in as Sarah M.")

	out.Reset()
	req.NoError(c.execute([]string{"bowlers", "--location", "Queens"}))
	req.Contains(out.String(), "Alex K.")
	req.NotContains(out.String(), "Mike T.")

	out.Reset()
	req.NoError(c.execute([]string{"connect", "3"}))
	req.Contains(out.String(), "connected with Alex K.")

	out.Reset()
	err := c.execute([]string{"connect", "3"})
	req.ErrorIs(err, errors.ErrAlreadyConnected)

	out.Reset()
	req.NoError(c.execute([]string{"send", "3", "Practice", "tonight?"}))
	req.NoError(c.execute([]string{"thread", "3"}))
	req.Contains(out.String(), "Practice tonight?")

	out.Reset()
	req.NoError(c.execute([]string{"create-session", "--location", "AMF Lanes", "--at", "2024-01-16T14:00", "--skill", "intermediate", "--max", "4"}))
	req.Contains(out.String(), "Session #3 created")

	out.Reset()
	err = c.execute([]string{"join", "3"})
	req.ErrorIs(err, errors.ErrAlreadyJoined)

	out.Reset()
	err = c.execute([]string{"join", "abc"})
	req.ErrorIs(err, errUsage)

	req.NoError(c.execute([]string{"logout"}))
	req.Error(c.execute([]string{"inbox"}))
}
