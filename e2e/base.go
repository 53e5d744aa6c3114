package e2e

import (
	"fmt"
	"strikeup/auth"
	"strikeup/internal"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

// Cheap argon2 parameters, the scenarios hash a handful of passwords.
var e2eParams = auth.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type BaseSuite struct {
	suite.Suite
	Config Config
	dir    string
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	s.dir = s.Config.BadgerDir
	if s.dir == "" {
		s.dir = s.T().TempDir()
	}
}

// WithApp opens the application on the suite database, hands it to fn and
// closes it, so successive calls behave like successive runs of the CLI.
func (s *BaseSuite) WithApp(name string, fn func(app *internal.App)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	config := internal.Config{
		BadgerFilepath:      s.dir,
		LogLevel:            s.Config.LogLevel,
		SeedSampleData:      true,
		RecentActivityLimit: 5,
		MaxContentLength:    1000,
	}
	app, err := internal.NewApp(config, logs.GetLoggerFromString(config.LogLevel), e2eParams)
	s.Require().NoError(err, "Failed to open the application on "+s.dir)
	defer func() {
		s.Require().NoError(app.Close())
	}()

	fn(app)
}
