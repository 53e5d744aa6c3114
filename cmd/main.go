package main

import (
	"fmt"
	"os"
	"strikeup/auth"
	"strikeup/internal"

	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the shell.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
	exitUsage   = 64
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "strikeup: %v\n", err)
	}
	os.Exit(code)
}

// run keeps every defer (database close included) inside a function that
// returns, main only translates the result into an exit code.
func run(args []string) (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	if len(args) == 0 {
		printUsage(os.Stdout)
		return exitUsage, nil
	}

	// 2. Store & services
	app, err := internal.NewApp(config, log, auth.DefaultParams)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		_ = app.Close()
	}()

	// 3. Dispatch
	cli := newCLI(app, os.Stdout)
	if err = cli.execute(args); err != nil {
		return cli.exitCode(err), nil
	}
	return exitOK, nil
}
