// Command fpctl administers users through the configured storage backend.
package main

import (
	"context"
	"os"

	userapp "flexible-project/application/user"
	"flexible-project/cmd"
	"flexible-project/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, openApp))
}

// openApp builds the application from the config file (and FP_ env vars).
func openApp(ctx context.Context, configPath string) (*userapp.ApplicationService, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	// stdout carries command output
	if cfg.Log.Output == "" || cfg.Log.Output == "stdout" {
		cfg.Log.Output = "stderr"
	}
	app, err := cmd.NewBuilder(cfg).Build(ctx)
	if err != nil {
		return nil, nil, err
	}
	return app.Users, func() { _ = app.Close(context.WithoutCancel(ctx)) }, nil
}
