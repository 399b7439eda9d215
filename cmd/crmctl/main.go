package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()

	runner := NewRunner(RunnerOpts{Output: os.Stdout})

	app := &cli.Command{
		Name:     "crmctl",
		Usage:    "Operate the CRM database: migrations, demo data and user accounts",
		Version:  "1.0.0",
		Commands: runner.register(),
		After: func(ctx context.Context, cmd *cli.Command) error {
			return runner.Close()
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("crmctl: %v", err)
	}
}
