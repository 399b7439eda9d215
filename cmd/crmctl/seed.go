package main

import (
	"context"

	"crm-service/internal/repository/postgres"
	"crm-service/internal/seed"

	"github.com/urfave/cli/v3"
)

// Seed loads the demo data set, optionally wiping existing records first.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	pool, err := r.db(ctx)
	if err != nil {
		return err
	}
	logger, err := r.log()
	if err != nil {
		return err
	}

	seeder := seed.NewSeeder(seed.Stores{
		Clients:  postgres.NewClientRepository(pool),
		Leads:    postgres.NewLeadRepository(pool),
		Services: postgres.NewCatalogRepository(pool),
		Jobs:     postgres.NewJobRepository(pool),
		Bookings: postgres.NewBookingRepository(pool),
		Messages: postgres.NewMessageRepository(pool),
	}, logger)

	if cmd.Bool("reset") {
		if err := seeder.Reset(ctx); err != nil {
			return err
		}
	}

	sum, err := seeder.Run(ctx)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Database seeded")
	r.writePlainln("  Services: %d", sum.Services)
	r.writePlainln("  Clients:  %d", sum.Clients)
	r.writePlainln("  Leads:    %d", sum.Leads)
	r.writePlainln("  Jobs:     %d", sum.Jobs)
	r.writePlainln("  Bookings: %d", sum.Bookings)
	r.writePlainln("  Messages: %d", sum.Messages)
	return nil
}

func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load demo services, clients, leads, jobs, bookings and messages",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Delete existing clients, leads and services first",
			},
		},
		Action: r.Seed,
	}
}
