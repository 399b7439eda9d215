package main

import (
	"context"
	"fmt"

	"crm-service/internal/db"

	"github.com/urfave/cli/v3"
)

// MigrateUp applies every pending migration.
func (r *Runner) MigrateUp(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.sqlDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	applied, err := db.RunMigrations(conn)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if len(applied) == 0 {
		r.writePlainln("Database is up to date")
		return nil
	}
	for _, v := range applied {
		r.writePlainln("✓ applied %04d", v)
	}
	return nil
}

// MigrateDown rolls back the latest applied migration.
func (r *Runner) MigrateDown(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.sqlDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	version, err := db.RollbackMigration(conn)
	if err != nil {
		return fmt.Errorf("failed to roll back: %w", err)
	}
	r.writePlainln("✓ rolled back %04d", version)
	return nil
}

// MigrateStatus lists every known migration and when it was applied.
func (r *Runner) MigrateStatus(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.sqlDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	statuses, err := db.Status(conn)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	for _, s := range statuses {
		applied := "pending"
		if s.AppliedAt != nil {
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		r.writePlainln("%04d  %-24s %s", s.Version, s.Name, applied)
	}
	return nil
}

func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{Name: "up", Usage: "Apply pending migrations", Action: r.MigrateUp},
			{Name: "down", Usage: "Roll back the latest migration", Action: r.MigrateDown},
			{Name: "status", Usage: "Show applied and pending migrations", Action: r.MigrateStatus},
		},
	}
}
