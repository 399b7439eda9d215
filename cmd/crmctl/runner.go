package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"crm-service/internal/config"
	"crm-service/internal/db"
	"crm-service/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Runner holds what the commands share and opens connections lazily, so
// --help works without a database.
type Runner struct {
	cfg    *config.AppConfig
	pool   *pgxpool.Pool
	logger *zap.Logger
	output io.Writer
}

type RunnerOpts struct {
	Output io.Writer
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{output: opts.Output}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		migrateCommand, seedCommand, userCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

func (r *Runner) config() (*config.AppConfig, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	r.cfg = &cfg
	return r.cfg, nil
}

func (r *Runner) log() (*zap.Logger, error) {
	if r.logger != nil {
		return r.logger, nil
	}
	cfg, err := r.config()
	if err != nil {
		return nil, err
	}
	l, err := logger.New("crmctl", cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	r.logger = l
	return l, nil
}

func (r *Runner) db(ctx context.Context) (*pgxpool.Pool, error) {
	if r.pool != nil {
		return r.pool, nil
	}
	cfg, err := r.config()
	if err != nil {
		return nil, err
	}
	pool, err := db.ConnectDB(ctx, db.PostgresConfig{URL: cfg.DatabaseURL, MaxConns: 2})
	if err != nil {
		return nil, err
	}
	r.pool = pool
	return pool, nil
}

// Close releases whatever the commands opened.
func (r *Runner) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	if r.logger != nil {
		_ = r.logger.Sync()
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) {
	fmt.Fprintf(r.output, format+"\n", args...)
}

func (r *Runner) sqlDB() (*sql.DB, error) {
	cfg, err := r.config()
	if err != nil {
		return nil, err
	}
	return db.OpenSQL(cfg.DatabaseURL)
}
