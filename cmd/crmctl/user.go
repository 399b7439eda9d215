package main

import (
	"context"
	"fmt"

	"crm-service/internal/domain/auth"
	"crm-service/internal/repository/postgres"
	authUsecase "crm-service/internal/service/auth"

	"github.com/urfave/cli/v3"
)

// CreateUser provisions an account with any role. This is the only way to
// get a manager or admin.
func (r *Runner) CreateUser(ctx context.Context, cmd *cli.Command) error {
	pool, err := r.db(ctx)
	if err != nil {
		return err
	}
	logger, err := r.log()
	if err != nil {
		return err
	}

	// Account creation touches no sessions, so those collaborators stay unset.
	svc := authUsecase.NewAuthService(postgres.NewUserRepository(pool), nil, nil, nil, nil, logger)

	user, err := svc.CreateUser(ctx, &auth.CreateUserRequest{
		Username:  cmd.String("username"),
		Email:     cmd.String("email"),
		Password:  cmd.String("password"),
		FirstName: cmd.String("first-name"),
		LastName:  cmd.String("last-name"),
		Role:      cmd.String("role"),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.writePlainln("✓ Created %s %s (%s)", user.Role, user.Username, user.ID)
	return nil
}

func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage staff accounts",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create an account with the given role",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true, Sources: cli.EnvVars("CRM_USER_PASSWORD")},
					&cli.StringFlag{Name: "first-name", Required: true},
					&cli.StringFlag{Name: "last-name", Required: true},
					&cli.StringFlag{Name: "role", Value: auth.RoleStaff, Usage: "staff, manager or admin"},
				},
				Action: r.CreateUser,
			},
		},
	}
}
