package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/core/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/SscSPs/easyledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/easyledger/pkg/database"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var (
	newUserEmail    string
	newUserName     string
	newUserPassword string
	newUserAdmin    bool
)

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a local account that signs in with email and password",
	Example: `  easyledger users create --email ola@example.no --name "Ola Nordmann" --password hemmelig123`,
	Args: cobra.NoArgs,
	RunE: runUsersCreate,
}

func init() {
	usersCreateCmd.Flags().StringVar(&newUserEmail, "email", "", "Login email (required)")
	usersCreateCmd.Flags().StringVar(&newUserName, "name", "", "Display name")
	usersCreateCmd.Flags().StringVar(&newUserPassword, "password", "", "Initial password (required)")
	usersCreateCmd.Flags().BoolVar(&newUserAdmin, "admin", false, "Grant the admin role")
	_ = usersCreateCmd.MarkFlagRequired("email")
	_ = usersCreateCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(usersCreateCmd)
}

func runUsersCreate(cmd *cobra.Command, _ []string) error {
	if newUserEmail == "" || newUserPassword == "" {
		return errors.New("--email and --password are required")
	}
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	pool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool)

	role := domain.RoleUser
	if newUserAdmin {
		role = domain.RoleAdmin
	}
	repos := pgsql.NewRepositoryProvider(pool)
	user, err := services.NewUserService(repos.UserRepo).CreateUser(ctx, dto.CreateUserRequest{
		Email:    newUserEmail,
		Name:     newUserName,
		Password: newUserPassword,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("email", user.Email))
	fmt.Fprintln(cmd.OutOrStdout(), user.UserID)
	return nil
}
