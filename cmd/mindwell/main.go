package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yungbote/mindwell-backend/internal/app"
	"github.com/yungbote/mindwell-backend/internal/data/repos"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/platform/shutdown"
	"github.com/yungbote/mindwell-backend/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "mindwell",
		Short:         "Mindwell API server and maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Real environment variables win over the dotenv file.
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading configuration")
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateAdminCmd())
	return root
}

func bootstrap() (app.Config, *logger.Logger, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return app.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			ctx, stop := shutdown.NotifyContext(cmd.Context())
			defer stop()

			a, err := app.New(ctx, log, cfg)
			if err != nil {
				log.Sync()
				return fmt.Errorf("initialize app: %w", err)
			}
			defer a.Close()
			return a.Run(ctx)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and seed the reflection questions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()
			cfg.SeedQuestionsOnStart = true
			database, err := app.OpenDatabase(cmd.Context(), log, cfg)
			if err != nil {
				return err
			}
			log.Info("Migrations applied", "driver", database.Driver())
			return database.Close()
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account, or promote an existing user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(password) == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()
			database, err := app.OpenDatabase(cmd.Context(), log, cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			db := database.DB()
			auth := services.NewAuthService(db, log, repos.NewUserRepo(db, log), repos.NewUserTokenRepo(db, log),
				cfg.JWTSecretKey, cfg.AccessTokenTTL)
			u, err := auth.CreateAdmin(cmd.Context(), email, password, name)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin ready: %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password (falls back to ADMIN_PASSWORD)")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
