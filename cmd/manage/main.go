package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"webapp-template/internal/bootstrap"
	"webapp-template/internal/config"
	"webapp-template/internal/logger"
	"webapp-template/internal/storage"
	"webapp-template/pkg/hash"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "manage",
		Short:        "Administrative tasks for the notes service",
		SilenceUsage: true,
	}

	root.AddCommand(newMigrateCmd(), newHashPasswordCmd(), newCheckCmd())
	return root
}

func loadEnv() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	return cfg, log, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}

			_, closeNotes, err := bootstrap.OpenNoteRepository(cmd.Context(), cfg, log, true)
			if err != nil {
				return err
			}
			defer closeNotes()

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash suitable for ADMIN_PASSWORD_HASH",
		Long:  "Print a bcrypt hash suitable for ADMIN_PASSWORD_HASH. The password is read from stdin when not given as an argument.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			hashed, err := hash.Hash(password)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
}

func passwordArg(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("no password given")
	}
	return password, nil
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify configuration, database and media storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "debug:    %t\n", cfg.Security.Debug)
			fmt.Fprintf(out, "hosts:    %s\n", strings.Join(cfg.Security.AllowedHosts, ","))
			fmt.Fprintf(out, "admin:    %t\n", cfg.AdminEnabled())

			notes, closeNotes, err := bootstrap.OpenNoteRepository(ctx, cfg, log, false)
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
			defer closeNotes()
			if err := notes.Ping(ctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
			fmt.Fprintln(out, "database: connected")

			store, err := storage.New(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("storage: %w", err)
			}
			if err := store.Health(ctx); err != nil {
				return fmt.Errorf("storage: %w", err)
			}
			fmt.Fprintf(out, "storage:  %s\n", store.Mode())
			return nil
		},
	}
}
