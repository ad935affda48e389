package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/DhavalSuthar-24/livescore/config"
	_ "github.com/DhavalSuthar-24/livescore/docs"
	"github.com/DhavalSuthar-24/livescore/internal/match"
	"github.com/DhavalSuthar-24/livescore/internal/realtime"
	"github.com/DhavalSuthar-24/livescore/internal/scoring"
	"github.com/DhavalSuthar-24/livescore/pkg/token"
	"github.com/DhavalSuthar-24/livescore/routes"
)

// @title Livescore REST API
// @version 1.0
// @description Ball-by-ball cricket scoring with live updates for every participant.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:           "livescore",
		Short:         "Live cricket scoring server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd(), tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the live update stream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Initialize(); err != nil {
				return err
			}
			cfg := config.GetConfig()
			logger := slog.Default()

			repo, err := newRepository(cfg, migrate)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			hub := realtime.NewHub(cfg.Realtime.ClientBuffer, logger)
			go hub.Run(ctx)

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			svc := match.NewService(repo, scoring.NewEngine(), hub, match.NewMetrics(reg), logger)

			router, err := routes.SetupRoutes(routes.Dependencies{Config: cfg, Matches: svc, Hub: hub, Registry: reg})
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              ":" + cfg.App.Port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting server", "port", cfg.App.Port, "env", cfg.App.Env, "store", cfg.App.Store)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("run server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run AutoMigrate before serving (postgres store only)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.Initialize(); err != nil {
				return err
			}
			if config.DB == nil {
				return errors.New("migrate needs STORE=postgres")
			}
			if err := config.DB.AutoMigrate(&match.Match{}); err != nil {
				return fmt.Errorf("AutoMigrate failed: %w", err)
			}
			slog.Info("AutoMigrate successful")
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		userID uint
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an access token for local development",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if ttl == 0 {
				ttl = time.Duration(cfg.JWT.AccessTokenExpiryMinutes) * time.Minute
			}
			signed, err := token.GenerateJWT(userID, role, cfg.JWT.AccessTokenSecret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user", 0, "user id to put in the token")
	cmd.Flags().StringVar(&role, "role", "", "role claim, e.g. organizer or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_ACCESS_TOKEN_EXPIRY_MINUTES)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newRepository(cfg *config.Config, migrate bool) (match.MatchRepository, error) {
	if cfg.App.Store == config.StoreMemory {
		slog.Warn("using the in-memory store; matches are lost on restart")
		return match.NewMemoryRepository(), nil
	}
	if migrate {
		if err := config.DB.AutoMigrate(&match.Match{}); err != nil {
			return nil, fmt.Errorf("AutoMigrate failed: %w", err)
		}
	}
	return match.NewGormMatchRepository(config.DB), nil
}
