package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Shirel25/NutriSnap-HAI/internal/profile"
	"github.com/Shirel25/NutriSnap-HAI/server"
	"github.com/Shirel25/NutriSnap-HAI/store"
	"github.com/Shirel25/NutriSnap-HAI/store/db/csvfile"
	"github.com/Shirel25/NutriSnap-HAI/store/db/postgres"
	"github.com/Shirel25/NutriSnap-HAI/store/db/sqlite"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "nutrisnap",
	Short: "NutriSnap-HAI Wizard-of-Oz study server",
	Long: `nutrisnap runs the NutriSnap-HAI human-AI interaction study: participants
photograph meals, a hidden wizard supplies the simulated AI assessment, and
every accept/override/reject decision lands in the interaction log.`,
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		p := &profile.Profile{
			Mode:      viper.GetString("mode"),
			Addr:      viper.GetString("addr"),
			Port:      viper.GetInt("port"),
			Data:      viper.GetString("data"),
			LogDriver: viper.GetString("log-driver"),
			DSN:       viper.GetString("dsn"),
			Version:   version,
		}
		p.FromEnv()
		if err := p.Validate(); err != nil {
			return err
		}
		return run(p)
	},
}

func init() {
	rootCmd.Flags().String("mode", "", `mode of the server: "prod", "dev" or "demo"`)
	rootCmd.Flags().String("addr", "", "binding address")
	rootCmd.Flags().Int("port", 8230, "binding port")
	rootCmd.Flags().String("data", "", "data directory")
	rootCmd.Flags().String("log-driver", "", `interaction log backend: "csv", "sqlite" or "postgres"`)
	rootCmd.Flags().String("dsn", "", "interaction log location (file path or connection string)")

	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("nutrisnap")
	viper.AutomaticEnv()
}

func run(p *profile.Profile) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver, err := newDriver(p)
	if err != nil {
		return fmt.Errorf("create log driver: %w", err)
	}

	st := store.New(driver, p)
	srv, err := server.NewServer(ctx, p, st)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		srv.Shutdown(context.Background())
		return nil
	})

	slog.Info("nutrisnap study server",
		slog.String("version", version),
		slog.String("mode", p.Mode))

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func newDriver(p *profile.Profile) (store.Driver, error) {
	switch p.LogDriver {
	case "csv":
		return csvfile.NewDB(p.DSN), nil
	case "sqlite":
		return sqlite.NewDB(p)
	case "postgres":
		return postgres.NewDB(p)
	default:
		return nil, fmt.Errorf("unknown log driver %q", p.LogDriver)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
