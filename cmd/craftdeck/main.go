package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/craftdeck/craftdeck/internal/apperr"
	"github.com/craftdeck/craftdeck/internal/profile"
	"github.com/craftdeck/craftdeck/server"
	"github.com/craftdeck/craftdeck/store"
	"github.com/craftdeck/craftdeck/store/db"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "craftdeck",
	Short: "Craftdeck is a resilient access layer for hosted project data",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:               viper.GetString("mode"),
			Addr:               viper.GetString("addr"),
			Port:               viper.GetInt("port"),
			Data:               viper.GetString("data"),
			Driver:             viper.GetString("driver"),
			DSN:                viper.GetString("dsn"),
			Secret:             viper.GetString("secret"),
			CacheTTL:           viper.GetDuration("cache-ttl"),
			CacheMaxItems:      viper.GetInt("cache-max-items"),
			RateLimitPerSecond: viper.GetInt("rate-limit-per-second"),
			RateLimitBurst:     viper.GetInt("rate-limit-burst"),
			Version:            version,
		}
		if err := instanceProfile.Validate(); err != nil {
			return err
		}
		setupLogger(instanceProfile)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		driver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			slog.Error("failed to create db driver", slog.Any("error", err))
			return err
		}

		history := apperr.NewHistory(apperr.DefaultHistoryCap)
		storeInstance := store.New(driver, instanceProfile, history)

		s, err := server.NewServer(ctx, instanceProfile, storeInstance, history)
		if err != nil {
			slog.Error("failed to create server", slog.Any("error", err))
			return err
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			slog.Info("received signal, shutting down", slog.String("signal", sig.String()))
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			s.Shutdown(shutdownCtx)
			cancel()
		}()

		if err := s.Start(ctx); err != nil {
			slog.Error("failed to start server", slog.Any("error", err))
			return err
		}
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of the server, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8080, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")
	rootCmd.PersistentFlags().String("secret", "", "secret used to verify bearer tokens")
	rootCmd.PersistentFlags().Duration("cache-ttl", 10*time.Minute, "entity cache entry lifetime")
	rootCmd.PersistentFlags().Int("cache-max-items", 1000, "entity cache capacity per kind")
	rootCmd.PersistentFlags().Int("rate-limit-per-second", 10, "per-caller request rate")
	rootCmd.PersistentFlags().Int("rate-limit-burst", 20, "per-caller request burst")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("craftdeck")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupLogger(p *profile.Profile) {
	var handler slog.Handler
	if p.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
