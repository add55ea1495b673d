package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/malabomap/internal/boot"
	"github.com/ziadkadry99/malabomap/internal/server"
	"github.com/ziadkadry99/malabomap/internal/web"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive map",
	Long: `Runs the startup sequence and serves the map page, its JSON API and the
session websocket. A failed startup is not fatal: every page load gets the
generic error page until the dataset loads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if cmd.Flags().Changed("watch") {
			cfg.Watch = serveWatch
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, bootErr := runBoot(ctx, cfg, logger)

		h := web.New(web.NewState(res, bootErr), web.Options{
			Title:             cfg.Title,
			Assets:            os.DirFS(cfg.AssetsDir),
			CoreAssets:        cfg.Assets.Core,
			EnhancementAssets: cfg.Assets.Enhancement,
			MapOptions:        cfg.MapOptions(),
			Breakpoint:        cfg.Map.Breakpoint,
			AllowAllOrigins:   cfg.AllowAllOrigins,
			Logger:            logger,
		})
		defer h.Close()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, logger)
		h.RegisterRoutes(srv.Router())

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			h.Close()
			return srv.Shutdown(shutdownCtx)
		})
		if cfg.Watch && !isRemote(cfg.DataSource) {
			g.Go(func() error {
				return boot.Watch(gctx, cfg.DataSource, logger, func() {
					h.Reload(runBoot(gctx, cfg, logger))
				})
			})
		} else if cfg.Watch {
			logger.Warn("watch ignored for a remote data source", zap.String("data_source", cfg.DataSource))
		}

		return g.Wait()
	},
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the dataset when its file changes")
	rootCmd.AddCommand(serveCmd)
}
