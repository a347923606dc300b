package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finchat-dev/finchat/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat server",
	Long:  `Starts the finchat HTTP server with a JSON chat API, a WebSocket chat stream, and a health check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := initLogger(cfg)

		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		provider, err := newProvider(cfg)
		if err != nil {
			return err
		}

		a, err := newAssistant(cfg, provider, log)
		if err != nil {
			return err
		}
		if engine := loadEngine(context.Background(), cfg, log); engine != nil {
			a.SwapEngine(engine)
		}

		srv := server.New(server.Config{
			Addr:     cfg.Addr,
			AllowAll: true,
		}, a, log)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "finchat server v%s starting on %s\n", Version, cfg.Addr)
		fmt.Fprintf(os.Stderr, "  Chat API:  POST /api/chat\n")
		fmt.Fprintf(os.Stderr, "  WebSocket: /ws/chat\n")
		fmt.Fprintf(os.Stderr, "  Intents:   %s\n", strings.Join(a.Intents(), ", "))

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
