package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/retireright/internal/api"
	"github.com/rgehrsitz/retireright/internal/store"
	"github.com/rgehrsitz/retireright/internal/store/sqlite"
	"github.com/rgehrsitz/retireright/internal/tui"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Long: `Serve the JSON API. Saved runs go to Postgres when ` + envDatabaseURL + ` is set,
otherwise to the SQLite file named by ` + envDB + ` (default ` + defaultDBPath + `).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var st store.Store
			if memory, _ := cmd.Flags().GetBool("memory"); memory {
				st, err = sqlite.New(":memory:")
			} else {
				st, err = openStore(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			addr, _ := cmd.Flags().GetString("addr")
			origins, _ := cmd.Flags().GetString("cors-origins")
			opts := api.Options{}
			if origins != "" {
				opts.AllowedOrigins = strings.Split(origins, ",")
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewRouter(api.NewHandler(engine, st), opts),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("listening on %s", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			log.Printf("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	defaultAddr := os.Getenv(envAddr)
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}
	cmd.Flags().String("addr", defaultAddr, "Listen address (env "+envAddr+")")
	cmd.Flags().Bool("memory", false, "Keep saved runs in memory only")
	cmd.Flags().String("cors-origins", "", "Comma-separated allowed CORS origins")
	return cmd
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [input-file]",
		Short: "Browse a projection in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("config file not found: %s", args[0])
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			p := tea.NewProgram(tui.NewModel(args[0], engine), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
