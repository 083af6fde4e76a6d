package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/upliftr/upliftr/internal/assistant"
	"github.com/upliftr/upliftr/internal/booking"
	"github.com/upliftr/upliftr/internal/config"
	"github.com/upliftr/upliftr/internal/llm"
	"github.com/upliftr/upliftr/internal/server"
	"github.com/upliftr/upliftr/internal/sheets"
	"github.com/upliftr/upliftr/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Upliftr backend server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			dbPath := filepath.Join(paths.Data, "upliftr.db")
			db, err := store.Open(dbPath, log)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()
			log.Info().Str("path", dbPath).Msg("database open")

			// The spreadsheet mirror is optional; the local log always works.
			var mirror sheets.Appender
			if cfg.Sheets.SpreadsheetID != "" {
				client, err := sheets.NewClient(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range)
				if err != nil {
					return fmt.Errorf("initializing sheets client: %w", err)
				}
				mirror = client
				log.Info().Str("spreadsheet", cfg.Sheets.SpreadsheetID).Msg("sheets mirror enabled")
			} else {
				log.Warn().Msg("no spreadsheet configured — enquiries are logged locally only")
			}

			opts := []server.ServerOption{
				server.WithContacts(store.NewContactStore(db)),
			}
			if mirror != nil {
				opts = append(opts, server.WithMirror(mirror))
			}

			if cfg.Gemini.APIKey != "" {
				client := llm.NewGeminiClient(llm.GeminiConfig{
					APIKey:            cfg.Gemini.APIKey,
					Model:             cfg.Gemini.Model,
					SystemInstruction: assistant.BuildSystemInstruction(),
					Tools:             []llm.FunctionDeclaration{assistant.BookEnquiryDeclaration()},
					Temperature:       cfg.Gemini.Temperature,
				})
				sink := booking.NewSink(store.NewEnquiryStore(db), mirror, log)
				a := assistant.New(client, sink, log)
				sessions := assistant.NewRegistry(time.Duration(cfg.Session.IdleMinutes) * time.Minute)
				opts = append(opts, server.WithAssistant(a, sessions))
				log.Info().Str("model", cfg.Gemini.Model).Msg("chat assistant enabled")
			} else {
				log.Warn().Msg("no Gemini API key configured — chat will be unavailable")
			}

			srv := server.New(cfg, log, opts...)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan, custom)")

	return cmd
}
