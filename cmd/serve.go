package cmd

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

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/docpipe/api"
	"github.com/gaurav-prasanna/docpipe/core/codefmt"
	"github.com/gaurav-prasanna/docpipe/core/normalize"
	"github.com/gaurav-prasanna/docpipe/core/pipeline"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	Long: `Serve starts the HTTP wrapper:

  POST /api/process?format=html|markdown|json   body: exported HTML
  GET  /health`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagPort, "port", cfg.Port, "Listen port")
	serveCmd.Flags().StringVar(&flagMeta, "meta", cfg.MetaIndex, "YAML document index used to rewrite links between documents")
	serveCmd.Flags().BoolVar(&flagAllowInlineCode, "allow-inline-code", cfg.AllowInlineCode, "Render <%- %> directives instead of stripping them")
}

func runServe(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	c := cfg
	c.Port = flagPort
	c.MetaIndex = flagMeta
	c.AllowInlineCode = flagAllowInlineCode
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	resolver, err := loadResolver(c.MetaIndex, log)
	if err != nil {
		return err
	}

	processor := pipeline.New(
		normalize.New(resolver, log),
		codefmt.New(codefmt.Options{AllowInlineCode: c.AllowInlineCode}),
		pipeline.WithLogger(log),
	)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      api.NewServer(processor, log, c),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("docpipe listening", "port", c.Port, "allow_inline_code", c.AllowInlineCode)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
