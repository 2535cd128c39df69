package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/server"
	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/templates"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for uploading documents and running the tailoring pipeline.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if raw := os.Getenv("PORT"); raw != "" && !cmd.Flags().Changed("port") {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid PORT value %q: %w", raw, err)
		}
		servePort = port
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		store.Close()
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	rewriter, err := llm.NewGeminiRewriter(ctx, apiKey)
	if err != nil {
		store.Close()
		return fmt.Errorf("failed to create rewriter: %w", err)
	}

	if created, err := templates.Seed(ctx, store); err != nil {
		log.Printf("Template seeding failed: %v", err)
	} else if created > 0 {
		log.Printf("Seeded %d default template(s)", created)
	}

	cfg := server.Config{
		Port:       servePort,
		Store:      store,
		Rewriter:   rewriter,
		UploadsDir: uploadsDir(),
	}

	srv, err := server.New(cfg)
	if err != nil {
		store.Close()
		rewriter.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// openStorage connects to PostgreSQL when DATABASE_URL is set and falls back
// to the in-memory store otherwise.
func openStorage(ctx context.Context) (storage.Storage, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory storage")
		return storage.NewMemStorage(), nil
	}

	store, err := storage.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return store, nil
}

func uploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}
