package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrewpaige1/studybuddy-api/config"
	"github.com/andrewpaige1/studybuddy-api/generation"
	"github.com/andrewpaige1/studybuddy-api/handlers"
	"github.com/andrewpaige1/studybuddy-api/logger"
	"github.com/andrewpaige1/studybuddy-api/middleware"
	"github.com/andrewpaige1/studybuddy-api/services"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "studybuddy-api",
	Short: "Study assistant API server",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := config.Load()
		if err != nil {
			return err
		}
		if _, err := config.Connect(env.DatabaseURL); err != nil {
			return err
		}
		fmt.Println("Database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(env.LogMode)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer log.Sync()

	db, err := config.Connect(env.DatabaseURL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := generation.NewGemini(ctx, env.GeminiAPIKey, env.GeminiModel, log)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handlers.New(services.New(db, gen, nil, log), log).Routes(mux)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   env.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", middleware.RequestIDHeader, middleware.ConversationIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	})

	handler := middleware.Chain(mux,
		corsHandler.Handler,
		middleware.RequestID,
		middleware.RequestLogger(log),
		middleware.Recover(log),
		middleware.Conversation,
	)

	server := &http.Server{
		Addr:              "0.0.0.0:" + env.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", server.Addr, "database_postgres", config.IsPostgresURL(env.DatabaseURL))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
