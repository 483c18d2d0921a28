package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/CrowderSoup/taskboard/board"
	"github.com/CrowderSoup/taskboard/database"
	"github.com/CrowderSoup/taskboard/handlers"
	"github.com/CrowderSoup/taskboard/services"
)

var (
	envFile    string
	portFlag   string
	dbPathFlag string
	tenantFlag string
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Kanban task board server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return LoadEnv(envFile)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket server",
	RunE:  runServe,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print board analytics for a tenant",
	RunE:  runStats,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "SQLite database path (overrides DATABASE_PATH)")
	serveCmd.Flags().StringVarP(&portFlag, "port", "p", "", "Port to listen on (overrides PORT)")
	statsCmd.Flags().StringVarP(&tenantFlag, "tenant", "t", "", "Tenant to report on")
	cobra.CheckErr(statsCmd.MarkFlagRequired("tenant"))
	rootCmd.AddCommand(serveCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func commandConfig() (Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return Config{}, err
	}
	if portFlag != "" {
		cfg.Port = portFlag
	}
	if dbPathFlag != "" {
		cfg.DatabasePath = dbPathFlag
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	store := database.NewBoardStore(db)

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run(ctx)

	registry := services.NewRegistry(store, hub, cfg.Categories)

	scheduler := services.NewScheduler(time.UTC)
	if _, err := scheduler.ScheduleInterval(cfg.SnapshotInterval, func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := registry.Flush(flushCtx); err != nil {
			log.Printf("Error saving boards: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule snapshots: %w", err)
	}
	scheduler.Start()

	// Setup router
	r := mux.NewRouter()
	handlers.RegisterRoutes(r, handlers.NewBoardHandler(registry, hub))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down")
	case err := <-errCh:
		if err != nil {
			scheduler.Stop()
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	scheduler.Stop()

	if err := registry.Flush(shutdownCtx); err != nil {
		return fmt.Errorf("failed to save boards on shutdown: %w", err)
	}
	log.Printf("Boards saved")
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig()
	if err != nil {
		return err
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return printStats(cmd.Context(), cmd.OutOrStdout(), database.NewBoardStore(db), tenantFlag, cfg.Categories)
}

// printStats writes the analytics of a stored board. Unlike the server it
// never falls back to the seed board, so an unknown tenant is an error.
func printStats(ctx context.Context, w io.Writer, store services.BoardRepository, tenant string, categories []string) error {
	snap, err := store.Load(ctx, tenant)
	if err != nil {
		return fmt.Errorf("failed to load board for tenant %s: %w", tenant, err)
	}
	if snap == nil {
		return fmt.Errorf("no board stored for tenant %q", tenant)
	}

	b := board.New(snap, board.WithCategories(categories))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"tenant":    tenant,
		"columns":   len(b.SortedColumns()),
		"analytics": b.Analytics(),
	})
}
