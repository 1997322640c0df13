package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/openpitch/matchbook/internal/adapter/handler"
	"github.com/openpitch/matchbook/internal/adapter/notifier"
	rowrepo "github.com/openpitch/matchbook/internal/adapter/repository/rowstore"
	"github.com/openpitch/matchbook/internal/adapter/rowstore"
	"github.com/openpitch/matchbook/internal/adapter/rowstore/memory"
	pgstore "github.com/openpitch/matchbook/internal/adapter/rowstore/postgres"
	"github.com/openpitch/matchbook/internal/adapter/rowstore/sheets"
	"github.com/openpitch/matchbook/internal/core/ports"
	"github.com/openpitch/matchbook/internal/core/services"
	"github.com/openpitch/matchbook/internal/platform/database"
)

func loadEnv(filepath string) {
	file, err := os.Open(filepath)

	if err != nil {
		log.Println("No .env file found, using OS environment variables.")
		return
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			os.Setenv(key, value)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Failed to read .env file: %v\n", err)
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func newRowStore(ctx context.Context) (ports.RowStore, func(), error) {
	driver := getenv("STORE_DRIVER", "sheets")

	switch driver {
	case "sheets":
		store, err := sheets.NewStore(ctx, sheets.Config{
			SpreadsheetID: os.Getenv("GOOGLE_SPREADSHEET_ID"),
			ClientEmail:   os.Getenv("GOOGLE_CLIENT_EMAIL"),
			PrivateKey:    os.Getenv("GOOGLE_PRIVATE_KEY"),
			PrivateKeyID:  os.Getenv("GOOGLE_PRIVATE_KEY_ID"),
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case "postgres":
		db, err := database.NewPostgresDB(database.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getenv("DB_NAME", "matchbook"),
		})
		if err != nil {
			return nil, nil, err
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		store := pgstore.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil

	case "memory":
		return memory.NewStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
}

func main() {
	loadEnv(".env")

	store, closeStore, err := newRowStore(context.Background())
	if err != nil {
		log.Fatalf("Failed to open row store: %v", err)
	}
	defer closeStore()

	retried := rowstore.WithRetry(store)

	redisAddr := fmt.Sprintf("%s:%s", getenv("REDIS_HOST", "localhost"), getenv("REDIS_PORT", "6379"))
	log.Printf("Connecting to Redis at %s...", redisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	matchRepo := rowrepo.NewMatchRepository(retried)
	bookingRepo := rowrepo.NewBookingRepository(retried)
	ratingRepo := rowrepo.NewRatingRepository(retried)
	userRepo := rowrepo.NewUserRepository(retried)

	notify := notifier.NewRedisNotifier(redisClient)

	capacity := services.NewCapacityCounter(matchRepo)
	reconciler := services.NewReconciler(matchRepo, bookingRepo, notify)
	matchService := services.NewMatchService(matchRepo, bookingRepo, notify)
	bookingService := services.NewBookingService(matchRepo, bookingRepo, capacity, reconciler, notify)
	ratingService := services.NewRatingService(matchRepo, bookingRepo, ratingRepo, userRepo)

	matchHandler := handler.NewMatchHandler(matchService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	userHandler := handler.NewUserHandler(userRepo)

	go reconciler.Run(context.Background())

	mux := http.NewServeMux()

	mux.HandleFunc("/matches", matchHandler.Handle)
	mux.HandleFunc("/bookings", bookingHandler.Handle)
	mux.HandleFunc("/ratings", ratingHandler.Handle)
	mux.HandleFunc("/users", userHandler.Handle)

	server := &http.Server{
		Addr:         ":8080",
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Println("Server starting on port :8080")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
