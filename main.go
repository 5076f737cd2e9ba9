package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dues-service/config"
	"dues-service/handlers"
	"dues-service/logging"
	"dues-service/middleware"
	"dues-service/repositories"
	"dues-service/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logging.Configure(logging.Logger, os.Stdout, "info")
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Dues Service...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Infof("Event ID: ENV_FILE_SKIPPED, Description: No .env file loaded: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: %v", err)
	}
	logging.InitLogger(cfg.Log.File, cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.ConnectionString))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Connected to MongoDB database %s", cfg.Database.Name)

	db := client.Database(cfg.Database.Name)
	membersCollection := db.Collection(cfg.Database.MembersCollection)
	committeesCollection := db.Collection(cfg.Database.CommitteesCollection)
	requestsCollection := db.Collection(cfg.Database.RequestsCollection)

	if err := repositories.EnsureIndexes(ctx, committeesCollection); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: Failed to create committee name index: %v", err)
	}
	cancel()

	opTimeout := cfg.Database.OpTimeout()
	newBreaker := func(name string) *repositories.Breaker {
		return repositories.NewBreaker(name, cfg.Breaker.MaxFailures, cfg.Breaker.OpenTimeout())
	}
	memberStore := repositories.WithMemberBreaker(
		repositories.NewMongoMemberStore(membersCollection, opTimeout), newBreaker("members-cb"))
	committeeStore := repositories.WithCommitteeBreaker(
		repositories.NewMongoCommitteeStore(committeesCollection, opTimeout), newBreaker("committees-cb"))
	requestStore := repositories.WithRequestBreaker(
		repositories.NewMongoRequestStore(requestsCollection, opTimeout), newBreaker("requests-cb"))

	memberHandler := handlers.NewMemberHandler(services.NewMemberService(memberStore))
	committeeHandler := handlers.NewCommitteeHandler(services.NewCommitteeService(committeeStore))
	requestHandler := handlers.NewRequestHandler(services.NewRequestService(requestStore))

	metrics := middleware.NewMetrics()

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logging.Logger), metrics.Middleware)
	if cfg.Auth.JWTSecret != "" {
		r.Use(middleware.Identity([]byte(cfg.Auth.JWTSecret)))
		logging.Logger.Info("Event ID: AUTH_ENABLED, Description: Bearer token verification enabled")
	}
	handlers.RegisterRoutes(r, memberHandler, committeeHandler, requestHandler)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      middleware.EnableCORS(cfg.Server.AllowedOrigin)(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop, release := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer release()

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
		}
	}()

	<-stop.Done()
	logging.Logger.Info("Event ID: SERVER_SHUTDOWN, Description: Shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_FAILED, Description: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: DB_DISCONNECT_FAILED, Description: %v", err)
	}
	logging.Logger.Info("Event ID: SERVICE_STOPPED, Description: Dues Service stopped")
}
