package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowsync_server/auth"
	"flowsync_server/config"
	"flowsync_server/controllers"
	"flowsync_server/data"
	"flowsync_server/middleware"
	"flowsync_server/models"
	"flowsync_server/services"
)

const version = "1.0.0"

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply the schema and exit")
	issueToken := flag.String("issue-token", "", "print a bearer token for the given subject and exit")
	flag.Parse()

	cfg := config.Load()

	if *issueToken != "" {
		if err := printToken(cfg, *issueToken); err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := data.OpenDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := data.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}
	if *migrateOnly {
		log.Println("Schema is up to date")
		return
	}

	gw, err := data.NewGateway(db, data.WithStatementTimeout(cfg.DBStatementTimeout))
	if err != nil {
		log.Fatalf("Failed to create gateway: %v", err)
	}

	deps := controllers.Deps{
		Notes:     data.NewNoteRepository(gw, services.TemplateSummarizer{}, services.FixedMindMapper{}),
		Notebooks: data.NewNotebookRepository(gw),
		Snippets:  data.NewCodeSnippetRepository(gw, services.EchoRunner{}),
		Relations: data.NewRelationRepository(gw),

		Tasks:           data.NewTaskStore(gw),
		Events:          data.NewRecordStore[models.Event](gw, data.EventsResource),
		Pomodoros:       data.NewRecordStore[models.Pomodoro](gw, data.PomodorosResource),
		TimeTrackings:   data.NewTimeTrackingStore(gw),
		HealthRecords:   data.NewRecordStore[models.HealthRecord](gw, data.HealthRecordsResource),
		ExerciseRecords: data.NewRecordStore[models.ExerciseRecord](gw, data.ExerciseRecordsResource),
		SleepRecords:    data.NewRecordStore[models.SleepRecord](gw, data.SleepRecordsResource),
		Foods:           data.NewRecordStore[models.Food](gw, data.FoodsResource),
		MealRecords:     data.NewRecordStore[models.MealRecord](gw, data.MealRecordsResource),
		IncomeRecords:   data.NewRecordStore[models.IncomeRecord](gw, data.IncomeRecordsResource),
		ExpenseRecords:  data.NewRecordStore[models.ExpenseRecord](gw, data.ExpenseRecordsResource),

		DB:           gw.DB(),
		Version:      version,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Now:          time.Now,
	}

	if cfg.AuthEnabled() {
		svc, err := auth.NewService(cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			log.Fatalf("Failed to create auth service: %v", err)
		}
		deps.Auth = middleware.JWTMiddleware(svc)
		log.Println("Bearer token authentication enabled for /api")
	} else {
		log.Println("JWT_SECRET is not set, /api is open")
	}

	router := controllers.NewRouter(deps)
	handler := middleware.Recovery()(middleware.CORS(cfg.CORSOrigins)(router))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server is running on %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
		}
	}
	log.Println("Server stopped")
}

func printToken(cfg config.Config, subject string) error {
	svc, err := auth.NewService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}
	token, expires, err := svc.GenerateToken(subject)
	if err != nil {
		return err
	}
	fmt.Println(token)
	log.Printf("Token for %q expires at %s", subject, expires.Format(time.RFC3339))
	return nil
}
