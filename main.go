package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "hotel-backend/internal/config"
	"hotel-backend/internal/db"
	router "hotel-backend/internal/http"
	"hotel-backend/internal/http/handlers"
	"hotel-backend/internal/llm"
	"hotel-backend/internal/services"
	"hotel-backend/internal/sessions"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	database := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := db.EnsureSchema(database); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	stop := make(chan struct{})
	defer close(stop)

	store := sessions.NewMemoryStore(env.ChatSessionTTL)
	store.StartSweeper(time.Minute, stop)

	handlers.Configure(env, store, llm.NewClient(env), services.NewEmailNotifier(env))

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
