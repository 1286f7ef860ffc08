package main

import (
	"context"
	"log"
	"net/http"

	"goregress/internal/config"
	"goregress/internal/container"
	"goregress/internal/migration"
	"goregress/ui"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var version = "dev"

// API server entrypoint: the public regression API on the main port and an
// operational mux (health, version, pprof) on the admin port.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.NewRunner().Run(context.Background(), db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	if err := appContainer.InitWithDatabase(db); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	go runAdminServer(appConfig.Server.AdminPort)

	server := ui.NewServer(appContainer.RegressionService, appContainer.Log)
	log.Printf("Starting API server on port %s", appConfig.Server.Port)
	if err := server.Run(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func runAdminServer(port string) {
	admin := chi.NewRouter()
	admin.Use(middleware.Recoverer)

	admin.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	admin.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version))
	})
	admin.Mount("/debug", middleware.Profiler())

	log.Printf("Starting admin server on port %s", port)
	if err := http.ListenAndServe(":"+port, admin); err != nil {
		log.Printf("Admin server stopped: %v", err)
	}
}
