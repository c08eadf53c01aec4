package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sirdesai22/hackhub/internal/api"
	"github.com/sirdesai22/hackhub/internal/db"
	"github.com/sirdesai22/hackhub/internal/elastic"
	"github.com/sirdesai22/hackhub/internal/metrics"
	"github.com/sirdesai22/hackhub/internal/workers"
)

func main() {
	_ = godotenv.Load()

	pg := db.Connect()
	db.Migrate(pg)
	db.Seed(pg)

	metrics.Register()

	es := elastic.Connect()
	sync := &workers.SyncWorker{DB: pg, ES: es}
	reconcile := &workers.ReconcileWorker{DB: pg}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sync.Run(ctx)
	go sync.RetryDLQ(ctx)
	go reconcile.Run(ctx)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := api.New(pg, []byte(os.Getenv("JWT_SECRET")))
	mux := server.Routes()
	mux.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🧭 API running on :%s", port)
	if err := http.ListenAndServe(":"+port, corsMiddleware.Handler(mux)); err != nil {
		log.Fatalf("API listener failed: %v", err)
	}
}
