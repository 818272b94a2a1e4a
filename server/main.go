package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"holdem-tracker/server/game"
	"holdem-tracker/server/store"
)

var debugState bool

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	debugState = asBool(os.Getenv("DEBUG"))

	var migrate bool
	for _, a := range os.Args[1:] {
		if a == "--migrate" {
			migrate = true
		}
	}

	dsn := getenv("DATABASE_URL", "")
	port := getenv("PORT", "8080")

	var archive game.Archive = game.NewMemoryArchive()
	var db *store.DB
	if dsn != "" {
		p, err := store.Open(dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db = p
		defer db.Close(context.Background())
		if migrate || asBool(os.Getenv("AUTO_MIGRATE")) {
			if err := store.Migrate(context.Background(), db); err != nil {
				log.Fatalf("migrate: %v", err)
			}
			log.Printf("schema migrated")
			if migrate {
				return
			}
		}
		archive = db
	} else {
		if migrate {
			log.Fatalf("--migrate requires DATABASE_URL")
		}
		log.Printf("DATABASE_URL not set; hand history kept in memory only")
	}

	svc := game.NewService(archive)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: Router(svc),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-done
	log.Printf("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
