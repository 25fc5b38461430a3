package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/joelkehle/proposal-desk/internal/chatstore"
	"github.com/joelkehle/proposal-desk/internal/export"
	"github.com/joelkehle/proposal-desk/internal/priorart"
	"github.com/joelkehle/proposal-desk/internal/review"
	"github.com/joelkehle/proposal-desk/internal/server"
	"github.com/joelkehle/proposal-desk/internal/title"
)

func main() {
	var (
		addr          = flag.String("addr", ":8090", "Listen address")
		dbPath        = flag.String("db", "./proposal-desk.db", "SQLite database path")
		searchBackend = flag.String("search", "fixture", "Prior-art search backend: fixture or scholar")
		reviewTimeout = flag.Duration("review-timeout", 120*time.Second, "Timeout for one review request")
		disablePDF    = flag.Bool("no-pdf", false, "Disable PDF export (no Chromium available)")
	)
	flag.Parse()

	_ = godotenv.Load()

	caller, err := review.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	titleCaller, err := title.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	searcher, err := buildSearcher(*searchBackend)
	if err != nil {
		log.Fatal(err)
	}

	store, err := chatstore.NewSQLiteStore(*dbPath, chatstore.Config{})
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	var pdf export.PDFRenderer
	if !*disablePDF {
		pdf = export.NewChromiumPDFRenderer()
	}

	handler := server.NewServer(
		store,
		review.NewGenerator(caller, searcher),
		title.NewGenerator(titleCaller),
		pdf,
		server.Config{ReviewTimeout: *reviewTimeout},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Printf("reviewd listening on %s (db=%s, search=%s)", *addr, *dbPath, *searchBackend)
	srv := &http.Server{Addr: *addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func buildSearcher(backend string) (priorart.Searcher, error) {
	switch strings.TrimSpace(backend) {
	case "fixture":
		return priorart.NewFixtureSearcher(), nil
	case "scholar":
		return priorart.NewScholarSearcher(priorart.ScholarConfig{
			APIKey: os.Getenv("SCHOLAR_API_KEY"),
		})
	default:
		return nil, fmt.Errorf("unknown search backend %q (want fixture or scholar)", backend)
	}
}
