package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusbank.org/internal/alert"
	"campusbank.org/internal/bank"
	"campusbank.org/internal/helpdesk"
	"campusbank.org/internal/httpapi"
	"campusbank.org/internal/obs"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	alerts := alert.New()
	dir := bank.NewDirectory(alerts)
	coord := bank.NewCoordinator(dir)
	desk := helpdesk.NewDesk()

	if os.Getenv("CAMPUSBANK_DEMO_SEED") == "1" {
		seedDemoAccounts(dir)
	}

	api := httpapi.New(version, dir, coord, desk, alerts)

	addr := os.Getenv("CAMPUSBANK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		// No WriteTimeout: the alert stream endpoint holds its
		// connection open indefinitely.
		IdleTimeout: 60 * time.Second,
	}

	log.Printf("Starting campusbank-api %s on %s (%d accounts)", version, srv.Addr, dir.Len())

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}

// seedDemoAccounts opens a couple of accounts so a fresh instance can
// be exercised without going through onboarding first.
func seedDemoAccounts(dir *bank.Directory) {
	seeds := []struct {
		holder  string
		pin     string
		initial bank.Money
	}{
		{"Aisha Rahman", "4321", 1500_00},
		{"Omar Hassan", "1234", 500_00},
	}
	for _, s := range seeds {
		acc, err := dir.Open(s.holder, s.pin, s.initial)
		if err != nil {
			log.Printf("seed %s: %v", s.holder, err)
			continue
		}
		log.Printf("seeded demo account %s (%s)", acc.Number(), acc.Holder())
	}
}
