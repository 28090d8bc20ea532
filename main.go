package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/room"
	"github.com/lguibr/pongduel/server"
	"github.com/lguibr/pongduel/utils"
)

func main() {
	addr := flag.String("addr", ":3001", "listen address")
	configPath := flag.String("config", "", "YAML or TOML config file (defaults when empty)")
	flag.Parse()

	cfg := utils.DefaultConfig()
	if *configPath != "" {
		loaded, err := utils.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("pongduel: load config path=%s err=%v", *configPath, err)
		}
		cfg = loaded
	}

	engine := bollywood.NewEngine()
	rooms, err := room.SpawnManager(engine, room.ManagerParams{Config: cfg})
	if err != nil {
		log.Fatalf("pongduel: %v", err)
	}

	srv := &http.Server{Addr: *addr, Handler: server.New(rooms)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("pongduel: listening addr=%s tick=%s", *addr, cfg.GameTickPeriod)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("pongduel: serve err=%v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("pongduel: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), utils.ActorShutdownTimeout)
	defer cancel()
	// Stopping the actors first closes every subscription, which ends the
	// websocket handlers that http.Server.Shutdown does not track.
	engine.Shutdown(utils.ActorShutdownTimeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("pongduel: http shutdown err=%v", err)
	}
}
