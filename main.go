package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/SkyFish-bot/werewolves/internal/config"
	"github.com/SkyFish-bot/werewolves/internal/game"
	"github.com/SkyFish-bot/werewolves/internal/handlers"
	"github.com/SkyFish-bot/werewolves/internal/store"
	"github.com/SkyFish-bot/werewolves/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	rooms := store.NewRoomStore()
	hub := ws.NewHub()
	engine := game.NewEngine(rooms, hub, pacingFrom(cfg.Pacing))

	ctx := &handlers.Context{
		Rooms:  rooms,
		Engine: engine,
		Hub:    hub,
		Cfg:    cfg,
	}
	hub.SetHandler(ctx.Dispatch)
	hub.SetOnClose(ctx.HandleDisconnect)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// No middleware.Timeout here: /ws connections are long-lived.

	r.Get("/ws", hub.ServeWS)
	r.Get("/rooms/{code}/qr", ctx.HandleQR)
	r.Get("/healthz", ctx.HandleHealthz)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Addr)
	log.Fatal(srv.ListenAndServe())
}

// pacingFrom converts configured whole seconds into engine pacing.
func pacingFrom(p config.PacingConfig) game.Pacing {
	return game.Pacing{
		Announce:    time.Duration(p.AnnounceSeconds) * time.Second,
		InterPhase:  time.Duration(p.InterPhaseSeconds) * time.Second,
		Synthetic:   time.Duration(p.SyntheticSeconds) * time.Second,
		LoverReveal: time.Duration(p.LoverRevealSeconds) * time.Second,
	}
}
