package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// HandleQR serves a PNG QR code that deep-links into a room, for hosts who
// run the game on a shared screen.
func (ctx *Context) HandleQR(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	if !ctx.Rooms.Exists(code) {
		http.NotFound(w, r)
		return
	}

	joinURL := fmt.Sprintf("%s/join/%s", ctx.Cfg.PublicURL, code)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// HandleHealthz reports liveness and the number of open rooms.
func (ctx *Context) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"rooms":  ctx.Rooms.Count(),
	})
}
