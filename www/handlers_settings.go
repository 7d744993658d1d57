package www

import (
	"log"
	"net/http"
	"strings"
	"time"
)

func (h *Handlers) handleSettings(w http.ResponseWriter, r *http.Request) {
	cfg := h.console.AppConfig()
	data := map[string]any{
		"Page":           "settings",
		"BackendURL":     cfg.Backend.BaseURL,
		"BackendTimeout": cfg.Backend.Timeout.String(),
		"BackendOK":      h.console.BackendUp(),
		"MessagingOK":    h.console.MsgClient() != nil && h.console.MsgClient().IsConnected(),
		"SSEClients":     h.eventHub.ClientCount(),
		"DBDriver":       h.console.DB().Driver(),
		"Saved":          r.URL.Query().Get("saved") != "",
		"Flash":          r.URL.Query().Get("flash"),
		"Authenticated":  h.isAuthenticated(r),
		"Username":       h.getUsername(r),
	}
	h.render(w, "settings.html", data)
}

func (h *Handlers) handleSettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	baseURL := strings.TrimSpace(r.FormValue("base_url"))
	timeout, err := time.ParseDuration(r.FormValue("timeout"))
	if baseURL == "" || err != nil || timeout <= 0 {
		http.Redirect(w, r, "/settings?flash=invalid+backend+settings", http.StatusSeeOther)
		return
	}

	cfg := h.console.AppConfig()
	cfg.Lock()
	cfg.Backend.BaseURL = baseURL
	cfg.Backend.Timeout = timeout
	cfg.Unlock()

	h.console.Backend().Reconfigure(baseURL, timeout)

	if path := h.console.ConfigPath(); path != "" {
		if err := cfg.Save(path); err != nil {
			log.Printf("settings: save config: %v", err)
		}
	}

	h.console.RecordAudit(h.getUsername(r), "settings", "backend", baseURL)
	http.Redirect(w, r, "/settings?saved=1", http.StatusSeeOther)
}
