package www

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fleetconsole/api"
)

func (h *Handlers) handleHunts(w http.ResponseWriter, r *http.Request) {
	count := 50
	if c := r.URL.Query().Get("count"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			count = n
		}
	}
	createdBy := r.URL.Query().Get("created_by")

	list, err := h.console.Backend().ListHunts(api.HuntQuery{
		Count:     count,
		CreatedBy: createdBy,
	})

	data := map[string]any{
		"Page":          "hunts",
		"CreatedBy":     createdBy,
		"ListFailed":    err != nil,
		"Authenticated": h.isAuthenticated(r),
		"Username":      h.getUsername(r),
	}
	if err == nil {
		data["Hunts"] = list.Items
	}
	h.render(w, "hunts.html", data)
}

func (h *Handlers) handleHuntDetail(w http.ResponseWriter, r *http.Request) {
	huntID := chi.URLParam(r, "huntID")

	hunt, err := h.console.Backend().GetHunt(huntID)
	if err != nil {
		http.Error(w, "hunt not found", http.StatusNotFound)
		return
	}

	data := map[string]any{
		"Page":          "hunts",
		"Hunt":          hunt,
		"HuntID":        huntID,
		"Authenticated": h.isAuthenticated(r),
		"Username":      h.getUsername(r),
	}
	h.render(w, "hunt_detail.html", data)
}

func (h *Handlers) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.console.DB().ListAuditLog(limit)
	if err != nil {
		log.Printf("audit: list: %v", err)
	}

	data := map[string]any{
		"Page":          "audit",
		"Entries":       entries,
		"ListFailed":    err != nil,
		"Authenticated": h.isAuthenticated(r),
		"Username":      h.getUsername(r),
	}
	h.render(w, "audit.html", data)
}
