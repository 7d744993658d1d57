package www

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) handleClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	count := 50
	if c := r.URL.Query().Get("count"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			count = n
		}
	}

	list, err := h.console.Backend().SearchClients(query, count)

	data := map[string]any{
		"Page":          "clients",
		"Query":         query,
		"SearchFailed":  err != nil,
		"Authenticated": h.isAuthenticated(r),
		"Username":      h.getUsername(r),
	}
	if err == nil {
		data["Clients"] = list.Items
	}
	h.render(w, "clients.html", data)
}

func (h *Handlers) handleClientDetail(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	info, err := h.console.Backend().GetClient(clientID)
	if err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	data := map[string]any{
		"Page":          "clients",
		"Client":        info,
		"ClientID":      clientID,
		"Authenticated": h.isAuthenticated(r),
		"Username":      h.getUsername(r),
	}
	h.render(w, "client_detail.html", data)
}
