package www

import (
	"net/http"
	"strconv"

	"fleetconsole/api"
)

func (h *Handlers) apiHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.jsonOK(w, map[string]any{
		"status":    "ok",
		"backend":   h.console.BackendUp(),
		"messaging": h.console.MsgClient() != nil && h.console.MsgClient().IsConnected(),
	})
}

func (h *Handlers) apiListApprovals(w http.ResponseWriter, r *http.Request) {
	count := 7
	if c := r.URL.Query().Get("count"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			count = n
		}
	}
	list, err := h.console.Backend().ListClientApprovals(count)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	h.jsonOK(w, list.Items)
}

func (h *Handlers) apiListHunts(w http.ResponseWriter, r *http.Request) {
	count := 5
	if c := r.URL.Query().Get("count"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			count = n
		}
	}
	list, err := h.console.Backend().ListHunts(api.HuntQuery{
		Count:        count,
		ActiveWithin: r.URL.Query().Get("active_within"),
		CreatedBy:    r.URL.Query().Get("created_by"),
	})
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	h.jsonOK(w, list.Items)
}

func (h *Handlers) apiListRecents(w http.ResponseWriter, r *http.Request) {
	username := h.getUsername(r)
	if username == "" || h.console.Recents() == nil {
		h.jsonOK(w, []any{})
		return
	}
	views, err := h.console.Recents().ListRecent(username)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, views)
}
