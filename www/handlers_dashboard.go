package www

import (
	"log"
	"net/http"

	"fleetconsole/api"
	"fleetconsole/console"
	"fleetconsole/recents"
)

func (h *Handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	vm := console.NewDashboard(h.console.Backend(), &redirectNavigator{})
	vm.Load()

	username := h.getUsername(r)
	var recent []recents.View
	if mgr := h.console.Recents(); mgr != nil && username != "" {
		recent, _ = mgr.ListRecent(username)
	}

	data := map[string]any{
		"Page":            "dashboard",
		"Approvals":       vm.Approvals,
		"ApprovalsFailed": vm.Approvals.Status == console.ListFailed,
		"Hunts":           vm.Hunts,
		"HuntsFailed":     vm.Hunts.Status == console.ListFailed,
		"Recent":          recent,
		"BackendOK":       h.console.BackendUp(),
		"MessagingOK":     h.console.MsgClient() != nil && h.console.MsgClient().IsConnected(),
		"Flash":           r.URL.Query().Get("flash"),
		"Authenticated":   h.isAuthenticated(r),
		"Username":        username,
	}
	h.render(w, "dashboard.html", data)
}

// handleClearRecents wipes the operator's recently-viewed history.
func (h *Handlers) handleClearRecents(w http.ResponseWriter, r *http.Request) {
	username := h.getUsername(r)
	if username != "" && h.console.Recents() != nil {
		if err := h.console.Recents().ClearRecent(username); err != nil {
			log.Printf("recents: clear for %s: %v", username, err)
		} else {
			h.console.RecordAudit(username, "clear_recents", "", "")
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleOpenClient is the click target for approval rows. The token is
// the client path from the approval subject, e.g. "aff4:/C.1234/fs".
func (h *Handlers) handleOpenClient(w http.ResponseWriter, r *http.Request) {
	nav := &redirectNavigator{}
	vm := console.NewDashboard(h.console.Backend(), nav)
	if err := vm.OpenClient(r.URL.Query().Get("path")); err != nil {
		http.Redirect(w, r, "/?flash=malformed+client+path", http.StatusSeeOther)
		return
	}
	if username := h.getUsername(r); username != "" {
		h.console.RecordView(username, "client", nav.params["clientId"], r.URL.Query().Get("title"))
	}
	http.Redirect(w, r, nav.target, http.StatusSeeOther)
}

// handleOpenHunt is the click target for hunt rows; urn carries the
// hunt's full URN.
func (h *Handlers) handleOpenHunt(w http.ResponseWriter, r *http.Request) {
	hunt := api.Hunt{Value: api.HuntValue{URN: api.TypedValue{Value: r.URL.Query().Get("urn")}}}
	nav := &redirectNavigator{}
	vm := console.NewDashboard(h.console.Backend(), nav)
	if err := vm.OpenHunt(hunt); err != nil {
		http.Redirect(w, r, "/?flash=malformed+hunt+urn", http.StatusSeeOther)
		return
	}
	if username := h.getUsername(r); username != "" {
		h.console.RecordView(username, "hunt", nav.params["huntId"], r.URL.Query().Get("title"))
	}
	http.Redirect(w, r, nav.target, http.StatusSeeOther)
}
