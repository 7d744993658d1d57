package www

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fleetconsole/api"
	"fleetconsole/config"
	"fleetconsole/console"
	"fleetconsole/recents"
	"fleetconsole/store"
)

type harness struct {
	router  http.Handler
	console *console.Console
	db      *store.DB
	cookies []*http.Cookie
}

// newHarness wires a router against a fake backend and a temp database.
func newHarness(t *testing.T, backend http.HandlerFunc) *harness {
	t.Helper()

	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	db, err := store.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Defaults()
	c := console.New(console.Config{
		AppConfig: cfg,
		DB:        db,
		Backend:   api.NewClient(backendSrv.URL, 5*time.Second),
		Recents:   recents.NewManager(db, nil),
		LogFunc:   func(string, ...any) {},
	})

	router, stop := NewRouter(c)
	t.Cleanup(stop)

	return &harness{router: router, console: c, db: db}
}

// login authenticates as the bootstrap admin and keeps the session cookie.
func (h *harness) login(t *testing.T) {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {"admin"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, req)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("login: code = %d, want %d", resp.Code, http.StatusSeeOther)
	}
	h.cookies = resp.Result().Cookies()
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range h.cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, req)
	return resp
}

func (h *harness) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range h.cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, req)
	return resp
}

func okBackend(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/users/me/approvals/client":
		json.NewEncoder(w).Encode(api.ApprovalList{Items: []api.Approval{
			{ID: "approval-1", Reason: "case 42",
				Subject: api.ApprovalClient{ClientID: "C.1234", URN: "aff4:/C.1234", Hostname: "web-01"}},
		}})
	case "/api/hunts":
		json.NewEncoder(w).Encode(api.HuntList{Items: []api.Hunt{
			{Value: api.HuntValue{
				URN:   api.TypedValue{Value: "aff4:/hunts/H:5678"},
				Name:  api.TypedValue{Value: "GenericHunt"},
				State: api.TypedValue{Value: "STARTED"},
			}},
		}})
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func TestDashboardRequiresAuth(t *testing.T) {
	h := newHarness(t, okBackend)

	resp := h.get("/")
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("code = %d, want %d", resp.Code, http.StatusSeeOther)
	}
	if loc := resp.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestDashboard_RendersBothLists(t *testing.T) {
	h := newHarness(t, okBackend)
	h.login(t)

	resp := h.get("/")
	if resp.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", resp.Code)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "C.1234") {
		t.Error("dashboard should list the approval's client")
	}
	if !strings.Contains(page, "H:5678") {
		t.Error("dashboard should list the hunt")
	}
	if !strings.Contains(page, "GenericHunt") {
		t.Error("dashboard should show the hunt name")
	}
}

func TestDashboard_ApprovalsFailureKeepsHunts(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/me/approvals/client" {
			http.Error(w, "backend down", http.StatusInternalServerError)
			return
		}
		okBackend(w, r)
	})
	h.login(t)

	resp := h.get("/")
	if resp.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", resp.Code)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "Failed to load approvals") {
		t.Error("approvals failure should be shown explicitly")
	}
	if !strings.Contains(page, "H:5678") {
		t.Error("hunts should still render when approvals fail")
	}
}

func TestOpenClient_Redirects(t *testing.T) {
	h := newHarness(t, okBackend)
	h.login(t)

	resp := h.get("/open/client?path=" + url.QueryEscape("aff4:/C.1234/foo"))
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("code = %d, want %d", resp.Code, http.StatusSeeOther)
	}
	if loc := resp.Header().Get("Location"); loc != "/clients/C.1234" {
		t.Errorf("Location = %q, want /clients/C.1234", loc)
	}

	// The click lands in the audit trail and the recents list.
	entries, _ := h.db.ListAuditLog(10)
	found := false
	for _, e := range entries {
		if e.Action == "view" && e.Subject == "client/C.1234" {
			found = true
		}
	}
	if !found {
		t.Error("client open should be audited")
	}
	views, _ := h.console.Recents().ListRecent("admin")
	if len(views) != 1 || views[0].ItemID != "C.1234" {
		t.Errorf("recents = %+v, want C.1234", views)
	}
}

func TestOpenClient_MalformedIsNoOp(t *testing.T) {
	h := newHarness(t, okBackend)
	h.login(t)

	resp := h.get("/open/client?path=garbage")
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("code = %d, want %d", resp.Code, http.StatusSeeOther)
	}
	loc := resp.Header().Get("Location")
	if !strings.HasPrefix(loc, "/?flash=") {
		t.Errorf("Location = %q, want flash redirect to dashboard", loc)
	}
	views, _ := h.console.Recents().ListRecent("admin")
	if len(views) != 0 {
		t.Errorf("malformed click should not record a view: %+v", views)
	}
}

func TestOpenHunt_Redirects(t *testing.T) {
	h := newHarness(t, okBackend)
	h.login(t)

	resp := h.get("/open/hunt?urn=" + url.QueryEscape("aff4:/hunts/H:5678"))
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("code = %d, want %d", resp.Code, http.StatusSeeOther)
	}
	if loc := resp.Header().Get("Location"); loc != "/hunts/H:5678" {
		t.Errorf("Location = %q, want /hunts/H:5678", loc)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHarness(t, okBackend)

	form := url.Values{"username": {"admin"}, "password": {"nope"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200 (login page with error)", resp.Code)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Invalid username or password") {
		t.Error("login page should show the error")
	}
}

func TestAPIHealth(t *testing.T) {
	h := newHarness(t, okBackend)

	resp := h.get("/api/health")
	if resp.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", resp.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("status = %v, want ok", payload["status"])
	}
}

func TestClearRecents(t *testing.T) {
	h := newHarness(t, okBackend)
	h.login(t)

	h.get("/open/client?path=" + url.QueryEscape("aff4:/C.1234/foo"))
	views, _ := h.console.Recents().ListRecent("admin")
	if len(views) != 1 {
		t.Fatalf("views = %d before clear, want 1", len(views))
	}

	resp := h.post("/recents/clear", url.Values{})
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("code = %d, want %d", resp.Code, http.StatusSeeOther)
	}
	views, _ = h.console.Recents().ListRecent("admin")
	if len(views) != 0 {
		t.Errorf("views = %d after clear, want 0", len(views))
	}
}

func TestSettings_UpdatesBackend(t *testing.T) {
	h := newHarness(t, okBackend)
	h.login(t)

	resp := h.post("/settings", url.Values{
		"base_url": {"http://fleet-2.internal:8000"},
		"timeout":  {"3s"},
	})
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("code = %d, want %d", resp.Code, http.StatusSeeOther)
	}
	if got := h.console.Backend().BaseURL(); got != "http://fleet-2.internal:8000" {
		t.Errorf("backend BaseURL = %q, want the saved URL", got)
	}
	if got := h.console.AppConfig().Backend.Timeout; got != 3*time.Second {
		t.Errorf("config timeout = %v, want 3s", got)
	}

	// The saved URL shows up on the settings page.
	resp = h.get("/settings")
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "http://fleet-2.internal:8000") {
		t.Error("settings page should show the saved backend URL")
	}

	entries, _ := h.db.ListAuditLog(10)
	found := false
	for _, e := range entries {
		if e.Action == "settings" && e.Detail == "http://fleet-2.internal:8000" {
			found = true
		}
	}
	if !found {
		t.Error("settings change should be audited")
	}
}

func TestSettings_RejectsBadInput(t *testing.T) {
	h := newHarness(t, okBackend)
	h.login(t)

	before := h.console.Backend().BaseURL()
	resp := h.post("/settings", url.Values{
		"base_url": {"http://fleet-2.internal:8000"},
		"timeout":  {"not-a-duration"},
	})
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("code = %d, want %d", resp.Code, http.StatusSeeOther)
	}
	if loc := resp.Header().Get("Location"); !strings.HasPrefix(loc, "/settings?flash=") {
		t.Errorf("Location = %q, want flash redirect", loc)
	}
	if got := h.console.Backend().BaseURL(); got != before {
		t.Errorf("backend BaseURL changed to %q on invalid input", got)
	}
}

func TestAuditPage_ListsEntries(t *testing.T) {
	h := newHarness(t, okBackend)
	h.login(t)

	resp := h.get("/audit")
	if resp.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", resp.Code)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	// Logging in leaves the first audit entry.
	if !strings.Contains(page, "login") || !strings.Contains(page, "admin") {
		t.Error("audit page should list the login entry")
	}
}

func TestAuditPage_ReadFailureIsShown(t *testing.T) {
	h := newHarness(t, okBackend)
	h.login(t)

	h.db.Close()

	resp := h.get("/audit")
	if resp.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", resp.Code)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Failed to load the audit log") {
		t.Error("audit read failure should be shown explicitly")
	}
}

func TestAPIListApprovals(t *testing.T) {
	h := newHarness(t, okBackend)

	resp := h.get("/api/approvals")
	if resp.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", resp.Code)
	}
	var items []api.Approval
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Subject.ClientID != "C.1234" {
		t.Errorf("items = %+v", items)
	}
}
