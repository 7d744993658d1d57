package www

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"fleetconsole/store"
)

const sessionName = "fleetconsole-session"

// Operator sessions expire after 12 hours.
const sessionMaxAge = 12 * 60 * 60

func newSessionStore(secret string) *sessions.CookieStore {
	if secret == "" {
		secret = "fleetconsole-default-secret-change-me"
	}
	s := sessions.NewCookieStore([]byte(secret))
	s.Options.HttpOnly = true
	s.Options.Secure = false // the console runs on plain HTTP behind the ops VPN
	s.Options.SameSite = http.SameSiteLaxMode
	s.Options.MaxAge = sessionMaxAge
	return s
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// currentUser returns the logged-in operator, if any. A session that
// carries the authenticated flag but no username does not count.
func (h *Handlers) currentUser(r *http.Request) (string, bool) {
	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		return "", false
	}
	auth, _ := session.Values["authenticated"].(bool)
	username, _ := session.Values["username"].(string)
	if !auth || username == "" {
		return "", false
	}
	return username, true
}

func (h *Handlers) isAuthenticated(r *http.Request) bool {
	_, ok := h.currentUser(r)
	return ok
}

func (h *Handlers) getUsername(r *http.Request) string {
	username, _ := h.currentUser(r)
	return username
}

func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := h.currentUser(r); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ensureDefaultAdmin bootstraps an admin/admin account on a fresh
// database so the console is reachable on first run.
func (h *Handlers) ensureDefaultAdmin(db *store.DB) {
	exists, err := db.AdminUserExists()
	if err != nil || exists {
		return
	}
	hash, err := hashPassword("admin")
	if err != nil {
		return
	}
	if err := db.CreateAdminUser("admin", hash); err != nil {
		log.Printf("auth: bootstrap admin user: %v", err)
		return
	}
	log.Printf("auth: created default admin user, change its password")
}
