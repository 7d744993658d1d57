package www

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"fleetconsole/api"
	"fleetconsole/console"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"timeAgo": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			d := time.Since(t)
			switch {
			case d < time.Minute:
				return "just now"
			case d < time.Hour:
				m := int(d.Minutes())
				if m == 1 {
					return "1 minute ago"
				}
				return fmt.Sprintf("%d minutes ago", m)
			case d < 24*time.Hour:
				h := int(d.Hours())
				if h == 1 {
					return "1 hour ago"
				}
				return fmt.Sprintf("%d hours ago", h)
			default:
				days := int(d.Hours() / 24)
				if days == 1 {
					return "1 day ago"
				}
				return fmt.Sprintf("%d days ago", days)
			}
		},
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04:05")
		},
		// Backend timestamps are microseconds since epoch.
		"epochMicros": func(us int64) string {
			if us == 0 {
				return "-"
			}
			return time.UnixMicro(us).Format("2006-01-02 15:04:05")
		},
		"huntStateColor": func(state string) string {
			switch strings.ToUpper(state) {
			case "STARTED":
				return "badge-running"
			case "PAUSED":
				return "badge-paused"
			case "STOPPED", "COMPLETED":
				return "badge-done"
			default:
				return "badge-unknown"
			}
		},
		"approvalBadge": func(a api.Approval) string {
			if a.IsValid {
				return "badge-granted"
			}
			return "badge-pending"
		},
		"huntID": func(h api.Hunt) string {
			id, err := console.HuntIDFromURN(h.Value.URN.Value)
			if err != nil {
				return h.Value.URN.Value
			}
			return id
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"add": func(a, b int) int {
			return a + b
		},
	}
}

func (h *Handlers) jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handlers) jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
