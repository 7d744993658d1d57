package console

const (
	EventAuditAppended EventType = iota + 1
	EventRecentViewed
	EventBackendConnected
	EventBackendDisconnected
)

// --- Event payloads ---

type AuditAppendedEvent struct {
	Actor   string
	Action  string
	Subject string
}

type RecentViewedEvent struct {
	Username string
	Kind     string
	ItemID   string
	Title    string
}

type BackendStatusEvent struct {
	BaseURL string
	Err     string
}
