package api

// Wire types for the backend API. These mirror only the fields the
// console ends up using, not the full backend responses.

// TypedValue wraps the backend's {age, value} scalar encoding. Only the
// value is kept.
type TypedValue struct {
	Value string `json:"value"`
}

// Approval is one pending or granted client-access approval.
type Approval struct {
	ID         string         `json:"id"`
	Reason     string         `json:"reason"`
	IsValid    bool           `json:"is_valid"`
	Subject    ApprovalClient `json:"subject"`
	Approvers  []string       `json:"approvers"`
	EmailCcers []string       `json:"email_cc_addresses"`
}

// ApprovalClient is the client an approval refers to.
type ApprovalClient struct {
	ClientID string `json:"client_id"`
	URN      string `json:"urn"`
	Hostname string `json:"hostname"`
}

// ApprovalList is the response to GET /api/users/me/approvals/client.
type ApprovalList struct {
	Items []Approval `json:"items"`
}

// Hunt is one fleet-wide investigation job. The backend nests the
// interesting fields under value, with URN-typed members.
type Hunt struct {
	Value HuntValue `json:"value"`
}

type HuntValue struct {
	URN         TypedValue `json:"urn"`
	Name        TypedValue `json:"name"`
	Description TypedValue `json:"description"`
	Creator     TypedValue `json:"creator"`
	State       TypedValue `json:"state"`
}

// HuntList is the response to GET /api/hunts.
type HuntList struct {
	Items []Hunt `json:"items"`
}

// ClientInfo is one enrolled endpoint, as returned by client search and
// client detail.
type ClientInfo struct {
	URN       string   `json:"urn"`
	Hostname  string   `json:"hostname"`
	OS        string   `json:"os_info"`
	Labels    []string `json:"labels"`
	LastSeen  int64    `json:"last_seen_at"`
	FirstSeen int64    `json:"first_seen_at"`
}

// ClientList is the response to GET /api/clients.
type ClientList struct {
	Items []ClientInfo `json:"items"`
}
