package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEnvelope is the wire format for exported audit events.
type AuditEnvelope struct {
	MsgType   string    `json:"msg_type"`
	MsgID     string    `json:"msg_id"`
	ConsoleID string    `json:"console_id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	Detail    string    `json:"detail"`
}

// NewAuditEnvelope creates an outbound envelope with a fresh UUID and
// timestamp.
func NewAuditEnvelope(consoleID, actor, action, subject, detail string) *AuditEnvelope {
	return &AuditEnvelope{
		MsgType:   "audit_event",
		MsgID:     uuid.NewString(),
		ConsoleID: consoleID,
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		Detail:    detail,
	}
}

// DecodeAuditEnvelope unmarshals an exported audit event and checks its type.
func DecodeAuditEnvelope(data []byte) (*AuditEnvelope, error) {
	var env AuditEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode audit envelope: %w", err)
	}
	if env.MsgType != "audit_event" {
		return nil, fmt.Errorf("unknown msg_type: %s", env.MsgType)
	}
	return &env, nil
}
