package console

import (
	"encoding/json"
	"log"
	"time"

	"fleetconsole/api"
	"fleetconsole/config"
	"fleetconsole/messaging"
	"fleetconsole/recents"
	"fleetconsole/store"
)

type LogFunc func(format string, args ...any)

type Config struct {
	AppConfig  *config.Config
	ConfigPath string
	DB         *store.DB
	Backend    *api.Client
	Recents    *recents.Manager
	MsgClient  *messaging.Client
	LogFunc    LogFunc
}

// Console is the wiring hub the web layer talks to. It owns the event
// bus, the audit trail, and the backend health check.
type Console struct {
	cfg        *config.Config
	configPath string
	db         *store.DB
	backend    *api.Client
	recents    *recents.Manager
	msgClient  *messaging.Client
	Events     *EventBus
	logFn      LogFunc
	stopChan   chan struct{}
	backendUp  bool
}

func New(c Config) *Console {
	logFn := c.LogFunc
	if logFn == nil {
		logFn = log.Printf
	}
	return &Console{
		cfg:        c.AppConfig,
		configPath: c.ConfigPath,
		db:         c.DB,
		backend:    c.Backend,
		recents:    c.Recents,
		msgClient:  c.MsgClient,
		Events:     NewEventBus(),
		logFn:      logFn,
		stopChan:   make(chan struct{}),
	}
}

func (c *Console) Start() {
	c.checkBackend()
	go c.backendHealthLoop()
	c.logFn("console: started")
}

func (c *Console) Stop() {
	select {
	case c.stopChan <- struct{}{}:
	default:
	}
}

func (c *Console) AppConfig() *config.Config    { return c.cfg }
func (c *Console) ConfigPath() string           { return c.configPath }
func (c *Console) DB() *store.DB                { return c.db }
func (c *Console) Backend() *api.Client         { return c.backend }
func (c *Console) Recents() *recents.Manager    { return c.recents }
func (c *Console) MsgClient() *messaging.Client { return c.msgClient }
func (c *Console) BackendUp() bool              { return c.backendUp }

// RecordAudit appends an operator action to the SQL audit log and
// queues it for export on the audit topic.
func (c *Console) RecordAudit(actor, action, subject, detail string) {
	if err := c.db.AppendAudit(actor, action, subject, detail); err != nil {
		c.logFn("console: append audit: %v", err)
		return
	}
	env := messaging.NewAuditEnvelope(c.cfg.Messaging.ConsoleID, actor, action, subject, detail)
	data, err := json.Marshal(env)
	if err != nil {
		c.logFn("console: marshal audit envelope: %v", err)
		return
	}
	if err := c.db.EnqueueOutbox(c.cfg.Messaging.AuditTopic, data, "audit_event", actor); err != nil {
		c.logFn("console: enqueue audit: %v", err)
	}
	c.Events.Emit(Event{Type: EventAuditAppended, Payload: AuditAppendedEvent{
		Actor:   actor,
		Action:  action,
		Subject: subject,
	}})
}

// RecordView tracks an item the operator opened: write-through recents,
// plus an audit entry.
func (c *Console) RecordView(username, kind, itemID, title string) {
	if c.recents != nil {
		if err := c.recents.RecordView(username, recents.View{
			Kind:   kind,
			ItemID: itemID,
			Title:  title,
		}); err != nil {
			c.logFn("console: record view: %v", err)
		}
	}
	c.RecordAudit(username, "view", kind+"/"+itemID, title)
	c.Events.Emit(Event{Type: EventRecentViewed, Payload: RecentViewedEvent{
		Username: username,
		Kind:     kind,
		ItemID:   itemID,
		Title:    title,
	}})
}

func (c *Console) backendHealthLoop() {
	interval := c.cfg.Backend.PingInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.checkBackend()
		}
	}
}

func (c *Console) checkBackend() {
	err := c.backend.Ping()
	up := err == nil
	if up == c.backendUp {
		return
	}
	c.backendUp = up
	if up {
		c.logFn("console: backend connected (%s)", c.backend.BaseURL())
		c.Events.Emit(Event{Type: EventBackendConnected, Payload: BackendStatusEvent{BaseURL: c.backend.BaseURL()}})
	} else {
		c.logFn("console: backend unreachable (%v)", err)
		c.Events.Emit(Event{Type: EventBackendDisconnected, Payload: BackendStatusEvent{BaseURL: c.backend.BaseURL(), Err: err.Error()}})
	}
}
