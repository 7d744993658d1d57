package recents

import (
	"context"
	"log"
	"time"

	"fleetconsole/store"
)

// How many recently viewed items are kept per operator.
const maxRecent = 10

// Manager provides write-through recents tracking: SQL first, then the
// Redis mirror. Reads prefer Redis and fall back to SQL when the cache
// is cold or unavailable.
type Manager struct {
	db    *store.DB
	redis *RedisStore
}

func NewManager(db *store.DB, redis *RedisStore) *Manager {
	return &Manager{db: db, redis: redis}
}

// RecordView registers that username opened an item.
func (m *Manager) RecordView(username string, v View) error {
	if err := m.db.AddRecentView(username, v.Kind, v.ItemID, v.Title); err != nil {
		return err
	}
	if err := m.db.PruneRecentViews(username, maxRecent); err != nil {
		return err
	}
	m.refreshRedis(username)
	return nil
}

// ListRecent returns the user's recently viewed items, newest first.
func (m *Manager) ListRecent(username string) ([]View, error) {
	if m.redis != nil {
		views, err := m.redis.List(context.Background(), username, maxRecent)
		if err == nil && len(views) > 0 {
			return views, nil
		}
		if err != nil {
			log.Printf("recents: redis list for %s: %v", username, err)
		}
	}
	return m.listFromSQL(username)
}

// ClearRecent drops the user's history from SQL and the Redis mirror.
func (m *Manager) ClearRecent(username string) error {
	if err := m.db.ClearRecentViews(username); err != nil {
		return err
	}
	if m.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := m.redis.Clear(ctx, username); err != nil {
			log.Printf("recents: redis clear for %s: %v", username, err)
		}
	}
	return nil
}

// SyncRedisFromSQL rebuilds every user's Redis mirror from SQL so a
// flushed cache recovers after a restart.
func (m *Manager) SyncRedisFromSQL() error {
	if m.redis == nil {
		return nil
	}
	users, err := m.db.ListRecentViewUsers()
	if err != nil {
		return err
	}
	for _, username := range users {
		m.refreshRedis(username)
	}
	return nil
}

func (m *Manager) listFromSQL(username string) ([]View, error) {
	rows, err := m.db.ListRecentViews(username, maxRecent)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, View{
			Kind:     row.Kind,
			ItemID:   row.ItemID,
			Title:    row.Title,
			ViewedAt: row.ViewedAt,
		})
	}
	return views, nil
}

func (m *Manager) refreshRedis(username string) {
	if m.redis == nil {
		return
	}
	views, err := m.listFromSQL(username)
	if err != nil {
		log.Printf("recents: refresh %s from SQL: %v", username, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.redis.Replace(ctx, username, views); err != nil {
		log.Printf("recents: redis replace for %s: %v", username, err)
	}
}
