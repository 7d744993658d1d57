package store

import (
	"time"
)

type RecentView struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Kind     string    `json:"kind"`
	ItemID   string    `json:"item_id"`
	Title    string    `json:"title"`
	ViewedAt time.Time `json:"viewed_at"`
}

// AddRecentView records that a user opened an item. Repeat views of the
// same item replace the earlier row so the list stays deduplicated.
func (db *DB) AddRecentView(username, kind, itemID, title string) error {
	_, err := db.Exec(db.Q(`DELETE FROM recent_views WHERE username=? AND kind=? AND item_id=?`),
		username, kind, itemID)
	if err != nil {
		return err
	}
	_, err = db.Exec(db.Q(`INSERT INTO recent_views (username, kind, item_id, title) VALUES (?, ?, ?, ?)`),
		username, kind, itemID, title)
	return err
}

func (db *DB) ListRecentViews(username string, limit int) ([]*RecentView, error) {
	rows, err := db.Query(db.Q(`SELECT id, username, kind, item_id, title, viewed_at FROM recent_views WHERE username=? ORDER BY id DESC LIMIT ?`),
		username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var views []*RecentView
	for rows.Next() {
		var v RecentView
		var viewedAt any
		if err := rows.Scan(&v.ID, &v.Username, &v.Kind, &v.ItemID, &v.Title, &viewedAt); err != nil {
			return nil, err
		}
		v.ViewedAt = parseTime(viewedAt)
		views = append(views, &v)
	}
	return views, rows.Err()
}

// ListRecentViewUsers returns every username with at least one recent view.
func (db *DB) ListRecentViewUsers() ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT username FROM recent_views`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ClearRecentViews drops all of a user's recent views.
func (db *DB) ClearRecentViews(username string) error {
	_, err := db.Exec(db.Q(`DELETE FROM recent_views WHERE username=?`), username)
	return err
}

// PruneRecentViews keeps only the newest keep rows per user.
func (db *DB) PruneRecentViews(username string, keep int) error {
	_, err := db.Exec(db.Q(`DELETE FROM recent_views WHERE username=? AND id NOT IN (
		SELECT id FROM recent_views WHERE username=? ORDER BY id DESC LIMIT ?)`),
		username, username, keep)
	return err
}
