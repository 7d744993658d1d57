package api

import (
	"net/url"
	"strconv"
)

// HuntQuery filters GET /api/hunts.
type HuntQuery struct {
	Count        int
	ActiveWithin string // backend duration literal, e.g. "31d"
	CreatedBy    string // "me" for the current user
}

// ListHunts returns hunts matching the query, most recently active first.
func (c *Client) ListHunts(query HuntQuery) (*HuntList, error) {
	q := url.Values{}
	if query.Count > 0 {
		q.Set("count", strconv.Itoa(query.Count))
	}
	if query.ActiveWithin != "" {
		q.Set("active_within", query.ActiveWithin)
	}
	if query.CreatedBy != "" {
		q.Set("created_by", query.CreatedBy)
	}
	var list HuntList
	if err := c.get("/api/hunts", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetHunt fetches a single hunt by its ID.
func (c *Client) GetHunt(huntID string) (*Hunt, error) {
	var hunt Hunt
	if err := c.get("/api/hunts/"+huntID, nil, &hunt); err != nil {
		return nil, err
	}
	return &hunt, nil
}
