package api

import (
	"net/url"
	"strconv"
)

// SearchClients runs a client search on the backend. An empty query
// returns the most recently seen clients.
func (c *Client) SearchClients(query string, count int) (*ClientList, error) {
	q := url.Values{}
	q.Set("query", query)
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	var list ClientList
	if err := c.get("/api/clients", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetClient fetches a single client by its ID (e.g. "C.1234").
func (c *Client) GetClient(clientID string) (*ClientInfo, error) {
	var info ClientInfo
	if err := c.get("/api/clients/"+clientID, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
