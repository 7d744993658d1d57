package api

import (
	"net/url"
	"strconv"
)

// ListClientApprovals returns the current user's most recent client
// approvals, newest first, capped at count.
func (c *Client) ListClientApprovals(count int) (*ApprovalList, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(count))
	var list ApprovalList
	if err := c.get("/api/users/me/approvals/client", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
