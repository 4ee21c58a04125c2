package api

import "context"

// ReindexSubject asks the backend to rebuild the retrieval index for
// every material in a subject. The work runs server-side in the
// background; only the acknowledgement is returned.
func (c *Client) ReindexSubject(ctx context.Context, subjectID int) (*Message, error) {
	var out Message
	if err := c.post(ctx, "/api/tools/reindex-subject/"+itoa(subjectID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping hits the liveness probe.
func (c *Client) Ping(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServerInfo returns the backend's identity banner and version.
func (c *Client) GetServerInfo(ctx context.Context) (*ServerInfo, error) {
	var out ServerInfo
	if err := c.get(ctx, "/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
