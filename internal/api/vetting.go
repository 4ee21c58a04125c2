package api

import "context"

// ListVettingBatches returns completed jobs as review batches with
// progress counts.
func (c *Client) ListVettingBatches(ctx context.Context) ([]VettingBatch, error) {
	var out []VettingBatch
	if err := c.get(ctx, "/api/vetting/batches", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VettingQueueFilter narrows the review queue. Zero values are omitted.
type VettingQueueFilter struct {
	Status string // default "pending" server-side
	JobID  int
	Limit  int
}

// GetVettingQueue returns questions awaiting review.
func (c *Client) GetVettingQueue(ctx context.Context, f VettingQueueFilter) ([]Question, error) {
	params := map[string]string{"status": f.Status}
	if f.JobID > 0 {
		params["job_id"] = itoa(f.JobID)
	}
	if f.Limit > 0 {
		params["limit"] = itoa(f.Limit)
	}
	var out []Question
	if err := c.get(ctx, "/api/vetting/queue"+queryString(params), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetQuestion returns one question with its full council trail.
func (c *Client) GetQuestion(ctx context.Context, questionID int) (*Question, error) {
	var out Question
	if err := c.get(ctx, "/api/vetting/question/"+itoa(questionID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitVetting records a faculty decision for a question.
func (c *Client) SubmitVetting(ctx context.Context, sub VettingSubmission) error {
	return c.post(ctx, "/api/vetting/submit", sub, nil)
}

// GetDatasetStats reports vetting progress for a subject and whether
// enough approvals exist to train.
func (c *Client) GetDatasetStats(ctx context.Context, subjectID int) (*DatasetStats, error) {
	var out DatasetStats
	if err := c.get(ctx, "/api/vetting/dataset/"+itoa(subjectID)+"/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
