package api

import "context"

// ListRubrics returns all exam rubrics.
func (c *Client) ListRubrics(ctx context.Context) ([]Rubric, error) {
	var out []Rubric
	if err := c.get(ctx, "/api/rubrics/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRubric creates a rubric. Total marks are computed server-side
// from the section counts.
func (c *Client) CreateRubric(ctx context.Context, req RubricCreate) (*Rubric, error) {
	var out Rubric
	if err := c.post(ctx, "/api/rubrics/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRubric removes a rubric.
func (c *Client) DeleteRubric(ctx context.Context, rubricID int) error {
	return c.delete(ctx, "/api/rubrics/"+itoa(rubricID), nil)
}

// StartGeneration queues a generation job for the rubric and subject.
// The backend rejects subjects without study materials.
func (c *Client) StartGeneration(ctx context.Context, rubricID, subjectID int) (*GenerateAccepted, error) {
	req := struct {
		RubricID  int `json:"rubric_id"`
		SubjectID int `json:"subject_id"`
	}{RubricID: rubricID, SubjectID: subjectID}
	var out GenerateAccepted
	if err := c.post(ctx, "/api/generate/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJob returns a generation job's current status and progress.
func (c *Client) GetJob(ctx context.Context, jobID int) (*Job, error) {
	var out Job
	if err := c.get(ctx, "/api/generate/job/"+itoa(jobID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJobQuestions returns the questions a job has produced so far.
func (c *Client) GetJobQuestions(ctx context.Context, jobID int) ([]Question, error) {
	var out []Question
	if err := c.get(ctx, "/api/generate/job/"+itoa(jobID)+"/questions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOllamaStatus reports whether the backend's model server is up and
// which models it serves.
func (c *Client) GetOllamaStatus(ctx context.Context) (*OllamaStatus, error) {
	var out OllamaStatus
	if err := c.get(ctx, "/api/generate/ollama-status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
