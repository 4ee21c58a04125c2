package api

import "context"

// StartTraining kicks off the SkillUp pipeline for a subject. The
// backend requires at least five approved questions and returns 409
// when a run is already in flight.
func (c *Client) StartTraining(ctx context.Context, subjectID int) (*TrainingAccepted, error) {
	var out TrainingAccepted
	if err := c.post(ctx, "/api/training/start/"+itoa(subjectID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTrainingStatus polls the pipeline state for a subject.
func (c *Client) GetTrainingStatus(ctx context.Context, subjectID int) (*TrainingStatus, error) {
	var out TrainingStatus
	if err := c.get(ctx, "/api/training/status/"+itoa(subjectID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActiveSkill returns the trained skill content for a subject.
func (c *Client) GetActiveSkill(ctx context.Context, subjectID int) (*Skill, error) {
	var out Skill
	if err := c.get(ctx, "/api/training/skill/"+itoa(subjectID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
