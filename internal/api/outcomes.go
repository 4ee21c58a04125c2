package api

import "context"

// BloomsLevels are the taxonomy levels the backend accepts, in order.
var BloomsLevels = []string{
	"Knowledge", "Comprehension", "Application",
	"Analysis", "Synthesis", "Evaluation",
}

// ListCourseOutcomes returns a subject's COs.
func (c *Client) ListCourseOutcomes(ctx context.Context, subjectID int) ([]CourseOutcome, error) {
	var out []CourseOutcome
	if err := c.get(ctx, "/api/subjects/"+itoa(subjectID)+"/cos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCourseOutcome adds a CO to a subject. Code is auto-assigned
// server-side (CO-n) when empty.
func (c *Client) CreateCourseOutcome(ctx context.Context, subjectID int, req COCreate) (*CourseOutcome, error) {
	var out CourseOutcome
	if err := c.post(ctx, "/api/subjects/"+itoa(subjectID)+"/cos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCourseOutcome updates an existing CO. Zero-valued fields are
// left unchanged by the server.
func (c *Client) UpdateCourseOutcome(ctx context.Context, coID int, req COCreate) (*CourseOutcome, error) {
	var out CourseOutcome
	if err := c.put(ctx, "/api/cos/"+itoa(coID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourseOutcome removes a CO.
func (c *Client) DeleteCourseOutcome(ctx context.Context, coID int) error {
	return c.delete(ctx, "/api/cos/"+itoa(coID), nil)
}

// ListLearningOutcomes returns a unit's LOs.
func (c *Client) ListLearningOutcomes(ctx context.Context, unitID int) ([]LearningOutcome, error) {
	var out []LearningOutcome
	if err := c.get(ctx, "/api/units/"+itoa(unitID)+"/los", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateLearningOutcome adds an LO to a unit. Code is auto-assigned
// server-side (LO-u.n) when empty.
func (c *Client) CreateLearningOutcome(ctx context.Context, unitID int, req LOCreate) (*LearningOutcome, error) {
	var out LearningOutcome
	if err := c.post(ctx, "/api/units/"+itoa(unitID)+"/los", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLearningOutcome updates an existing LO.
func (c *Client) UpdateLearningOutcome(ctx context.Context, loID int, req LOCreate) (*LearningOutcome, error) {
	var out LearningOutcome
	if err := c.put(ctx, "/api/los/"+itoa(loID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLearningOutcome removes an LO.
func (c *Client) DeleteLearningOutcome(ctx context.Context, loID int) error {
	return c.delete(ctx, "/api/los/"+itoa(loID), nil)
}

// GetUnitCOMapping returns the COs currently mapped onto a unit.
func (c *Client) GetUnitCOMapping(ctx context.Context, unitID int) ([]CourseOutcome, error) {
	var out []CourseOutcome
	if err := c.get(ctx, "/api/units/"+itoa(unitID)+"/co-mapping", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUnitCOMapping replaces the unit's CO set.
func (c *Client) UpdateUnitCOMapping(ctx context.Context, unitID int, coIDs []int) error {
	return c.put(ctx, "/api/units/"+itoa(unitID)+"/co-mapping", COMappingUpdate{COIDs: coIDs}, nil)
}

// GetTopicBlooms returns a topic's Bloom's distribution, defaulting to
// all zeros when unset.
func (c *Client) GetTopicBlooms(ctx context.Context, topicID int) (*BloomsDistribution, error) {
	var out struct {
		BloomDistribution BloomsDistribution `json:"bloom_distribution"`
	}
	if err := c.get(ctx, "/api/topics/"+itoa(topicID)+"/blooms", &out); err != nil {
		return nil, err
	}
	return &out.BloomDistribution, nil
}

// UpdateTopicBlooms saves a topic's Bloom's distribution. The server
// rejects distributions that do not sum to 100; callers should
// validate first via forms.ValidateBlooms.
func (c *Client) UpdateTopicBlooms(ctx context.Context, topicID int, dist BloomsDistribution) error {
	return c.put(ctx, "/api/topics/"+itoa(topicID)+"/blooms", dist, nil)
}
