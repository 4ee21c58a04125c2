package api

import "context"

// ListSubjects returns all subjects with aggregate counts.
func (c *Client) ListSubjects(ctx context.Context) ([]Subject, error) {
	var out []Subject
	if err := c.get(ctx, "/api/subjects/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSubject returns the nested detail payload for one subject.
func (c *Client) GetSubject(ctx context.Context, subjectID int) (*SubjectDetail, error) {
	var out SubjectDetail
	if err := c.get(ctx, "/api/subjects/"+itoa(subjectID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSubject registers a new subject.
func (c *Client) CreateSubject(ctx context.Context, req SubjectCreate) (*Subject, error) {
	var out Subject
	if err := c.post(ctx, "/api/subjects/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSubject removes a subject and everything under it.
func (c *Client) DeleteSubject(ctx context.Context, subjectID int) error {
	return c.delete(ctx, "/api/subjects/"+itoa(subjectID), nil)
}

// CreateUnit adds a unit to a subject.
func (c *Client) CreateUnit(ctx context.Context, subjectID int, req UnitCreate) (*Unit, error) {
	var out Unit
	if err := c.post(ctx, "/api/subjects/"+itoa(subjectID)+"/units", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUnit removes a unit.
func (c *Client) DeleteUnit(ctx context.Context, unitID int) error {
	return c.delete(ctx, "/api/units/"+itoa(unitID), nil)
}

// CreateTopic adds a topic to a unit.
func (c *Client) CreateTopic(ctx context.Context, unitID int, title string) (*Topic, error) {
	var out Topic
	req := struct {
		Title string `json:"title"`
	}{Title: title}
	if err := c.post(ctx, "/api/units/"+itoa(unitID)+"/topics", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTopic removes a topic.
func (c *Client) DeleteTopic(ctx context.Context, topicID int) error {
	return c.delete(ctx, "/api/topics/"+itoa(topicID), nil)
}

// UpdateTopicSyllabus replaces a topic's syllabus document.
func (c *Client) UpdateTopicSyllabus(ctx context.Context, topicID int, syllabus map[string]any) error {
	req := struct {
		SyllabusData map[string]any `json:"syllabus_data"`
	}{SyllabusData: syllabus}
	return c.post(ctx, "/api/topics/"+itoa(topicID)+"/syllabus", req, nil)
}

// UploadMaterial uploads a study-material file (pdf, docx, txt) for
// ingestion. unitID and topicID scope the material when > 0.
func (c *Client) UploadMaterial(ctx context.Context, subjectID int, filePath string, unitID, topicID int) (*UploadResult, error) {
	fields := map[string]string{}
	if unitID > 0 {
		fields["unit_id"] = itoa(unitID)
	}
	if topicID > 0 {
		fields["topic_id"] = itoa(topicID)
	}
	var out UploadResult
	if err := c.uploadFile(ctx, "/api/subjects/"+itoa(subjectID)+"/upload-material", filePath, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMaterials returns a subject's ingested materials.
func (c *Client) ListMaterials(ctx context.Context, subjectID int) ([]Material, error) {
	var out []Material
	if err := c.get(ctx, "/api/subjects/"+itoa(subjectID)+"/materials", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteMaterial removes a material and its index chunks.
func (c *Client) DeleteMaterial(ctx context.Context, materialID int) error {
	return c.delete(ctx, "/api/materials/"+itoa(materialID), nil)
}

// GetRAGStatus reports retrieval readiness for a subject.
func (c *Client) GetRAGStatus(ctx context.Context, subjectID int) (*RAGStatus, error) {
	var out RAGStatus
	if err := c.get(ctx, "/api/subjects/"+itoa(subjectID)+"/rag-status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadSampleQuestions uploads a question bank file (pdf, docx, csv,
// xlsx) for a topic. questionType and difficulty are defaults applied
// to every extracted question; empty values use the server defaults.
func (c *Client) UploadSampleQuestions(ctx context.Context, topicID int, filePath, questionType, difficulty string) (*SampleQuestionUploadResult, error) {
	fields := map[string]string{
		"question_type": questionType,
		"difficulty":    difficulty,
	}
	var out SampleQuestionUploadResult
	if err := c.uploadFile(ctx, "/api/topics/"+itoa(topicID)+"/sample-questions", filePath, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSampleQuestions returns the exemplar questions for a topic.
func (c *Client) ListSampleQuestions(ctx context.Context, topicID int) ([]SampleQuestion, error) {
	var out []SampleQuestion
	if err := c.get(ctx, "/api/topics/"+itoa(topicID)+"/sample-questions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSampleQuestion removes one exemplar question.
func (c *Client) DeleteSampleQuestion(ctx context.Context, sampleQuestionID int) error {
	return c.delete(ctx, "/api/sample-questions/"+itoa(sampleQuestionID), nil)
}
