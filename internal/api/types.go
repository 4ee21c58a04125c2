package api

import "encoding/json"

// Wire types for the Council backend. Field names follow the backend's
// JSON exactly. Timestamps stay strings: the backend mixes ISO-8601 and
// str(datetime) renderings depending on the endpoint, so the client
// passes them through unparsed.

// Subject is a subject summary row with aggregate counts.
type Subject struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	CreatedAt     string `json:"created_at"`
	UnitCount     int    `json:"unit_count"`
	TopicCount    int    `json:"topic_count"`
	MaterialCount int    `json:"material_count"`
}

// SubjectCreate is the create-subject request body.
type SubjectCreate struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// SubjectDetail is the full nested subject payload used by the detail screen.
type SubjectDetail struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	CreatedAt      string          `json:"created_at"`
	Units          []Unit          `json:"units"`
	Materials      []Material      `json:"materials"`
	CourseOutcomes []CourseOutcome `json:"course_outcomes"`
}

// Unit groups topics under a subject.
type Unit struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	UnitNumber       int               `json:"unit_number"`
	SubjectID        int               `json:"subject_id"`
	CreatedAt        string            `json:"created_at"`
	Topics           []Topic           `json:"topics,omitempty"`
	LearningOutcomes []LearningOutcome `json:"learning_outcomes,omitempty"`
	MappedCOs        []CourseOutcome   `json:"mapped_cos,omitempty"`
}

// UnitCreate is the create-unit request body.
type UnitCreate struct {
	Name       string `json:"name"`
	UnitNumber int    `json:"unit_number"`
}

// Topic is a syllabus topic within a unit.
type Topic struct {
	ID                   int            `json:"id"`
	Title                string         `json:"title"`
	UnitID               int            `json:"unit_id"`
	CreatedAt            string         `json:"created_at"`
	SyllabusData         map[string]any `json:"syllabus_data,omitempty"`
	SampleQuestionsCount int            `json:"sample_questions_count,omitempty"`
	BloomDistribution    map[string]int `json:"bloom_distribution,omitempty"`
}

// Material is an ingested study-material file.
type Material struct {
	ID                 int    `json:"id"`
	SubjectID          int    `json:"subject_id"`
	UnitID             *int   `json:"unit_id,omitempty"`
	TopicID            *int   `json:"topic_id,omitempty"`
	Filename           string `json:"filename"`
	FileType           string `json:"file_type"`
	ChunkCount         int    `json:"chunk_count"`
	ChromaDBCollection string `json:"chromadb_collection,omitempty"`
	UploadedAt         string `json:"uploaded_at"`
}

// UploadResult is returned by the material upload endpoint.
type UploadResult struct {
	ID         int    `json:"id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	FileType   string `json:"file_type"`
	TopicID    *int   `json:"topic_id"`
}

// SampleQuestion is a faculty-supplied exemplar question for a topic.
type SampleQuestion struct {
	ID           int    `json:"id"`
	TopicID      int    `json:"topic_id"`
	Text         string `json:"text"`
	QuestionType string `json:"question_type"`
	Difficulty   string `json:"difficulty"`
	CreatedAt    string `json:"created_at"`
}

// SampleQuestionUploadResult reports how many questions a file produced.
type SampleQuestionUploadResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// CourseOutcome is a subject-level CO with one or more Bloom's levels.
type CourseOutcome struct {
	ID           int      `json:"id"`
	Description  string   `json:"description,omitempty"`
	Code         string   `json:"code"`
	SubjectID    int      `json:"subject_id"`
	BloomsLevels []string `json:"blooms_levels"`
	CreatedAt    string   `json:"created_at"`
}

// COCreate is the create/update body for a course outcome.
type COCreate struct {
	Description  string   `json:"description,omitempty"`
	Code         string   `json:"code,omitempty"`
	BloomsLevels []string `json:"blooms_levels"`
}

// LearningOutcome is a unit-level LO.
type LearningOutcome struct {
	ID          int    `json:"id"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code"`
	UnitID      int    `json:"unit_id"`
	CreatedAt   string `json:"created_at"`
}

// LOCreate is the create/update body for a learning outcome.
type LOCreate struct {
	Description string `json:"description,omitempty"`
	Code        string `json:"code,omitempty"`
}

// COMappingUpdate replaces the set of COs mapped onto a unit.
type COMappingUpdate struct {
	COIDs []int `json:"co_ids"`
}

// BloomsDistribution is a topic's Bloom's-taxonomy weighting. The
// backend requires the six levels to sum to exactly 100.
type BloomsDistribution struct {
	Knowledge     int `json:"Knowledge"`
	Comprehension int `json:"Comprehension"`
	Application   int `json:"Application"`
	Analysis      int `json:"Analysis"`
	Synthesis     int `json:"Synthesis"`
	Evaluation    int `json:"Evaluation"`
}

// Sum returns the combined weight across all six levels.
func (d BloomsDistribution) Sum() int {
	return d.Knowledge + d.Comprehension + d.Application +
		d.Analysis + d.Synthesis + d.Evaluation
}

// Rubric is an exam composition template.
type Rubric struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ExamType       string `json:"exam_type"`
	TotalMarks     int    `json:"total_marks"`
	Duration       int    `json:"duration"`
	MCQCount       int    `json:"mcq_count"`
	MCQMarksEach   int    `json:"mcq_marks_each"`
	ShortCount     int    `json:"short_count"`
	ShortMarksEach int    `json:"short_marks_each"`
	EssayCount     int    `json:"essay_count"`
	EssayMarksEach int    `json:"essay_marks_each"`
	CreatedAt      string `json:"created_at"`
}

// RubricCreate is the create-rubric request body. TotalMarks is
// computed server-side.
type RubricCreate struct {
	Name           string `json:"name"`
	ExamType       string `json:"exam_type"`
	Duration       int    `json:"duration"`
	MCQCount       int    `json:"mcq_count"`
	MCQMarksEach   int    `json:"mcq_marks_each"`
	ShortCount     int    `json:"short_count"`
	ShortMarksEach int    `json:"short_marks_each"`
	EssayCount     int    `json:"essay_count"`
	EssayMarksEach int    `json:"essay_marks_each"`
}

// GenerateAccepted acknowledges a queued generation job.
type GenerateAccepted struct {
	JobID                   int    `json:"job_id"`
	Status                  string `json:"status"`
	TotalQuestionsRequested int    `json:"total_questions_requested"`
	Message                 string `json:"message"`
}

// Job statuses reported by the backend.
const (
	JobPending   = "pending"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// Job is a generation job with progress and aggregate stats.
type Job struct {
	ID                      int     `json:"id"`
	RubricID                int     `json:"rubric_id"`
	SubjectID               int     `json:"subject_id"`
	Status                  string  `json:"status"`
	Progress                int     `json:"progress"`
	TotalQuestionsRequested int     `json:"total_questions_requested"`
	TotalQuestionsGenerated int     `json:"total_questions_generated"`
	TotalTimeSeconds        float64 `json:"total_time_seconds"`
	AvgTimePerQuestion      float64 `json:"avg_time_per_question"`
	AvgConfidenceScore      float64 `json:"avg_confidence_score"`
	ErrorMessage            string  `json:"error_message,omitempty"`
	StartedAt               string  `json:"started_at,omitempty"`
	CompletedAt             string  `json:"completed_at,omitempty"`
	CreatedAt               string  `json:"created_at"`
}

// Terminal reports whether the job has reached a final state.
func (j Job) Terminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

// JobRef is the tiny job summary embedded in queue questions.
type JobRef struct {
	ID        int `json:"id"`
	SubjectID int `json:"subject_id"`
	RubricID  int `json:"rubric_id"`
}

// Question is a council-generated question with the full deliberation
// trail. Text and drafts may be raw JSON emitted by the council; the
// vetting package flattens them for display.
type Question struct {
	ID                    int             `json:"id"`
	JobID                 int             `json:"job_id"`
	TopicID               *int            `json:"topic_id,omitempty"`
	Text                  string          `json:"text,omitempty"`
	QuestionType          string          `json:"question_type"`
	Options               json.RawMessage `json:"options,omitempty"`
	CorrectAnswer         string          `json:"correct_answer,omitempty"`
	Marks                 int             `json:"marks"`
	Difficulty            string          `json:"difficulty,omitempty"`
	ConfidenceScore       float64         `json:"confidence_score"`
	AgentADraft           string          `json:"agent_a_draft,omitempty"`
	AgentBReview          string          `json:"agent_b_review,omitempty"`
	AgentCDraft           string          `json:"agent_c_draft,omitempty"`
	ChairmanOutput        string          `json:"chairman_output,omitempty"`
	SelectedFrom          string          `json:"selected_from,omitempty"`
	GenerationTimeSeconds float64         `json:"generation_time_seconds"`
	RAGContextUsed        string          `json:"rag_context_used,omitempty"`
	Status                string          `json:"status"`
	FacultyFeedback       string          `json:"faculty_feedback,omitempty"`
	ReviewedAt            string          `json:"reviewed_at,omitempty"`
	CreatedAt             string          `json:"created_at"`
	Job                   *JobRef         `json:"job,omitempty"`
}

// VettingBatch is a completed job viewed as a review batch.
type VettingBatch struct {
	JobID          int    `json:"job_id"`
	SubjectName    string `json:"subject_name"`
	SubjectID      int    `json:"subject_id"`
	RubricName     string `json:"rubric_name"`
	RubricID       int    `json:"rubric_id"`
	TotalQuestions int    `json:"total_questions"`
	VettedCount    int    `json:"vetted_count"`
	PendingCount   int    `json:"pending_count"`
	Progress       int    `json:"progress"`
	CreatedAt      string `json:"created_at,omitempty"`
	CompletedAt    string `json:"completed_at,omitempty"`
}

// Vetting actions accepted by the backend.
const (
	VettingApproved = "approved"
	VettingRejected = "rejected"
	VettingEdited   = "edited"
)

// VettingSubmission is a faculty review decision for one question.
type VettingSubmission struct {
	QuestionID      int               `json:"question_id"`
	Action          string            `json:"action"`
	COMappings      []int             `json:"co_mappings,omitempty"`
	COMappingLevels map[string]string `json:"co_mapping_levels,omitempty"`
	BloomsLevel     string            `json:"blooms_level,omitempty"`
	FacultyFeedback string            `json:"faculty_feedback,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	EditedText      string            `json:"edited_text,omitempty"`
	Difficulty      string            `json:"difficulty,omitempty"`
	ReviewedBy      string            `json:"reviewed_by,omitempty"`
}

// DatasetStats summarizes vetting progress for a subject.
type DatasetStats struct {
	SubjectID        int  `json:"subject_id"`
	Approved         int  `json:"approved"`
	Rejected         int  `json:"rejected"`
	TotalVetted      int  `json:"total_vetted"`
	ReadyForTraining bool `json:"ready_for_training"`
}

// Training statuses reported by the backend. In-flight runs move
// through generating, evaluating_baseline, and evaluating_skill.
const (
	TrainingUntrained          = "untrained"
	TrainingGenerating         = "generating"
	TrainingEvaluatingBaseline = "evaluating_baseline"
	TrainingEvaluatingSkill    = "evaluating_skill"
	TrainingComplete           = "complete"
	TrainingFailed             = "failed"
)

// TrainingStatus is the poll payload for the SkillUp pipeline.
type TrainingStatus struct {
	SkillID            *int           `json:"skill_id,omitempty"`
	Version            int            `json:"version"`
	Status             string         `json:"status"`
	Progress           int            `json:"progress"`
	BaselineScore      float64        `json:"baseline_score"`
	TrainedScore       float64        `json:"trained_score"`
	ImprovementPct     float64        `json:"improvement_pct"`
	TrainingLog        string         `json:"training_log"`
	ErrorMessage       string         `json:"error_message,omitempty"`
	ApprovedUsed       int            `json:"approved_used"`
	RejectedUsed       int            `json:"rejected_used"`
	TotalTestCases     int            `json:"total_test_cases"`
	GeneratedByModel   string         `json:"generated_by_model,omitempty"`
	ReadyForTraining   bool           `json:"ready_for_training"`
	DatasetStats       map[string]int `json:"dataset_stats"`
	IsActive           bool           `json:"is_active"`
	AutoDeactivated    bool           `json:"auto_deactivated"`
	DeactivationReason string         `json:"deactivation_reason,omitempty"`
}

// Terminal reports whether nothing is currently running: the pipeline
// finished, failed, or never started.
func (s TrainingStatus) Terminal() bool {
	switch s.Status {
	case TrainingComplete, TrainingFailed, TrainingUntrained:
		return true
	}
	return false
}

// TrainingAccepted acknowledges a started training run.
type TrainingAccepted struct {
	SkillID int    `json:"skill_id"`
	Version int    `json:"version"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Skill is a trained generation skill for a subject.
type Skill struct {
	ID                 int     `json:"id"`
	SubjectID          int     `json:"subject_id"`
	Version            int     `json:"version"`
	SkillContent       string  `json:"skill_content,omitempty"`
	TrainedScore       float64 `json:"trained_score"`
	IsActive           bool    `json:"is_active"`
	AutoDeactivated    bool    `json:"auto_deactivated"`
	DeactivationReason string  `json:"deactivation_reason,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// RAGStatus reports retrieval readiness for a subject.
type RAGStatus struct {
	SubjectID     int    `json:"subject_id"`
	MaterialCount int    `json:"material_count"`
	TotalChunks   int    `json:"total_chunks"`
	Collection    string `json:"collection"`
	Ready         bool   `json:"ready"`
}

// OllamaStatus reports the backend's model-server availability.
type OllamaStatus struct {
	Available bool     `json:"available"`
	Models    []string `json:"models"`
}

// OverallStats are the headline benchmark numbers.
type OverallStats struct {
	TotalJobs          int     `json:"total_jobs"`
	TotalQuestions     int     `json:"total_questions"`
	AvgConfidence      float64 `json:"avg_confidence"`
	AvgTimePerQuestion float64 `json:"avg_time_per_question"`
	TotalTime          float64 `json:"total_time"`
	FastestQuestion    float64 `json:"fastest_question"`
	SlowestQuestion    float64 `json:"slowest_question"`
}

// CouncilEffectiveness counts which agents won and vetting outcomes.
type CouncilEffectiveness struct {
	AgentASelected   int `json:"agent_a_selected"`
	AgentCSelected   int `json:"agent_c_selected"`
	CombinedSelected int `json:"combined_selected"`
	Approved         int `json:"approved"`
	Rejected         int `json:"rejected"`
	Pending          int `json:"pending"`
}

// QuestionTypeStats is the per-type benchmark breakdown row.
type QuestionTypeStats struct {
	Type          string  `json:"type"`
	Count         int     `json:"count"`
	AvgConfidence float64 `json:"avg_confidence"`
	AvgTime       float64 `json:"avg_time"`
}

// BenchmarkSummary is the aggregate benchmarks payload.
type BenchmarkSummary struct {
	OverallStats         OverallStats         `json:"overall_stats"`
	PhaseTimings         map[string]float64   `json:"phase_timings"`
	CouncilEffectiveness CouncilEffectiveness `json:"council_effectiveness"`
	QuestionTypeStats    []QuestionTypeStats  `json:"question_type_stats"`
}

// JobBenchmarks is the per-job benchmark payload.
type JobBenchmarks struct {
	JobID             int                `json:"job_id"`
	TotalRecords      int                `json:"total_records"`
	TotalTime         float64            `json:"total_time"`
	PhaseAvgTimes     map[string]float64 `json:"phase_avg_times,omitempty"`
	PhaseSuccessRates map[string]float64 `json:"phase_success_rates,omitempty"`
	ModelsUsed        []string           `json:"models_used,omitempty"`
}

// Health is the liveness probe payload.
type Health struct {
	Status string `json:"status"`
}

// ServerInfo is the root probe payload.
type ServerInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// Message is the generic acknowledgement body most mutations return.
type Message struct {
	Message string `json:"message"`
}
