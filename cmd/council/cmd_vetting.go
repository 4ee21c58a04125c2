package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"council/internal/api"
	"council/internal/forms"
	"council/internal/vetting"
)

var (
	queueJobID  int
	queueStatus string
	queueLimit  int

	vetCOs      []int
	vetBlooms   string
	vetFeedback string
	vetReason   string
	vetText     string
)

var vettingCmd = &cobra.Command{
	Use:   "vetting",
	Short: "Review generated questions and build the training dataset",
}

var vettingBatchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "List completed jobs awaiting review",
	RunE:  runVettingBatches,
}

var vettingQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List questions in the review queue",
	RunE:  runVettingQueue,
}

var vettingShowCmd = &cobra.Command{
	Use:   "show [question-id]",
	Short: "Show a question with its full council trail",
	Args:  cobra.ExactArgs(1),
	RunE:  runVettingShow,
}

var vettingApproveCmd = &cobra.Command{
	Use:     "approve [question-id]",
	Short:   "Approve a question",
	Example: `  council vetting approve 42 --cos 1,3 --blooms Analysis`,
	Args:    cobra.ExactArgs(1),
	RunE:    runVettingApprove,
}

var vettingRejectCmd = &cobra.Command{
	Use:   "reject [question-id]",
	Short: "Reject a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runVettingReject,
}

var vettingEditCmd = &cobra.Command{
	Use:   "edit [question-id]",
	Short: "Approve a question with edited text",
	Args:  cobra.ExactArgs(1),
	RunE:  runVettingEdit,
}

var vettingStatsCmd = &cobra.Command{
	Use:   "stats [subject-id]",
	Short: "Show vetted dataset counts and training readiness",
	Args:  cobra.ExactArgs(1),
	RunE:  runVettingStats,
}

func runVettingBatches(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	batches, err := client.ListVettingBatches(ctx)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Println("No batches awaiting review.")
		return nil
	}
	fmt.Printf("%-6s %-30s %-20s %8s %9s\n", "JOB", "SUBJECT", "RUBRIC", "PENDING", "PROGRESS")
	for _, b := range batches {
		fmt.Printf("%-6d %-30s %-20s %8d %8d%%\n",
			b.JobID, b.SubjectName, b.RubricName, b.PendingCount, b.Progress)
	}
	return nil
}

func runVettingQueue(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	queue, err := client.GetVettingQueue(ctx, api.VettingQueueFilter{
		JobID:  queueJobID,
		Status: queueStatus,
		Limit:  queueLimit,
	})
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		fmt.Println("Queue is empty.")
		return nil
	}
	for _, q := range queue {
		fmt.Printf("#%d [%s, %d marks] %s\n",
			q.ID, q.QuestionType, q.Marks, vetting.Summary(q.Text, 100))
	}
	return nil
}

func runVettingShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "question id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	q, err := client.GetQuestion(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Question #%d  [%s, %d marks, %s]\n\n", q.ID, q.QuestionType, q.Marks, q.Status)
	fmt.Println(vetting.FlattenMarkdown(vetting.ExtractQuestionText(q.Text)))

	options := vetting.ExtractOptions(q.Options, q.QuestionType, q.Text)
	for _, opt := range options {
		fmt.Printf("  %s\n", opt)
	}
	if q.CorrectAnswer != "" {
		fmt.Printf("  answer: %s\n", q.CorrectAnswer)
	}

	if q.ConfidenceScore > 0 {
		fmt.Printf("\nConfidence: %.2f  Selected from: %s\n", q.ConfidenceScore, q.SelectedFrom)
	}
	if q.AgentBReview != "" {
		fmt.Printf("\nReviewer notes:\n%s\n", vetting.FlattenMarkdown(q.AgentBReview))
	}
	return nil
}

func submitVerdict(questionID int, action string) error {
	sub := api.VettingSubmission{
		QuestionID:      questionID,
		Action:          action,
		COMappings:      vetCOs,
		BloomsLevel:     vetBlooms,
		FacultyFeedback: vetFeedback,
		RejectionReason: vetReason,
		EditedText:      vetText,
		ReviewedBy:      cfg.ReviewedBy,
	}
	if err := forms.ValidateVetting(sub); err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.SubmitVetting(ctx, sub); err != nil {
		return err
	}
	fmt.Printf("Recorded %s for question #%d\n", action, questionID)
	return nil
}

func runVettingApprove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "question id")
	if err != nil {
		return err
	}
	return submitVerdict(id, api.VettingApproved)
}

func runVettingReject(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "question id")
	if err != nil {
		return err
	}
	return submitVerdict(id, api.VettingRejected)
}

func runVettingEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "question id")
	if err != nil {
		return err
	}
	return submitVerdict(id, api.VettingEdited)
}

func runVettingStats(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	stats, err := client.GetDatasetStats(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Approved: %d  Rejected: %d  Total vetted: %d\n",
		stats.Approved, stats.Rejected, stats.TotalVetted)
	if stats.ReadyForTraining {
		fmt.Println("Dataset is ready for training.")
	} else {
		fmt.Println("Not enough vetted questions for training yet.")
	}
	return nil
}

func init() {
	vettingQueueCmd.Flags().IntVar(&queueJobID, "job", 0, "filter by job id")
	vettingQueueCmd.Flags().StringVar(&queueStatus, "status", "pending", "filter by status")
	vettingQueueCmd.Flags().IntVar(&queueLimit, "limit", 0, "maximum questions to return")

	for _, c := range []*cobra.Command{vettingApproveCmd, vettingEditCmd} {
		c.Flags().IntSliceVar(&vetCOs, "cos", nil, "course outcome ids (required)")
		c.Flags().StringVar(&vetBlooms, "blooms", "", "Bloom's level of the question")
		c.Flags().StringVar(&vetFeedback, "feedback", "", "faculty feedback")
		_ = c.MarkFlagRequired("cos")
	}
	vettingEditCmd.Flags().StringVar(&vetText, "text", "", "edited question text (required)")
	_ = vettingEditCmd.MarkFlagRequired("text")

	vettingRejectCmd.Flags().StringVar(&vetReason, "reason", "", "rejection reason (required)")
	vettingRejectCmd.Flags().StringVar(&vetFeedback, "feedback", "", "faculty feedback")
	_ = vettingRejectCmd.MarkFlagRequired("reason")

	vettingCmd.AddCommand(vettingBatchesCmd)
	vettingCmd.AddCommand(vettingQueueCmd)
	vettingCmd.AddCommand(vettingShowCmd)
	vettingCmd.AddCommand(vettingApproveCmd)
	vettingCmd.AddCommand(vettingRejectCmd)
	vettingCmd.AddCommand(vettingEditCmd)
	vettingCmd.AddCommand(vettingStatsCmd)
	rootCmd.AddCommand(vettingCmd)
}
