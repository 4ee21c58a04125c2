package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"council/internal/api"
	"council/internal/forms"
	"council/internal/poll"
	"council/internal/vetting"
)

var (
	rubricName       string
	rubricExamType   string
	rubricDuration   int
	rubricMCQ        int
	rubricMCQMarks   int
	rubricShort      int
	rubricShortMarks int
	rubricEssay      int
	rubricEssayMarks int

	generateRubricID int
	generateWatch    bool
	jobsWatch        bool
)

var rubricsCmd = &cobra.Command{
	Use:   "rubrics",
	Short: "Manage exam paper rubrics",
}

var rubricsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rubrics",
	RunE:  runRubricsList,
}

var rubricsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a rubric",
	Example: `  council rubrics create --name "Midterm" --exam-type midterm --duration 90 \
    --mcq 10 --mcq-marks 1 --short 5 --short-marks 3 --essay 2 --essay-marks 10`,
	RunE: runRubricsCreate,
}

var rubricsDeleteCmd = &cobra.Command{
	Use:   "delete [rubric-id]",
	Short: "Delete a rubric",
	Args:  cobra.ExactArgs(1),
	RunE:  runRubricsDelete,
}

var generateCmd = &cobra.Command{
	Use:   "generate [subject-id]",
	Short: "Start a question generation job",
	Long: `Starts an asynchronous generation job on the backend. The council of
agents drafts, reviews, and selects questions against the subject's
indexed materials. Use --watch to follow progress until completion.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect generation jobs",
}

var jobsShowCmd = &cobra.Command{
	Use:   "show [job-id]",
	Short: "Show job status and metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShow,
}

var jobsQuestionsCmd = &cobra.Command{
	Use:   "questions [job-id]",
	Short: "List the questions a job produced",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsQuestions,
}

var ollamaCmd = &cobra.Command{
	Use:   "ollama",
	Short: "Show backend model runner availability",
	RunE:  runOllama,
}

func runRubricsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	rubrics, err := client.ListRubrics(ctx)
	if err != nil {
		return err
	}
	if len(rubrics) == 0 {
		fmt.Println("No rubrics.")
		return nil
	}
	fmt.Printf("%-5s %-25s %-10s %6s %9s %22s\n", "ID", "NAME", "EXAM", "MARKS", "DURATION", "SECTIONS")
	for _, r := range rubrics {
		sections := fmt.Sprintf("%dxMCQ %dxShort %dxEssay", r.MCQCount, r.ShortCount, r.EssayCount)
		fmt.Printf("%-5d %-25s %-10s %6d %8dm %22s\n",
			r.ID, r.Name, r.ExamType, r.TotalMarks, r.Duration, sections)
	}
	return nil
}

func runRubricsCreate(cmd *cobra.Command, args []string) error {
	req := api.RubricCreate{
		Name:           rubricName,
		ExamType:       rubricExamType,
		Duration:       rubricDuration,
		MCQCount:       rubricMCQ,
		MCQMarksEach:   rubricMCQMarks,
		ShortCount:     rubricShort,
		ShortMarksEach: rubricShortMarks,
		EssayCount:     rubricEssay,
		EssayMarksEach: rubricEssayMarks,
	}
	if err := forms.ValidateRubric(req); err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	rubric, err := client.CreateRubric(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Created rubric #%d %q (%d marks)\n", rubric.ID, rubric.Name, rubric.TotalMarks)
	return nil
}

func runRubricsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "rubric id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.DeleteRubric(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted rubric #%d\n", id)
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	subjectID, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	accepted, err := client.StartGeneration(ctx, generateRubricID, subjectID)
	if err != nil {
		return err
	}
	fmt.Printf("Job #%d started: %s (%d questions requested)\n",
		accepted.JobID, accepted.Status, accepted.TotalQuestionsRequested)

	if !generateWatch {
		fmt.Printf("Follow with: council jobs show %d --watch\n", accepted.JobID)
		return nil
	}
	return watchJob(accepted.JobID)
}

// watchJob streams poller snapshots to stdout until the job finishes
// or the user interrupts.
func watchJob(jobID int) error {
	ctx, cancel := cmdContext()
	defer cancel()

	var last *api.Job
	for snap := range poll.WatchJob(ctx, client, jobID, logger) {
		if snap.Err != nil {
			fmt.Printf("poll error: %v (retrying)\n", snap.Err)
			continue
		}
		last = snap.Value
		fmt.Printf("[%3d%%] %s  %d/%d questions\n",
			last.Progress, last.Status, last.TotalQuestionsGenerated, last.TotalQuestionsRequested)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("interrupted")
	}
	if last == nil {
		return nil
	}
	printJob(last)
	if last.Status == api.JobFailed {
		return fmt.Errorf("job #%d failed", last.ID)
	}
	return nil
}

func printJob(j *api.Job) {
	fmt.Printf("\nJob #%d  %s\n", j.ID, j.Status)
	fmt.Printf("Questions: %d/%d\n", j.TotalQuestionsGenerated, j.TotalQuestionsRequested)
	if j.TotalTimeSeconds > 0 {
		fmt.Printf("Total time: %.1fs  Per question: %.1fs  Avg confidence: %.2f\n",
			j.TotalTimeSeconds, j.AvgTimePerQuestion, j.AvgConfidenceScore)
	}
	if j.ErrorMessage != "" {
		fmt.Printf("Error: %s\n", j.ErrorMessage)
	}
}

func runJobsShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "job id")
	if err != nil {
		return err
	}
	if jobsWatch {
		return watchJob(id)
	}
	ctx, cancel := cmdContext()
	defer cancel()

	job, err := client.GetJob(ctx, id)
	if err != nil {
		return err
	}
	printJob(job)
	return nil
}

func runJobsQuestions(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "job id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	questions, err := client.GetJobQuestions(ctx, id)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Println("No questions.")
		return nil
	}
	for _, q := range questions {
		fmt.Printf("#%d [%s, %d marks, %s] %s\n",
			q.ID, q.QuestionType, q.Marks, q.Status, vetting.Summary(q.Text, 100))
	}
	return nil
}

func runOllama(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	status, err := client.GetOllamaStatus(ctx)
	if err != nil {
		return err
	}
	if !status.Available {
		fmt.Println("Model runner: unavailable")
		return nil
	}
	fmt.Printf("Model runner: available (%s)\n", strings.Join(status.Models, ", "))
	return nil
}

func init() {
	rubricsCreateCmd.Flags().StringVar(&rubricName, "name", "", "rubric name (required)")
	rubricsCreateCmd.Flags().StringVar(&rubricExamType, "exam-type", "", "exam type, e.g. midterm, final (required)")
	rubricsCreateCmd.Flags().IntVar(&rubricDuration, "duration", 60, "exam duration in minutes")
	rubricsCreateCmd.Flags().IntVar(&rubricMCQ, "mcq", 0, "MCQ count")
	rubricsCreateCmd.Flags().IntVar(&rubricMCQMarks, "mcq-marks", 1, "marks per MCQ")
	rubricsCreateCmd.Flags().IntVar(&rubricShort, "short", 0, "short note count")
	rubricsCreateCmd.Flags().IntVar(&rubricShortMarks, "short-marks", 3, "marks per short note")
	rubricsCreateCmd.Flags().IntVar(&rubricEssay, "essay", 0, "essay count")
	rubricsCreateCmd.Flags().IntVar(&rubricEssayMarks, "essay-marks", 10, "marks per essay")
	_ = rubricsCreateCmd.MarkFlagRequired("name")
	_ = rubricsCreateCmd.MarkFlagRequired("exam-type")

	generateCmd.Flags().IntVar(&generateRubricID, "rubric", 0, "rubric id (required)")
	generateCmd.Flags().BoolVar(&generateWatch, "watch", false, "follow progress until the job finishes")
	_ = generateCmd.MarkFlagRequired("rubric")

	jobsShowCmd.Flags().BoolVar(&jobsWatch, "watch", false, "follow progress until the job finishes")

	rubricsCmd.AddCommand(rubricsListCmd)
	rubricsCmd.AddCommand(rubricsCreateCmd)
	rubricsCmd.AddCommand(rubricsDeleteCmd)
	rootCmd.AddCommand(rubricsCmd)

	jobsCmd.AddCommand(jobsShowCmd)
	jobsCmd.AddCommand(jobsQuestionsCmd)
	rootCmd.AddCommand(jobsCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(ollamaCmd)
}
