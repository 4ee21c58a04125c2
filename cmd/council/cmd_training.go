package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"council/internal/api"
	"council/internal/poll"
)

var trainingWatch bool

var trainingCmd = &cobra.Command{
	Use:   "training",
	Short: "Train and inspect per-subject skills",
}

var trainingStartCmd = &cobra.Command{
	Use:   "start [subject-id]",
	Short: "Start skill training from the vetted dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrainingStart,
}

var trainingStatusCmd = &cobra.Command{
	Use:   "status [subject-id]",
	Short: "Show the training pipeline status",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrainingStatus,
}

var trainingSkillCmd = &cobra.Command{
	Use:   "skill [subject-id]",
	Short: "Show the active skill for a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrainingSkill,
}

func runTrainingStart(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	accepted, err := client.StartTraining(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Training started: skill #%d v%d (%s)\n",
		accepted.SkillID, accepted.Version, accepted.Status)

	if !trainingWatch {
		fmt.Printf("Follow with: council training status %d --watch\n", id)
		return nil
	}
	return watchTraining(id)
}

// watchTraining streams training snapshots to stdout until the
// pipeline reaches a terminal state.
func watchTraining(subjectID int) error {
	ctx, cancel := cmdContext()
	defer cancel()

	var last *api.TrainingStatus
	for snap := range poll.WatchTraining(ctx, client, subjectID, logger) {
		if snap.Err != nil {
			fmt.Printf("poll error: %v (retrying)\n", snap.Err)
			continue
		}
		last = snap.Value
		fmt.Printf("[%3d%%] %s\n", last.Progress, last.Status)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("interrupted")
	}
	if last == nil {
		return nil
	}
	printTraining(last)
	if last.Status == api.TrainingFailed {
		return fmt.Errorf("training failed")
	}
	return nil
}

func printTraining(s *api.TrainingStatus) {
	fmt.Printf("\nStatus: %s", s.Status)
	if s.Version > 0 {
		fmt.Printf("  (skill v%d)", s.Version)
	}
	fmt.Println()

	switch s.Status {
	case api.TrainingUntrained:
		if s.ReadyForTraining {
			fmt.Println("Dataset is ready for training.")
		} else {
			fmt.Println("Vet more questions to unlock training.")
		}
	case api.TrainingComplete:
		fmt.Printf("Baseline: %.1f%%  Trained: %.1f%%  Improvement: %+.1f%%\n",
			s.BaselineScore, s.TrainedScore, s.ImprovementPct)
		if s.AutoDeactivated {
			fmt.Printf("Skill auto-deactivated: %s\n", s.DeactivationReason)
		} else if s.IsActive {
			fmt.Println("Skill is active for generation.")
		}
	case api.TrainingFailed:
		if s.ErrorMessage != "" {
			fmt.Printf("Error: %s\n", s.ErrorMessage)
		}
	}
	fmt.Printf("Dataset: %d approved, %d rejected used, %d test cases\n",
		s.ApprovedUsed, s.RejectedUsed, s.TotalTestCases)
}

func runTrainingStatus(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	if trainingWatch {
		return watchTraining(id)
	}
	ctx, cancel := cmdContext()
	defer cancel()

	status, err := client.GetTrainingStatus(ctx, id)
	if err != nil {
		return err
	}
	printTraining(status)
	return nil
}

func runTrainingSkill(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	skill, err := client.GetActiveSkill(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Skill #%d v%d  score %.1f%%\n", skill.ID, skill.Version, skill.TrainedScore)
	if skill.SkillContent != "" {
		fmt.Println()
		fmt.Println(skill.SkillContent)
	}
	return nil
}

func init() {
	trainingStartCmd.Flags().BoolVar(&trainingWatch, "watch", false, "follow progress until training finishes")
	trainingStatusCmd.Flags().BoolVar(&trainingWatch, "watch", false, "follow progress until training finishes")

	trainingCmd.AddCommand(trainingStartCmd)
	trainingCmd.AddCommand(trainingStatusCmd)
	trainingCmd.AddCommand(trainingSkillCmd)
	rootCmd.AddCommand(trainingCmd)
}
