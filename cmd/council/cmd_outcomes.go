package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"council/internal/api"
	"council/internal/forms"
)

var (
	outcomeDesc   string
	outcomeCode   string
	outcomeBlooms []string
	mappingCOs    []int

	bloomsKnowledge     int
	bloomsComprehension int
	bloomsApplication   int
	bloomsAnalysis      int
	bloomsSynthesis     int
	bloomsEvaluation    int
)

var outcomesCmd = &cobra.Command{
	Use:   "outcomes",
	Short: "Manage course and learning outcomes",
}

var coListCmd = &cobra.Command{
	Use:   "co-list [subject-id]",
	Short: "List course outcomes for a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runCOList,
}

var coAddCmd = &cobra.Command{
	Use:     "co-add [subject-id]",
	Short:   "Add a course outcome",
	Example: `  council outcomes co-add 1 --desc "Explain CPU scheduling" --blooms Comprehension,Analysis`,
	Args:    cobra.ExactArgs(1),
	RunE:    runCOAdd,
}

var coUpdateCmd = &cobra.Command{
	Use:   "co-update [co-id]",
	Short: "Update a course outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runCOUpdate,
}

var coDeleteCmd = &cobra.Command{
	Use:   "co-delete [co-id]",
	Short: "Delete a course outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runCODelete,
}

var loListCmd = &cobra.Command{
	Use:   "lo-list [unit-id]",
	Short: "List learning outcomes for a unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runLOList,
}

var loAddCmd = &cobra.Command{
	Use:   "lo-add [unit-id]",
	Short: "Add a learning outcome to a unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runLOAdd,
}

var loUpdateCmd = &cobra.Command{
	Use:   "lo-update [lo-id]",
	Short: "Update a learning outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runLOUpdate,
}

var loDeleteCmd = &cobra.Command{
	Use:   "lo-delete [lo-id]",
	Short: "Delete a learning outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runLODelete,
}

var mapUnitCmd = &cobra.Command{
	Use:     "map-unit [unit-id]",
	Short:   "Replace the unit to course outcome mapping",
	Example: `  council outcomes map-unit 4 --cos 1,2,5`,
	Args:    cobra.ExactArgs(1),
	RunE:    runMapUnit,
}

var mapShowCmd = &cobra.Command{
	Use:   "map-show [unit-id]",
	Short: "Show the course outcomes mapped to a unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapShow,
}

var bloomsShowCmd = &cobra.Command{
	Use:   "blooms-show [topic-id]",
	Short: "Show the Bloom's taxonomy distribution for a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runBloomsShow,
}

var bloomsSetCmd = &cobra.Command{
	Use:   "blooms-set [topic-id]",
	Short: "Set the Bloom's taxonomy distribution for a topic",
	Long:  `Sets the six Bloom's level percentages for a topic. They must sum to exactly 100.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBloomsSet,
}

func runCOList(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	cos, err := client.ListCourseOutcomes(ctx, id)
	if err != nil {
		return err
	}
	if len(cos) == 0 {
		fmt.Println("No course outcomes.")
		return nil
	}
	for _, co := range cos {
		fmt.Printf("%s [#%d]  %s  (%s)\n",
			co.Code, co.ID, co.Description, strings.Join(co.BloomsLevels, ", "))
	}
	return nil
}

func runCOAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	if err := forms.ValidateCourseOutcome(outcomeBlooms); err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	co, err := client.CreateCourseOutcome(ctx, id, api.COCreate{
		Description:  outcomeDesc,
		Code:         outcomeCode,
		BloomsLevels: outcomeBlooms,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created %s [#%d]\n", co.Code, co.ID)
	return nil
}

func runCOUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "co id")
	if err != nil {
		return err
	}
	if err := forms.ValidateCourseOutcome(outcomeBlooms); err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	co, err := client.UpdateCourseOutcome(ctx, id, api.COCreate{
		Description:  outcomeDesc,
		Code:         outcomeCode,
		BloomsLevels: outcomeBlooms,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s [#%d]\n", co.Code, co.ID)
	return nil
}

func runCODelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "co id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.DeleteCourseOutcome(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted course outcome #%d\n", id)
	return nil
}

func runLOList(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "unit id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	los, err := client.ListLearningOutcomes(ctx, id)
	if err != nil {
		return err
	}
	if len(los) == 0 {
		fmt.Println("No learning outcomes.")
		return nil
	}
	for _, lo := range los {
		fmt.Printf("%s [#%d]  %s\n", lo.Code, lo.ID, lo.Description)
	}
	return nil
}

func runLOAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "unit id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	lo, err := client.CreateLearningOutcome(ctx, id, api.LOCreate{
		Description: outcomeDesc,
		Code:        outcomeCode,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created %s [#%d]\n", lo.Code, lo.ID)
	return nil
}

func runLOUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "lo id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	lo, err := client.UpdateLearningOutcome(ctx, id, api.LOCreate{
		Description: outcomeDesc,
		Code:        outcomeCode,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s [#%d]\n", lo.Code, lo.ID)
	return nil
}

func runLODelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "lo id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.DeleteLearningOutcome(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted learning outcome #%d\n", id)
	return nil
}

func runMapUnit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "unit id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.UpdateUnitCOMapping(ctx, id, mappingCOs); err != nil {
		return err
	}
	fmt.Printf("Mapped unit #%d to %d course outcomes\n", id, len(mappingCOs))
	return nil
}

func runMapShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "unit id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	cos, err := client.GetUnitCOMapping(ctx, id)
	if err != nil {
		return err
	}
	if len(cos) == 0 {
		fmt.Println("No course outcomes mapped.")
		return nil
	}
	for _, co := range cos {
		fmt.Printf("%s [#%d]  %s\n", co.Code, co.ID, co.Description)
	}
	return nil
}

func runBloomsShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "topic id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	dist, err := client.GetTopicBlooms(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Knowledge:     %3d%%\n", dist.Knowledge)
	fmt.Printf("Comprehension: %3d%%\n", dist.Comprehension)
	fmt.Printf("Application:   %3d%%\n", dist.Application)
	fmt.Printf("Analysis:      %3d%%\n", dist.Analysis)
	fmt.Printf("Synthesis:     %3d%%\n", dist.Synthesis)
	fmt.Printf("Evaluation:    %3d%%\n", dist.Evaluation)
	return nil
}

func runBloomsSet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "topic id")
	if err != nil {
		return err
	}
	dist := api.BloomsDistribution{
		Knowledge:     bloomsKnowledge,
		Comprehension: bloomsComprehension,
		Application:   bloomsApplication,
		Analysis:      bloomsAnalysis,
		Synthesis:     bloomsSynthesis,
		Evaluation:    bloomsEvaluation,
	}
	if err := forms.ValidateBlooms(dist); err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.UpdateTopicBlooms(ctx, id, dist); err != nil {
		return err
	}
	fmt.Printf("Updated Bloom's distribution for topic #%d\n", id)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{coAddCmd, coUpdateCmd, loAddCmd, loUpdateCmd} {
		c.Flags().StringVar(&outcomeDesc, "desc", "", "outcome description")
		c.Flags().StringVar(&outcomeCode, "outcome-code", "", "outcome code (auto-numbered when empty)")
	}
	coAddCmd.Flags().StringSliceVar(&outcomeBlooms, "blooms", nil, "Bloom's levels (required)")
	coUpdateCmd.Flags().StringSliceVar(&outcomeBlooms, "blooms", nil, "Bloom's levels (required)")
	_ = coAddCmd.MarkFlagRequired("blooms")
	_ = coUpdateCmd.MarkFlagRequired("blooms")

	mapUnitCmd.Flags().IntSliceVar(&mappingCOs, "cos", nil, "course outcome ids (required)")
	_ = mapUnitCmd.MarkFlagRequired("cos")

	bloomsSetCmd.Flags().IntVar(&bloomsKnowledge, "knowledge", 0, "Knowledge percentage")
	bloomsSetCmd.Flags().IntVar(&bloomsComprehension, "comprehension", 0, "Comprehension percentage")
	bloomsSetCmd.Flags().IntVar(&bloomsApplication, "application", 0, "Application percentage")
	bloomsSetCmd.Flags().IntVar(&bloomsAnalysis, "analysis", 0, "Analysis percentage")
	bloomsSetCmd.Flags().IntVar(&bloomsSynthesis, "synthesis", 0, "Synthesis percentage")
	bloomsSetCmd.Flags().IntVar(&bloomsEvaluation, "evaluation", 0, "Evaluation percentage")

	outcomesCmd.AddCommand(coListCmd)
	outcomesCmd.AddCommand(coAddCmd)
	outcomesCmd.AddCommand(coUpdateCmd)
	outcomesCmd.AddCommand(coDeleteCmd)
	outcomesCmd.AddCommand(loListCmd)
	outcomesCmd.AddCommand(loAddCmd)
	outcomesCmd.AddCommand(loUpdateCmd)
	outcomesCmd.AddCommand(loDeleteCmd)
	outcomesCmd.AddCommand(mapUnitCmd)
	outcomesCmd.AddCommand(mapShowCmd)
	outcomesCmd.AddCommand(bloomsShowCmd)
	outcomesCmd.AddCommand(bloomsSetCmd)
	rootCmd.AddCommand(outcomesCmd)
}
