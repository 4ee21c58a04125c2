package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"council/internal/api"
	"council/internal/forms"
)

var (
	subjectName   string
	subjectCode   string
	unitName      string
	unitNumber    int
	syllabusJSON  string
	materialUnit  int
	materialTopic int
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Manage subjects and their syllabus structure",
}

var subjectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all subjects",
	RunE:  runSubjectsList,
}

var subjectsShowCmd = &cobra.Command{
	Use:   "show [subject-id]",
	Short: "Show a subject with its units, topics, and outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsShow,
}

var subjectsCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a subject",
	Example: `  council subjects create --name "Operating Systems" --code CS301`,
	RunE:    runSubjectsCreate,
}

var subjectsDeleteCmd = &cobra.Command{
	Use:   "delete [subject-id]",
	Short: "Delete a subject and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsDelete,
}

var subjectsAddUnitCmd = &cobra.Command{
	Use:   "add-unit [subject-id]",
	Short: "Add a unit to a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsAddUnit,
}

var subjectsDeleteUnitCmd = &cobra.Command{
	Use:   "delete-unit [unit-id]",
	Short: "Delete a unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsDeleteUnit,
}

var subjectsAddTopicCmd = &cobra.Command{
	Use:   "add-topic [unit-id] [title]",
	Short: "Add a topic to a unit",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSubjectsAddTopic,
}

var subjectsDeleteTopicCmd = &cobra.Command{
	Use:   "delete-topic [topic-id]",
	Short: "Delete a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsDeleteTopic,
}

var subjectsSyllabusCmd = &cobra.Command{
	Use:   "set-syllabus [topic-id]",
	Short: "Attach syllabus data to a topic",
	Long:  `Attaches free-form syllabus JSON to a topic, e.g. '{"hours": 6, "keywords": ["paging"]}'.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsSetSyllabus,
}

func parseID(s, what string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}

func runSubjectsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	subjects, err := client.ListSubjects(ctx)
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		fmt.Println("No subjects.")
		return nil
	}
	fmt.Printf("%-5s %-10s %-35s %6s %7s %10s\n", "ID", "CODE", "NAME", "UNITS", "TOPICS", "MATERIALS")
	for _, s := range subjects {
		fmt.Printf("%-5d %-10s %-35s %6d %7d %10d\n",
			s.ID, s.Code, s.Name, s.UnitCount, s.TopicCount, s.MaterialCount)
	}
	return nil
}

func runSubjectsShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	detail, err := client.GetSubject(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)  [#%d]\n\n", detail.Name, detail.Code, detail.ID)

	for _, u := range detail.Units {
		fmt.Printf("Unit %d: %s  [#%d]\n", u.UnitNumber, u.Name, u.ID)
		for _, t := range u.Topics {
			fmt.Printf("  - %s  [#%d]", t.Title, t.ID)
			if t.SampleQuestionsCount > 0 {
				fmt.Printf("  (%d samples)", t.SampleQuestionsCount)
			}
			fmt.Println()
		}
		if len(u.MappedCOs) > 0 {
			codes := make([]string, 0, len(u.MappedCOs))
			for _, co := range u.MappedCOs {
				codes = append(codes, co.Code)
			}
			fmt.Printf("  mapped: %s\n", strings.Join(codes, ", "))
		}
	}

	if len(detail.CourseOutcomes) > 0 {
		fmt.Println("\nCourse Outcomes:")
		for _, co := range detail.CourseOutcomes {
			fmt.Printf("  %s [#%d]  %s  (%s)\n",
				co.Code, co.ID, co.Description, strings.Join(co.BloomsLevels, ", "))
		}
	}

	if len(detail.Materials) > 0 {
		fmt.Println("\nMaterials:")
		for _, m := range detail.Materials {
			fmt.Printf("  #%d %s (%s, %d chunks)\n", m.ID, m.Filename, m.FileType, m.ChunkCount)
		}
	}
	return nil
}

func runSubjectsCreate(cmd *cobra.Command, args []string) error {
	if err := forms.ValidateSubject(subjectName, subjectCode); err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	subject, err := client.CreateSubject(ctx, api.SubjectCreate{Name: subjectName, Code: subjectCode})
	if err != nil {
		return err
	}
	fmt.Printf("Created subject #%d %s (%s)\n", subject.ID, subject.Name, subject.Code)
	return nil
}

func runSubjectsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.DeleteSubject(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted subject #%d\n", id)
	return nil
}

func runSubjectsAddUnit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	if err := forms.ValidateUnit(unitName, unitNumber); err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	unit, err := client.CreateUnit(ctx, id, api.UnitCreate{Name: unitName, UnitNumber: unitNumber})
	if err != nil {
		return err
	}
	fmt.Printf("Created unit #%d %q (unit %d)\n", unit.ID, unit.Name, unit.UnitNumber)
	return nil
}

func runSubjectsDeleteUnit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "unit id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.DeleteUnit(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted unit #%d\n", id)
	return nil
}

func runSubjectsAddTopic(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "unit id")
	if err != nil {
		return err
	}
	title := strings.Join(args[1:], " ")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("topic title is required")
	}
	ctx, cancel := cmdContext()
	defer cancel()

	topic, err := client.CreateTopic(ctx, id, title)
	if err != nil {
		return err
	}
	fmt.Printf("Created topic #%d %q\n", topic.ID, topic.Title)
	return nil
}

func runSubjectsDeleteTopic(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "topic id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.DeleteTopic(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted topic #%d\n", id)
	return nil
}

func runSubjectsSetSyllabus(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "topic id")
	if err != nil {
		return err
	}
	var syllabus map[string]any
	if err := json.Unmarshal([]byte(syllabusJSON), &syllabus); err != nil {
		return fmt.Errorf("failed to parse syllabus json: %w", err)
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.UpdateTopicSyllabus(ctx, id, syllabus); err != nil {
		return err
	}
	fmt.Printf("Updated syllabus for topic #%d\n", id)
	return nil
}

func init() {
	subjectsCreateCmd.Flags().StringVar(&subjectName, "name", "", "subject name (required)")
	subjectsCreateCmd.Flags().StringVar(&subjectCode, "code", "", "subject code (required)")
	_ = subjectsCreateCmd.MarkFlagRequired("name")
	_ = subjectsCreateCmd.MarkFlagRequired("code")

	subjectsAddUnitCmd.Flags().StringVar(&unitName, "name", "", "unit name (required)")
	subjectsAddUnitCmd.Flags().IntVar(&unitNumber, "number", 1, "unit number")
	_ = subjectsAddUnitCmd.MarkFlagRequired("name")

	subjectsSyllabusCmd.Flags().StringVar(&syllabusJSON, "json", "", "syllabus data as JSON (required)")
	_ = subjectsSyllabusCmd.MarkFlagRequired("json")

	subjectsCmd.AddCommand(subjectsListCmd)
	subjectsCmd.AddCommand(subjectsShowCmd)
	subjectsCmd.AddCommand(subjectsCreateCmd)
	subjectsCmd.AddCommand(subjectsDeleteCmd)
	subjectsCmd.AddCommand(subjectsAddUnitCmd)
	subjectsCmd.AddCommand(subjectsDeleteUnitCmd)
	subjectsCmd.AddCommand(subjectsAddTopicCmd)
	subjectsCmd.AddCommand(subjectsDeleteTopicCmd)
	subjectsCmd.AddCommand(subjectsSyllabusCmd)
	rootCmd.AddCommand(subjectsCmd)
}
