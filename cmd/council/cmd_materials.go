package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sampleType       string
	sampleDifficulty string
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Upload and manage course materials for RAG",
}

var materialsUploadCmd = &cobra.Command{
	Use:   "upload [subject-id] [file]",
	Short: "Upload a PDF, DOCX, or TXT and index it for retrieval",
	Args:  cobra.ExactArgs(2),
	RunE:  runMaterialsUpload,
}

var materialsListCmd = &cobra.Command{
	Use:   "list [subject-id]",
	Short: "List uploaded materials",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialsList,
}

var materialsDeleteCmd = &cobra.Command{
	Use:   "delete [material-id]",
	Short: "Delete a material and its index chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialsDelete,
}

var materialsStatusCmd = &cobra.Command{
	Use:   "rag-status [subject-id]",
	Short: "Show RAG index readiness for a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialsStatus,
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Manage sample questions used for style matching",
}

var samplesUploadCmd = &cobra.Command{
	Use:   "upload [topic-id] [file]",
	Short: "Upload sample questions for a topic",
	Args:  cobra.ExactArgs(2),
	RunE:  runSamplesUpload,
}

var samplesListCmd = &cobra.Command{
	Use:   "list [topic-id]",
	Short: "List sample questions for a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runSamplesList,
}

var samplesDeleteCmd = &cobra.Command{
	Use:   "delete [sample-id]",
	Short: "Delete a sample question",
	Args:  cobra.ExactArgs(1),
	RunE:  runSamplesDelete,
}

func runMaterialsUpload(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	result, err := client.UploadMaterial(ctx, id, args[1], materialUnit, materialTopic)
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded #%d %s (%s, %d chunks indexed)\n",
		result.ID, result.Filename, result.FileType, result.ChunkCount)
	return nil
}

func runMaterialsList(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	materials, err := client.ListMaterials(ctx, id)
	if err != nil {
		return err
	}
	if len(materials) == 0 {
		fmt.Println("No materials.")
		return nil
	}
	fmt.Printf("%-5s %-40s %-6s %7s\n", "ID", "FILE", "TYPE", "CHUNKS")
	for _, m := range materials {
		fmt.Printf("%-5d %-40s %-6s %7d\n", m.ID, m.Filename, m.FileType, m.ChunkCount)
	}
	return nil
}

func runMaterialsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "material id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.DeleteMaterial(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted material #%d\n", id)
	return nil
}

func runMaterialsStatus(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	status, err := client.GetRAGStatus(ctx, id)
	if err != nil {
		return err
	}
	state := "indexing"
	if status.Ready {
		state = "ready"
	}
	fmt.Printf("Subject #%d: %s\n", status.SubjectID, state)
	fmt.Printf("Materials: %d  Chunks: %d  Collection: %s\n",
		status.MaterialCount, status.TotalChunks, status.Collection)
	return nil
}

func runSamplesUpload(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "topic id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	result, err := client.UploadSampleQuestions(ctx, id, args[1], sampleType, sampleDifficulty)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d questions)\n", result.Message, result.Count)
	return nil
}

func runSamplesList(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "topic id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	samples, err := client.ListSampleQuestions(ctx, id)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		fmt.Println("No sample questions.")
		return nil
	}
	for _, s := range samples {
		fmt.Printf("#%d [%s/%s] %s\n", s.ID, s.QuestionType, s.Difficulty, s.Text)
	}
	return nil
}

func runSamplesDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "sample id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	if err := client.DeleteSampleQuestion(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted sample question #%d\n", id)
	return nil
}

func init() {
	materialsUploadCmd.Flags().IntVar(&materialUnit, "unit", 0, "attach to a unit")
	materialsUploadCmd.Flags().IntVar(&materialTopic, "topic", 0, "attach to a topic")

	samplesUploadCmd.Flags().StringVar(&sampleType, "type", "MCQ", "question type (MCQ, Short Notes, Essay)")
	samplesUploadCmd.Flags().StringVar(&sampleDifficulty, "difficulty", "medium", "difficulty (easy, medium, hard)")

	materialsCmd.AddCommand(materialsUploadCmd)
	materialsCmd.AddCommand(materialsListCmd)
	materialsCmd.AddCommand(materialsDeleteCmd)
	materialsCmd.AddCommand(materialsStatusCmd)
	rootCmd.AddCommand(materialsCmd)

	samplesCmd.AddCommand(samplesUploadCmd)
	samplesCmd.AddCommand(samplesListCmd)
	samplesCmd.AddCommand(samplesDeleteCmd)
	rootCmd.AddCommand(samplesCmd)
}
