package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var benchmarksOut string

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Pipeline performance metrics",
	RunE:  runBenchmarksShow,
}

var benchmarksJobCmd = &cobra.Command{
	Use:   "job [job-id]",
	Short: "Show per-job benchmark breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runBenchmarksJob,
}

var benchmarksExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export raw benchmark records as JSON",
	RunE:  runBenchmarksExport,
}

func runBenchmarksShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	summary, err := client.GetBenchmarks(ctx)
	if err != nil {
		return err
	}

	o := summary.OverallStats
	fmt.Printf("Jobs: %d  Questions: %d\n", o.TotalJobs, o.TotalQuestions)
	fmt.Printf("Avg confidence: %.2f  Avg time/question: %.1fs\n", o.AvgConfidence, o.AvgTimePerQuestion)
	fmt.Printf("Fastest: %.1fs  Slowest: %.1fs\n", o.FastestQuestion, o.SlowestQuestion)

	if len(summary.PhaseTimings) > 0 {
		fmt.Println("\nPhase timings:")
		phases := make([]string, 0, len(summary.PhaseTimings))
		for p := range summary.PhaseTimings {
			phases = append(phases, p)
		}
		sort.Strings(phases)
		for _, p := range phases {
			fmt.Printf("  %-20s %.2fs\n", p, summary.PhaseTimings[p])
		}
	}

	ce := summary.CouncilEffectiveness
	fmt.Println("\nCouncil effectiveness:")
	fmt.Printf("  Agent A selected: %d  Agent C selected: %d  Combined: %d\n",
		ce.AgentASelected, ce.AgentCSelected, ce.CombinedSelected)
	fmt.Printf("  Approved: %d  Rejected: %d  Pending: %d\n", ce.Approved, ce.Rejected, ce.Pending)

	if len(summary.QuestionTypeStats) > 0 {
		fmt.Println("\nBy question type:")
		for _, row := range summary.QuestionTypeStats {
			fmt.Printf("  %-12s %4d questions  conf %.2f  %.1fs each\n",
				row.Type, row.Count, row.AvgConfidence, row.AvgTime)
		}
	}
	return nil
}

func runBenchmarksJob(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "job id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	jb, err := client.GetJobBenchmarks(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Job #%d: %d records, %.1fs total\n", jb.JobID, jb.TotalRecords, jb.TotalTime)
	if len(jb.ModelsUsed) > 0 {
		fmt.Printf("Models: %s\n", strings.Join(jb.ModelsUsed, ", "))
	}
	if len(jb.PhaseAvgTimes) > 0 {
		fmt.Println("Phase averages:")
		phases := make([]string, 0, len(jb.PhaseAvgTimes))
		for p := range jb.PhaseAvgTimes {
			phases = append(phases, p)
		}
		sort.Strings(phases)
		for _, p := range phases {
			line := fmt.Sprintf("  %-20s %.2fs", p, jb.PhaseAvgTimes[p])
			if rate, ok := jb.PhaseSuccessRates[p]; ok {
				line += fmt.Sprintf("  (%.0f%% success)", rate*100)
			}
			fmt.Println(line)
		}
	}
	return nil
}

func runBenchmarksExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	raw, err := client.ExportBenchmarks(ctx)
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(json.RawMessage(raw), "", "  ")
	if err != nil {
		pretty = raw
	}

	if benchmarksOut == "" || benchmarksOut == "-" {
		fmt.Println(string(pretty))
		return nil
	}
	if err := os.WriteFile(benchmarksOut, pretty, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", benchmarksOut, err)
	}
	fmt.Printf("Wrote %s\n", benchmarksOut)
	return nil
}

func init() {
	benchmarksExportCmd.Flags().StringVarP(&benchmarksOut, "out", "o", "", "output file (default stdout)")

	benchmarksCmd.AddCommand(benchmarksJobCmd)
	benchmarksCmd.AddCommand(benchmarksExportCmd)
	rootCmd.AddCommand(benchmarksCmd)
}
