package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"netaudit/internal/codec"
	"netaudit/internal/service"
)

var (
	runsLimit     int
	recordsFormat string
)

// runsCmd lists recent runs
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent check runs",
	RunE:  runRuns,
}

// recordsCmd prints the report for a past run
var recordsCmd = &cobra.Command{
	Use:   "records <run-id>",
	Short: "Show the verdict records of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecords,
}

func runRuns(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.close()

	runSvc := service.NewRunService(env.repo, service.NewEventBus(), env.log)
	runs, err := runSvc.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-9s  %-7s  %s\n", "ID", "CHECK", "STATUS", "RECORDS", "STARTED")
	for _, run := range runs {
		fmt.Printf("%-36s  %-20s  %-9s  %-7d  %s\n",
			run.ID, run.Check, run.Status, run.RecordCount,
			run.StartedAt.Local().Format(time.RFC3339))
	}
	return nil
}

func runRecords(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.close()

	c, err := codec.ForFormat(recordsFormat)
	if err != nil {
		return err
	}

	runSvc := service.NewRunService(env.repo, service.NewEventBus(), env.log)
	run, err := runSvc.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	records, err := runSvc.ListRecords(cmd.Context(), run.ID)
	if err != nil {
		return err
	}

	return c.Write(os.Stdout, codec.Report{Run: *run, Records: records})
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	recordsCmd.Flags().StringVar(&recordsFormat, "format", "json", "Report format: json or yaml")
}
