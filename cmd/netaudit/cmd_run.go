package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"netaudit/internal/codec"
	"netaudit/internal/service"
)

var (
	runLocations   []string
	runRoles       []string
	runDeviceTypes []string
	runRegex       string
	runFormat      string
)

// checksCmd lists the check catalog
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List available checks",
	RunE:  runChecks,
}

// runCmd executes one check against the snapshot
var runCmd = &cobra.Command{
	Use:   "run <check>",
	Short: "Run a data-quality check",
	Long: `Run one data-quality check against the current inventory snapshot.

Selector flags narrow the audited devices; a device must match every
selector that is set. Defaults for a check can also be set in the config
file and are overridden by flags. The run and its verdicts are stored
and printed as a report.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runChecks(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.close()

	runSvc := service.NewRunService(env.repo, service.NewEventBus(), env.log)
	for _, info := range runSvc.ListChecks() {
		fmt.Printf("%-20s %s\n", info.Name, info.Description)
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.close()

	checkName := args[0]

	// Config defaults first, flags override
	params := env.cfg.ParamsFor(checkName)
	if len(runLocations) > 0 {
		params.Locations = runLocations
	}
	if len(runRoles) > 0 {
		params.Roles = runRoles
	}
	if len(runDeviceTypes) > 0 {
		params.DeviceTypes = runDeviceTypes
	}
	if runRegex != "" {
		params.HostnameRegex = runRegex
	}

	c, err := codec.ForFormat(runFormat)
	if err != nil {
		return err
	}

	runSvc := service.NewRunService(env.repo, service.NewEventBus(), env.log)
	run, runErr := runSvc.Run(cmd.Context(), checkName, params)
	if run == nil {
		return runErr
	}

	records, err := runSvc.ListRecords(cmd.Context(), run.ID)
	if err != nil {
		return err
	}

	if err := c.Write(os.Stdout, codec.Report{Run: *run, Records: records}); err != nil {
		return err
	}

	// A failed run still printed its partial report; surface the failure
	return runErr
}

func init() {
	runCmd.Flags().StringSliceVar(&runLocations, "location", nil, "Restrict to devices in these locations (name or ID)")
	runCmd.Flags().StringSliceVar(&runRoles, "role", nil, "Restrict to devices with these roles (name or ID)")
	runCmd.Flags().StringSliceVar(&runDeviceTypes, "device-type", nil, "Restrict to these device types (name or ID)")
	runCmd.Flags().StringVar(&runRegex, "regex", "", "Hostname pattern (hostname check only)")
	runCmd.Flags().StringVar(&runFormat, "format", "json", "Report format: json or yaml")
}
