package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netaudit/internal/loader"
	"netaudit/internal/service"
)

// importCmd replaces the inventory snapshot from a YAML file
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an inventory snapshot from YAML",
	Long: `Import a YAML inventory file, replacing the current snapshot.

The snapshot is replaced wholesale: devices and circuits not present in
the file are removed. Past run results are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.close()

	inv, err := loader.LoadFile(args[0])
	if err != nil {
		return err
	}

	invSvc := service.NewInventoryService(env.repo, service.NewEventBus(), env.log)
	counts, err := invSvc.Replace(cmd.Context(), inv)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d devices and %d circuits from %s\n",
		counts.Devices, counts.Circuits, args[0])
	return nil
}
