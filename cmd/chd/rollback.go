package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback <version-id>",
	Short: "Make an earlier weight version active again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")

		p, store, err := openPipeline()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := p.Rollback(cmd.Context(), args[0], reason); err != nil {
			return err
		}
		fmt.Printf("Active version: %s\n", args[0])
		return nil
	},
}

func init() {
	rollbackCmd.Flags().String("reason", "", "Reason recorded in the provenance log")
}
