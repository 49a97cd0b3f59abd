package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server liveness and readiness",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		var live map[string]string
		if err := client.getJSON("/healthz", &live); err != nil {
			return err
		}
		var ready map[string]string
		if err := client.getJSON("/readyz", &ready); err != nil {
			return err
		}

		if outputFmt == "table" {
			fmt.Printf("liveness:  %s\n", live["status"])
			fmt.Printf("readiness: %s\n", ready["status"])
			return nil
		}
		return printOutput(map[string]any{"liveness": live, "readiness": ready})
	},
}
