package main

import (
	"github.com/spf13/cobra"
)

var (
	serverURL string
	outputFmt string
)

var rootCmd = &cobra.Command{
	Use:   "inspectionctl",
	Short: "CLI for the inspection registry server",
	Long: `inspectionctl is an operator CLI for the vehicle inspection registry.

It talks to the registry's HTTP API to inspect owners, cars, bookings,
and officer availability.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Inspection registry server URL")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(ownersCmd)
	rootCmd.AddCommand(carsCmd)
	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(slotsCmd)
}
