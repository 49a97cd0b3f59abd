package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/vcheckhq/inspection-registry/pkg/inspection"
)

var ownersCmd = &cobra.Command{
	Use:   "owners",
	Short: "Manage vehicle owners",
}

var ownersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vehicle owners",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/api/v1/owners"
		if pending, _ := cmd.Flags().GetBool("pending"); pending {
			path += "?pendingInspections=true"
		}

		var owners []inspection.VehicleOwner
		if err := newClient().getJSON(path, &owners); err != nil {
			return err
		}

		if outputFmt == "table" {
			rows := make([][]string, 0, len(owners))
			for _, o := range owners {
				rows = append(rows, []string{
					o.ID, o.DriverLicense, o.FirstName + " " + o.LastName,
					o.Email, fmt.Sprint(o.TotalVehicles), fmt.Sprint(o.PendingInspections),
				})
			}
			printTable([]string{"id", "license", "name", "email", "vehicles", "pending"}, rows)
			return nil
		}
		return printOutput(owners)
	},
}

var ownersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get one vehicle owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var owner inspection.VehicleOwner
		if err := newClient().getJSON("/api/v1/owners/"+url.PathEscape(args[0]), &owner); err != nil {
			return err
		}

		if outputFmt == "table" {
			printTable(
				[]string{"id", "license", "name", "email", "vehicles", "pending"},
				[][]string{{
					owner.ID, owner.DriverLicense, owner.FirstName + " " + owner.LastName,
					owner.Email, fmt.Sprint(owner.TotalVehicles), fmt.Sprint(owner.PendingInspections),
				}},
			)
			return nil
		}
		return printOutput(owner)
	},
}

func init() {
	ownersListCmd.Flags().Bool("pending", false, "Only owners with pending inspections")
	ownersCmd.AddCommand(ownersListCmd)
	ownersCmd.AddCommand(ownersGetCmd)
}
