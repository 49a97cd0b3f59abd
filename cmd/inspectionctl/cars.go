package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/vcheckhq/inspection-registry/pkg/inspection"
)

var carsCmd = &cobra.Command{
	Use:   "cars",
	Short: "Manage registered cars",
}

var carsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cars",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if ownerID, _ := cmd.Flags().GetString("owner"); ownerID != "" {
			query.Set("ownerId", ownerID)
		}
		if due, _ := cmd.Flags().GetBool("due"); due {
			query.Set("needingInspection", "true")
		}
		if expired, _ := cmd.Flags().GetBool("expired-insurance"); expired {
			query.Set("expiredInsurance", "true")
		}
		path := "/api/v1/cars"
		if len(query) > 0 {
			path += "?" + query.Encode()
		}

		var cars []inspection.Car
		if err := newClient().getJSON(path, &cars); err != nil {
			return err
		}

		if outputFmt == "table" {
			rows := make([][]string, 0, len(cars))
			for _, c := range cars {
				rows = append(rows, []string{
					c.ID, c.LicensePlate, fmt.Sprintf("%s %s (%d)", c.Make, c.Model, c.Year),
					c.OwnerName, fmt.Sprint(c.InsuranceValid), fmt.Sprint(c.InspectionDue),
				})
			}
			printTable([]string{"id", "plate", "vehicle", "owner", "insured", "due"}, rows)
			return nil
		}
		return printOutput(cars)
	},
}

func init() {
	carsListCmd.Flags().String("owner", "", "Filter by owner ID")
	carsListCmd.Flags().Bool("due", false, "Only cars needing inspection")
	carsListCmd.Flags().Bool("expired-insurance", false, "Only cars with expired insurance")
	carsCmd.AddCommand(carsListCmd)
}
