package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/vcheckhq/inspection-registry/pkg/inspection"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Manage inspection bookings",
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inspection bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if ownerID, _ := cmd.Flags().GetString("owner"); ownerID != "" {
			query.Set("ownerId", ownerID)
		}
		if officerID, _ := cmd.Flags().GetString("officer"); officerID != "" {
			query.Set("officerId", officerID)
		}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			query.Set("status", status)
		}
		path := "/api/v1/bookings"
		if len(query) > 0 {
			path += "?" + query.Encode()
		}

		var bookings []inspection.InspectionBooking
		if err := newClient().getJSON(path, &bookings); err != nil {
			return err
		}

		if outputFmt == "table" {
			rows := make([][]string, 0, len(bookings))
			for _, b := range bookings {
				rows = append(rows, []string{
					b.ID, b.CarLicensePlate, b.OwnerName, b.OfficerName,
					b.ScheduledDateTime.Format(time.RFC3339), string(b.Status),
				})
			}
			printTable([]string{"id", "plate", "owner", "officer", "scheduled", "status"}, rows)
			return nil
		}
		return printOutput(bookings)
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Show an officer's free booking slots for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		officerID, _ := cmd.Flags().GetString("officer")
		if officerID == "" {
			return fmt.Errorf("--officer is required")
		}
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		query := url.Values{}
		query.Set("officerId", officerID)
		query.Set("date", date)

		var result struct {
			OfficerID string      `json:"officerId"`
			Slots     []time.Time `json:"slots"`
		}
		if err := newClient().getJSON("/api/v1/bookings/slots?"+query.Encode(), &result); err != nil {
			return err
		}

		if outputFmt == "table" {
			rows := make([][]string, 0, len(result.Slots))
			for _, slot := range result.Slots {
				rows = append(rows, []string{result.OfficerID, slot.Format(time.RFC3339)})
			}
			printTable([]string{"officer", "slot"}, rows)
			return nil
		}
		return printOutput(result)
	},
}

func init() {
	bookingsListCmd.Flags().String("owner", "", "Filter by owner ID")
	bookingsListCmd.Flags().String("officer", "", "Filter by officer ID")
	bookingsListCmd.Flags().String("status", "", "Filter by booking status")
	bookingsCmd.AddCommand(bookingsListCmd)

	slotsCmd.Flags().String("officer", "", "Officer ID (required)")
	slotsCmd.Flags().String("date", "", "Day to check, YYYY-MM-DD (default today)")
}
