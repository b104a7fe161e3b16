// Gear commands: record and list gear incidents.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

var (
	gearID       int64
	gearDate     string
	gearIncident string
	gearType     string
	gearNum      int
	gearNotes    string
	gearLat      float64
	gearLng      float64

	gearListUnsubmitted bool
	gearListLimit       int
)

var gearCmd = &cobra.Command{
	Use:   "gear",
	Short: "Record and list gear incidents",
}

var gearAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a gear incident",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		switch gearIncident {
		case types.IncidentLost, types.IncidentFound, types.IncidentUnmarkedCreel:
		default:
			failUser(fmt.Sprintf("gear add: --incident must be %s, %s or %s",
				types.IncidentLost, types.IncidentFound, types.IncidentUnmarkedCreel))
		}

		g := &types.GearIncident{
			IncidentType: gearIncident,
			GearType:     gearType,
			Num:          gearNum,
			Notes:        gearNotes,
		}
		g.ID = gearID

		if gearDate != "" {
			d, err := parseDate(gearDate)
			if err != nil {
				failUser("gear add: " + err.Error())
			}
			g.Date = d
		}
		err := setLocation(&g.Location, gearLat, gearLng,
			cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng"))
		if err != nil {
			failUser("gear add: " + err.Error())
		}

		s, err := openStore()
		if err != nil {
			fail("gear add", err)
		}
		defer s.Close()

		id, err := s.UpsertGearIncident(g)
		if err != nil {
			fail("gear add", err)
		}
		printResult(g, func() {
			fmt.Printf("saved incident %d: %s\n", id, g.Description())
			if !g.IsComplete() {
				fmt.Println("incident is incomplete; set a date and position before sync")
			}
		})
	},
}

var gearListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gear incidents",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("gear list", err)
		}
		defer s.Close()

		incidents, err := s.GearIncidents(store.Query{
			Unsubmitted: gearListUnsubmitted,
			Limit:       gearListLimit,
		})
		if err != nil {
			fail("gear list", err)
		}
		printResult(incidents, func() {
			for _, g := range incidents {
				status := "pending"
				if g.Submitted() {
					status = "submitted"
				}
				fmt.Printf("%4d  %s  %-24s %s  [%s]\n",
					g.ID, g.DateString(true), g.Description(), g.LocationString(), status)
			}
		})
	},
}

func init() {
	f := gearAddCmd.Flags()
	f.Int64Var(&gearID, "id", 0, "update the incident with this id")
	f.StringVar(&gearDate, "date", "", "incident date (YYYY-MM-DD)")
	f.StringVar(&gearIncident, "incident", "", "incident type: lost, found or unmarkedCreel")
	f.StringVar(&gearType, "gear-type", types.GearCreel, "gear type: creel or other")
	f.IntVar(&gearNum, "num", 0, "number of creels involved")
	f.StringVar(&gearNotes, "notes", "", "additional notes")
	f.Float64Var(&gearLat, "lat", 0, "latitude in decimal degrees")
	f.Float64Var(&gearLng, "lng", 0, "longitude in decimal degrees")

	gearListCmd.Flags().BoolVar(&gearListUnsubmitted, "pending", false, "only records pending sync")
	gearListCmd.Flags().IntVar(&gearListLimit, "limit", 0, "maximum records to list")

	gearCmd.AddCommand(gearAddCmd)
	gearCmd.AddCommand(gearListCmd)
}
