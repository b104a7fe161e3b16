// Entry commands: record, list, and delete weekly form entries.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

var (
	entryID           int64
	entryActivityDate string
	entryLandingDate  string
	entryLat          float64
	entryLng          float64
	entryGear         string
	entryMeshSize     string
	entrySpecies      string
	entryState        string
	entryPresentation string
	entryWeight       float64
	entryDIS          bool
	entryBMS          bool
	entryPotsHauled   int
	entryBuyerRef     string

	entryListUnsubmitted bool
	entryListLimit       int
	entryListFull        bool
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Record and manage weekly form entries",
}

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a form entry",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := &types.Entry{
			Gear:                entryGear,
			MeshSize:            entryMeshSize,
			Species:             entrySpecies,
			State:               entryState,
			Presentation:        entryPresentation,
			Weight:              entryWeight,
			DIS:                 entryDIS,
			BMS:                 entryBMS,
			NumPotsHauled:       entryPotsHauled,
			BuyerTransporterRef: entryBuyerRef,
		}
		e.ID = entryID

		if entryActivityDate != "" {
			d, err := parseDate(entryActivityDate)
			if err != nil {
				failUser("entry add: " + err.Error())
			}
			e.ActivityDate = d
		}
		if entryLandingDate != "" {
			d, err := parseDate(entryLandingDate)
			if err != nil {
				failUser("entry add: " + err.Error())
			}
			e.LandingDiscardDate = d
		}
		err := setLocation(&e.Location, entryLat, entryLng,
			cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng"))
		if err != nil {
			failUser("entry add: " + err.Error())
		}
		if err := e.Validate(); err != nil {
			failUser("entry add: " + err.Error())
		}

		s, err := openStore()
		if err != nil {
			fail("entry add", err)
		}
		defer s.Close()

		id, err := s.UpsertEntry(e)
		if err != nil {
			fail("entry add", err)
		}
		printResult(e, func() {
			fmt.Println("saved entry", id)
			if rect := e.IcesRectangle(); rect != "" {
				fmt.Println("ICES rectangle:", rect)
			}
			if !e.IsComplete() {
				fmt.Println("entry is incomplete; fill in the remaining fields before sync")
			}
		})
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List form entries",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("entry list", err)
		}
		defer s.Close()

		if !entryListFull {
			summaries, err := s.EntrySummaries()
			if err != nil {
				fail("entry list", err)
			}
			printResult(summaries, func() {
				for _, e := range summaries {
					fmt.Printf("%4d  %s  %s\n", e.ID, types.DateString(e.ActivityDate, true), e.Species)
				}
			})
			return
		}

		entries, err := s.Entries(store.Query{
			Unsubmitted: entryListUnsubmitted,
			Limit:       entryListLimit,
		})
		if err != nil {
			fail("entry list", err)
		}
		printResult(entries, func() {
			for _, e := range entries {
				status := "pending"
				if e.Submitted() {
					status = "submitted"
				}
				fmt.Printf("%4d  %s  %-12s %.1fkg  %s  %s  [%s]\n",
					e.ID, types.DateString(e.ActivityDate, true), e.Species, e.Weight,
					e.LocationString(), e.IcesRectangle(), status)
			}
		})
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a form entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			failUser("entry delete: invalid id " + args[0])
		}

		s, err := openStore()
		if err != nil {
			fail("entry delete", err)
		}
		defer s.Close()

		if err := s.DeleteEntry(id); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				failUser(fmt.Sprintf("entry delete: no entry with id %d", id))
			}
			fail("entry delete", err)
		}
		fmt.Println("deleted entry", id)
	},
}

func init() {
	f := entryAddCmd.Flags()
	f.Int64Var(&entryID, "id", 0, "update the entry with this id")
	f.StringVar(&entryActivityDate, "activity-date", "", "activity date (YYYY-MM-DD)")
	f.StringVar(&entryLandingDate, "landing-date", "", "landing or discard date (YYYY-MM-DD)")
	f.Float64Var(&entryLat, "lat", 0, "latitude in decimal degrees")
	f.Float64Var(&entryLng, "lng", 0, "longitude in decimal degrees")
	f.StringVar(&entryGear, "gear", "", "gear used")
	f.StringVar(&entryMeshSize, "mesh-size", "", "mesh size")
	f.StringVar(&entrySpecies, "species", "", "species landed or discarded")
	f.StringVar(&entryState, "state", "", "landed state")
	f.StringVar(&entryPresentation, "presentation", "", "presentation")
	f.Float64Var(&entryWeight, "weight", 0, "weight in kg")
	f.BoolVar(&entryDIS, "dis", false, "discarded (DIS)")
	f.BoolVar(&entryBMS, "bms", false, "below minimum size (BMS)")
	f.IntVar(&entryPotsHauled, "pots-hauled", 0, "number of pots hauled")
	f.StringVar(&entryBuyerRef, "buyer-ref", "", "buyer or transporter reference")

	entryListCmd.Flags().BoolVar(&entryListUnsubmitted, "pending", false, "only records pending sync")
	entryListCmd.Flags().IntVar(&entryListLimit, "limit", 0, "maximum records to list")
	entryListCmd.Flags().BoolVar(&entryListFull, "full", false, "list full entries instead of summaries")

	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryDeleteCmd)
}
