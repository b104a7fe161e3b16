// Catch commands: record and list catches.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

var (
	catchDate     string
	catchSpecies  string
	catchCaught   int
	catchRetained int
	catchID       int64

	catchListUnsubmitted bool
	catchListLimit       int
)

var catchCmd = &cobra.Command{
	Use:   "catch",
	Short: "Record and list catches",
}

var catchAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a catch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if catchSpecies == "" {
			failUser("catch add: --species is required")
		}
		date, err := parseDate(catchDate)
		if err != nil {
			failUser("catch add: " + err.Error())
		}

		c := &types.Catch{
			Date:     date,
			Species:  catchSpecies,
			Caught:   catchCaught,
			Retained: catchRetained,
		}
		c.ID = catchID
		if err := c.Validate(); err != nil {
			failUser("catch add: " + err.Error())
		}

		s, err := openStore()
		if err != nil {
			fail("catch add", err)
		}
		defer s.Close()

		id, err := s.UpsertCatch(c)
		if err != nil {
			fail("catch add", err)
		}
		printResult(c, func() { fmt.Println("saved catch", id) })
	},
}

var catchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded catches",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("catch list", err)
		}
		defer s.Close()

		catches, err := s.Catches(store.Query{
			Unsubmitted: catchListUnsubmitted,
			Limit:       catchListLimit,
		})
		if err != nil {
			fail("catch list", err)
		}
		printResult(catches, func() {
			for _, c := range catches {
				status := "pending"
				if c.Submitted() {
					status = "submitted"
				}
				fmt.Printf("%4d  %s  %-12s caught %d retained %d  [%s]\n",
					c.ID, c.DateString(true), c.Species, c.Caught, c.Retained, status)
			}
		})
	},
}

func init() {
	catchAddCmd.Flags().StringVar(&catchDate, "date", "", "catch date (YYYY-MM-DD)")
	catchAddCmd.Flags().StringVar(&catchSpecies, "species", "", "species caught")
	catchAddCmd.Flags().IntVar(&catchCaught, "caught", 0, "number caught")
	catchAddCmd.Flags().IntVar(&catchRetained, "retained", 0, "number retained")
	catchAddCmd.Flags().Int64Var(&catchID, "id", 0, "update the catch with this id")

	catchListCmd.Flags().BoolVar(&catchListUnsubmitted, "pending", false, "only records pending sync")
	catchListCmd.Flags().IntVar(&catchListLimit, "limit", 0, "maximum records to list")

	catchCmd.AddCommand(catchAddCmd)
	catchCmd.AddCommand(catchListCmd)
}
