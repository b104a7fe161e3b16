// Wildlife commands: record and list wildlife observations.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

var (
	wildlifeID          int64
	wildlifeDate        string
	wildlifeAnimal      string
	wildlifeSpecies     string
	wildlifeDescription string
	wildlifeNum         int
	wildlifeBehaviour   []string
	wildlifeNotes       string
	wildlifeLat         float64
	wildlifeLng         float64

	wildlifeListUnsubmitted bool
	wildlifeListLimit       int
)

var wildlifeCmd = &cobra.Command{
	Use:   "wildlife",
	Short: "Record and list wildlife observations",
}

var wildlifeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a wildlife observation",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if wildlifeAnimal == "" {
			failUser("wildlife add: --animal is required")
		}
		o := &types.WildlifeObservation{
			Animal:      wildlifeAnimal,
			Species:     wildlifeSpecies,
			Description: wildlifeDescription,
			Num:         wildlifeNum,
			Behaviour:   wildlifeBehaviour,
			Notes:       wildlifeNotes,
		}
		o.ID = wildlifeID

		if wildlifeDate != "" {
			d, err := parseDate(wildlifeDate)
			if err != nil {
				failUser("wildlife add: " + err.Error())
			}
			o.Date = d
		}
		err := setLocation(&o.Location, wildlifeLat, wildlifeLng,
			cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng"))
		if err != nil {
			failUser("wildlife add: " + err.Error())
		}

		s, err := openStore()
		if err != nil {
			fail("wildlife add", err)
		}
		defer s.Close()

		id, err := s.UpsertObservation(o)
		if err != nil {
			fail("wildlife add", err)
		}
		printResult(o, func() {
			fmt.Println("saved observation", id)
			if !o.IsComplete() {
				fmt.Println("observation is incomplete; fill in the remaining fields before sync")
			}
		})
	},
}

var wildlifeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wildlife observations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("wildlife list", err)
		}
		defer s.Close()

		observations, err := s.Observations(store.Query{
			Unsubmitted: wildlifeListUnsubmitted,
			Limit:       wildlifeListLimit,
		})
		if err != nil {
			fail("wildlife list", err)
		}
		printResult(observations, func() {
			for _, o := range observations {
				status := "pending"
				if o.Submitted() {
					status = "submitted"
				}
				what := o.Species
				if what == "" {
					what = o.Animal
				}
				fmt.Printf("%4d  %s  %s x %d  %s  [%s]\n",
					o.ID, o.DateString(true), what, o.Num,
					strings.Join(o.Behaviour, ", "), status)
			}
		})
	},
}

var wildlifeAnimalsCmd = &cobra.Command{
	Use:   "animals",
	Short: "List the animal groups and their subspecies",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		animals := types.WildlifeAnimals()
		printResult(animals, func() {
			for _, a := range animals {
				fmt.Println(a.Name)
				for _, sp := range a.Subspecies {
					fmt.Println("  " + sp)
				}
			}
		})
	},
}

func init() {
	f := wildlifeAddCmd.Flags()
	f.Int64Var(&wildlifeID, "id", 0, "update the observation with this id")
	f.StringVar(&wildlifeDate, "date", "", "observation date (YYYY-MM-DD)")
	f.StringVar(&wildlifeAnimal, "animal", "", "animal group (seal, dolphin, whale, ...)")
	f.StringVar(&wildlifeSpecies, "species", "", "subspecies observed")
	f.StringVar(&wildlifeDescription, "description", "", "free-text description when species is unknown")
	f.IntVar(&wildlifeNum, "num", 1, "number of animals observed")
	f.StringSliceVar(&wildlifeBehaviour, "behaviour", nil, "observed behaviours (repeatable)")
	f.StringVar(&wildlifeNotes, "notes", "", "additional notes")
	f.Float64Var(&wildlifeLat, "lat", 0, "latitude in decimal degrees")
	f.Float64Var(&wildlifeLng, "lng", 0, "longitude in decimal degrees")

	wildlifeListCmd.Flags().BoolVar(&wildlifeListUnsubmitted, "pending", false, "only records pending sync")
	wildlifeListCmd.Flags().IntVar(&wildlifeListLimit, "limit", 0, "maximum records to list")

	wildlifeCmd.AddCommand(wildlifeAddCmd)
	wildlifeCmd.AddCommand(wildlifeListCmd)
	wildlifeCmd.AddCommand(wildlifeAnimalsCmd)
}
