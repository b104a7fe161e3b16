// Form commands: the week-level details that head the activity form,
// composed from settings and kept as one blob.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

var (
	formComments  string
	formWeekStart string
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Manage the current weekly form header",
}

var formSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Compose the form header from settings and save it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("form save", err)
		}
		defer s.Close()

		f, err := formFromSettings(s)
		if err != nil {
			fail("form save", err)
		}
		f.Comments = formComments
		if formWeekStart != "" {
			d, err := parseDate(formWeekStart)
			if err != nil {
				failUser("form save: " + err.Error())
			}
			f.WeekStart = &d
		}

		serialized, err := f.Serialize()
		if err != nil {
			fail("form save", err)
		}
		if err := s.SetCurrentForm(serialized); err != nil {
			fail("form save", err)
		}
		printResult(f, func() { fmt.Println("form header saved") })
	},
}

var formShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current form header",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("form show", err)
		}
		defer s.Close()

		serialized, err := s.CurrentForm()
		if err != nil {
			fail("form show", err)
		}
		if serialized == "" {
			failUser("form show: no form header saved; run `catchlog form save`")
		}
		f, err := types.DeserializeForm(serialized)
		if err != nil {
			fail("form show", err)
		}
		printResult(f, func() {
			office := ""
			if f.FisheryOffice != nil {
				office = f.FisheryOffice.Name
			}
			fmt.Printf("fishery office:     %s\n", office)
			fmt.Printf("pln:                %s\n", f.PLN)
			fmt.Printf("vessel:             %s\n", f.VesselName)
			fmt.Printf("owner/master:       %s\n", f.OwnerMaster)
			fmt.Printf("address:            %s\n", f.Address)
			fmt.Printf("port of departure:  %s\n", f.PortOfDeparture)
			fmt.Printf("port of landing:    %s\n", f.PortOfLanding)
			fmt.Printf("total pots fishing: %d\n", f.TotalPotsFishing)
			if f.WeekStart != nil {
				fmt.Printf("week starting:      %s\n", types.DateString(*f.WeekStart, true))
			}
			if f.Comments != "" {
				fmt.Printf("comments:           %s\n", f.Comments)
			}
		})
	},
}

// formFromSettings builds the form header from the stored vessel and
// skipper settings.
func formFromSettings(s *store.Store) (*types.Form, error) {
	f := &types.Form{}
	read := func(key string) (string, error) { return s.Setting(key) }

	officeName, err := read(store.KeyFisheriesOffice)
	if err != nil {
		return nil, err
	}
	f.FisheryOffice = types.FisheryOfficeByName(officeName)

	if f.PLN, err = read(store.KeyPLN); err != nil {
		return nil, err
	}
	if f.VesselName, err = read(store.KeyVesselName); err != nil {
		return nil, err
	}
	if f.OwnerMaster, err = read(store.KeyOwnerMaster); err != nil {
		return nil, err
	}
	if f.Address, err = read(store.KeyAddress); err != nil {
		return nil, err
	}
	if f.PortOfDeparture, err = read(store.KeyPortOfDeparture); err != nil {
		return nil, err
	}
	if f.PortOfLanding, err = read(store.KeyPortOfLanding); err != nil {
		return nil, err
	}

	pots, err := read(store.KeyTotalPotsFishing)
	if err != nil {
		return nil, err
	}
	if pots != "" {
		if f.TotalPotsFishing, err = strconv.Atoi(pots); err != nil {
			return nil, fmt.Errorf("total_pots_fishing is not a number: %q", pots)
		}
	}
	return f, nil
}

func init() {
	formSaveCmd.Flags().StringVar(&formComments, "comments", "", "comments for the week")
	formSaveCmd.Flags().StringVar(&formWeekStart, "week-start", "", "week start date (YYYY-MM-DD)")

	formCmd.AddCommand(formSaveCmd)
	formCmd.AddCommand(formShowCmd)
}
