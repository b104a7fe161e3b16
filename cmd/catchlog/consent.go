// Consent commands: record and inspect the research consent checklist.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pentlandfirth/catchlog/pkg/types"
)

var (
	consentName           string
	consentAllRequired    bool
	consentPhotoTaken     bool
	consentPhotoPublished bool
	consentPhotoFutureUse bool
)

var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Record and inspect research consent",
}

var consentRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record the consent checklist",
	Long: `Record the research consent checklist. --agree ticks every required
box; photography consent is optional and controlled separately.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if consentName == "" {
			failUser("consent record: --name is required")
		}
		if !consentAllRequired {
			failUser("consent record: pass --agree to confirm the required consent items")
		}

		c := &types.Consent{
			UnderstoodSheet:      true,
			QuestionsOpportunity: true,
			QuestionsAnswered:    true,
			UnderstandWithdrawal: true,
			UnderstandCoding:     true,
			Secondary: types.ConsentSecondary{
				AgreeArchiving: true,
				AwareRisks:     true,
				AgreeTakePart:  true,
			},
			Photography: types.ConsentPhotography{
				AgreePhotoTaken:     consentPhotoTaken,
				AgreePhotoPublished: consentPhotoPublished,
				AgreePhotoFutureUse: consentPhotoFutureUse,
			},
			Name: consentName,
			Date: time.Now().UTC(),
		}

		serialized, err := c.Serialize()
		if err != nil {
			fail("consent record", err)
		}

		s, err := openStore()
		if err != nil {
			fail("consent record", err)
		}
		defer s.Close()

		if err := s.RecordConsent(serialized); err != nil {
			fail("consent record", err)
		}
		printResult(c, func() {
			fmt.Printf("consent recorded for %s on %s\n", c.Name, c.DateString(true))
		})
	},
}

var consentStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show consent status",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("consent status", err)
		}
		defer s.Close()

		given, err := s.ConsentStatus()
		if err != nil {
			fail("consent status", err)
		}
		submitted, err := s.ConsentSubmitted()
		if err != nil {
			fail("consent status", err)
		}

		status := struct {
			Given     bool           `json:"given"`
			Submitted bool           `json:"submitted"`
			Details   *types.Consent `json:"details,omitempty"`
		}{Given: given, Submitted: submitted}

		if given {
			details, err := s.ConsentDetails()
			if err != nil {
				fail("consent status", err)
			}
			if details != "" {
				c, err := types.DeserializeConsent(details)
				if err != nil {
					fail("consent status", err)
				}
				status.Details = c
			}
		}

		printResult(status, func() {
			if !status.Given {
				fmt.Println("consent not recorded")
				return
			}
			fmt.Printf("consent given (submitted: %t)\n", status.Submitted)
			if status.Details != nil {
				fmt.Printf("  %s, %s\n", status.Details.Name, status.Details.DateString(true))
			}
		})
	},
}

func init() {
	f := consentRecordCmd.Flags()
	f.StringVar(&consentName, "name", "", "participant name")
	f.BoolVar(&consentAllRequired, "agree", false, "confirm all required consent items")
	f.BoolVar(&consentPhotoTaken, "photo-taken", false, "consent to photographs being taken")
	f.BoolVar(&consentPhotoPublished, "photo-published", false, "consent to photographs being published")
	f.BoolVar(&consentPhotoFutureUse, "photo-future-use", false, "consent to future use of photographs")

	consentCmd.AddCommand(consentRecordCmd)
	consentCmd.AddCommand(consentStatusCmd)
}
