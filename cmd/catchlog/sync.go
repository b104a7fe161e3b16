// Sync command: one outbox pass for every record kind.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	syncengine "github.com/pentlandfirth/catchlog/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push pending records to the configured endpoint",
	Long: `Sync selects unsubmitted records of every kind and posts each kind as
one batch. Records are marked submitted only after the server acknowledges
the batch; anything else leaves them pending for the next run.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := coreConfig()
		if err != nil {
			fail("sync", err)
		}
		if err := cfg.ValidateSync(); err != nil {
			failUser(fmt.Sprintf("sync: %v (edit config.yaml)", err))
		}

		s, err := openStore()
		if err != nil {
			fail("sync", err)
		}
		defer s.Close()

		manager, err := newAuthManager(s)
		if err != nil {
			fail("sync", err)
		}

		engine := syncengine.New(s, manager, cfg.DataURL, newLogger())
		reports := engine.PostData(context.Background())

		printResult(reports, func() {
			for _, r := range reports {
				switch {
				case r.Err != nil:
					fmt.Printf("%-14s %d pending, failed: %v\n", r.Kind, r.Pending, r.Err)
				case r.Skipped:
					fmt.Printf("%-14s skipped (sync already running)\n", r.Kind)
				case r.Pending == 0:
					fmt.Printf("%-14s nothing to do\n", r.Kind)
				default:
					fmt.Printf("%-14s submitted %d of %d\n", r.Kind, r.Submitted, r.Pending)
				}
			}
		})
	},
}
