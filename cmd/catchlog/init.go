// Init command: scaffolds the config directory and creates the local
// database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and local database",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configDir, err := resolveConfigDir()
		if err != nil {
			fail("init", err)
		}
		// loadConfig scaffolds config.yaml on first run.
		if _, err := loadConfig(configDir); err != nil {
			fail("init", err)
		}

		s, err := openStore()
		if err != nil {
			fail("init", err)
		}
		defer s.Close()

		dataDir, _ := resolveDataDir()
		fmt.Println("config:", configDir)
		fmt.Println("data:  ", dataDir)
	},
}
