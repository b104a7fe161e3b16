// Settings commands: vessel and skipper details used to fill the weekly
// form.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage vessel and skipper settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("settings get", err)
		}
		defer s.Close()

		value, err := s.Setting(args[0])
		if err != nil {
			failUser("settings get: " + err.Error())
		}
		fmt.Println(value)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]
		if key == store.KeyFisheriesOffice && types.FisheryOfficeByName(value) == nil {
			failUser(fmt.Sprintf("settings set: unknown fishery office %q", value))
		}

		s, err := openStore()
		if err != nil {
			fail("settings set", err)
		}
		defer s.Close()

		if err := s.SetSetting(key, value); err != nil {
			failUser("settings set: " + err.Error())
		}
	},
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("settings list", err)
		}
		defer s.Close()

		values := map[string]string{}
		for _, key := range store.SettingKeys() {
			value, err := s.Setting(key)
			if err != nil {
				fail("settings list", err)
			}
			values[key] = value
		}
		printResult(values, func() {
			for _, key := range store.SettingKeys() {
				fmt.Printf("%-20s %s\n", key, values[key])
			}
		})
	},
}

var settingsOfficesCmd = &cobra.Command{
	Use:   "offices",
	Short: "List the fishery offices",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		offices := types.FisheryOffices()
		printResult(offices, func() {
			for _, o := range offices {
				fmt.Printf("%-16s %s\n", o.Name, o.Address)
			}
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsOfficesCmd)
}
