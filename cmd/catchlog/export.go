// Export command: dump all records as JSON Lines files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records as JSON Lines files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("export", err)
		}
		defer s.Close()

		files, err := s.ExportJSONL(exportDir)
		if err != nil {
			fail("export", err)
		}
		printResult(files, func() {
			for _, f := range files {
				fmt.Println(f)
			}
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "directory to write the export files to")
}
