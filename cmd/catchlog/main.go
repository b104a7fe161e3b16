// Package main provides the catchlog CLI: offline-first capture of
// fishing activity records with outbox-style sync to a remote endpoint.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
