// Login and logout commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pentlandfirth/catchlog/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in through the browser",
	Long: `Login opens the configured authorization endpoint in the browser and
waits for the redirect carrying the authorization code. Tokens are stored
locally and refreshed automatically before they expire.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("login", err)
		}
		defer s.Close()

		manager, err := newAuthManager(s)
		if err != nil {
			fail("login", err)
		}

		if err := manager.Authenticate(context.Background()); err != nil {
			if errors.Is(err, auth.ErrCancelled) {
				fmt.Fprintln(os.Stderr, "login cancelled")
				os.Exit(exitUserError)
			}
			fail("login", err)
		}
		fmt.Println("logged in")
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard stored credentials",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail("logout", err)
		}
		defer s.Close()

		manager, err := newAuthManager(s)
		if err != nil {
			fail("logout", err)
		}
		if err := manager.ClearAuthentication(); err != nil {
			fail("logout", err)
		}
		fmt.Println("logged out")
	},
}
