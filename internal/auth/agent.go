package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// BrowserAgent opens the system browser at the authorization endpoint and
// listens on the redirect URI for the authorization code. The redirect URI
// must therefore be a loopback address, e.g. http://127.0.0.1:8910/callback.
type BrowserAgent struct {
	Log *slog.Logger

	// OpenURL launches the user agent. Defaults to the platform opener.
	OpenURL func(url string) error
}

// Authorize implements Agent. It resolves with the code query parameter of
// the first redirect request, or ErrCancelled if ctx ends before the user
// completes sign-in.
func (a *BrowserAgent) Authorize(ctx context.Context, authURL, redirectURI string) (string, error) {
	logger := a.Log
	if logger == nil {
		logger = slog.Default()
	}

	redirect, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("parse redirect URI: %w", err)
	}

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return "", fmt.Errorf("listen on redirect address: %w", err)
	}

	codeCh := make(chan string, 1)
	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, redirect.Path) {
				http.NotFound(w, r)
				return
			}
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "missing code parameter", http.StatusBadRequest)
				return
			}
			fmt.Fprintln(w, "Signed in. You can close this window and return to the app.")
			select {
			case codeCh <- code:
			default:
			}
		}),
	}
	go srv.Serve(ln)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	open := a.OpenURL
	if open == nil {
		open = openInBrowser
	}
	if err := open(authURL); err != nil {
		logger.Warn("could not launch browser, open the URL manually", "url", authURL, "error", err)
	}

	select {
	case code := <-codeCh:
		return code, nil
	case <-ctx.Done():
		return "", ErrCancelled
	}
}

func openInBrowser(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}
