// Unit tests for the loopback browser agent.
package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freeLoopbackAddr reserves a loopback port and releases it for the agent
// to claim.
func freeLoopbackAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestBrowserAgentResolvesWithCode(t *testing.T) {
	addr := freeLoopbackAddr(t)
	redirectURI := fmt.Sprintf("http://%s/callback", addr)

	agent := &BrowserAgent{
		Log: testLogger(),
		OpenURL: func(authURL string) error {
			// Stand in for the user completing sign-in: the provider
			// redirects the browser back with the code attached.
			go func() {
				for i := 0; i < 50; i++ {
					resp, err := http.Get(redirectURI + "?code=abc123")
					if err == nil {
						resp.Body.Close()
						return
					}
					time.Sleep(20 * time.Millisecond)
				}
			}()
			return nil
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	code, err := agent.Authorize(ctx, "https://id.example.com/authorize", redirectURI)
	require.NoError(t, err)
	assert.Equal(t, "abc123", code)
}

func TestBrowserAgentCancelled(t *testing.T) {
	addr := freeLoopbackAddr(t)
	redirectURI := fmt.Sprintf("http://%s/callback", addr)

	agent := &BrowserAgent{
		Log:     testLogger(),
		OpenURL: func(string) error { return nil },
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := agent.Authorize(ctx, "https://id.example.com/authorize", redirectURI)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestBrowserAgentRejectsBadRedirectURI(t *testing.T) {
	agent := &BrowserAgent{Log: testLogger(), OpenURL: func(string) error { return nil }}
	_, err := agent.Authorize(context.Background(), "https://id.example.com/authorize", "http://127.0.0.1:notaport/callback")
	require.Error(t, err)
}
