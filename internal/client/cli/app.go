// Package cli implements the interactive admin console for the auth service:
// operator login, the invitation-secret ledger, and account registration.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/papper-tech/auth-service/internal/client/api"
	"github.com/papper-tech/auth-service/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Auth service admin console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.showLogin, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) showLogin() string {
	if a.userName == "" {
		return "(not logged in)"
	}
	return a.userName
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	printlnFn("Logged out")
	return nil
}
