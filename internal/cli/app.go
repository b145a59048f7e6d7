package cli

import (
	"errors"
	"fmt"

	"github.com/linka-app/linka/internal/api"
	"github.com/linka-app/linka/internal/config"
	"github.com/linka-app/linka/internal/localstore"
	"github.com/linka-app/linka/internal/session"
)

// errNotLoggedIn is the user-facing error for commands that need a session.
var errNotLoggedIn = errors.New("not logged in (run 'linka login' first)")

// app bundles the wired client stack for one command invocation: config,
// persisted state, session store and the API gateway reading its token.
type app struct {
	cfg     *config.Config
	kv      *localstore.Store
	session *session.Store
	client  *api.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	statePath, err := config.StatePath()
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}
	kv, err := localstore.Open(statePath)
	if err != nil {
		return nil, err
	}

	sess := session.NewStore(kv)
	client := api.NewClient(cfg.Backend, sess)

	return &app{cfg: cfg, kv: kv, session: sess, client: client}, nil
}

func (a *app) Close() {
	if a.kv != nil {
		_ = a.kv.Close()
	}
}

// requireAuth fails fast for commands that need a credential, before any
// network round trip.
func (a *app) requireAuth() error {
	if !a.session.Authenticated() {
		return errNotLoggedIn
	}
	return nil
}
