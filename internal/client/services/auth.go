// Package services contains application services for the bookswap client.
// This file defines the session service: the authentication state machine,
// local credential expiry checks, and login/logout lifecycle.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookswap/internal/client/client"
	"github.com/dmitrijs2005/bookswap/internal/client/models"
	"github.com/dmitrijs2005/bookswap/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/bookswap/internal/common"
	"github.com/dmitrijs2005/bookswap/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Phase is the session state. Exactly one transition path exists: the
// initial PhasePending resolves to PhaseAuthenticated or
// PhaseUnauthenticated on the first CheckAuth, and later transitions happen
// only through CheckAuth, Login, Register, Logout and DeleteAccount.
type Phase string

const (
	PhasePending         Phase = "pending"
	PhaseAuthenticated   Phase = "authenticated"
	PhaseUnauthenticated Phase = "unauthenticated"
)

// Route names an application entry point the UI layer should move to after a
// state transition. The session service never performs navigation itself.
type Route string

const (
	RouteHome  Route = "/"
	RouteLogin Route = "/login"
)

// Navigator receives navigation side effects emitted by session transitions.
// A router-aware layer outside the core implements it.
type Navigator interface {
	Navigate(route Route)
}

// AuthService owns authentication state for the process.
//
// Contract:
//   - Phase: observable current state; consumers must treat PhasePending as
//     "do not yet trust auth state".
//   - CheckAuth: resolve the persisted credential locally, no network.
//   - Login / Register: authenticate against the server; failures come back
//     as result values, never panics.
//   - Logout: synchronous, cannot fail.
//   - DeleteAccount: remove the account server-side, then behave like Logout.
type AuthService interface {
	Phase() Phase
	CheckAuth(ctx context.Context) Phase
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context)
	DeleteAccount(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, updates models.ProfileUpdate) (*models.User, error)
}

type authService struct {
	client client.Client
	creds  credentials.Repository
	nav    Navigator
	log    logging.Logger

	mu    sync.RWMutex
	phase Phase

	// now is a test seam for expiry comparisons.
	now func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// credential store. nav may be nil when no consumer cares about navigation.
func NewAuthService(apiClient client.Client, creds credentials.Repository, nav Navigator, log logging.Logger) AuthService {
	return &authService{
		client: apiClient,
		creds:  creds,
		nav:    nav,
		log:    log,
		phase:  PhasePending,
		now:    time.Now,
	}
}

func (a *authService) Phase() Phase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.phase
}

func (a *authService) setPhase(p Phase) {
	a.mu.Lock()
	a.phase = p
	a.mu.Unlock()
}

func (a *authService) warn(ctx context.Context, msg string, args ...any) {
	if a.log != nil {
		a.log.Warn(ctx, msg, args...)
	}
}

func (a *authService) navigate(route Route) {
	if a.nav != nil {
		a.nav.Navigate(route)
	}
}

// credentialExpired decodes the token locally, without signature
// verification (that stays server-side), and compares the embedded
// expiry to the current time. Tokens without an exp claim never expire
// locally. An undecodable token is reported as an error.
func (a *authService) credentialExpired(token string) (bool, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if exp == nil {
		return false, nil
	}
	return exp.Before(a.now()), nil
}

// CheckAuth resolves the session from the persisted credential. No network
// round trip happens: a missing, undecodable, or expired credential moves
// the session to PhaseUnauthenticated (clearing the store and emitting a
// RouteLogin event); a valid one arms the gateway and moves to
// PhaseAuthenticated.
func (a *authService) CheckAuth(ctx context.Context) Phase {
	token, err := a.creds.Get(ctx)
	if err != nil {
		a.warn(ctx, "failed to read credential store", "error", err)
		token = ""
	}

	if token == "" {
		return a.expire(ctx, false)
	}

	expired, err := a.credentialExpired(token)
	if err != nil {
		a.warn(ctx, "discarding undecodable credential", "error", err)
		return a.expire(ctx, true)
	}
	if expired {
		return a.expire(ctx, true)
	}

	a.client.SetToken(token)
	a.setPhase(PhaseAuthenticated)
	return PhaseAuthenticated
}

// expire is the single path into PhaseUnauthenticated for missing or dead
// credentials. clearStore removes the persisted slot; the RouteLogin event
// is emitted either way so the user lands where they can re-authenticate.
func (a *authService) expire(ctx context.Context, clearStore bool) Phase {
	if clearStore {
		if err := a.creds.Clear(ctx); err != nil {
			a.warn(ctx, "failed to clear credential store", "error", err)
		}
	}
	a.client.ClearToken()
	a.setPhase(PhaseUnauthenticated)
	a.navigate(RouteLogin)
	return PhaseUnauthenticated
}

// Login authenticates against the server. On success the gateway has already
// persisted and armed the returned credential; Login re-runs CheckAuth so
// dependent state reads fresh before PhaseAuthenticated is reported, then
// emits RouteHome. Failures leave the session unauthenticated and surface
// the normalized error to the caller for display.
func (a *authService) Login(ctx context.Context, email, password string) error {
	auth, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.setPhase(PhaseUnauthenticated)
		return err
	}
	return a.completeAuth(ctx, auth)
}

// Register creates an account. The server issues a token right away, so a
// successful registration authenticates the session exactly like Login.
func (a *authService) Register(ctx context.Context, username, email, password string) error {
	auth, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		a.setPhase(PhaseUnauthenticated)
		return err
	}
	return a.completeAuth(ctx, auth)
}

func (a *authService) completeAuth(ctx context.Context, auth *models.AuthResponse) error {
	if auth == nil || auth.Token == "" {
		a.setPhase(PhaseUnauthenticated)
		return fmt.Errorf("%w: no token in auth response", common.ErrInvalidToken)
	}
	if a.CheckAuth(ctx) != PhaseAuthenticated {
		return fmt.Errorf("%w: issued token did not validate", common.ErrInvalidToken)
	}
	a.navigate(RouteHome)
	return nil
}

// Logout clears the credential store, detaches the credential from the
// gateway, and moves to PhaseUnauthenticated. It cannot fail: a store error
// is logged and swallowed, the in-memory transition happens regardless.
func (a *authService) Logout(ctx context.Context) {
	if err := a.creds.Clear(ctx); err != nil {
		a.warn(ctx, "failed to clear credential store on logout", "error", err)
	}
	a.client.ClearToken()
	a.setPhase(PhaseUnauthenticated)
	a.navigate(RouteLogin)
}

// DeleteAccount removes the account server-side. The gateway clears the
// stored and armed credential on success; the session follows it down.
func (a *authService) DeleteAccount(ctx context.Context) error {
	if err := a.client.DeleteAccount(ctx); err != nil {
		return err
	}
	a.setPhase(PhaseUnauthenticated)
	a.navigate(RouteLogin)
	return nil
}

// Profile proxies the current user's profile read.
func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	return a.client.Profile(ctx)
}

// UpdateProfile proxies a partial profile update.
func (a *authService) UpdateProfile(ctx context.Context, updates models.ProfileUpdate) (*models.User, error) {
	return a.client.UpdateProfile(ctx, updates)
}
