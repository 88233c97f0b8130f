package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/bookswap/internal/client/client"
	"github.com/dmitrijs2005/bookswap/internal/client/config"
	"github.com/dmitrijs2005/bookswap/internal/client/models"
	"github.com/dmitrijs2005/bookswap/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/bookswap/internal/client/services"
	"github.com/dmitrijs2005/bookswap/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the bookswap client core together and drives the REPL. It also
// implements services.Navigator: navigation events from session transitions
// become user-facing hints.
type App struct {
	config *config.Config
	auth   services.AuthService
	books  services.BookService

	reader *bufio.Reader
	out    io.Writer

	// lastView holds the listing the user saw most recently, so numeric
	// command arguments (like 3, show 2) resolve against it.
	lastView []models.Book
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	creds := credentials.NewSQLiteRepository(db)
	apiClient := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, creds, logger)

	app := &App{
		config: c,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	app.auth = services.NewAuthService(apiClient, creds, app, logger)
	app.books = services.NewBookService(apiClient, logger)

	return app, nil
}

// Navigate implements services.Navigator.
func (a *App) Navigate(route services.Route) {
	switch route {
	case services.RouteLogin:
		fmt.Fprintln(a.out, "Please log in ('login') or create an account ('register').")
	case services.RouteHome:
		fmt.Fprintln(a.out, "Logged in. Type 'list' to browse books.")
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.Phase() == services.PhaseAuthenticated
}

func (a *App) getStatus() string {
	switch a.auth.Phase() {
	case services.PhaseAuthenticated:
		return "(online)"
	case services.PhaseUnauthenticated:
		return "(guest)"
	default:
		return "(...)"
	}
}

// Run resolves the persisted session before entering the REPL. Auth state
// stays pending until CheckAuth returns, so nothing reads it earlier.
func (a *App) Run(ctx context.Context) {
	a.auth.CheckAuth(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
