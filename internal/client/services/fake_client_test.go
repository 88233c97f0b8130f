package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/bookswap/internal/client/models"
	"github.com/dmitrijs2005/bookswap/internal/client/repositories/credentials"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func setupCreds(t *testing.T) credentials.Repository {
	t.Helper()
	return credentials.NewSQLiteRepository(setupDB(t))
}

// ---- fake navigator ----

type fakeNavigator struct {
	routes []Route
}

func (f *fakeNavigator) Navigate(route Route) {
	f.routes = append(f.routes, route)
}

func (f *fakeNavigator) last() Route {
	if len(f.routes) == 0 {
		return ""
	}
	return f.routes[len(f.routes)-1]
}

// ---- fake client ----

// fakeClient implements client.Client for unit tests of the session and
// collection services.
type fakeClient struct {
	creds credentials.Repository

	// armed credential, mutated through SetToken/ClearToken
	token string

	// preset results
	RegisterResp *models.AuthResponse
	RegisterErr  error

	LoginResp *models.AuthResponse
	LoginErr  error

	ProfileResp *models.User
	ProfileErr  error

	UpdateProfileResp *models.User
	UpdateProfileErr  error

	DeleteAccountErr error

	UsersByID   map[string]*models.User
	UserByIDErr map[string]error

	BooksResp []models.Book
	BooksErr  error

	MyBooksResp []models.Book
	MyBooksErr  error

	CreateBookResp *models.Book
	CreateBookErr  error

	UpdateBookResp *models.Book
	UpdateBookErr  error

	DeleteBookErr error
	LikeBookErr   error

	// captured arguments
	LastLoginEmail    string
	LastLoginPassword string
	LastRegisterName  string
	LastLikedID       string
	LastDeletedID     string
	UserByIDCalls     []string
	LikeCalls         int
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) SetToken(token string) { f.token = token }
func (f *fakeClient) ClearToken()           { f.token = "" }
func (f *fakeClient) Token() string         { return f.token }

// storeAuth mirrors the gateway's side effect: a successful auth operation
// feeds the returned token into the credential store and arms the client.
func (f *fakeClient) storeAuth(ctx context.Context, auth *models.AuthResponse) {
	if auth == nil || auth.Token == "" {
		return
	}
	f.token = auth.Token
	if f.creds != nil {
		_ = f.creds.Set(ctx, auth.Token)
	}
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	f.LastRegisterName = username
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	f.storeAuth(ctx, f.RegisterResp)
	return f.RegisterResp, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	f.storeAuth(ctx, f.LoginResp)
	return f.LoginResp, nil
}

func (f *fakeClient) Profile(ctx context.Context) (*models.User, error) {
	return f.ProfileResp, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, updates models.ProfileUpdate) (*models.User, error) {
	return f.UpdateProfileResp, f.UpdateProfileErr
}

func (f *fakeClient) DeleteAccount(ctx context.Context) error {
	if f.DeleteAccountErr != nil {
		return f.DeleteAccountErr
	}
	f.token = ""
	if f.creds != nil {
		_ = f.creds.Clear(ctx)
	}
	return nil
}

func (f *fakeClient) UserByID(ctx context.Context, id string) (*models.User, error) {
	f.UserByIDCalls = append(f.UserByIDCalls, id)
	if err, ok := f.UserByIDErr[id]; ok {
		return nil, err
	}
	if user, ok := f.UsersByID[id]; ok {
		return user, nil
	}
	return &models.User{ID: id}, nil
}

func (f *fakeClient) CreateBook(ctx context.Context, draft models.BookDraft) (*models.Book, error) {
	return f.CreateBookResp, f.CreateBookErr
}

func (f *fakeClient) Books(ctx context.Context) ([]models.Book, error) {
	if f.BooksErr != nil {
		return nil, f.BooksErr
	}
	out := make([]models.Book, len(f.BooksResp))
	copy(out, f.BooksResp)
	return out, nil
}

func (f *fakeClient) MyBooks(ctx context.Context) ([]models.Book, error) {
	return f.MyBooksResp, f.MyBooksErr
}

func (f *fakeClient) UpdateBook(ctx context.Context, id string, draft models.BookDraft) (*models.Book, error) {
	return f.UpdateBookResp, f.UpdateBookErr
}

func (f *fakeClient) DeleteBook(ctx context.Context, id string) error {
	f.LastDeletedID = id
	return f.DeleteBookErr
}

func (f *fakeClient) LikeBook(ctx context.Context, id string) error {
	f.LikeCalls++
	f.LastLikedID = id
	return f.LikeBookErr
}
