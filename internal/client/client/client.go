package client

import (
	"context"

	"github.com/dmitrijs2005/bookswap/internal/client/models"
)

type Client interface {
	Close() error

	// Auth and profile. Successful Register/Login feed the returned token
	// into the credential store and arm the client; callers never do this
	// themselves. DeleteAccount clears both on success.
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, updates models.ProfileUpdate) (*models.User, error)
	DeleteAccount(ctx context.Context) error
	UserByID(ctx context.Context, id string) (*models.User, error)

	// Books.
	CreateBook(ctx context.Context, draft models.BookDraft) (*models.Book, error)
	Books(ctx context.Context) ([]models.Book, error)
	MyBooks(ctx context.Context) ([]models.Book, error)
	UpdateBook(ctx context.Context, id string, draft models.BookDraft) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) error
	LikeBook(ctx context.Context, id string) error

	// Credential arming. SetToken attaches the bearer credential to every
	// subsequent request; ClearToken detaches it.
	SetToken(token string)
	ClearToken()
	Token() string
}
