package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookswap/internal/client/client"
	"github.com/dmitrijs2005/bookswap/internal/client/models"
	"github.com/dmitrijs2005/bookswap/internal/logging"
)

// UnknownUser is the display label used when an owner's username cannot be
// resolved.
const UnknownUser = "Unknown"

// BookService maintains the authoritative fetched book collection and a
// derived, always-consistent filtered view, plus optimistic like toggling.
//
// The filtered view is a pure function of (collection, search term, selected
// genre): it is recomputed on demand and never stored, so it cannot diverge.
// Liked state is a per-session local approximation of server truth; it is
// never fetched and resets whenever the collection reloads.
type BookService interface {
	Load(ctx context.Context) error
	Books() []models.Book
	Filtered() []models.Book

	SearchTerm() string
	SetSearchTerm(term string)
	Genre() string
	SetGenre(genre string)

	ToggleLike(ctx context.Context, id string) error
	Liked(id string) bool

	ToggleExpanded(id string)
	Expanded(id string) bool

	Username(ownerID string) string

	MyBooks(ctx context.Context) ([]models.Book, error)
	Create(ctx context.Context, draft models.BookDraft) (*models.Book, error)
	Update(ctx context.Context, id string, draft models.BookDraft) (*models.Book, error)
	Delete(ctx context.Context, id string) error
}

type bookService struct {
	client client.Client
	log    logging.Logger

	// mu keeps every mutation atomic with respect to Filtered(): a reader
	// never observes a half-updated collection.
	mu         sync.Mutex
	books      []models.Book
	searchTerm string
	genre      string
	liked      map[string]bool
	expanded   map[string]bool
	usernames  map[string]string
}

// NewBookService constructs a BookService bound to the given API client.
func NewBookService(apiClient client.Client, log logging.Logger) BookService {
	return &bookService{
		client:    apiClient,
		log:       log,
		liked:     make(map[string]bool),
		expanded:  make(map[string]bool),
		usernames: make(map[string]string),
	}
}

// Load fetches the full collection and replaces the authoritative set. A
// failed fetch leaves all state untouched and returns the normalized error.
// Owner display names are resolved lazily: each distinct owner id is fetched
// exactly once per session; an individual lookup failure degrades to
// UnknownUser and never aborts the load. Overlapping loads are not
// cancelled; the last one to resolve wins.
func (s *bookService) Load(ctx context.Context) error {
	books, err := s.client.Books(ctx)
	if err != nil {
		return err
	}

	names := s.resolveUsernames(ctx, books)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = books
	// local like state is an approximation; a fresh authoritative set
	// invalidates it
	s.liked = make(map[string]bool)
	for id, name := range names {
		if _, ok := s.usernames[id]; !ok {
			s.usernames[id] = name
		}
	}
	return nil
}

// resolveUsernames looks up owners not already cached. Runs without the
// lock: it performs network calls and only reads the write-once cache.
func (s *bookService) resolveUsernames(ctx context.Context, books []models.Book) map[string]string {
	pending := make(map[string]struct{})
	s.mu.Lock()
	for _, b := range books {
		if b.OwnerID == "" {
			continue
		}
		if _, ok := s.usernames[b.OwnerID]; !ok {
			pending[b.OwnerID] = struct{}{}
		}
	}
	s.mu.Unlock()

	names := make(map[string]string, len(pending))
	for id := range pending {
		user, err := s.client.UserByID(ctx, id)
		if err != nil || user.Username == "" {
			if err != nil && s.log != nil {
				s.log.Warn(ctx, "failed to resolve username", "userId", id, "error", err)
			}
			names[id] = UnknownUser
			continue
		}
		names[id] = user.Username
	}
	return names
}

// Books returns a copy of the authoritative collection.
func (s *bookService) Books() []models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Book, len(s.books))
	copy(out, s.books)
	return out
}

// matches is the conjunctive filter predicate: an empty search term or a
// case-insensitive substring hit on title/author/description/genre, AND an
// unset genre or a case-insensitive exact genre match.
func matches(b models.Book, term, genre string) bool {
	if term != "" {
		t := strings.ToLower(term)
		if !strings.Contains(strings.ToLower(b.Title), t) &&
			!strings.Contains(strings.ToLower(b.Author), t) &&
			!strings.Contains(strings.ToLower(b.Description), t) &&
			!strings.Contains(strings.ToLower(b.Genre), t) {
			return false
		}
	}
	if genre != "" && !strings.EqualFold(b.Genre, genre) {
		return false
	}
	return true
}

// Filtered recomputes the derived view. Order is preserved with respect to
// the authoritative collection and the computation has no side effects, so
// repeated calls with unchanged inputs yield identical output.
func (s *bookService) Filtered() []models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.TrimSpace(s.searchTerm)
	out := make([]models.Book, 0, len(s.books))
	for _, b := range s.books {
		if matches(b, term, s.genre) {
			out = append(out, b)
		}
	}
	return out
}

func (s *bookService) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

func (s *bookService) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

func (s *bookService) Genre() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.genre
}

// SetGenre selects a genre filter; selecting the already active genre clears
// the filter.
func (s *bookService) SetGenre(genre string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.EqualFold(s.genre, genre) {
		s.genre = ""
		return
	}
	s.genre = genre
}

// ToggleLike runs the optimistic like protocol. The increment direction is
// decided by the local pre-request state, not by anything the server
// returns. Local state mutates only after a successful response, so a
// failure leaves nothing to roll back. Overlapping toggles on the same id
// are not serialized against each other.
func (s *bookService) ToggleLike(ctx context.Context, id string) error {
	s.mu.Lock()
	wasLiked := s.liked[id]
	s.mu.Unlock()

	if err := s.client.LikeBook(ctx, id); err != nil {
		return err
	}

	delta := 1
	if wasLiked {
		delta = -1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.liked[id] = !wasLiked
	for i := range s.books {
		if s.books[i].ID == id {
			s.books[i].Likes += delta
			break
		}
	}
	return nil
}

func (s *bookService) Liked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked[id]
}

func (s *bookService) ToggleExpanded(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[id] = !s.expanded[id]
}

func (s *bookService) Expanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[id]
}

// Username returns the cached display name for an owner id, falling back to
// UnknownUser for ids never seen or never resolved.
func (s *bookService) Username(ownerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name, ok := s.usernames[ownerID]; ok {
		return name
	}
	return UnknownUser
}

// MyBooks fetches the current user's own listings. They are not part of the
// shared authoritative collection.
func (s *bookService) MyBooks(ctx context.Context) ([]models.Book, error) {
	return s.client.MyBooks(ctx)
}

func (s *bookService) Create(ctx context.Context, draft models.BookDraft) (*models.Book, error) {
	return s.client.CreateBook(ctx, draft)
}

func (s *bookService) Update(ctx context.Context, id string, draft models.BookDraft) (*models.Book, error) {
	return s.client.UpdateBook(ctx, id, draft)
}

// Delete removes a listing server-side and, when it is present in the
// authoritative collection, locally as well.
func (s *bookService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteBook(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			break
		}
	}
	delete(s.liked, id)
	delete(s.expanded, id)
	return nil
}
