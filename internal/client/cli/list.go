package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookswap/internal/client/models"
)

var errBadIndex = errors.New("no such listing number")

// loaded tracks whether the shared collection was fetched this session.
// Search and genre changes recompute the view locally without another fetch.
func (a *App) ensureLoaded(ctx context.Context) error {
	if len(a.books.Books()) > 0 {
		return nil
	}
	if err := a.books.Load(ctx); err != nil {
		fmt.Fprintf(a.out, "Failed to load books: %s\n", err)
		return err
	}
	return nil
}

// List renders the filtered view of the shared collection.
func (a *App) List(ctx context.Context) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	a.renderView()
	return nil
}

// Search sets the search term and re-renders. An empty argument clears it.
func (a *App) Search(ctx context.Context, term string) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	a.books.SetSearchTerm(term)
	a.renderView()
	return nil
}

// Genre toggles a genre filter and re-renders. An unknown name is rejected
// with the list of valid genres.
func (a *App) Genre(ctx context.Context, name string) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	if name != "" && !validGenre(name) {
		fmt.Fprintf(a.out, "Unknown genre %q. Genres: %s\n", name, strings.Join(models.Genres, ", "))
		return nil
	}
	a.books.SetGenre(name)
	a.renderView()
	return nil
}

// Show toggles the expanded description of a listing from the last view.
func (a *App) Show(ctx context.Context, arg string) error {
	book, err := a.fromLastView(arg)
	if err != nil {
		return err
	}
	a.books.ToggleExpanded(book.ID)
	a.renderView()
	return nil
}

// Like runs the optimistic like toggle on a listing from the last view.
func (a *App) Like(ctx context.Context, arg string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to like books.")
		return nil
	}
	book, err := a.fromLastView(arg)
	if err != nil {
		return err
	}

	if err := a.books.ToggleLike(ctx, book.ID); err != nil {
		fmt.Fprintf(a.out, "Failed to like the book: %s\n", err)
		return err
	}

	if a.books.Liked(book.ID) {
		fmt.Fprintf(a.out, "Liked %q.\n", book.Title)
	} else {
		fmt.Fprintf(a.out, "Unliked %q.\n", book.Title)
	}
	a.renderView()
	return nil
}

func validGenre(name string) bool {
	for _, g := range models.Genres {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}

// fromLastView resolves a 1-based listing number against the listing the
// user saw most recently.
func (a *App) fromLastView(arg string) (*models.Book, error) {
	n, err := parseIndex(arg, len(a.lastView))
	if err != nil {
		fmt.Fprintln(a.out, "Usage: give the listing number from the last 'list' output.")
		return nil, err
	}
	return &a.lastView[n-1], nil
}

// renderView prints the current filtered view and remembers it for numeric
// arguments.
func (a *App) renderView() {
	view := a.books.Filtered()
	a.lastView = view

	if term := a.books.SearchTerm(); term != "" {
		fmt.Fprintf(a.out, "Search: %q\n", term)
	}
	if genre := a.books.Genre(); genre != "" {
		fmt.Fprintf(a.out, "Genre: %s\n", genre)
	}
	if len(view) == 0 {
		fmt.Fprintln(a.out, "No books match.")
		return
	}

	for i, b := range view {
		liked := " "
		if a.books.Liked(b.ID) {
			liked = "*"
		}
		fmt.Fprintf(a.out, "%2d. [%s] %s by %s (%s, %d likes) from %s\n",
			i+1, liked, b.Title, b.Author, b.Genre, b.Likes, a.books.Username(b.OwnerID))
		if a.books.Expanded(b.ID) {
			fmt.Fprintf(a.out, "      Condition: %s\n", b.Condition)
			fmt.Fprintf(a.out, "      %s\n", b.Description)
			fmt.Fprintf(a.out, "      Contact: %s via %s\n", b.Contact.ID, b.Contact.App)
		}
	}
}
