package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookswap/internal/client/models"
)

// readDraft prompts the user for a book draft. Blank answers adopt the
// corresponding value from base, which lets Update reuse the prompts.
func (a *App) readDraft(base models.Book) (models.BookDraft, error) {
	draft := models.BookDraft{
		Title:       base.Title,
		Author:      base.Author,
		Genre:       base.Genre,
		Condition:   base.Condition,
		Description: base.Description,
		Image:       base.Image,
		Contact:     base.Contact,
	}

	prompts := []struct {
		label string
		field *string
	}{
		{"Title", &draft.Title},
		{"Author", &draft.Author},
		{"Genre", &draft.Genre},
		{"Condition (new/used/worn)", &draft.Condition},
		{"Contact app (telegram/whatsapp/kakao/phone/email)", &draft.Contact.App},
		{"Contact id/handle", &draft.Contact.ID},
	}
	for _, p := range prompts {
		label := p.label
		if *p.field != "" {
			label = fmt.Sprintf("%s [%s]", p.label, *p.field)
		}
		value, err := GetSimpleText(a.reader, label, a.out)
		if err != nil {
			return draft, err
		}
		if value != "" {
			*p.field = value
		}
	}

	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return draft, err
	}
	if description != "" {
		draft.Description = description
	}
	return draft, nil
}

// Add creates a new listing from interactive input.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to add books.")
		return nil
	}

	draft, err := a.readDraft(models.Book{})
	if err != nil {
		return err
	}
	if draft.Genre != "" && !validGenre(draft.Genre) {
		fmt.Fprintf(a.out, "Unknown genre %q. Genres: %s\n", draft.Genre, strings.Join(models.Genres, ", "))
		return nil
	}

	book, err := a.books.Create(ctx, draft)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to add the book: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Added %q.\n", book.Title)
	return nil
}

// MyBooks lists the user's own listings and remembers them so update/delete
// can take a listing number.
func (a *App) MyBooks(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to view your books.")
		return nil
	}

	mine, err := a.books.MyBooks(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load your books: %s\n", err)
		return err
	}
	a.lastView = mine

	if len(mine) == 0 {
		fmt.Fprintln(a.out, "You have no listings yet. Type 'add' to create one.")
		return nil
	}
	for i, b := range mine {
		fmt.Fprintf(a.out, "%2d. %s by %s (%s, %d likes)\n", i+1, b.Title, b.Author, b.Genre, b.Likes)
	}
	return nil
}

// Update edits one of the user's own listings, taken by number from the last
// 'mybooks' output.
func (a *App) Update(ctx context.Context, arg string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to update your books.")
		return nil
	}
	book, err := a.fromLastView(arg)
	if err != nil {
		return err
	}

	draft, err := a.readDraft(*book)
	if err != nil {
		return err
	}

	updated, err := a.books.Update(ctx, book.ID, draft)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to update the book: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Updated %q.\n", updated.Title)
	return nil
}

// Delete removes one of the user's own listings after confirmation.
func (a *App) Delete(ctx context.Context, arg string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to delete your books.")
		return nil
	}
	book, err := a.fromLastView(arg)
	if err != nil {
		return err
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete %q? (yes/no)", book.Title), a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.books.Delete(ctx, book.ID); err != nil {
		fmt.Fprintf(a.out, "Failed to delete the book: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted %q.\n", book.Title)
	return nil
}

// parseIndex resolves a 1-based listing number.
func parseIndex(arg string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > max {
		return 0, errBadIndex
	}
	return n, nil
}
