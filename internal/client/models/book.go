// Package models defines the data types exchanged with the bookswap API.
package models

import "time"

// Contact describes how to reach a book's owner: a messaging app name and the
// owner's handle inside it.
type Contact struct {
	App string `json:"app"`
	ID  string `json:"id"`
}

// Book is a single listing as returned by the server. The server owns every
// field; the client holds a read-mostly cached copy keyed by ID. Likes is
// only adjusted locally through the optimistic like protocol.
type Book struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Contact     Contact   `json:"contact"`
	OwnerID     string    `json:"userId"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookDraft carries the user-editable fields for create and update calls.
type BookDraft struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"`
	Contact     Contact `json:"contact"`
}

// Genres is the canonical genre list offered by the application.
var Genres = []string{
	"Fiction", "Non-Fiction", "Science Fiction", "Fantasy", "Mystery", "Thriller",
	"Romance", "Horror", "Biography", "History", "Self-Help", "Business", "Children's",
	"Young Adult", "Poetry", "Science", "Philosophy", "Travel", "Cooking", "Art",
	"Religion", "Sports", "Other",
}
