package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Genre(ctx context.Context, name string) error
	Show(ctx context.Context, arg string) error
	Like(ctx context.Context, arg string) error
	Add(ctx context.Context) error
	MyBooks(ctx context.Context) error
	Update(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Profile(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the bookswap CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current session status (from statusFn) and accepts:
//
//	Not logged in:
//	  - help                — show available commands
//	  - register            — create an account
//	  - login               — authenticate
//	  - (l)ist              — browse the public collection
//	  - search <term>       — filter the listing; empty term clears it
//	  - genre <name>        — toggle a genre filter
//	  - show <n>            — expand/collapse a listing's description
//	  - exit | quit         — leave the program
//
//	Logged in, additionally:
//	  - like <n>            — toggle a like on a listing
//	  - add                 — add a book
//	  - mybooks             — list own books
//	  - update <n>          — edit one of your books
//	  - delete <n>          — remove one of your books
//	  - profile             — show/update the profile
//	  - account-delete      — delete the account
//	  - logout              — log out
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bs> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search, genre, show, like, add, mybooks, update, delete, profile, account-delete, logout, exit")
			} else {
				printlnFn("Available commands: register, login, (l)ist, search, genre, show, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, arg)

		case "genre":
			_ = a.Genre(ctx, arg)

		case "show":
			_ = a.Show(ctx, arg)

		case "like":
			_ = a.Like(ctx, arg)

		case "add":
			_ = a.Add(ctx)

		case "mybooks":
			_ = a.MyBooks(ctx)

		case "update":
			_ = a.Update(ctx, arg)

		case "delete":
			_ = a.Delete(ctx, arg)

		case "profile":
			_ = a.Profile(ctx)

		case "account-delete":
			_ = a.DeleteAccount(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
