package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookswap/internal/client/models"
)

// Login prompts for credentials and authenticates. Failures are normalized
// result values from the core; they are displayed, never thrown.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err)
		return err
	}
	return nil
}

// Register prompts for account details and creates an account. A successful
// registration authenticates the session right away.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, username, email, password); err != nil {
		fmt.Fprintf(a.out, "Registration failed: %s\n", err)
		return err
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Profile shows the current profile and offers a partial update; fields left
// blank keep their value.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.auth.Profile(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load profile: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Username: %s\nEmail:    %s\n", user.Username, user.Email)

	username, err := GetSimpleText(a.reader, "New username (blank to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "New email (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if username == "" && email == "" {
		return nil
	}

	updated, err := a.auth.UpdateProfile(ctx, models.ProfileUpdate{Username: username, Email: email})
	if err != nil {
		fmt.Fprintf(a.out, "Update failed: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", updated.Username, updated.Email)
	return nil
}

// DeleteAccount removes the account after an explicit confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Delete your account? This cannot be undone (yes/no)", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.auth.DeleteAccount(ctx); err != nil {
		fmt.Fprintf(a.out, "Account deletion failed: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}
