package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignUp prompts for an email and a password (twice) and attempts to create
// a new account via the session manager. On failure the normalized message
// is shown inline.
func (a *App) SignUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.SignUp(ctx, email, password, confirm); err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}
	return nil
}

// SignIn prompts for credentials and authenticates.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.SignIn(ctx, email, password); err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}
	return nil
}

// SignOut ends the session. Local state is cleared even when the remote
// call fails.
func (a *App) SignOut(ctx context.Context) error {
	a.session.SignOut(ctx)
	printlnFn("Signed out.")
	return nil
}

// WhoAmI prints the authenticated user.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not signed in.")
		return nil
	}
	printlnFn("Signed in as " + u.Email + " (id " + u.ID + ")")
	return nil
}
