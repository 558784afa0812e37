package cli

import (
	"context"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for the four account fields and registers the user.
func (a *App) Signup(ctx context.Context) error {
	a.sync(ctx)
	first, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	n, err := a.board.Controller.Signup(ctx, first, last, email, password)
	a.notify(n)
	return err
}

// Signin prompts for credentials and starts a session.
func (a *App) Signin(ctx context.Context) error {
	a.sync(ctx)
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	n, err := a.board.Controller.Signin(ctx, email, password)
	a.notify(n)
	return err
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	a.sync(ctx)
	n, err := a.board.Controller.Logout(ctx)
	a.notify(n)
	return err
}
