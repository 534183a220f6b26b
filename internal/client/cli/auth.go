package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/translingo/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for an email and password and creates the account. The
// user stays a guest until they log in.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.Register(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Registered. You can log in now.")
	a.navigate(loginScreen)
	return nil
}

// Login prompts for credentials and signs in. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	nav, err := a.sessions.SignIn(ctx, email, password)
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Logged in as", email)
	a.navigate(nav)
	return nil
}

// Logout always succeeds locally, whatever the server says.
func (a *App) Logout(ctx context.Context) error {
	nav := a.sessions.SignOut(ctx)
	fmt.Fprintln(a.out, "Logged out")
	a.navigate(nav)
	return nil
}
