package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dsmelov/authsvc/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignUp prompts the user for a username and password and attempts to create
// a new account. On success it prints the new user id. The password byte
// slice is wiped before returning.
func (a *App) SignUp(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	userID, err := a.client.SignUp(ctx, userName, string(password))
	if err != nil {
		log.Printf("Sign-up unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Success! User id: %s\n", userID)
	return nil
}

// SignIn prompts the user for credentials and tries to authenticate. On
// success the session token is retained by the underlying client and the
// session expiry, if any, is printed.
func (a *App) SignIn(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	expiresAt, err := a.client.SignIn(ctx, userName, string(password))
	if err != nil {
		log.Printf("Sign-in unsuccessful: %s", err.Error())
		return err
	}

	a.userName = userName
	if expiresAt.IsZero() {
		log.Printf("Sign-in successful")
	} else {
		log.Printf("Sign-in successful, session expires at %s", expiresAt.Format(time.RFC3339))
	}
	return nil
}

// SignOut revokes the current session on the server and forgets it locally.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.client.SignOut(ctx); err != nil {
		log.Printf("Sign-out unsuccessful: %s", err.Error())
		return err
	}
	a.userName = ""
	fmt.Println("Signed out")
	return nil
}

// ChangePassword prompts for the current and a new password and updates the
// credential on the server. Requires an active session.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPassword, err := getPassword("Enter current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := a.client.ChangePassword(ctx, string(oldPassword), string(newPassword)); err != nil {
		log.Printf("Password change unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Password changed")
	return nil
}

// Status prints the current session state and probes server health.
func (a *App) Status(ctx context.Context) error {
	if a.isSignedIn() {
		fmt.Printf("Signed in as %s\n", a.userName)
	} else {
		fmt.Println("Not signed in")
	}

	if err := a.client.CheckHealth(ctx); err != nil {
		fmt.Println("Server: unavailable")
		return err
	}
	fmt.Println("Server: serving")
	return nil
}
