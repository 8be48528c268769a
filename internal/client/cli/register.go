package cli

import (
	"context"
	"log"
	"os"
)

// Register creates an account from an unredeemed invitation secret.
func (a *App) Register(ctx context.Context) error {

	secret, err := GetSimpleText(a.reader, "Enter invitation secret", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	name, err := GetSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	surname, err := GetSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	login, err := GetSimpleText(a.reader, "Enter login", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.client.Register(ctx, secret, name, surname, login, password); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	printlnFn("Success!")
	return nil
}
