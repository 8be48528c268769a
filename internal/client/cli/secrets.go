package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// ListSecrets prints the invitation-secret ledger.
func (a *App) ListSecrets(ctx context.Context) error {
	list, err := a.client.ListSecrets(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No secrets yet")
		return nil
	}

	for _, s := range list {
		status := "unused"
		if s.IsUsed {
			status = fmt.Sprintf("used by %s", s.UsedBy)
		}
		printlnFn(fmt.Sprintf("%s  created by %s  %s", s.Secret, s.CreatedBy, status))
	}
	return nil
}

// AddSecret mints a new invitation secret. An empty value lets the server
// generate one.
func (a *App) AddSecret(ctx context.Context) error {
	value, err := GetSimpleText(a.reader, "Enter secret value (empty to generate)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	secret, err := a.client.AddSecret(ctx, value, a.userName)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Created secret:", secret.Secret)
	return nil
}

// Whoami shows the profile of the logged-in user.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn(fmt.Sprintf("%s %s (%s), active=%v, face_id=%v",
		user.Name, user.Surname, user.Login, user.IsActive, user.HasFaceID))
	return nil
}
