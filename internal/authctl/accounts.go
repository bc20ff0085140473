package authctl

import (
	"context"
	"fmt"
)

func (a *App) ConfirmEmail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: confirm <account-id>")
	}

	if err := a.credentials.ConfirmEmail(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Email confirmed")
	return nil
}

func (a *App) CheckToken(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: check <token>")
	}

	if a.credentials.ValidateToken(ctx, args[0]) {
		fmt.Fprintln(a.out, "Token is valid")
	} else {
		fmt.Fprintln(a.out, "Token is invalid")
	}
	return nil
}

func (a *App) AccountInfo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: info <account-id>")
	}

	account, err := a.credentials.GetAccountByID(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:             %s\n", account.ID)
	fmt.Fprintf(a.out, "Email:          %s\n", account.Email)
	fmt.Fprintf(a.out, "Email verified: %v\n", account.IsEmailVerified)
	fmt.Fprintf(a.out, "Phone:          %s\n", account.PhoneNumber)
	fmt.Fprintf(a.out, "Photo key:      %s\n", account.PhotoID)
	if !account.LockedUntil.IsZero() {
		fmt.Fprintf(a.out, "Locked until:   %s\n", account.LockedUntil)
	}
	fmt.Fprintf(a.out, "Created:        %s by %s\n", account.CreatedAt, account.CreatedBy)
	fmt.Fprintf(a.out, "Updated:        %s by %s\n", account.UpdatedAt, account.UpdatedBy)
	return nil
}
