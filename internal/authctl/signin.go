package authctl

import (
	"context"
	"fmt"

	"github.com/innoclinic/authsvc/internal/common"
)

func (a *App) SignIn(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.credentials.SignIn(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", resp.Email, resp.AccountID)
	fmt.Fprintf(a.out, "Token (valid %d min): %s\n", resp.ExpiresIn, resp.Token)
	return nil
}
