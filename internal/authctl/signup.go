package authctl

import (
	"context"
	"fmt"

	"github.com/innoclinic/authsvc/internal/common"
)

func (a *App) SignUp(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	resp, err := a.credentials.SignUp(ctx, email, string(password), string(confirm), "")
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created: %s\n", resp.AccountID)
	fmt.Fprintf(a.out, "Token (valid %d min): %s\n", resp.ExpiresIn, resp.Token)
	return nil
}
