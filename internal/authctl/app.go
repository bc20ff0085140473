// Package authctl implements the operator command-line tool for the auth
// service. It talks to the service layer directly and is meant for local
// administration: creating accounts, confirming emails, and inspecting
// tokens.
package authctl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/innoclinic/authsvc/internal/server/auth"
	"github.com/innoclinic/authsvc/internal/server/models"
)

// CredentialOps is the slice of the credential service the CLI uses.
type CredentialOps interface {
	SignUp(ctx context.Context, email, password, passwordConfirm, createdBy string) (*auth.AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (*auth.AuthResponse, error)
	ValidateToken(ctx context.Context, token string) bool
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	ConfirmEmail(ctx context.Context, id string) error
}

// PhotoOps is the slice of the photo service the CLI uses.
type PhotoOps interface {
	UploadURL(ctx context.Context) (string, string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
	AttachPhoto(ctx context.Context, accountID, key, updatedBy string) (*models.Account, error)
}

type App struct {
	credentials CredentialOps
	photos      PhotoOps
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(credentials CredentialOps, photos PhotoOps) *App {
	return &App{
		credentials: credentials,
		photos:      photos,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

// Run dispatches a single command and returns its error, if any.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return nil
	}

	switch args[0] {
	case "signup":
		return a.SignUp(ctx)
	case "signin":
		return a.SignIn(ctx)
	case "confirm":
		return a.ConfirmEmail(ctx, args[1:])
	case "check":
		return a.CheckToken(ctx, args[1:])
	case "info":
		return a.AccountInfo(ctx, args[1:])
	case "photo-upload":
		return a.PhotoUploadURL(ctx, args[1:])
	case "photo-download":
		return a.PhotoDownloadURL(ctx, args[1:])
	default:
		a.printUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, "Usage: authctl <command> [arguments]")
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, "  signup                     create an account (interactive)")
	fmt.Fprintln(a.out, "  signin                     sign in and print a token (interactive)")
	fmt.Fprintln(a.out, "  confirm <account-id>       mark the account's email as verified")
	fmt.Fprintln(a.out, "  check <token>              validate a token")
	fmt.Fprintln(a.out, "  info <account-id>          print account details")
	fmt.Fprintln(a.out, "  photo-upload <account-id>  presign an upload URL and attach the key")
	fmt.Fprintln(a.out, "  photo-download <key>       presign a download URL for a photo key")
}
