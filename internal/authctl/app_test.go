package authctl

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/innoclinic/authsvc/internal/common"
	"github.com/innoclinic/authsvc/internal/server/auth"
	"github.com/innoclinic/authsvc/internal/server/models"
)

type fakeCredentialOps struct {
	signUpCalls  int
	signInCalls  int
	confirmedIDs []string
	validTokens  map[string]bool
	accounts     map[string]*models.Account
}

func (f *fakeCredentialOps) SignUp(ctx context.Context, email, password, passwordConfirm, createdBy string) (*auth.AuthResponse, error) {
	f.signUpCalls++
	if password != passwordConfirm {
		return nil, common.ErrorPasswordMismatch
	}
	return &auth.AuthResponse{Token: "tok", ExpiresIn: 60, AccountID: "acc-1", Email: email}, nil
}

func (f *fakeCredentialOps) SignIn(ctx context.Context, email, password string) (*auth.AuthResponse, error) {
	f.signInCalls++
	return &auth.AuthResponse{Token: "tok", ExpiresIn: 60, AccountID: "acc-1", Email: email}, nil
}

func (f *fakeCredentialOps) ValidateToken(ctx context.Context, token string) bool {
	return f.validTokens[token]
}

func (f *fakeCredentialOps) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	acc, ok := f.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return acc, nil
}

func (f *fakeCredentialOps) ConfirmEmail(ctx context.Context, id string) error {
	f.confirmedIDs = append(f.confirmedIDs, id)
	return nil
}

type fakePhotoOps struct {
	attachedKey string
}

func (f *fakePhotoOps) UploadURL(ctx context.Context) (string, string, error) {
	return "photos/1/2/3/key", "https://s3/put", nil
}

func (f *fakePhotoOps) DownloadURL(ctx context.Context, key string) (string, error) {
	return "https://s3/get/" + key, nil
}

func (f *fakePhotoOps) AttachPhoto(ctx context.Context, accountID, key, updatedBy string) (*models.Account, error) {
	f.attachedKey = key
	return &models.Account{ID: accountID, PhotoID: key}, nil
}

func newTestApp(input string) (*App, *fakeCredentialOps, *fakePhotoOps, *bytes.Buffer) {
	creds := &fakeCredentialOps{
		validTokens: map[string]bool{"good": true},
		accounts:    map[string]*models.Account{"acc-1": {ID: "acc-1", Email: "a@x.com"}},
	}
	photos := &fakePhotoOps{}
	out := &bytes.Buffer{}
	app := &App{
		credentials: creds,
		photos:      photos,
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         out,
	}
	return app, creds, photos, out
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _, _, _ := newTestApp("")
	if err := app.Run(context.Background(), []string{"frobnicate"}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRun_NoCommandPrintsUsage(t *testing.T) {
	app, _, _, out := newTestApp("")
	if err := app.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(out.String(), "Usage") {
		t.Fatalf("usage not printed: %q", out.String())
	}
}

func TestRun_SignUp(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("secret1"), nil }

	app, creds, _, out := newTestApp("a@x.com\n")
	if err := app.Run(context.Background(), []string{"signup"}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if creds.signUpCalls != 1 {
		t.Fatalf("expected one SignUp call, got %d", creds.signUpCalls)
	}
	if !strings.Contains(out.String(), "acc-1") {
		t.Fatalf("account id not printed: %q", out.String())
	}
}

func TestRun_Confirm(t *testing.T) {
	app, creds, _, _ := newTestApp("")
	if err := app.Run(context.Background(), []string{"confirm", "acc-1"}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(creds.confirmedIDs) != 1 || creds.confirmedIDs[0] != "acc-1" {
		t.Fatalf("confirm not forwarded: %v", creds.confirmedIDs)
	}
}

func TestRun_Check(t *testing.T) {
	app, _, _, out := newTestApp("")
	if err := app.Run(context.Background(), []string{"check", "good"}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(out.String(), "valid") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := app.Run(context.Background(), []string{"check", "bad"}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(out.String(), "invalid") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRun_Info(t *testing.T) {
	app, _, _, out := newTestApp("")
	if err := app.Run(context.Background(), []string{"info", "acc-1"}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(out.String(), "a@x.com") {
		t.Fatalf("account email not printed: %q", out.String())
	}
}

func TestRun_PhotoUpload(t *testing.T) {
	app, _, photos, out := newTestApp("")
	if err := app.Run(context.Background(), []string{"photo-upload", "acc-1"}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if photos.attachedKey == "" {
		t.Fatal("photo key not attached")
	}
	if !strings.Contains(out.String(), "https://s3/put") {
		t.Fatalf("upload URL not printed: %q", out.String())
	}
}

func TestRun_PhotoDownload(t *testing.T) {
	app, _, _, out := newTestApp("")
	if err := app.Run(context.Background(), []string{"photo-download", "photos/1/2/3/key"}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(out.String(), "https://s3/get/photos/1/2/3/key") {
		t.Fatalf("download URL not printed: %q", out.String())
	}
}

func TestRun_CommandArgumentValidation(t *testing.T) {
	app, _, _, _ := newTestApp("")
	for _, args := range [][]string{
		{"confirm"},
		{"check"},
		{"info", "a", "b"},
		{"photo-upload"},
		{"photo-download"},
	} {
		if err := app.Run(context.Background(), args); err == nil {
			t.Fatalf("expected usage error for %v", args)
		}
	}
}
