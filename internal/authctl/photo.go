package authctl

import (
	"context"
	"fmt"
)

func (a *App) PhotoUploadURL(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: photo-upload <account-id>")
	}

	key, url, err := a.photos.UploadURL(ctx)
	if err != nil {
		return err
	}

	if _, err := a.photos.AttachPhoto(ctx, args[0], key, ""); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Photo key: %s\n", key)
	fmt.Fprintf(a.out, "Upload URL (PUT): %s\n", url)
	return nil
}

func (a *App) PhotoDownloadURL(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: photo-download <key>")
	}

	url, err := a.photos.DownloadURL(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Download URL (GET): %s\n", url)
	return nil
}
