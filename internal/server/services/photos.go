package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/innoclinic/authsvc/internal/common"
	"github.com/innoclinic/authsvc/internal/server/config"
	"github.com/innoclinic/authsvc/internal/server/models"
	"github.com/innoclinic/authsvc/internal/server/repositories/repomanager"
)

const presignValidity = 15 * time.Minute

// PhotoService hands out presigned URLs for profile photos stored in an
// S3-compatible backend and records the resulting storage key on the
// account. The service never proxies photo bytes itself.
type PhotoService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	config *config.Config
}

func NewPhotoService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *PhotoService {
	return &PhotoService{
		db:     db,
		rm:     rm,
		config: cfg,
	}
}

// randomStorageKey partitions objects by upload date so buckets stay
// listable.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("photos/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *PhotoService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// UploadURL returns a fresh storage key and a presigned PUT URL the caller
// can upload the photo bytes to directly.
func (s *PhotoService) UploadURL(ctx context.Context) (string, string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := randomStorageKey()

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// DownloadURL returns a presigned GET URL for a previously uploaded photo.
func (s *PhotoService) DownloadURL(ctx context.Context, key string) (string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// AttachPhoto records the uploaded object's key as the account's photo
// reference and restamps the audit metadata.
func (s *PhotoService) AttachPhoto(ctx context.Context, accountID, key, updatedBy string) (*models.Account, error) {
	repo := s.rm.Accounts(s.db)

	account, err := repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account.PhotoID = key
	if updatedBy == "" {
		updatedBy = common.SystemActor
	}
	account.UpdatedBy = updatedBy
	account.UpdatedAt = time.Now()

	if err := repo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}
