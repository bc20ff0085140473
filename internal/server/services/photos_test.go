package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/innoclinic/authsvc/internal/common"
	"github.com/innoclinic/authsvc/internal/server/models"
)

func TestRandomStorageKey(t *testing.T) {
	key := randomStorageKey()

	now := time.Now()
	prefix := "photos/"
	if !strings.HasPrefix(key, prefix) {
		t.Fatalf("unexpected key prefix: %q", key)
	}

	parts := strings.Split(key, "/")
	if len(parts) != 5 {
		t.Fatalf("expected photos/year/month/day/id, got %q", key)
	}
	if parts[1] != time.Now().Format("2006") {
		t.Fatalf("year segment mismatch: %q (now %v)", key, now)
	}

	if key == randomStorageKey() {
		t.Fatalf("keys must be unique")
	}
}

func TestAttachPhoto(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := newFakeAccountsRepo()
	repo.put(&models.Account{ID: "acc-1", Email: "a@x.com"})

	s := NewPhotoService(db, &fakeRepoManager{repo: repo}, testConfig())

	account, err := s.AttachPhoto(context.Background(), "acc-1", "photos/2026/8/28/key-1", "admin-1")
	if err != nil {
		t.Fatalf("AttachPhoto error: %v", err)
	}
	if account.PhotoID != "photos/2026/8/28/key-1" {
		t.Fatalf("photo key not recorded: %+v", account)
	}
	if account.UpdatedBy != "admin-1" {
		t.Fatalf("updatedBy not stamped: %+v", account)
	}

	stored, _ := repo.FindByID(context.Background(), "acc-1")
	if stored.PhotoID != account.PhotoID {
		t.Fatalf("photo key not persisted: %+v", stored)
	}
}

func TestAttachPhoto_BlankActorFallsBack(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := newFakeAccountsRepo()
	repo.put(&models.Account{ID: "acc-1", Email: "a@x.com"})

	s := NewPhotoService(db, &fakeRepoManager{repo: repo}, testConfig())

	account, err := s.AttachPhoto(context.Background(), "acc-1", "k", "")
	if err != nil {
		t.Fatalf("AttachPhoto error: %v", err)
	}
	if account.UpdatedBy != common.SystemActor {
		t.Fatalf("expected system actor, got %q", account.UpdatedBy)
	}
}

func TestAttachPhoto_UnknownAccount(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := newFakeAccountsRepo()

	s := NewPhotoService(db, &fakeRepoManager{repo: repo}, testConfig())

	_, err := s.AttachPhoto(context.Background(), "ghost", "k", "")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}
