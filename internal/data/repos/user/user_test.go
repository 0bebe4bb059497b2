package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/jobtrack-backend/internal/data/repos/testutil"
	types "github.com/yungbote/jobtrack-backend/internal/domain"
	"github.com/yungbote/jobtrack-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/jobtrack-backend/internal/pkg/errors"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			Name:     "Ada",
			Email:    "userrepo@example.com",
			Password: "pw",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: unexpected result: %+v", created)
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByEmails, err := repo.GetByEmails(dbc, []string{created[0].Email})
	if err != nil {
		t.Fatalf("GetByEmails: %v", err)
	}
	if len(gotByEmails) != 1 || gotByEmails[0].Email != created[0].Email {
		t.Fatalf("GetByEmails: unexpected result: %+v", gotByEmails)
	}

	exists, err := repo.EmailExists(dbc, created[0].Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}

	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}

	if err := repo.UpdateProfile(dbc, created[0].ID, "Ada L", "ada@example.com"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	gotByIDs, err = repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil || len(gotByIDs) != 1 {
		t.Fatalf("GetByIDs after update: err=%v len=%d", err, len(gotByIDs))
	}
	if gotByIDs[0].Name != "Ada L" || gotByIDs[0].Email != "ada@example.com" {
		t.Fatalf("UpdateProfile: unexpected row: %+v", gotByIDs[0])
	}

	if err := repo.UpdateProfile(dbc, uuid.New(), "x", "x@example.com"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("UpdateProfile (missing): expected ErrNotFound, got %v", err)
	}
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	if _, err := repo.Create(dbc, []*types.User{{Name: "A", Email: "dup@example.com", Password: "pw"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(dbc, []*types.User{{Name: "B", Email: "dup@example.com", Password: "pw"}})
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("Create duplicate: expected ErrConflict, got %v", err)
	}
}
