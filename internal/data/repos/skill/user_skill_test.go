package skill

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/jobtrack-backend/internal/data/repos/testutil"
	types "github.com/yungbote/jobtrack-backend/internal/domain"
	domainskill "github.com/yungbote/jobtrack-backend/internal/domain/skill"
	"github.com/yungbote/jobtrack-backend/internal/pkg/dbctx"
)

func TestUserSkillRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserSkillRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "skills@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other@example.com")
	testutil.SeedSkill(t, ctx, tx, other.ID, "Go", domainskill.LevelAdvanced)

	if err := repo.Upsert(dbc, &types.UserSkill{UserID: u.ID, Name: "Go", Level: domainskill.LevelBeginner}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(dbc, &types.UserSkill{UserID: u.ID, Name: "SQL", Level: domainskill.LevelIntermediate}); err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	// Same folded name updates the level and keeps the original display name.
	if err := repo.Upsert(dbc, &types.UserSkill{UserID: u.ID, Name: "go", Level: domainskill.LevelAdvanced}); err != nil {
		t.Fatalf("Upsert existing: %v", err)
	}

	rows, err := repo.ListByUserID(dbc, u.ID)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ListByUserID: expected 2 rows, got %d", len(rows))
	}
	got, err := repo.GetByNameKey(dbc, u.ID, "go")
	if err != nil {
		t.Fatalf("GetByNameKey: %v", err)
	}
	if got == nil || got.Name != "Go" || got.Level != domainskill.LevelAdvanced {
		t.Fatalf("GetByNameKey: unexpected row: %+v", got)
	}

	if missing, err := repo.GetByNameKey(dbc, u.ID, "rust"); err != nil || missing != nil {
		t.Fatalf("GetByNameKey (missing): row=%+v err=%v", missing, err)
	}

	// Delete matches the stored name exactly.
	n, err := repo.DeleteByName(dbc, u.ID, "go")
	if err != nil {
		t.Fatalf("DeleteByName (case mismatch): %v", err)
	}
	if n != 0 {
		t.Fatalf("DeleteByName (case mismatch): expected 0 rows, got %d", n)
	}
	n, err = repo.DeleteByName(dbc, u.ID, "Go")
	if err != nil || n != 1 {
		t.Fatalf("DeleteByName: n=%d err=%v", n, err)
	}

	rows, err = repo.ListByUserID(dbc, u.ID)
	if err != nil || len(rows) != 1 || rows[0].Name != "SQL" {
		t.Fatalf("ListByUserID after delete: rows=%+v err=%v", rows, err)
	}

	otherRows, err := repo.ListByUserID(dbc, other.ID)
	if err != nil || len(otherRows) != 1 || otherRows[0].Level != domainskill.LevelAdvanced {
		t.Fatalf("other user's skills changed: rows=%+v err=%v", otherRows, err)
	}

	if rows, err := repo.ListByUserID(dbc, uuid.Nil); err != nil || len(rows) != 0 {
		t.Fatalf("ListByUserID (nil user): rows=%+v err=%v", rows, err)
	}
}
