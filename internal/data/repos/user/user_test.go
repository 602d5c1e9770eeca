package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{
		{ID: uuid.New(), Email: "  UserRepo@Example.com ", Password: "pw", Name: "Repo User"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].Email != "userrepo@example.com" {
		t.Fatalf("Create: want normalized email got=%+v", created)
	}
	if created[0].Role != types.RoleUser {
		t.Fatalf("Create: want default role=%q got=%q", types.RoleUser, created[0].Role)
	}

	gotByIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	byEmail, err := repo.GetByEmail(ctx, tx, "USERREPO@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != created[0].ID {
		t.Fatalf("GetByEmail: want=%s got=%s", created[0].ID, byEmail.ID)
	}
	if _, err := repo.GetByEmail(ctx, tx, "nobody@example.com"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetByEmail missing: want ErrNotFound got=%v", err)
	}

	exists, err := repo.EmailExists(ctx, tx, "userrepo@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists: want=true got=%v err=%v", exists, err)
	}

	if _, err := repo.Create(ctx, tx, []*types.User{
		{ID: uuid.New(), Email: "userrepo@example.com", Password: "pw", Name: "Dup"},
	}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("Create duplicate: want ErrConflict got=%v", err)
	}
}

func TestUserRepoRoleAndPassword(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "role@example.com")
	if err := repo.UpdateRole(ctx, tx, u.ID, types.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if err := repo.UpdatePassword(ctx, tx, u.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	got, err := repo.GetByEmail(ctx, tx, "role@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if !got.IsAdmin() || got.Password != "new-hash" {
		t.Fatalf("updated user: got role=%q password=%q", got.Role, got.Password)
	}

	testutil.SeedUser(t, ctx, tx, "other@example.com")
	all, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List: want=2 got=%d", len(all))
	}
}
