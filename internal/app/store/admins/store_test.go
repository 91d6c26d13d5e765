package admins

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/strataministry/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Admin{
		Email:          "  Pastor@Example.com ",
		PasswordHash:   "hash",
		EmailConfirmed: true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Email != "pastor@example.com" {
		t.Errorf("Email = %q, want normalized", created.Email)
	}

	got, err := store.GetByEmail(ctx, "PASTOR@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByEmail() id = %v, want %v", got.ID, created.ID)
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByEmail(missing) error = %v, want ErrNoDocuments", err)
	}
}

func TestStore_CreateDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Admin{Email: "a@example.com"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(ctx, models.Admin{Email: "A@example.com"}); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("second Create() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestStore_TouchLoginAndConfirm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, models.Admin{Email: "t@example.com"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := store.TouchLogin(ctx, a.ID, at); err != nil {
		t.Fatalf("TouchLogin() error = %v", err)
	}
	if err := store.SetEmailConfirmed(ctx, a.ID, true); err != nil {
		t.Fatalf("SetEmailConfirmed() error = %v", err)
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.LastLoginAt == nil || !got.LastLoginAt.Equal(at) {
		t.Errorf("LastLoginAt = %v, want %v", got.LastLoginAt, at)
	}
	if !got.EmailConfirmed {
		t.Error("EmailConfirmed = false, want true")
	}

	n, err := store.Count(ctx)
	if err != nil || n != 1 {
		t.Errorf("Count() = %d, %v; want 1", n, err)
	}
}
