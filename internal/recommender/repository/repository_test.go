package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repo := New(db)
	if err := repo.AutoMigrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestRepository_InsertAndLoadMatrix(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rows := []HistoricalRating{
		{UserID: "u1", GameID: "g1", Rating: 4.0},
		{UserID: "u1", GameID: "g2", Rating: 3.5},
		{UserID: "u2", GameID: "g1", Rating: 1.0},
	}
	if err := repo.InsertBatch(ctx, rows); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rows, got %d", count)
	}

	matrix, err := repo.LoadMatrix(ctx)
	if err != nil {
		t.Fatalf("LoadMatrix failed: %v", err)
	}
	if matrix.Len() != 2 {
		t.Fatalf("expected 2 users, got %d", matrix.Len())
	}

	// 기본 키 순서 적재 -> 삽입 순서 결정적
	users := matrix.Users()
	if users[0] != "u1" || users[1] != "u2" {
		t.Errorf("unexpected user order: %v", users)
	}

	u1 := matrix.UserRatings("u1")
	if len(u1) != 2 || u1["g1"] != 4.0 || u1["g2"] != 3.5 {
		t.Errorf("unexpected u1 ratings: %v", u1)
	}
}

func TestRepository_SeedFromCSV(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), RatingsFileName)
	content := "userId,gameId,rating\nu1,g1,4.0\nu1,g2,2.5\nu2,g1,1.0\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	seeded, err := repo.SeedFromCSV(ctx, path)
	if err != nil {
		t.Fatalf("SeedFromCSV failed: %v", err)
	}
	if seeded != 3 {
		t.Errorf("expected 3 seeded rows, got %d", seeded)
	}

	// 재실행 시 건너뜀
	seeded, err = repo.SeedFromCSV(ctx, path)
	if err != nil {
		t.Fatalf("SeedFromCSV rerun failed: %v", err)
	}
	if seeded != 0 {
		t.Errorf("expected rerun to skip, got %d", seeded)
	}
}

func TestRepository_SeedMissingFileIsNoop(t *testing.T) {
	repo := newTestRepository(t)

	seeded, err := repo.SeedFromCSV(context.Background(), filepath.Join(t.TempDir(), RatingsFileName))
	if err != nil {
		t.Fatalf("expected missing file to be a no-op, got %v", err)
	}
	if seeded != 0 {
		t.Errorf("expected 0 seeded rows, got %d", seeded)
	}
}

func TestRepository_SeedMalformedRatingFails(t *testing.T) {
	repo := newTestRepository(t)

	path := filepath.Join(t.TempDir(), RatingsFileName)
	content := "userId,gameId,rating\nu1,g1,bad\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := repo.SeedFromCSV(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for malformed rating")
	}
	if !cerrors.IsDataIntegrity(err) {
		t.Errorf("expected DataIntegrityError, got %T", err)
	}
}
