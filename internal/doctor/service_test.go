package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/medicare/internal/model"
)

func TestSeedIfEmpty_EmptyDirectory_InsertsSeedSet(t *testing.T) {
	repo := &memoryDoctorRepo{}
	svc := NewService(repo)

	n, err := svc.SeedIfEmpty(context.Background())
	if err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	if n != 12 || len(repo.doctors) != 12 {
		t.Fatalf("seeded %d (stored %d), want 12", n, len(repo.doctors))
	}

	first := repo.doctors[0]
	if first.Name != "Dr. Priya Sharma" || first.Specialization != "Dermatologist" || first.Experience != 8 {
		t.Errorf("first seed = %+v", first)
	}
	if len(first.AvailableTimes) != 3 || first.AvailableTimes[2] != "14:00" {
		t.Errorf("AvailableTimes = %v", first.AvailableTimes)
	}
	if repo.doctors[11].Name != "Dr. Ankit Bansal" {
		t.Errorf("last seed = %q, want Dr. Ankit Bansal", repo.doctors[11].Name)
	}
}

// 既に医師が存在する場合は何も投入しない
func TestSeedIfEmpty_NonEmptyDirectory_DoesNothing(t *testing.T) {
	repo := &memoryDoctorRepo{doctors: []*model.Doctor{{ID: "d1", Name: "Dr. Existing"}}}
	svc := NewService(repo)

	n, err := svc.SeedIfEmpty(context.Background())
	if err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	if n != 0 || repo.createManyCalls != 0 {
		t.Errorf("seeded %d with %d CreateMany calls, want none", n, repo.createManyCalls)
	}
}

func TestSeedIfEmpty_RunTwice_SeedsOnce(t *testing.T) {
	repo := &memoryDoctorRepo{}
	svc := NewService(repo)

	for i := 0; i < 2; i++ {
		if _, err := svc.SeedIfEmpty(context.Background()); err != nil {
			t.Fatalf("SeedIfEmpty #%d: %v", i, err)
		}
	}
	if len(repo.doctors) != 12 {
		t.Errorf("stored %d doctors, want 12", len(repo.doctors))
	}
}

func TestSeedIfEmpty_CountError(t *testing.T) {
	repo := &memoryDoctorRepo{err: errors.New("db down")}
	svc := NewService(repo)

	if _, err := svc.SeedIfEmpty(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSeedDoctors_OrderedTimestampsAndUniqueIDs(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	doctors := SeedDoctors(now)

	seen := map[string]bool{}
	for i, d := range doctors {
		if seen[d.ID] {
			t.Errorf("duplicate id %s", d.ID)
		}
		seen[d.ID] = true
		if i > 0 && !d.CreatedAt.After(doctors[i-1].CreatedAt) {
			t.Errorf("doctor %d CreatedAt not after previous", i)
		}
		if !IsCanonicalID(d.ID) {
			t.Errorf("seed id %q is not canonical", d.ID)
		}
	}
}

func TestList_ReturnsAllDoctors(t *testing.T) {
	repo := &memoryDoctorRepo{}
	svc := NewService(repo)
	if _, err := svc.SeedIfEmpty(context.Background()); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}

	doctors, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(doctors) != 12 {
		t.Errorf("len = %d, want 12", len(doctors))
	}
}
