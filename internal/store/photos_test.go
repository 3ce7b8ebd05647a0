package store

import (
	"context"
	"testing"

	"github.com/fleetassist/missions/internal/db"
	"github.com/fleetassist/missions/internal/model"
)

func TestUpsertPhotoReplacesByType(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	m, _ := CreateMission(ctx, database, testMission("Renault", "Clio"))

	first, err := UpsertPhoto(ctx, database, &model.Photo{
		MissionID: m.ID, PhotoType: "front",
		Filename: "first.jpg", SizeBytes: 100, MimeType: "image/jpeg", URL: "https://cdn/first.jpg",
	})
	if err != nil {
		t.Fatalf("UpsertPhoto: %v", err)
	}

	second, err := UpsertPhoto(ctx, database, &model.Photo{
		MissionID: m.ID, PhotoType: "front",
		Filename: "second.png", SizeBytes: 200, MimeType: "image/png", URL: "https://cdn/second.png",
	})
	if err != nil {
		t.Fatalf("UpsertPhoto (replace): %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected replacement to keep row id %d, got %d", first.ID, second.ID)
	}
	if second.Filename != "second.png" || second.MimeType != "image/png" || second.SizeBytes != 200 {
		t.Errorf("expected second upload's metadata to win, got %+v", second)
	}

	var count int
	database.QueryRow(`SELECT COUNT(*) FROM photos WHERE mission_id = ? AND photo_type = 'front'`, m.ID).Scan(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 photo row for the pair, got %d", count)
	}
}

func TestUpsertPhotoDistinctTypes(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	m, _ := CreateMission(ctx, database, testMission("Renault", "Clio"))

	UpsertPhoto(ctx, database, &model.Photo{
		MissionID: m.ID, PhotoType: "front", Filename: "f.jpg", MimeType: "image/jpeg", URL: "u1",
	})
	UpsertPhoto(ctx, database, &model.Photo{
		MissionID: m.ID, PhotoType: "interior", Filename: "i.jpg", MimeType: "image/jpeg", URL: "u2",
	})

	photos, err := ListPhotoSummaries(ctx, database, m.ID)
	if err != nil {
		t.Fatalf("ListPhotoSummaries: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
	// Ordered by upload time ascending, id as tiebreaker.
	if photos[0].PhotoType != "front" || photos[1].PhotoType != "interior" {
		t.Errorf("expected upload order, got %q then %q", photos[0].PhotoType, photos[1].PhotoType)
	}
}

func TestUpsertPhotoUnknownMission(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, err := UpsertPhoto(ctx, database, &model.Photo{
		MissionID: 42, PhotoType: "front", Filename: "f.jpg", MimeType: "image/jpeg", URL: "u",
	})
	if err != nil {
		t.Fatalf("UpsertPhoto: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for unknown mission, got %+v", p)
	}
}
