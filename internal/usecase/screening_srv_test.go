package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"screenbook/internal/data/entity"
	"screenbook/internal/data/repository"
	"screenbook/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.September, 1, hour, minute, 0, 0, time.UTC)
}

func TestFindOverlap(t *testing.T) {
	existing := []entity.ScreeningInterval{
		{ID: uuid.New(), StartsAt: at(10, 0), DurationMin: 120}, // 10:00-12:00
	}

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{"inside existing", at(11, 0), at(12, 30), true},
		{"covers existing", at(9, 0), at(13, 0), true},
		{"starts at existing end", at(12, 0), at(14, 0), false},
		{"ends at existing start", at(8, 0), at(10, 0), false},
		{"well before", at(6, 0), at(8, 0), false},
		{"one minute in", at(11, 59), at(13, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := findOverlap(existing, tc.start, tc.end)
			if (got != nil) != tc.conflict {
				t.Fatalf("findOverlap(%v, %v): conflict=%v, want %v", tc.start, tc.end, got != nil, tc.conflict)
			}
		})
	}
}

func newScreeningFixture() (*repository.Repository, *fakeScreeningRepo, *entity.Movie, *entity.Hall) {
	now := time.Now().UTC()
	movie := &entity.Movie{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:       "Heat",
		DurationMin: 120,
	}
	hall := &entity.Hall{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: "Hall 1",
	}

	screeningRepo := &fakeScreeningRepo{
		screenings: map[uuid.UUID]*entity.Screening{},
		intervals: []entity.ScreeningInterval{
			{ID: uuid.New(), HallID: hall.ID, StartsAt: at(10, 0), DurationMin: 120},
		},
	}

	repo := &repository.Repository{
		Movie:     &fakeMovieRepo{movies: map[uuid.UUID]*entity.Movie{movie.ID: movie}},
		Hall:      &fakeHallRepo{halls: map[uuid.UUID]*entity.Hall{hall.ID: hall}},
		Screening: screeningRepo,
	}
	return repo, screeningRepo, movie, hall
}

func TestCreateScreening_RejectsOverlap(t *testing.T) {
	repo, screeningRepo, movie, hall := newScreeningFixture()
	svc := NewScreeningService(repo, zap.NewNop())

	_, err := svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: "2026-09-01T11:00:00Z",
	})
	if err == nil || !strings.Contains(err.Error(), "overlaps") {
		t.Fatalf("expected overlap error, got %v", err)
	}
	if len(screeningRepo.created) != 0 {
		t.Fatalf("overlapping screening was persisted")
	}
}

func TestCreateScreening_BackToBackAllowed(t *testing.T) {
	repo, screeningRepo, movie, hall := newScreeningFixture()
	svc := NewScreeningService(repo, zap.NewNop())

	// Existing screening runs 10:00-12:00; starting at its exact end is fine.
	resp, err := svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: "2026-09-01T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("back-to-back screening rejected: %v", err)
	}
	if len(screeningRepo.created) != 1 {
		t.Fatalf("screening not persisted")
	}
	if !resp.StartTime.Equal(at(12, 0)) {
		t.Fatalf("start time not normalized to UTC: %v", resp.StartTime)
	}
}

func TestCreateScreening_NormalizesOffsetToUTC(t *testing.T) {
	repo, _, movie, hall := newScreeningFixture()
	svc := NewScreeningService(repo, zap.NewNop())

	// 13:00+02:00 is 11:00 UTC, inside the existing 10:00-12:00 slot.
	_, err := svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: "2026-09-01T13:00:00+02:00",
	})
	if err == nil || !strings.Contains(err.Error(), "overlaps") {
		t.Fatalf("offset time not normalized before overlap check: %v", err)
	}
}

func TestCreateScreening_UnknownMovie(t *testing.T) {
	repo, _, _, hall := newScreeningFixture()
	svc := NewScreeningService(repo, zap.NewNop())

	_, err := svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   uuid.NewString(),
		HallID:    hall.ID.String(),
		StartTime: "2026-09-01T15:00:00Z",
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateScreening_BadStartTime(t *testing.T) {
	repo, _, movie, hall := newScreeningFixture()
	svc := NewScreeningService(repo, zap.NewNop())

	_, err := svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: "tomorrow at eight",
	})
	if err == nil || !strings.Contains(err.Error(), "invalid start_time") {
		t.Fatalf("expected invalid start_time error, got %v", err)
	}
}

func TestUpdateScreening_ExcludesItself(t *testing.T) {
	repo, screeningRepo, movie, hall := newScreeningFixture()
	svc := NewScreeningService(repo, zap.NewNop())

	// The fixture interval belongs to the screening being edited: moving it
	// within its own slot must not conflict with itself.
	self := screeningRepo.intervals[0].ID
	now := time.Now().UTC()
	screeningRepo.screenings[self] = &entity.Screening{
		Base:     entity.Base{ID: self, CreatedAt: now, UpdatedAt: now},
		MovieID:  movie.ID,
		HallID:   hall.ID,
		StartsAt: at(10, 0),
	}

	resp, err := svc.UpdateScreening(context.Background(), self.String(), &request.UpdateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: "2026-09-01T10:30:00Z",
	})
	if err != nil {
		t.Fatalf("update within own slot rejected: %v", err)
	}
	if !resp.StartTime.Equal(at(10, 30)) {
		t.Fatalf("updated start time mismatch: %v", resp.StartTime)
	}
	if len(screeningRepo.updated) != 1 {
		t.Fatalf("screening not updated")
	}
}
