package usecase

import (
	"context"
	"sync"

	"screenbook/internal/data/entity"
	"screenbook/internal/data/repository"
	"screenbook/internal/notify"

	"github.com/google/uuid"
)

// The fakes embed the repository interfaces so each test only fills in the
// methods its code path touches; an unexpected call panics.

type fakeMovieRepo struct {
	repository.MovieRepository
	movies map[uuid.UUID]*entity.Movie
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.movies[id], nil
}

type fakeHallRepo struct {
	repository.HallRepository
	halls map[uuid.UUID]*entity.Hall
}

func (f *fakeHallRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	return f.halls[id], nil
}

type fakeScreeningRepo struct {
	repository.ScreeningRepository
	screenings map[uuid.UUID]*entity.Screening
	intervals  []entity.ScreeningInterval
	created    []*entity.Screening
	updated    []*entity.Screening
}

func (f *fakeScreeningRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Screening, error) {
	return f.screenings[id], nil
}

func (f *fakeScreeningRepo) FindIntervalsByHall(_ context.Context, hallID, excludeID uuid.UUID) ([]entity.ScreeningInterval, error) {
	var out []entity.ScreeningInterval
	for _, iv := range f.intervals {
		if iv.HallID == hallID && iv.ID != excludeID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeScreeningRepo) Create(_ context.Context, screening *entity.Screening) error {
	f.created = append(f.created, screening)
	return nil
}

func (f *fakeScreeningRepo) Update(_ context.Context, screening *entity.Screening) error {
	f.updated = append(f.updated, screening)
	return nil
}

type fakeSeatRepo struct {
	repository.SeatRepository
	seats  map[uuid.UUID]*entity.Seat // keyed by seat id, all in one hall
	states []entity.SeatState
}

func (f *fakeSeatRepo) FindByIDs(_ context.Context, hallID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, id := range seatIDs {
		if seat, ok := f.seats[id]; ok && seat.HallID == hallID {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (f *fakeSeatRepo) FindSeatStateByScreening(context.Context, uuid.UUID) ([]entity.SeatState, error) {
	return f.states, nil
}

type fakeReservationRepo struct {
	repository.ReservationRepository
	claimErr error
	claimed  [][]*entity.Reservation
}

func (f *fakeReservationRepo) ClaimSeats(_ context.Context, reservations []*entity.Reservation) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimed = append(f.claimed, reservations)
	return nil
}

type fakeBroadcaster struct {
	mu        sync.Mutex
	published []uuid.UUID
	states    [][]entity.SeatState
}

func (f *fakeBroadcaster) Publish(screeningID uuid.UUID, states []entity.SeatState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, screeningID)
	f.states = append(f.states, states)
}

type fakePublisher struct {
	err    error
	events []notify.ReservationConfirmedEvent
}

func (f *fakePublisher) PublishReservationConfirmed(_ context.Context, event notify.ReservationConfirmedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
