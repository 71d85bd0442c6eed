package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"screenbook/internal/data/entity"
	"screenbook/internal/data/repository"
	"screenbook/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type reservationFixture struct {
	repo        *repository.Repository
	reservation *fakeReservationRepo
	seat        *fakeSeatRepo
	broadcaster *fakeBroadcaster
	publisher   *fakePublisher

	user      uuid.UUID
	screening *entity.Screening
	seats     []*entity.Seat
}

func newReservationFixture() *reservationFixture {
	now := time.Now().UTC()
	movie := &entity.Movie{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:       "Heat",
		DurationMin: 170,
	}
	hall := &entity.Hall{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: "Hall 1",
	}
	screening := &entity.Screening{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:  movie.ID,
		HallID:   hall.ID,
		StartsAt: time.Date(2026, time.September, 1, 20, 0, 0, 0, time.UTC),
	}

	seats := []*entity.Seat{}
	seatMap := map[uuid.UUID]*entity.Seat{}
	for _, def := range []struct {
		row string
		num int
	}{{"B", 2}, {"A", 1}, {"A", 2}} {
		seat := &entity.Seat{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			HallID:     hall.ID,
			SeatRow:    def.row,
			SeatNumber: def.num,
			SeatType:   entity.SeatTypeStandard,
		}
		seats = append(seats, seat)
		seatMap[seat.ID] = seat
	}

	seatRepo := &fakeSeatRepo{
		seats: seatMap,
		states: []entity.SeatState{
			{SeatID: seats[1].ID, SeatRow: "A", SeatNumber: 1, IsTaken: true},
		},
	}
	reservationRepo := &fakeReservationRepo{}

	repo := &repository.Repository{
		Movie:       &fakeMovieRepo{movies: map[uuid.UUID]*entity.Movie{movie.ID: movie}},
		Hall:        &fakeHallRepo{halls: map[uuid.UUID]*entity.Hall{hall.ID: hall}},
		Screening:   &fakeScreeningRepo{screenings: map[uuid.UUID]*entity.Screening{screening.ID: screening}},
		Seat:        seatRepo,
		Reservation: reservationRepo,
	}

	return &reservationFixture{
		repo:        repo,
		reservation: reservationRepo,
		seat:        seatRepo,
		broadcaster: &fakeBroadcaster{},
		publisher:   &fakePublisher{},
		user:        uuid.New(),
		screening:   screening,
		seats:       seats,
	}
}

func (f *reservationFixture) service() ReservationService {
	return NewReservationService(f.repo, f.broadcaster, f.publisher, zap.NewNop())
}

func (f *reservationFixture) request(seats ...*entity.Seat) *request.CreateReservationRequest {
	req := &request.CreateReservationRequest{ScreeningID: f.screening.ID.String()}
	for _, seat := range seats {
		req.SeatIDs = append(req.SeatIDs, seat.ID.String())
	}
	return req
}

func TestCreateReservation_Success(t *testing.T) {
	f := newReservationFixture()
	svc := f.service()

	resp, err := svc.CreateReservation(context.Background(), f.user.String(), f.request(f.seats...))
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	if len(f.reservation.claimed) != 1 {
		t.Fatalf("expected one claim, got %d", len(f.reservation.claimed))
	}
	claim := f.reservation.claimed[0]
	if len(claim) != 3 {
		t.Fatalf("expected 3 reservation rows, got %d", len(claim))
	}
	for _, row := range claim {
		if row.ConfirmationCode != resp.ConfirmationCode {
			t.Fatalf("rows share no single confirmation code")
		}
		if row.ScreeningID != f.screening.ID || row.UserID != f.user {
			t.Fatalf("reservation row misattributed: %+v", row)
		}
	}

	if resp.MovieTitle != "Heat" || resp.HallName != "Hall 1" {
		t.Fatalf("confirmation missing context: %+v", resp)
	}
	want := []string{"A1", "A2", "B2"}
	if len(resp.Seats) != len(want) {
		t.Fatalf("seat labels: got %v", resp.Seats)
	}
	for i := range want {
		if resp.Seats[i] != want[i] {
			t.Fatalf("seat labels not ordered: got %v, want %v", resp.Seats, want)
		}
	}
}

func TestCreateReservation_BroadcastsSeatState(t *testing.T) {
	f := newReservationFixture()
	svc := f.service()

	if _, err := svc.CreateReservation(context.Background(), f.user.String(), f.request(f.seats[0])); err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	if len(f.broadcaster.published) != 1 || f.broadcaster.published[0] != f.screening.ID {
		t.Fatalf("seat state not broadcast for screening: %v", f.broadcaster.published)
	}
	if len(f.broadcaster.states[0]) != 1 || !f.broadcaster.states[0][0].IsTaken {
		t.Fatalf("broadcast payload is not the recomputed seat state")
	}

	if len(f.publisher.events) != 1 {
		t.Fatalf("confirmation event not published")
	}
	if f.publisher.events[0].ScreeningID != f.screening.ID.String() {
		t.Fatalf("confirmation event misattributed: %+v", f.publisher.events[0])
	}
}

func TestCreateReservation_SeatTakenConflict(t *testing.T) {
	f := newReservationFixture()
	f.reservation.claimErr = repository.ErrSeatTaken
	svc := f.service()

	_, err := svc.CreateReservation(context.Background(), f.user.String(), f.request(f.seats[0]))
	if err == nil || !strings.Contains(err.Error(), "already reserved") {
		t.Fatalf("expected already reserved error, got %v", err)
	}
	if len(f.broadcaster.published) != 0 {
		t.Fatalf("broadcast fired for failed claim")
	}
	if len(f.publisher.events) != 0 {
		t.Fatalf("confirmation published for failed claim")
	}
}

func TestCreateReservation_UnknownScreening(t *testing.T) {
	f := newReservationFixture()
	svc := f.service()

	req := f.request(f.seats[0])
	req.ScreeningID = uuid.NewString()
	_, err := svc.CreateReservation(context.Background(), f.user.String(), req)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateReservation_SeatOutsideHall(t *testing.T) {
	f := newReservationFixture()
	svc := f.service()

	req := f.request(f.seats[0])
	req.SeatIDs = append(req.SeatIDs, uuid.NewString())
	_, err := svc.CreateReservation(context.Background(), f.user.String(), req)
	if err == nil || !strings.Contains(err.Error(), "invalid seat selection") {
		t.Fatalf("expected invalid seat selection error, got %v", err)
	}
	if len(f.reservation.claimed) != 0 {
		t.Fatalf("claim attempted with unknown seat")
	}
}

func TestCreateReservation_DuplicateSeatRejected(t *testing.T) {
	f := newReservationFixture()
	svc := f.service()

	req := f.request(f.seats[0], f.seats[0])
	_, err := svc.CreateReservation(context.Background(), f.user.String(), req)
	if err == nil || !strings.Contains(err.Error(), "duplicate seat") {
		t.Fatalf("expected duplicate seat error, got %v", err)
	}
}

func TestCreateReservation_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := newReservationFixture()
	f.publisher.err = errors.New("broker down")
	svc := f.service()

	resp, err := svc.CreateReservation(context.Background(), f.user.String(), f.request(f.seats[0]))
	if err != nil {
		t.Fatalf("booking failed on publish error: %v", err)
	}
	if resp.ConfirmationCode == "" {
		t.Fatalf("confirmation missing")
	}
}

func TestCreateReservation_NilBroadcaster(t *testing.T) {
	f := newReservationFixture()
	svc := NewReservationService(f.repo, nil, f.publisher, zap.NewNop())

	if _, err := svc.CreateReservation(context.Background(), f.user.String(), f.request(f.seats[0])); err != nil {
		t.Fatalf("create reservation without broadcaster: %v", err)
	}
}
