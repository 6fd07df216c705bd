package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/app/repositories"
	"github.com/shashiranjanraj/zaika/pkg/apperr"
	"github.com/shashiranjanraj/zaika/pkg/cache"
)

const (
	allReservationsKey = "reservations:all"
	allReservationsTTL = 30 * time.Second
)

// MaxTables is the number of tables in the restaurant.
const MaxTables = 100

// TableAllocator picks a table number for a booking.
type TableAllocator interface {
	Allocate(ctx context.Context, date, slot string) (int, error)
}

// RandomAllocator assigns a random table in [1, MaxTables] without checking
// for collisions, matching the behaviour clients already depend on.
type RandomAllocator struct{}

func (RandomAllocator) Allocate(_ context.Context, _, _ string) (int, error) {
	return rand.Intn(MaxTables) + 1, nil
}

// SequentialAllocator hands out the lowest free table for the date/time
// slot, refusing the booking when every table is taken.
type SequentialAllocator struct {
	Reservations *repositories.ReservationRepository
}

func (a SequentialAllocator) Allocate(ctx context.Context, date, slot string) (int, error) {
	taken, err := a.Reservations.TakenTables(ctx, date, slot)
	if err != nil {
		return 0, err
	}

	used := make(map[int]bool, len(taken))
	for _, t := range taken {
		used[t] = true
	}
	for n := 1; n <= MaxTables; n++ {
		if !used[n] {
			return n, nil
		}
	}
	return 0, apperr.Conflict("No tables available for the selected slot")
}

// ReservationService books tables and lists bookings.
type ReservationService struct {
	reservations *repositories.ReservationRepository
	allocator    TableAllocator
}

// NewReservationService wires a ReservationService. A nil allocator falls
// back to random assignment.
func NewReservationService(reservations *repositories.ReservationRepository, allocator TableAllocator) *ReservationService {
	if allocator == nil {
		allocator = RandomAllocator{}
	}
	return &ReservationService{reservations: reservations, allocator: allocator}
}

// ReservationInput is the validated booking request.
type ReservationInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Date      string
	Time      string
	Address   string
}

// Book allocates a table and stores the reservation. userID is nil for
// guest bookings.
func (s *ReservationService) Book(ctx context.Context, in ReservationInput, userID *uint) (*models.Reservation, error) {
	table, err := s.allocator.Allocate(ctx, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	res := &models.Reservation{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		Date:        in.Date,
		Time:        in.Time,
		Address:     in.Address,
		TableNumber: table,
		UserID:      userID,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	_ = cache.Del(allReservationsKey)
	return res, nil
}

// Mine lists the user's reservations, newest first.
func (s *ReservationService) Mine(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return s.reservations.ByUser(ctx, userID)
}

// All lists every reservation. Admin only; the route enforces the role.
// The listing is served from Redis for a short window and invalidated on
// every new booking.
func (s *ReservationService) All(ctx context.Context) ([]models.Reservation, error) {
	var cached []models.Reservation
	if cache.Get(allReservationsKey, &cached) {
		return cached, nil
	}

	all, err := s.reservations.All(ctx)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(allReservationsKey, all, allReservationsTTL)
	return all, nil
}
