package services_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/zaika/app/repositories"
	"github.com/shashiranjanraj/zaika/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationInput() services.ReservationInput {
	return services.ReservationInput{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		Date:      "2026-09-15",
		Time:      "19:30",
		Address:   "12 MG Road, Bengaluru",
	}
}

func TestRandomAllocatorRange(t *testing.T) {
	a := services.RandomAllocator{}
	for i := 0; i < 500; i++ {
		n, err := a.Allocate(context.Background(), "2026-09-15", "19:30")
		require.NoError(t, err)
		if n < 1 || n > services.MaxTables {
			t.Fatalf("table %d out of range [1,%d]", n, services.MaxTables)
		}
	}
}

func TestSequentialAllocatorPicksLowestFree(t *testing.T) {
	repo := repositories.NewReservationRepository(newTestDB(t))
	svc := services.NewReservationService(repo, services.SequentialAllocator{Reservations: repo})
	ctx := context.Background()

	first, err := svc.Book(ctx, reservationInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TableNumber)

	second, err := svc.Book(ctx, reservationInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.TableNumber)

	// A different slot starts from table 1 again.
	other := reservationInput()
	other.Time = "21:00"
	res, err := svc.Book(ctx, other, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TableNumber)
}

func TestBookStoresUserReference(t *testing.T) {
	repo := repositories.NewReservationRepository(newTestDB(t))
	svc := services.NewReservationService(repo, nil)
	ctx := context.Background()

	guest, err := svc.Book(ctx, reservationInput(), nil)
	require.NoError(t, err)
	assert.Nil(t, guest.UserID)

	userID := uint(7)
	owned, err := svc.Book(ctx, reservationInput(), &userID)
	require.NoError(t, err)
	require.NotNil(t, owned.UserID)
	assert.Equal(t, uint(7), *owned.UserID)
}

func TestMineFiltersAndOrders(t *testing.T) {
	repo := repositories.NewReservationRepository(newTestDB(t))
	svc := services.NewReservationService(repo, nil)
	ctx := context.Background()

	mine := uint(1)
	other := uint(2)
	for i := 0; i < 2; i++ {
		_, err := svc.Book(ctx, reservationInput(), &mine)
		require.NoError(t, err)
	}
	_, err := svc.Book(ctx, reservationInput(), &other)
	require.NoError(t, err)

	got, err := svc.Mine(ctx, mine)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.GreaterOrEqual(t, got[0].ID, got[1].ID, "newest first")

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
