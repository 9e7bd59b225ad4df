//go:build integration

package mysql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain"
	mysqlrepo "staybook/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

func startMySQL(t *testing.T) *mysqlrepo.Repo {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=staybook",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/staybook?charset=utf8mb4", resource.GetPort("3306/tcp"))
	pool.MaxWait = 2 * time.Minute

	var repo *mysqlrepo.Repo
	require.NoError(t, pool.Retry(func() error {
		var e error
		repo, e = mysqlrepo.Open(context.Background(), dsn)
		return e
	}))
	t.Cleanup(func() { _ = repo.Close(context.Background()) })

	require.NoError(t, repo.Migrate(context.Background()))
	// second run must be a no-op
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestRepo_MySQL_HotelLifecycle(t *testing.T) {
	repo := startMySQL(t)
	ctx := context.Background()

	cat := domain.Category{Name: "hills", Image: domain.Image{URL: "u", PublicID: "p"}}
	require.NoError(t, repo.CreateCategory(ctx, &cat))
	again := domain.Category{Name: "hills"}
	assert.ErrorIs(t, repo.CreateCategory(ctx, &again), domain.ErrDuplicate)

	h := domain.Hotel{
		OwnerID: "owner-1", CategoryID: cat.ID,
		Title: "pine lodge", Description: "quiet retreat", Content: "wood cabins near the lake",
		Price: 120, Country: "India", City: "Manali",
		Images: []domain.Image{{URL: "a", PublicID: "one"}, {URL: "b", PublicID: "two"}},
	}
	require.NoError(t, repo.CreateHotel(ctx, &h))

	require.NoError(t, repo.UpdateHotel(ctx, h.ID, domain.HotelUpdate{Price: pfloat(150), City: pstr("Shimla")}))
	got, err := repo.GetHotel(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.Price)
	assert.Equal(t, "Shimla", got.City)
	assert.Equal(t, "pine lodge", got.Title)

	require.NoError(t, repo.RemoveHotelImage(ctx, h.ID, "one"))
	require.NoError(t, repo.AddHotelImages(ctx, h.ID, []domain.Image{{URL: "c", PublicID: "three"}}))
	got, err = repo.GetHotel(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Image{{URL: "b", PublicID: "two"}, {URL: "c", PublicID: "three"}}, got.Images)

	list, err := repo.ListHotels(ctx, domain.HotelQuery{Page: 1, Limit: 10, Filter: domain.HotelFilter{Search: "lake"}})
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := repo.CountHotels(ctx, domain.HotelFilter{Price: domain.Range{Gt: pfloat(150)}})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	assert.ErrorIs(t, repo.UpdateHotel(ctx, "missing", domain.HotelUpdate{}), domain.ErrNotFound)
	require.NoError(t, repo.DeleteHotel(ctx, h.ID))
	_, err = repo.GetHotel(ctx, h.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_MySQL_BookingOverlap(t *testing.T) {
	repo := startMySQL(t)
	ctx := context.Background()

	in := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 2)
	b := domain.Booking{
		UserID: "u1", HotelID: "h1", Price: 99, CheckInDate: in, CheckOutDate: out, NumberOfDays: 3, Adults: 1,
		PaymentResult: domain.PaymentResult{ID: "pay_1", Status: "success", RazorpayOrderID: "order_1"},
	}
	require.NoError(t, repo.CreateBooking(ctx, &b))

	got, err := repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "order_1", got.PaymentResult.RazorpayOrderID)
	assert.True(t, got.CheckInDate.Equal(in))

	hit, err := repo.HasOverlappingBooking(ctx, "h1", in.AddDate(0, 0, -3), in)
	require.NoError(t, err)
	assert.True(t, hit, "touching check-in day overlaps")

	hit, err = repo.HasOverlappingBooking(ctx, "h1", out.AddDate(0, 0, 1), out.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.False(t, hit)

	rt := domain.Rating{HotelID: "h1", UserID: "u1", Comment: "great", Rating: 4}
	require.NoError(t, repo.CreateRating(ctx, &rt))
	rs, err := repo.ListRatings(ctx, domain.RatingFilter{HotelID: "h1"})
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "great", rs[0].Comment)
}
