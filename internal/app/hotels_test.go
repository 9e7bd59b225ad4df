package app_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/internal/storage/memory"
)

type fixture struct {
	store    *memory.Repo
	admin    domain.User
	guest    domain.User
	category domain.Category
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{store: memory.New()}
	f.admin = domain.User{Username: "admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	f.guest = domain.User{Username: "guest", Email: "guest@example.com", FirstName: "Gia", Role: domain.RoleUser}
	f.category = domain.Category{Name: "beach"}
	for _, u := range []*domain.User{&f.admin, &f.guest} {
		if err := f.store.CreateUser(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	if err := f.store.CreateCategory(ctx, &f.category); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return f
}

func (f fixture) hotelInput(title string) app.HotelInput {
	return app.HotelInput{
		Title: ptr(title), Description: ptr("Sea View"), Content: ptr("Pool"),
		CategoryID: ptr(f.category.ID), Price: ptr(2500.0),
		Country: ptr("India"), State: ptr("Goa"), City: ptr("Panaji"), Zip: ptr("403001"),
		Address: ptr("1 Beach Road"), Latitude: ptr("15.49"), Longitude: ptr("73.82"),
		Images: []domain.Image{{URL: "https://cdn/a.jpg", PublicID: "a"}, {URL: "https://cdn/b.jpg", PublicID: "b"}},
	}
}

func TestHotelCreate_ReportsEveryMissingField(t *testing.T) {
	f := newFixture(t)
	svc := app.NewHotelService(f.store, nil, 0)

	in := f.hotelInput("Palm")
	in.Title = ptr("  ")
	in.Price = nil
	in.Longitude = nil
	_, err := svc.Create(context.Background(), f.admin, in)

	var ve *app.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	want := []string{"Please fill title field.", "Please fill price field.", "Please fill longitude field."}
	if !reflect.DeepEqual(ve.Errors, want) {
		t.Fatalf("errors = %q, want %q", ve.Errors, want)
	}
}

func TestHotelCreate_UnknownCategory(t *testing.T) {
	f := newFixture(t)
	svc := app.NewHotelService(f.store, nil, 0)

	in := f.hotelInput("Palm")
	in.CategoryID = ptr("missing")
	_, err := svc.Create(context.Background(), f.admin, in)
	var ve *app.ValidationError
	if !errors.As(err, &ve) || ve.Errors[0] != "This category does not exists." {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestHotelCreate_BlankExtraKeysReportedLast(t *testing.T) {
	f := newFixture(t)
	svc := app.NewHotelService(f.store, nil, 0)

	in := f.hotelInput("Palm")
	in.City = ptr("")
	in.Blank = []string{"rooms", "stars"}
	_, err := svc.Create(context.Background(), f.admin, in)

	var ve *app.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error, got %v", err)
	}
	want := []string{"Please fill city field.", "Please fill rooms field.", "Please fill stars field."}
	if !reflect.DeepEqual(ve.Errors, want) {
		t.Fatalf("errors = %v", ve.Errors)
	}
}

func TestHotelGet_CacheMissThenHit(t *testing.T) {
	f := newFixture(t)
	cache := &fakeCache{}
	svc := app.NewHotelService(f.store, cache, 10*time.Minute)
	ctx := context.Background()

	h, err := svc.Create(ctx, f.admin, f.hotelInput("Palm Resort"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.Title != "palm resort" || h.Description != "sea view" {
		t.Fatalf("text fields not lowercased: %+v", h)
	}

	// Miss populates the cache.
	hv, err := svc.Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hv.Owner == nil || hv.Owner.Username != "admin" || hv.Category == nil || hv.Category.Name != "beach" {
		t.Fatalf("not populated: %+v", hv)
	}
	if cache.hits != 0 || !cache.has("hotel:"+h.ID) {
		t.Fatalf("expected a miss that fills the cache, hits=%d", cache.hits)
	}

	// Hit: served even though the store no longer has it.
	if err := f.store.DeleteHotel(ctx, h.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	hv2, err := svc.Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("get (hit): %v", err)
	}
	if cache.hits != 1 || hv2.Title != hv.Title || len(hv2.Images) != 2 {
		t.Fatalf("expected cached view, hits=%d got %+v", cache.hits, hv2)
	}
}

func TestHotelMutations_InvalidateCache(t *testing.T) {
	f := newFixture(t)
	cache := &fakeCache{}
	svc := app.NewHotelService(f.store, cache, time.Minute)
	ctx := context.Background()

	h, err := svc.Create(ctx, f.admin, f.hotelInput("Palm"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	key := "hotel:" + h.ID

	steps := []struct {
		name string
		do   func() error
	}{
		{"update", func() error { return svc.Update(ctx, h.ID, app.HotelInput{Title: ptr("Renamed")}) }},
		{"add images", func() error {
			return svc.AddImages(ctx, h.ID, []domain.Image{{URL: "https://cdn/c.jpg", PublicID: "c"}})
		}},
		{"remove image", func() error { return svc.RemoveImage(ctx, h.ID, "a") }},
	}
	for _, s := range steps {
		if _, err := svc.Get(ctx, h.ID); err != nil {
			t.Fatalf("%s: warm: %v", s.name, err)
		}
		if !cache.has(key) {
			t.Fatalf("%s: cache not warmed", s.name)
		}
		if err := s.do(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if cache.has(key) {
			t.Fatalf("%s: cache entry survived", s.name)
		}
	}

	hv, err := svc.Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hv.Title != "renamed" {
		t.Fatalf("title = %q", hv.Title)
	}
	var ids []string
	for _, img := range hv.Images {
		ids = append(ids, img.PublicID)
	}
	if !reflect.DeepEqual(ids, []string{"b", "c"}) {
		t.Fatalf("images = %v", ids)
	}
}

func TestHotelImages_Validation(t *testing.T) {
	f := newFixture(t)
	svc := app.NewHotelService(f.store, nil, 0)
	ctx := context.Background()
	h, _ := svc.Create(ctx, f.admin, f.hotelInput("Palm"))

	var ve *app.ValidationError
	if err := svc.RemoveImage(ctx, h.ID, ""); !errors.As(err, &ve) || ve.Errors[0] != "Public id not found." {
		t.Fatalf("remove without id: %v", err)
	}
	if err := svc.AddImages(ctx, h.ID, nil); !errors.As(err, &ve) {
		t.Fatalf("add none: %v", err)
	}
	if err := svc.AddImages(ctx, h.ID, []domain.Image{{URL: "x"}}); !errors.As(err, &ve) {
		t.Fatalf("add without public id: %v", err)
	}
	if err := svc.RemoveImage(ctx, "nope", "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown hotel: %v", err)
	}
}

func TestHotelList_PageAndCount(t *testing.T) {
	f := newFixture(t)
	svc := app.NewHotelService(f.store, nil, 0)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		in := f.hotelInput("Hotel")
		in.Price = ptr(float64(100 + i))
		if _, err := svc.Create(ctx, f.admin, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	q := domain.HotelQuery{Page: 2, Limit: 10, Sort: []domain.SortField{{Field: domain.SortPrice}}}
	page, err := svc.List(ctx, q)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Count != 12 || len(page.Items) != 2 {
		t.Fatalf("count=%d items=%d", page.Count, len(page.Items))
	}
	if page.Items[0].Price != 110 || page.Items[0].Owner == nil {
		t.Fatalf("unexpected first item %+v", page.Items[0])
	}

	all, err := svc.ListAll(ctx)
	if err != nil || len(all) != 12 {
		t.Fatalf("list all: %d %v", len(all), err)
	}
}

func TestHotelGet_CachedHotelSeesCategoryRename(t *testing.T) {
	f := newFixture(t)
	cache := &fakeCache{}
	hotels := app.NewHotelService(f.store, cache, time.Hour)
	cats := app.NewCategoryService(f.store, cache, time.Hour)
	ctx := context.Background()

	h, err := hotels.Create(ctx, f.admin, f.hotelInput("Palm"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if hv, err := hotels.Get(ctx, h.ID); err != nil || hv.Category.Name != "beach" {
		t.Fatalf("warm: %+v %v", hv.Category, err)
	}
	if err := cats.Update(ctx, f.category.ID, app.CategoryInput{Name: ptr("Mountain")}); err != nil {
		t.Fatalf("rename category: %v", err)
	}

	hits := cache.hits
	hv, err := hotels.Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cache.hits != hits+1 {
		t.Fatalf("expected the hotel to come from cache")
	}
	if hv.Category == nil || hv.Category.Name != "mountain" {
		t.Fatalf("category = %+v, want mountain", hv.Category)
	}

	if err := cats.Delete(ctx, f.category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if hv, _ = hotels.Get(ctx, h.ID); hv.Category != nil {
		t.Fatalf("deleted category still populated: %+v", hv.Category)
	}
}

func TestHotelList_PageFarBeyondEnd(t *testing.T) {
	f := newFixture(t)
	svc := app.NewHotelService(f.store, nil, 0)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, f.admin, f.hotelInput("Hotel")); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	for _, q := range []domain.HotelQuery{
		{Page: math.MaxInt, Limit: 20},
		{Page: math.MaxInt / 20, Limit: 100},
		{Page: 5, Limit: 1},
	} {
		page, err := svc.List(ctx, q)
		if err != nil {
			t.Fatalf("page %d: %v", q.Page, err)
		}
		if page.Count != 3 || len(page.Items) != 0 {
			t.Fatalf("page %d: count=%d items=%d", q.Page, page.Count, len(page.Items))
		}
	}
}
