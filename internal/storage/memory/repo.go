// Package memory is a process-local document store. It backs local development
// (STORE_DRIVER=memory) and the HTTP tests.
package memory

import (
	"cmp"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain"
)

type entry[T any] struct {
	seq int64
	doc T
}

type Repo struct {
	mu         sync.RWMutex
	seq        int64
	now        func() time.Time
	hotels     map[string]entry[domain.Hotel]
	bookings   map[string]entry[domain.Booking]
	ratings    map[string]entry[domain.Rating]
	categories map[string]entry[domain.Category]
	users      map[string]entry[domain.User]
}

func New() *Repo {
	return &Repo{
		now:        func() time.Time { return time.Now().UTC() },
		hotels:     map[string]entry[domain.Hotel]{},
		bookings:   map[string]entry[domain.Booking]{},
		ratings:    map[string]entry[domain.Rating]{},
		categories: map[string]entry[domain.Category]{},
		users:      map[string]entry[domain.User]{},
	}
}

func (r *Repo) Close(ctx context.Context) error { return nil }

func (r *Repo) next() (string, int64, time.Time) {
	r.seq++
	return uuid.NewString(), r.seq, r.now()
}

// ---- hotels ----

func (r *Repo) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, seq, now := r.next()
	h.ID, h.CreatedAt, h.UpdatedAt = id, now, now
	if h.Images == nil {
		h.Images = []domain.Image{}
	}
	r.hotels[id] = entry[domain.Hotel]{seq: seq, doc: cloneHotel(*h)}
	return nil
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return cloneHotel(e.doc), nil
}

func (r *Repo) ListHotels(ctx context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	r.mu.RLock()
	matched := make([]entry[domain.Hotel], 0, len(r.hotels))
	for _, e := range r.hotels {
		if matchHotel(e.doc, q.Filter) {
			matched = append(matched, e)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool { return lessHotel(matched[i], matched[j], q.Sort) })

	skip := q.Skip()
	if skip >= len(matched) {
		return []domain.Hotel{}, nil
	}
	matched = matched[skip:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	out := make([]domain.Hotel, 0, len(matched))
	for _, e := range matched {
		out = append(out, cloneHotel(e.doc))
	}
	return out, nil
}

func (r *Repo) CountHotels(ctx context.Context, f domain.HotelFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, e := range r.hotels {
		if matchHotel(e.doc, f) {
			n++
		}
	}
	return n, nil
}

func (r *Repo) UpdateHotel(ctx context.Context, id string, u domain.HotelUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.hotels[id]
	if !ok {
		return domain.ErrNotFound
	}
	h := &e.doc
	setStr(&h.Title, u.Title)
	setStr(&h.Description, u.Description)
	setStr(&h.Content, u.Content)
	setStr(&h.CategoryID, u.CategoryID)
	if u.Price != nil {
		h.Price = *u.Price
	}
	setStr(&h.Country, u.Country)
	setStr(&h.State, u.State)
	setStr(&h.City, u.City)
	setStr(&h.Zip, u.Zip)
	setStr(&h.Address, u.Address)
	setStr(&h.Latitude, u.Latitude)
	setStr(&h.Longitude, u.Longitude)
	h.UpdatedAt = r.now()
	r.hotels[id] = e
	return nil
}

func (r *Repo) DeleteHotel(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.hotels, id)
	return nil
}

func (r *Repo) AddHotelImages(ctx context.Context, id string, imgs []domain.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.hotels[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.doc.Images = append(append([]domain.Image{}, e.doc.Images...), imgs...)
	e.doc.UpdatedAt = r.now()
	r.hotels[id] = e
	return nil
}

func (r *Repo) RemoveHotelImage(ctx context.Context, id, publicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.hotels[id]
	if !ok {
		return domain.ErrNotFound
	}
	kept := make([]domain.Image, 0, len(e.doc.Images))
	for _, img := range e.doc.Images {
		if img.PublicID != publicID {
			kept = append(kept, img)
		}
	}
	e.doc.Images = kept
	e.doc.UpdatedAt = r.now()
	r.hotels[id] = e
	return nil
}

func matchHotel(h domain.Hotel, f domain.HotelFilter) bool {
	if f.CategoryID != "" && h.CategoryID != f.CategoryID {
		return false
	}
	if f.Country != "" && !strings.EqualFold(h.Country, f.Country) {
		return false
	}
	if f.State != "" && !strings.EqualFold(h.State, f.State) {
		return false
	}
	if f.City != "" && !strings.EqualFold(h.City, f.City) {
		return false
	}
	if f.Zip != "" && h.Zip != f.Zip {
		return false
	}
	if !f.Price.Contains(h.Price) {
		return false
	}
	if f.Search == "" {
		return true
	}
	// any term matches, like a text index
	text := strings.ToLower(h.Title + " " + h.Description + " " + h.Content)
	for _, term := range strings.Fields(strings.ToLower(f.Search)) {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func lessHotel(a, b entry[domain.Hotel], by []domain.SortField) bool {
	for _, s := range by {
		c := 0
		switch s.Field {
		case domain.SortCreatedAt:
			c = a.doc.CreatedAt.Compare(b.doc.CreatedAt)
			if c == 0 {
				c = cmp.Compare(a.seq, b.seq)
			}
		case domain.SortUpdatedAt:
			c = a.doc.UpdatedAt.Compare(b.doc.UpdatedAt)
		case domain.SortPrice:
			c = cmp.Compare(a.doc.Price, b.doc.Price)
		case domain.SortTitle:
			c = strings.Compare(a.doc.Title, b.doc.Title)
		}
		if c == 0 {
			continue
		}
		if s.Desc {
			return c > 0
		}
		return c < 0
	}
	return a.seq < b.seq
}

// ---- bookings ----

func (r *Repo) CreateBooking(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, seq, now := r.next()
	b.ID, b.CreatedAt, b.UpdatedAt = id, now, now
	if b.Status == "" {
		b.Status = domain.BookingPending
	}
	r.bookings[id] = entry[domain.Booking]{seq: seq, doc: *b}
	return nil
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return e.doc, nil
}

func (r *Repo) ListBookings(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var es []entry[domain.Booking]
	for _, e := range r.bookings {
		if f.UserID != "" && e.doc.UserID != f.UserID {
			continue
		}
		if f.HotelID != "" && e.doc.HotelID != f.HotelID {
			continue
		}
		es = append(es, e)
	}
	return docs(es), nil
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, s domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.doc.Status = s
	e.doc.UpdatedAt = r.now()
	r.bookings[id] = e
	return nil
}

func (r *Repo) HasOverlappingBooking(ctx context.Context, hotelID string, in, out time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.bookings {
		b := e.doc
		if b.HotelID == hotelID && b.Status != domain.BookingCancel && b.Overlaps(in, out) {
			return true, nil
		}
	}
	return false, nil
}

// ---- ratings ----

func (r *Repo) CreateRating(ctx context.Context, rt *domain.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, seq, now := r.next()
	rt.ID, rt.CreatedAt, rt.UpdatedAt = id, now, now
	r.ratings[id] = entry[domain.Rating]{seq: seq, doc: *rt}
	return nil
}

func (r *Repo) ListRatings(ctx context.Context, f domain.RatingFilter) ([]domain.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var es []entry[domain.Rating]
	for _, e := range r.ratings {
		if f.HotelID != "" && e.doc.HotelID != f.HotelID {
			continue
		}
		if f.UserID != "" && e.doc.UserID != f.UserID {
			continue
		}
		es = append(es, e)
	}
	return docs(es), nil
}

// ---- categories ----

func (r *Repo) CreateCategory(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.categories {
		if e.doc.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	id, seq, now := r.next()
	c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
	r.categories[id] = entry[domain.Category]{seq: seq, doc: *c}
	return nil
}

func (r *Repo) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.categories[id]
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	return e.doc, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	es := make([]entry[domain.Category], 0, len(r.categories))
	for _, e := range r.categories {
		es = append(es, e)
	}
	return docs(es), nil
}

func (r *Repo) UpdateCategory(ctx context.Context, c domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.CreatedAt, c.UpdatedAt = e.doc.CreatedAt, r.now()
	e.doc = c
	r.categories[c.ID] = e
	return nil
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// ---- users ----

func (r *Repo) CreateUser(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.doc.Email == u.Email || e.doc.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	id, seq, now := r.next()
	u.ID, u.CreatedAt, u.UpdatedAt = id, now, now
	r.users[id] = entry[domain.User]{seq: seq, doc: *u}
	return nil
}

func (r *Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return e.doc, nil
}

func (r *Repo) FindUser(ctx context.Context, login string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.users {
		if e.doc.Email == login || e.doc.Username == login {
			return e.doc, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

// ---- helpers ----

// docs returns documents in insertion order.
func docs[T any](es []entry[T]) []T {
	sort.Slice(es, func(i, j int) bool { return es[i].seq < es[j].seq })
	out := make([]T, 0, len(es))
	for _, e := range es {
		out = append(out, e.doc)
	}
	return out
}

func cloneHotel(h domain.Hotel) domain.Hotel {
	h.Images = append([]domain.Image{}, h.Images...)
	return h
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
