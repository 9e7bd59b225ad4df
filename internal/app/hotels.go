package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"staybook/internal/domain"
)

type HotelInput struct {
	Title       *string
	Description *string
	Content     *string
	CategoryID  *string
	Images      []domain.Image
	Price       *float64
	Country     *string
	State       *string
	City        *string
	Zip         *string
	Address     *string
	Latitude    *string
	Longitude   *string
	// Blank names any other submitted keys that were left empty.
	Blank []string
}

type HotelService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelService(s domain.Store, c domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{store: s, cache: c, cacheTTL: ttl}
}

func hotelKey(id string) string { return "hotel:" + id }

func (s *HotelService) List(ctx context.Context, q domain.HotelQuery) (domain.HotelsPage, error) {
	hs, err := s.store.ListHotels(ctx, q)
	if err != nil {
		return domain.HotelsPage{}, fmt.Errorf("list hotels: %w", err)
	}
	count, err := s.store.CountHotels(ctx, q.Filter)
	if err != nil {
		return domain.HotelsPage{}, fmt.Errorf("count hotels: %w", err)
	}
	items, err := s.populate(ctx, hs)
	if err != nil {
		return domain.HotelsPage{}, err
	}
	return domain.HotelsPage{Items: items, Count: count}, nil
}

// ListAll returns every hotel, newest first.
func (s *HotelService) ListAll(ctx context.Context) ([]domain.HotelView, error) {
	hs, err := s.store.ListHotels(ctx, domain.HotelQuery{
		Sort: []domain.SortField{{Field: domain.SortCreatedAt, Desc: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return s.populate(ctx, hs)
}

func (s *HotelService) populate(ctx context.Context, hs []domain.Hotel) ([]domain.HotelView, error) {
	p := newPopulator(s.store)
	out := make([]domain.HotelView, 0, len(hs))
	for _, h := range hs {
		v, err := p.hotelView(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("populate hotel %s: %w", h.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Get caches the stored hotel only. References are resolved on every read so
// owner and category edits show up without touching hotel keys.
func (s *HotelService) Get(ctx context.Context, id string) (domain.HotelView, error) {
	key := hotelKey(id)
	var h domain.Hotel
	cached := false
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, &h)
		cached = ok && err == nil
	}
	if !cached {
		var err error
		if h, err = s.store.GetHotel(ctx, id); err != nil {
			return domain.HotelView{}, err
		}
		if s.cache != nil {
			_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
		}
	}
	return newPopulator(s.store).hotelView(ctx, h)
}

func (s *HotelService) Create(ctx context.Context, owner domain.User, in HotelInput) (domain.Hotel, error) {
	var f fields
	f.str("title", in.Title)
	f.str("description", in.Description)
	f.str("content", in.Content)
	f.str("category", in.CategoryID)
	f.num("price", in.Price)
	f.str("country", in.Country)
	f.str("state", in.State)
	f.str("city", in.City)
	f.str("zip", in.Zip)
	f.str("address", in.Address)
	f.str("latitude", in.Latitude)
	f.str("longitude", in.Longitude)
	for _, k := range in.Blank {
		f.missing(k)
	}
	if err := f.err(); err != nil {
		return domain.Hotel{}, err
	}
	if err := s.checkCategory(ctx, *in.CategoryID); err != nil {
		return domain.Hotel{}, err
	}

	h := domain.Hotel{
		OwnerID:     owner.ID,
		CategoryID:  *in.CategoryID,
		Title:       deref(lower(in.Title)),
		Description: deref(lower(in.Description)),
		Content:     deref(lower(in.Content)),
		Images:      append([]domain.Image{}, in.Images...),
		Price:       *in.Price,
		Country:     strings.TrimSpace(*in.Country),
		State:       strings.TrimSpace(*in.State),
		City:        strings.TrimSpace(*in.City),
		Zip:         strings.TrimSpace(*in.Zip),
		Address:     strings.TrimSpace(*in.Address),
		Latitude:    strings.TrimSpace(*in.Latitude),
		Longitude:   strings.TrimSpace(*in.Longitude),
	}
	if err := s.store.CreateHotel(ctx, &h); err != nil {
		return domain.Hotel{}, fmt.Errorf("create hotel: %w", err)
	}
	log.Info().Str("hotel", h.ID).Str("owner", owner.ID).Msg("hotel created")
	return h, nil
}

// Update applies the provided fields as they are; absent fields are kept.
func (s *HotelService) Update(ctx context.Context, id string, in HotelInput) error {
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, *in.CategoryID); err != nil {
			return err
		}
	}
	u := domain.HotelUpdate{
		Title:       lower(in.Title),
		Description: lower(in.Description),
		Content:     lower(in.Content),
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Country:     in.Country,
		State:       in.State,
		City:        in.City,
		Zip:         in.Zip,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}
	if err := s.store.UpdateHotel(ctx, id, u); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *HotelService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *HotelService) AddImages(ctx context.Context, id string, imgs []domain.Image) error {
	if len(imgs) == 0 {
		return invalid("Please fill images field.")
	}
	for _, img := range imgs {
		if img.URL == "" || img.PublicID == "" {
			return invalid("Every image needs url and public_id.")
		}
	}
	if err := s.store.AddHotelImages(ctx, id, imgs); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *HotelService) RemoveImage(ctx context.Context, id, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return invalid("Public id not found.")
	}
	if err := s.store.RemoveHotelImage(ctx, id, publicID); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *HotelService) checkCategory(ctx context.Context, id string) error {
	_, err := s.store.GetCategory(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return invalid("This category does not exists.")
	}
	return err
}

func (s *HotelService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, hotelKey(id)); err != nil {
		log.Warn().Err(err).Str("hotel", id).Msg("hotel cache invalidation failed")
	}
}
