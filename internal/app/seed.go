package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"staybook/internal/domain"
)

// Fixture is a set of documents to load into an empty or partly seeded store.
type Fixture struct {
	Admin      FixtureUser       `yaml:"admin"`
	Categories []FixtureCategory `yaml:"categories"`
	Hotels     []FixtureHotel    `yaml:"hotels"`
}

type FixtureUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type FixtureImage struct {
	URL      string `yaml:"url"`
	PublicID string `yaml:"public_id"`
}

type FixtureCategory struct {
	Name  string       `yaml:"name"`
	Image FixtureImage `yaml:"image"`
}

// FixtureHotel names its category rather than referencing an id.
type FixtureHotel struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Content     string         `yaml:"content"`
	Category    string         `yaml:"category"`
	Price       float64        `yaml:"price"`
	Country     string         `yaml:"country"`
	State       string         `yaml:"state"`
	City        string         `yaml:"city"`
	Zip         string         `yaml:"zip"`
	Address     string         `yaml:"address"`
	Latitude    string         `yaml:"latitude"`
	Longitude   string         `yaml:"longitude"`
	Images      []FixtureImage `yaml:"images"`
}

type SeedReport struct {
	Created int
	Skipped int
	Failed  int
}

type SeedService struct {
	store      domain.Store
	auth       *AuthService
	categories *CategoryService
	hotels     *HotelService
	workers    int
	observe    func(kind string, err error)
}

// NewSeedService builds a seeder. observe, if set, is called once per
// document written or failed.
func NewSeedService(store domain.Store, auth *AuthService, cats *CategoryService, hotels *HotelService, workers int, observe func(string, error)) *SeedService {
	if workers <= 0 {
		workers = 1
	}
	if observe == nil {
		observe = func(string, error) {}
	}
	return &SeedService{store: store, auth: auth, categories: cats, hotels: hotels, workers: workers, observe: observe}
}

// Run creates what the fixture lists and skips what already exists, so it can
// be re-run. Hotels are created concurrently.
func (s *SeedService) Run(ctx context.Context, fx Fixture) (SeedReport, error) {
	var rep SeedReport

	admin, created, err := s.ensureAdmin(ctx, fx.Admin)
	s.observe("user", err)
	if err != nil {
		return rep, fmt.Errorf("seed admin: %w", err)
	}
	rep.add(created)

	catIDs, err := s.ensureCategories(ctx, fx.Categories, &rep)
	if err != nil {
		return rep, err
	}

	existing, err := s.store.ListHotels(ctx, domain.HotelQuery{})
	if err != nil {
		return rep, fmt.Errorf("list hotels: %w", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, h := range existing {
		titles[h.Title] = true
	}

	sem := semaphore.NewWeighted(int64(s.workers))
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, fh := range fx.Hotels {
		title := strings.ToLower(strings.TrimSpace(fh.Title))
		if titles[title] {
			rep.Skipped++
			continue
		}
		titles[title] = true

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}
		wg.Add(1)
		go func(fh FixtureHotel) {
			defer wg.Done()
			defer sem.Release(1)

			err := s.createHotel(ctx, admin, fh, catIDs)
			s.observe("hotel", err)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Failed++
				errs = append(errs, fmt.Errorf("hotel %q: %w", fh.Title, err))
				log.Warn().Str("title", fh.Title).Err(err).Msg("seed hotel failed")
				return
			}
			rep.Created++
		}(fh)
	}
	wg.Wait()
	return rep, errors.Join(errs...)
}

func (r *SeedReport) add(created bool) {
	if created {
		r.Created++
	} else {
		r.Skipped++
	}
}

func (s *SeedService) ensureAdmin(ctx context.Context, fu FixtureUser) (domain.User, bool, error) {
	u, err := s.store.FindUser(ctx, strings.ToLower(strings.TrimSpace(fu.Email)))
	if err == nil {
		if !u.IsAdmin() {
			return domain.User{}, false, fmt.Errorf("user %s exists and is not an admin", u.Email)
		}
		return u, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, false, err
	}
	u, err = s.auth.Register(ctx, RegisterInput{
		Username: fu.Username,
		Email:    fu.Email,
		Password: fu.Password,
		Role:     domain.RoleAdmin,
	})
	return u, err == nil, err
}

func (s *SeedService) ensureCategories(ctx context.Context, fcs []FixtureCategory, rep *SeedReport) (map[string]string, error) {
	have, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	ids := make(map[string]string, len(have)+len(fcs))
	for _, c := range have {
		ids[c.Name] = c.ID
	}
	for _, fc := range fcs {
		name := strings.ToLower(strings.TrimSpace(fc.Name))
		if _, ok := ids[name]; ok {
			rep.Skipped++
			continue
		}
		c, err := s.categories.Create(ctx, CategoryInput{
			Name:  &name,
			Image: &domain.Image{URL: fc.Image.URL, PublicID: fc.Image.PublicID},
		})
		s.observe("category", err)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", fc.Name, err)
		}
		ids[c.Name] = c.ID
		rep.Created++
	}
	return ids, nil
}

func (s *SeedService) createHotel(ctx context.Context, admin domain.User, fh FixtureHotel, catIDs map[string]string) error {
	catID, ok := catIDs[strings.ToLower(strings.TrimSpace(fh.Category))]
	if !ok {
		return invalid(fmt.Sprintf("unknown category %q", fh.Category))
	}
	imgs := make([]domain.Image, 0, len(fh.Images))
	for _, img := range fh.Images {
		imgs = append(imgs, domain.Image{URL: img.URL, PublicID: img.PublicID})
	}
	_, err := s.hotels.Create(ctx, admin, HotelInput{
		Title:       &fh.Title,
		Description: &fh.Description,
		Content:     &fh.Content,
		CategoryID:  &catID,
		Images:      imgs,
		Price:       &fh.Price,
		Country:     &fh.Country,
		State:       &fh.State,
		City:        &fh.City,
		Zip:         &fh.Zip,
		Address:     &fh.Address,
		Latitude:    &fh.Latitude,
		Longitude:   &fh.Longitude,
	})
	return err
}
