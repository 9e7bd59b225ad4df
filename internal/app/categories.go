package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"staybook/internal/domain"
)

const categoriesKey = "categories:all"

type CategoryInput struct {
	Name  *string
	Image *domain.Image
}

type CategoryService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCategoryService(s domain.Store, c domain.Cache, ttl time.Duration) *CategoryService {
	return &CategoryService{store: s, cache: c, cacheTTL: ttl}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, categoriesKey, &out); ok {
			return out, nil
		}
	}
	out, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, categoriesKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (domain.Category, error) {
	var f fields
	f.str("name", in.Name)
	if err := f.err(); err != nil {
		return domain.Category{}, err
	}
	c := domain.Category{Name: strings.ToLower(strings.TrimSpace(*in.Name))}
	if in.Image != nil {
		c.Image = *in.Image
	}
	if err := s.store.CreateCategory(ctx, &c); err != nil {
		return domain.Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) error {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return invalid("Please fill name field.")
		}
		c.Name = strings.ToLower(strings.TrimSpace(*in.Name))
	}
	if in.Image != nil {
		c.Image = *in.Image
	}
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, categoriesKey); err != nil {
		log.Warn().Err(err).Msg("category cache invalidation failed")
	}
}
