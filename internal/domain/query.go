package domain

import "math"

const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortPrice     = "price"
	SortTitle     = "title"
)

type SortField struct {
	Field string
	Desc  bool
}

type Range struct {
	Gt, Gte, Lt, Lte *float64
}

func (r Range) Empty() bool {
	return r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil
}

func (r Range) Contains(v float64) bool {
	if r.Gt != nil && !(v > *r.Gt) {
		return false
	}
	if r.Gte != nil && !(v >= *r.Gte) {
		return false
	}
	if r.Lt != nil && !(v < *r.Lt) {
		return false
	}
	if r.Lte != nil && !(v <= *r.Lte) {
		return false
	}
	return true
}

type HotelFilter struct {
	Search     string
	CategoryID string
	Country    string
	State      string
	City       string
	Zip        string
	Price      Range
}

type HotelQuery struct {
	Page   int
	Limit  int
	Sort   []SortField
	Filter HotelFilter
}

// MaxSkip bounds the offset handed to stores. Pages past it are empty.
const MaxSkip = math.MaxInt32

// Skip is the offset of the page's first item, saturating at MaxSkip.
func (q HotelQuery) Skip() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > MaxSkip/q.Limit {
		return MaxSkip
	}
	return (q.Page - 1) * q.Limit
}

type BookingFilter struct {
	UserID  string
	HotelID string
}

type RatingFilter struct {
	HotelID string
	UserID  string
}
