package domain

import "time"

type Rating struct {
	ID        string
	HotelID   string
	UserID    string
	Comment   string
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RatingView struct {
	Rating
	User  *UserSummary
	Hotel *HotelSummary
}
