package domain

import "time"

type Image struct {
	URL      string
	PublicID string
}

type Hotel struct {
	ID          string
	OwnerID     string
	CategoryID  string
	Title       string
	Description string
	Content     string
	Images      []Image
	Price       float64
	Country     string
	State       string
	City        string
	Zip         string
	Address     string
	Latitude    string
	Longitude   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HotelUpdate carries the mutable hotel fields. Nil means "leave as is".
type HotelUpdate struct {
	Title       *string
	Description *string
	Content     *string
	CategoryID  *string
	Price       *float64
	Country     *string
	State       *string
	City        *string
	Zip         *string
	Address     *string
	Latitude    *string
	Longitude   *string
}

// HotelView is a hotel with owner and category populated.
type HotelView struct {
	Hotel
	Owner    *UserSummary
	Category *Category
}

type HotelSummary struct {
	ID          string
	Title       string
	Description string
	Images      []Image
}

func (h Hotel) Summary() HotelSummary {
	return HotelSummary{ID: h.ID, Title: h.Title, Description: h.Description, Images: h.Images}
}

type HotelsPage struct {
	Items []HotelView
	Count int64
}
