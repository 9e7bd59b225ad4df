package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// HotelRequest is the body of POST /hotel and PUT /hotel/:id. Absent fields
// are nil; on update they are left unchanged.
type HotelRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Content     *string `json:"content,omitempty"`
	Category    *string `json:"category,omitempty"`
	Images      []Image `json:"images,omitempty"`
	Price       *Float  `json:"price,omitempty"`
	Country     *string `json:"country,omitempty"`
	State       *string `json:"state,omitempty"`
	City        *string `json:"city,omitempty"`
	Zip         *string `json:"zip,omitempty"`
	Address     *string `json:"address,omitempty"`
	Latitude    *string `json:"latitude,omitempty"`
	Longitude   *string `json:"longitude,omitempty"`

	// Blank lists, in body order, submitted keys outside the fields above
	// whose value is null, "", 0 or false.
	Blank []string `json:"-"`
}

var hotelRequestKeys = map[string]bool{
	"title": true, "description": true, "content": true, "category": true,
	"images": true, "price": true, "country": true, "state": true, "city": true,
	"zip": true, "address": true, "latitude": true, "longitude": true,
}

func (r *HotelRequest) UnmarshalJSON(b []byte) error {
	type plain HotelRequest
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	blank, err := blankKeys(b, hotelRequestKeys)
	if err != nil {
		return err
	}
	*r = HotelRequest(p)
	r.Blank = blank
	return nil
}

func blankKeys(b []byte, known map[string]bool) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var out []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		if !known[key] && falsy(v) {
			out = append(out, key)
		}
	}
	return out, nil
}

func falsy(v json.RawMessage) bool {
	switch s := string(bytes.TrimSpace(v)); s {
	case "null", "false", `""`:
		return true
	default:
		f, err := strconv.ParseFloat(s, 64)
		return err == nil && f == 0
	}
}

type AddImagesRequest struct {
	Images []Image `json:"images"`
}

type RemoveImageRequest struct {
	PublicID string `json:"public_id"`
}

type BookingStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type OrderRequest struct {
	Price *Float `json:"price"`
}

// VerificationRequest carries the checkout result back to the server together
// with the stay being booked.
type VerificationRequest struct {
	OrderCreationID   string `json:"orderCreationId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpaySignature string `json:"razorpaySignature"`
	Hotel             string `json:"hotel"`
	Price             Float  `json:"price"`
	CheckInDate       *Date  `json:"checkInDate,omitempty"`
	CheckOutDate      *Date  `json:"checkOutDate,omitempty"`
	NumberOfDays      Int    `json:"numberOfDays"`
	Adults            Int    `json:"adults"`
	Children          Int    `json:"children"`
}

type RatingRequest struct {
	Comment *string `json:"comment,omitempty"`
	Rating  *Float  `json:"rating,omitempty"`
}

type CategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Image *Image  `json:"image,omitempty"`
}

type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	MobileNumber string `json:"mobileNumber,omitempty"`
	Image        string `json:"image,omitempty"`
}

// LoginRequest accepts the login in either field.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

func (r LoginRequest) Login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}
