package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staybook/internal/domain"
)

// Documents mirror the collection layout, field names included, so the
// database stays readable by the existing tooling around it.

type imageDoc struct {
	URL      string `bson:"url"`
	PublicID string `bson:"public_id"`
}

type hotelDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       primitive.ObjectID `bson:"owner"`
	Category    primitive.ObjectID `bson:"category"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Content     string             `bson:"content"`
	Images      []imageDoc         `bson:"images"`
	Price       float64            `bson:"price"`
	Country     string             `bson:"country"`
	State       string             `bson:"state"`
	City        string             `bson:"city"`
	Zip         string             `bson:"zip"`
	Address     string             `bson:"address"`
	Latitude    string             `bson:"latitude"`
	Longitude   string             `bson:"longitude"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type paymentResultDoc struct {
	ID                string `bson:"id"`
	Status            string `bson:"status"`
	RazorpayOrderID   string `bson:"razorpay_order_id"`
	RazorpayPaymentID string `bson:"razorpay_payment_id"`
	RazorpaySignature string `bson:"razorpay_signature"`
}

type bookingDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	User          primitive.ObjectID `bson:"user"`
	Hotel         primitive.ObjectID `bson:"hotel"`
	PaymentResult paymentResultDoc   `bson:"paymentResult"`
	Price         float64            `bson:"price"`
	CheckInDate   time.Time          `bson:"checkInDate"`
	CheckOutDate  time.Time          `bson:"checkOutDate"`
	NumberOfDays  int                `bson:"numberOfDays"`
	Adults        int                `bson:"adults"`
	Children      int                `bson:"children"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

type ratingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Hotel     primitive.ObjectID `bson:"hotel"`
	User      primitive.ObjectID `bson:"user"`
	Comment   string             `bson:"comment"`
	Rating    float64            `bson:"rating"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type categoryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Image     imageDoc           `bson:"image"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	Password     string             `bson:"password"`
	FirstName    string             `bson:"firstName"`
	LastName     string             `bson:"lastName"`
	MobileNumber string             `bson:"mobileNumber"`
	Image        string             `bson:"image"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// oid parses a hex id; ids that can never exist map to NilObjectID so lookups
// simply miss.
func oid(id string) primitive.ObjectID {
	o, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return o
}

func hexOrEmpty(o primitive.ObjectID) string {
	if o.IsZero() {
		return ""
	}
	return o.Hex()
}

func toImageDocs(in []domain.Image) []imageDoc {
	out := make([]imageDoc, 0, len(in))
	for _, i := range in {
		out = append(out, imageDoc{URL: i.URL, PublicID: i.PublicID})
	}
	return out
}

func fromImageDocs(in []imageDoc) []domain.Image {
	out := make([]domain.Image, 0, len(in))
	for _, i := range in {
		out = append(out, domain.Image{URL: i.URL, PublicID: i.PublicID})
	}
	return out
}

func toHotelDoc(h domain.Hotel) hotelDoc {
	return hotelDoc{
		Owner:       oid(h.OwnerID),
		Category:    oid(h.CategoryID),
		Title:       h.Title,
		Description: h.Description,
		Content:     h.Content,
		Images:      toImageDocs(h.Images),
		Price:       h.Price,
		Country:     h.Country,
		State:       h.State,
		City:        h.City,
		Zip:         h.Zip,
		Address:     h.Address,
		Latitude:    h.Latitude,
		Longitude:   h.Longitude,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func (d hotelDoc) domain() domain.Hotel {
	return domain.Hotel{
		ID:          d.ID.Hex(),
		OwnerID:     hexOrEmpty(d.Owner),
		CategoryID:  hexOrEmpty(d.Category),
		Title:       d.Title,
		Description: d.Description,
		Content:     d.Content,
		Images:      fromImageDocs(d.Images),
		Price:       d.Price,
		Country:     d.Country,
		State:       d.State,
		City:        d.City,
		Zip:         d.Zip,
		Address:     d.Address,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toBookingDoc(b domain.Booking) bookingDoc {
	return bookingDoc{
		User:  oid(b.UserID),
		Hotel: oid(b.HotelID),
		PaymentResult: paymentResultDoc{
			ID:                b.PaymentResult.ID,
			Status:            b.PaymentResult.Status,
			RazorpayOrderID:   b.PaymentResult.RazorpayOrderID,
			RazorpayPaymentID: b.PaymentResult.RazorpayPaymentID,
			RazorpaySignature: b.PaymentResult.RazorpaySignature,
		},
		Price:        b.Price,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		NumberOfDays: b.NumberOfDays,
		Adults:       b.Adults,
		Children:     b.Children,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (d bookingDoc) domain() domain.Booking {
	return domain.Booking{
		ID:      d.ID.Hex(),
		UserID:  hexOrEmpty(d.User),
		HotelID: hexOrEmpty(d.Hotel),
		PaymentResult: domain.PaymentResult{
			ID:                d.PaymentResult.ID,
			Status:            d.PaymentResult.Status,
			RazorpayOrderID:   d.PaymentResult.RazorpayOrderID,
			RazorpayPaymentID: d.PaymentResult.RazorpayPaymentID,
			RazorpaySignature: d.PaymentResult.RazorpaySignature,
		},
		Price:        d.Price,
		CheckInDate:  d.CheckInDate.UTC(),
		CheckOutDate: d.CheckOutDate.UTC(),
		NumberOfDays: d.NumberOfDays,
		Adults:       d.Adults,
		Children:     d.Children,
		Status:       domain.BookingStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d ratingDoc) domain() domain.Rating {
	return domain.Rating{
		ID:        d.ID.Hex(),
		HotelID:   hexOrEmpty(d.Hotel),
		UserID:    hexOrEmpty(d.User),
		Comment:   d.Comment,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d categoryDoc) domain() domain.Category {
	return domain.Category{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Image:     domain.Image{URL: d.Image.URL, PublicID: d.Image.PublicID},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d userDoc) domain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		MobileNumber: d.MobileNumber,
		Image:        d.Image,
		Role:         domain.Role(d.Role),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
