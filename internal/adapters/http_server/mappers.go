package httpserver

import (
	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/pkg/api"
)

func toAPIImages(in []domain.Image) []api.Image {
	out := make([]api.Image, 0, len(in))
	for _, i := range in {
		out = append(out, api.Image{URL: i.URL, PublicID: i.PublicID})
	}
	return out
}

func fromAPIImages(in []api.Image) []domain.Image {
	if in == nil {
		return nil
	}
	out := make([]domain.Image, 0, len(in))
	for _, i := range in {
		out = append(out, domain.Image{URL: i.URL, PublicID: i.PublicID})
	}
	return out
}

func userRef(id string, s *domain.UserSummary) api.Ref[api.UserSummary] {
	if s == nil {
		return api.Ref[api.UserSummary]{ID: id}
	}
	return api.Ref[api.UserSummary]{ID: s.ID, Doc: &api.UserSummary{
		ID:           s.ID,
		Username:     s.Username,
		Email:        s.Email,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		MobileNumber: s.MobileNumber,
		Image:        s.Image,
	}}
}

func hotelRef(id string, s *domain.HotelSummary) api.Ref[api.HotelSummary] {
	if s == nil {
		return api.Ref[api.HotelSummary]{ID: id}
	}
	hs := api.HotelSummary{ID: s.ID, Title: s.Title, Description: s.Description}
	if len(s.Images) > 0 {
		hs.Images = toAPIImages(s.Images)
	}
	return api.Ref[api.HotelSummary]{ID: s.ID, Doc: &hs}
}

func categoryRef(id string, c *domain.Category) api.Ref[api.Category] {
	if c == nil {
		return api.Ref[api.Category]{ID: id}
	}
	ac := toAPICategory(*c)
	return api.Ref[api.Category]{ID: c.ID, Doc: &ac}
}

func toAPICategory(c domain.Category) api.Category {
	return api.Category{
		ID:        c.ID,
		Name:      c.Name,
		Image:     api.Image{URL: c.Image.URL, PublicID: c.Image.PublicID},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toAPIHotel(h domain.Hotel) api.Hotel {
	return api.Hotel{
		ID:          h.ID,
		Owner:       api.Ref[api.UserSummary]{ID: h.OwnerID},
		Category:    api.Ref[api.Category]{ID: h.CategoryID},
		Title:       h.Title,
		Description: h.Description,
		Content:     h.Content,
		Images:      toAPIImages(h.Images),
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

func toAPIHotelView(v domain.HotelView) api.Hotel {
	h := toAPIHotel(v.Hotel)
	h.Owner = userRef(v.OwnerID, v.Owner)
	h.Category = categoryRef(v.CategoryID, v.Category)
	return h
}

func toAPIHotelViews(vs []domain.HotelView) []api.Hotel {
	out := make([]api.Hotel, 0, len(vs))
	for _, v := range vs {
		out = append(out, toAPIHotelView(v))
	}
	return out
}

func toAPIBooking(b domain.Booking) api.Booking {
	return api.Booking{
		ID:    b.ID,
		User:  api.Ref[api.UserSummary]{ID: b.UserID},
		Hotel: api.Ref[api.HotelSummary]{ID: b.HotelID},
		PaymentResult: api.PaymentResult{
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

func toAPIBookingViews(vs []domain.BookingView) []api.Booking {
	out := make([]api.Booking, 0, len(vs))
	for _, v := range vs {
		b := toAPIBooking(v.Booking)
		b.User = userRef(v.UserID, v.User)
		b.Hotel = hotelRef(v.HotelID, v.Hotel)
		out = append(out, b)
	}
	return out
}

func toAPIRating(r domain.Rating) api.Rating {
	return api.Rating{
		ID:        r.ID,
		Hotel:     api.Ref[api.HotelSummary]{ID: r.HotelID},
		User:      api.Ref[api.UserSummary]{ID: r.UserID},
		Comment:   r.Comment,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toAPIRatingViews(vs []domain.RatingView) []api.Rating {
	out := make([]api.Rating, 0, len(vs))
	for _, v := range vs {
		r := toAPIRating(v.Rating)
		r.User = userRef(v.UserID, v.User)
		r.Hotel = hotelRef(v.HotelID, v.Hotel)
		out = append(out, r)
	}
	return out
}

func toAPIUser(u domain.User) *api.User {
	return &api.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MobileNumber: u.MobileNumber,
		Image:        u.Image,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func toAPIOrder(o domain.PaymentOrder) *api.Order {
	return &api.Order{
		ID:       o.ID,
		Entity:   o.Entity,
		Amount:   o.Amount,
		Currency: o.Currency,
		Receipt:  o.Receipt,
		Status:   o.Status,
	}
}

func hotelInput(r api.HotelRequest) app.HotelInput {
	return app.HotelInput{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		CategoryID:  r.Category,
		Images:      fromAPIImages(r.Images),
		Price:       r.Price.Ptr(),
		Country:     r.Country,
		State:       r.State,
		City:        r.City,
		Zip:         r.Zip,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Blank:       r.Blank,
	}
}

func verifyInput(r api.VerificationRequest) app.VerifyInput {
	return app.VerifyInput{
		OrderCreationID:   r.OrderCreationID,
		RazorpayPaymentID: r.RazorpayPaymentID,
		RazorpayOrderID:   r.RazorpayOrderID,
		RazorpaySignature: r.RazorpaySignature,
		HotelID:           r.Hotel,
		Price:             float64(r.Price),
		CheckInDate:       r.CheckInDate.Ptr(),
		CheckOutDate:      r.CheckOutDate.Ptr(),
		NumberOfDays:      int(r.NumberOfDays),
		Adults:            int(r.Adults),
		Children:          int(r.Children),
	}
}
