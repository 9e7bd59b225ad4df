// Package mongo is the production document store.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain"
)

const (
	colHotels     = "hotels"
	colBookings   = "bookings"
	colRatings    = "ratings"
	colCategories = "categories"
	colUsers      = "users"
)

type Repo struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// Open connects and pings; callers own the returned Repo and must Close it.
func Open(ctx context.Context, uri, database string) (*Repo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return New(client, database), nil
}

func New(client *mongo.Client, database string) *Repo {
	return &Repo{
		client: client,
		db:     client.Database(database),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *Repo) Close(ctx context.Context) error { return r.client.Disconnect(ctx) }

// EnsureIndexes creates the text index used by hotel search, the unique keys
// on users and categories, and the lookup index for overlap checks.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	idx := map[string][]mongo.IndexModel{
		colHotels: {
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}, {Key: "content", Value: "text"}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		colBookings: {
			{Keys: bson.D{{Key: "hotel", Value: 1}, {Key: "checkInDate", Value: 1}}},
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
		colRatings: {
			{Keys: bson.D{{Key: "hotel", Value: 1}}},
		},
		colCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for col, models := range idx {
		if _, err := r.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes %s: %w", col, err)
		}
	}
	return nil
}

func (r *Repo) col(name string) *mongo.Collection { return r.db.Collection(name) }

func byID(id string) bson.M { return bson.M{"_id": oid(id)} }

func findOne[T any](ctx context.Context, c *mongo.Collection, filter any) (T, error) {
	var doc T
	err := c.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, domain.ErrNotFound
	}
	return doc, err
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func matched(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleted(res *mongo.DeleteResult, err error) error {
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func dup(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

// ---- hotels ----

func (r *Repo) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	now := r.now()
	h.CreatedAt, h.UpdatedAt = now, now
	if h.Images == nil {
		h.Images = []domain.Image{}
	}
	doc := toHotelDoc(*h)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col(colHotels).InsertOne(ctx, doc); err != nil {
		return err
	}
	h.ID = doc.ID.Hex()
	return nil
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	doc, err := findOne[hotelDoc](ctx, r.col(colHotels), byID(id))
	if err != nil {
		return domain.Hotel{}, err
	}
	return doc.domain(), nil
}

func (r *Repo) ListHotels(ctx context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	opts := options.Find().SetSort(hotelSort(q.Sort)).SetSkip(int64(q.Skip()))
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	docs, err := findAll[hotelDoc](ctx, r.col(colHotels), hotelFilter(q.Filter), opts)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Hotel, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.domain())
	}
	return out, nil
}

func (r *Repo) CountHotels(ctx context.Context, f domain.HotelFilter) (int64, error) {
	return r.col(colHotels).CountDocuments(ctx, hotelFilter(f))
}

func (r *Repo) UpdateHotel(ctx context.Context, id string, u domain.HotelUpdate) error {
	set := bson.M{"updatedAt": r.now()}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("title", u.Title)
	put("description", u.Description)
	put("content", u.Content)
	put("country", u.Country)
	put("state", u.State)
	put("city", u.City)
	put("zip", u.Zip)
	put("address", u.Address)
	put("latitude", u.Latitude)
	put("longitude", u.Longitude)
	if u.CategoryID != nil {
		set["category"] = oid(*u.CategoryID)
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	return matched(r.col(colHotels).UpdateOne(ctx, byID(id), bson.M{"$set": set}))
}

func (r *Repo) DeleteHotel(ctx context.Context, id string) error {
	return deleted(r.col(colHotels).DeleteOne(ctx, byID(id)))
}

func (r *Repo) AddHotelImages(ctx context.Context, id string, imgs []domain.Image) error {
	update := bson.M{
		"$push": bson.M{"images": bson.M{"$each": toImageDocs(imgs)}},
		"$set":  bson.M{"updatedAt": r.now()},
	}
	return matched(r.col(colHotels).UpdateOne(ctx, byID(id), update))
}

func (r *Repo) RemoveHotelImage(ctx context.Context, id, publicID string) error {
	update := bson.M{
		"$pull": bson.M{"images": bson.M{"public_id": publicID}},
		"$set":  bson.M{"updatedAt": r.now()},
	}
	return matched(r.col(colHotels).UpdateOne(ctx, byID(id), update))
}

func exactFold(v string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(v) + "$", Options: "i"}
}

func hotelFilter(f domain.HotelFilter) bson.M {
	m := bson.M{}
	if f.Search != "" {
		m["$text"] = bson.M{"$search": f.Search}
	}
	if f.CategoryID != "" {
		m["category"] = oid(f.CategoryID)
	}
	if f.Country != "" {
		m["country"] = exactFold(f.Country)
	}
	if f.State != "" {
		m["state"] = exactFold(f.State)
	}
	if f.City != "" {
		m["city"] = exactFold(f.City)
	}
	if f.Zip != "" {
		m["zip"] = f.Zip
	}
	if !f.Price.Empty() {
		p := bson.M{}
		for op, v := range map[string]*float64{"$gt": f.Price.Gt, "$gte": f.Price.Gte, "$lt": f.Price.Lt, "$lte": f.Price.Lte} {
			if v != nil {
				p[op] = *v
			}
		}
		m["price"] = p
	}
	return m
}

func hotelSort(by []domain.SortField) bson.D {
	d := bson.D{}
	for _, s := range by {
		dir := 1
		if s.Desc {
			dir = -1
		}
		d = append(d, bson.E{Key: s.Field, Value: dir})
	}
	// stable pages across equal keys
	return append(d, bson.E{Key: "_id", Value: 1})
}

// ---- bookings ----

func (r *Repo) CreateBooking(ctx context.Context, b *domain.Booking) error {
	now := r.now()
	b.CreatedAt, b.UpdatedAt = now, now
	if b.Status == "" {
		b.Status = domain.BookingPending
	}
	doc := toBookingDoc(*b)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col(colBookings).InsertOne(ctx, doc); err != nil {
		return err
	}
	b.ID = doc.ID.Hex()
	return nil
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	doc, err := findOne[bookingDoc](ctx, r.col(colBookings), byID(id))
	if err != nil {
		return domain.Booking{}, err
	}
	return doc.domain(), nil
}

func (r *Repo) ListBookings(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user"] = oid(f.UserID)
	}
	if f.HotelID != "" {
		filter["hotel"] = oid(f.HotelID)
	}
	docs, err := findAll[bookingDoc](ctx, r.col(colBookings), filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.domain())
	}
	return out, nil
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, s domain.BookingStatus) error {
	update := bson.M{"$set": bson.M{"status": string(s), "updatedAt": r.now()}}
	return matched(r.col(colBookings).UpdateOne(ctx, byID(id), update))
}

func (r *Repo) HasOverlappingBooking(ctx context.Context, hotelID string, in, out time.Time) (bool, error) {
	filter := bson.M{
		"hotel":        oid(hotelID),
		"status":       bson.M{"$ne": string(domain.BookingCancel)},
		"checkInDate":  bson.M{"$lte": out},
		"checkOutDate": bson.M{"$gte": in},
	}
	n, err := r.col(colBookings).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

// ---- ratings ----

func (r *Repo) CreateRating(ctx context.Context, rt *domain.Rating) error {
	now := r.now()
	rt.CreatedAt, rt.UpdatedAt = now, now
	doc := ratingDoc{
		ID:        primitive.NewObjectID(),
		Hotel:     oid(rt.HotelID),
		User:      oid(rt.UserID),
		Comment:   rt.Comment,
		Rating:    rt.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.col(colRatings).InsertOne(ctx, doc); err != nil {
		return err
	}
	rt.ID = doc.ID.Hex()
	return nil
}

func (r *Repo) ListRatings(ctx context.Context, f domain.RatingFilter) ([]domain.Rating, error) {
	filter := bson.M{}
	if f.HotelID != "" {
		filter["hotel"] = oid(f.HotelID)
	}
	if f.UserID != "" {
		filter["user"] = oid(f.UserID)
	}
	docs, err := findAll[ratingDoc](ctx, r.col(colRatings), filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Rating, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.domain())
	}
	return out, nil
}

// ---- categories ----

func (r *Repo) CreateCategory(ctx context.Context, c *domain.Category) error {
	now := r.now()
	c.CreatedAt, c.UpdatedAt = now, now
	doc := categoryDoc{
		ID:        primitive.NewObjectID(),
		Name:      c.Name,
		Image:     imageDoc{URL: c.Image.URL, PublicID: c.Image.PublicID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.col(colCategories).InsertOne(ctx, doc); err != nil {
		return dup(err)
	}
	c.ID = doc.ID.Hex()
	return nil
}

func (r *Repo) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	doc, err := findOne[categoryDoc](ctx, r.col(colCategories), byID(id))
	if err != nil {
		return domain.Category{}, err
	}
	return doc.domain(), nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	docs, err := findAll[categoryDoc](ctx, r.col(colCategories), bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.domain())
	}
	return out, nil
}

func (r *Repo) UpdateCategory(ctx context.Context, c domain.Category) error {
	update := bson.M{"$set": bson.M{
		"name":      c.Name,
		"image":     imageDoc{URL: c.Image.URL, PublicID: c.Image.PublicID},
		"updatedAt": r.now(),
	}}
	res, err := r.col(colCategories).UpdateOne(ctx, byID(c.ID), update)
	return matched(res, dup(err))
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	return deleted(r.col(colCategories).DeleteOne(ctx, byID(id)))
}

// ---- users ----

func (r *Repo) CreateUser(ctx context.Context, u *domain.User) error {
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Username:     u.Username,
		Email:        u.Email,
		Password:     u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MobileNumber: u.MobileNumber,
		Image:        u.Image,
		Role:         string(u.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.col(colUsers).InsertOne(ctx, doc); err != nil {
		return dup(err)
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (r *Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	doc, err := findOne[userDoc](ctx, r.col(colUsers), byID(id))
	if err != nil {
		return domain.User{}, err
	}
	return doc.domain(), nil
}

func (r *Repo) FindUser(ctx context.Context, login string) (domain.User, error) {
	filter := bson.M{"$or": bson.A{bson.M{"email": login}, bson.M{"username": login}}}
	doc, err := findOne[userDoc](ctx, r.col(colUsers), filter)
	if err != nil {
		return domain.User{}, err
	}
	return doc.domain(), nil
}

var _ domain.Store = (*Repo)(nil)
