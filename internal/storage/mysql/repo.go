// Package mysql is the relational store driver. Documents are flattened into
// tables; nested arrays such as hotel images live in JSON columns.
package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"staybook/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

type Repo struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repo {
	return &Repo{db: db, now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }}
}

// Open forces parseTime and UTC on the DSN so DATETIME columns round-trip.
func Open(ctx context.Context, dsn string) (*Repo, error) {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return New(db), nil
}

func (r *Repo) Close(ctx context.Context) error { return r.db.Close() }

// Migrate applies the embedded schema; every statement is idempotent.
func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

type scanner interface{ Scan(dest ...any) error }

func dup(err error) error {
	var me *driver.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return domain.ErrDuplicate
	}
	return err
}

func noRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- hotels ----

func (r *Repo) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	if h.Images == nil {
		h.Images = []domain.Image{}
	}
	imgs, err := valJSON(h.Images)
	if err != nil {
		return err
	}
	now := r.now()
	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, insertHotelSQL,
		id, h.OwnerID, h.CategoryID, h.Title, h.Description, h.Content, imgs, h.Price,
		h.Country, h.State, h.City, h.Zip, h.Address, h.Latitude, h.Longitude, now, now,
	)
	if err != nil {
		return err
	}
	h.ID, h.CreatedAt, h.UpdatedAt = id, now, now
	return nil
}

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var imgs []byte
	if err := s.Scan(
		&h.ID, &h.OwnerID, &h.CategoryID, &h.Title, &h.Description, &h.Content, &imgs, &h.Price,
		&h.Country, &h.State, &h.City, &h.Zip, &h.Address, &h.Latitude, &h.Longitude,
		&h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return domain.Hotel{}, err
	}
	h.Images = []domain.Image{}
	if err := json.Unmarshal(imgs, &h.Images); err != nil {
		return domain.Hotel{}, fmt.Errorf("hotel %s images: %w", h.ID, err)
	}
	return h, nil
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	return h, noRows(err)
}

var sortColumns = map[string]string{
	domain.SortCreatedAt: "created_at",
	domain.SortUpdatedAt: "updated_at",
	domain.SortPrice:     "price",
	domain.SortTitle:     "title",
}

func hotelWhere(f domain.HotelFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		conds = append(conds, cond)
		args = append(args, v)
	}
	if f.Search != "" {
		add("MATCH(title, description, content) AGAINST (? IN NATURAL LANGUAGE MODE)", f.Search)
	}
	if f.CategoryID != "" {
		add("category_id = ?", f.CategoryID)
	}
	if f.Country != "" {
		add("country = ?", f.Country)
	}
	if f.State != "" {
		add("state = ?", f.State)
	}
	if f.City != "" {
		add("city = ?", f.City)
	}
	if f.Zip != "" {
		add("zip = ?", f.Zip)
	}
	if f.Price.Gt != nil {
		add("price > ?", *f.Price.Gt)
	}
	if f.Price.Gte != nil {
		add("price >= ?", *f.Price.Gte)
	}
	if f.Price.Lt != nil {
		add("price < ?", *f.Price.Lt)
	}
	if f.Price.Lte != nil {
		add("price <= ?", *f.Price.Lte)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *Repo) ListHotels(ctx context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	where, args := hotelWhere(q.Filter)
	order := make([]string, 0, len(q.Sort)+1)
	for _, s := range q.Sort {
		col, ok := sortColumns[s.Field]
		if !ok {
			continue
		}
		if s.Desc {
			col += " DESC"
		}
		order = append(order, col)
	}
	order = append(order, "seq")

	var b strings.Builder
	b.WriteString("SELECT " + hotelColumns + " FROM hotels" + where + " ORDER BY " + strings.Join(order, ", "))
	if q.Limit > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, q.Limit, q.Skip())
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) CountHotels(ctx context.Context, f domain.HotelFilter) (int64, error) {
	where, args := hotelWhere(f)
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM hotels"+where, args...).Scan(&n)
	return n, err
}

func (r *Repo) UpdateHotel(ctx context.Context, id string, u domain.HotelUpdate) error {
	if _, err := r.GetHotel(ctx, id); err != nil {
		return err
	}
	// RowsAffected is zero when nothing changed, so existence is checked first.
	_, err := r.db.ExecContext(ctx, updateHotelSQL,
		valStr(u.Title), valStr(u.Description), valStr(u.Content), valStr(u.CategoryID), valF64(u.Price),
		valStr(u.Country), valStr(u.State), valStr(u.City), valStr(u.Zip), valStr(u.Address),
		valStr(u.Latitude), valStr(u.Longitude), r.now(), id,
	)
	return err
}

func (r *Repo) DeleteHotel(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, deleteHotelSQL, id))
}

// editImages rewrites the images column under a row lock.
func (r *Repo) editImages(ctx context.Context, id string, edit func([]domain.Image) []domain.Image) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var raw []byte
	if err := tx.QueryRowContext(ctx, selectHotelImagesSQL, id).Scan(&raw); err != nil {
		return noRows(err)
	}
	var imgs []domain.Image
	if err := json.Unmarshal(raw, &imgs); err != nil {
		return err
	}
	next, err := valJSON(edit(imgs))
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, setHotelImagesSQL, next, r.now(), id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) AddHotelImages(ctx context.Context, id string, imgs []domain.Image) error {
	return r.editImages(ctx, id, func(cur []domain.Image) []domain.Image {
		return append(cur, imgs...)
	})
}

func (r *Repo) RemoveHotelImage(ctx context.Context, id, publicID string) error {
	return r.editImages(ctx, id, func(cur []domain.Image) []domain.Image {
		kept := make([]domain.Image, 0, len(cur))
		for _, img := range cur {
			if img.PublicID != publicID {
				kept = append(kept, img)
			}
		}
		return kept
	})
}

// ---- bookings ----

func (r *Repo) CreateBooking(ctx context.Context, b *domain.Booking) error {
	if b.Status == "" {
		b.Status = domain.BookingPending
	}
	pr, err := valJSON(b.PaymentResult)
	if err != nil {
		return err
	}
	now := r.now()
	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, insertBookingSQL,
		id, b.UserID, b.HotelID, pr, b.Price, b.CheckInDate, b.CheckOutDate,
		b.NumberOfDays, b.Adults, b.Children, string(b.Status), now, now,
	)
	if err != nil {
		return err
	}
	b.ID, b.CreatedAt, b.UpdatedAt = id, now, now
	return nil
}

func scanBooking(s scanner) (domain.Booking, error) {
	var b domain.Booking
	var pr []byte
	var status string
	if err := s.Scan(
		&b.ID, &b.UserID, &b.HotelID, &pr, &b.Price, &b.CheckInDate, &b.CheckOutDate,
		&b.NumberOfDays, &b.Adults, &b.Children, &status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	if err := json.Unmarshal(pr, &b.PaymentResult); err != nil {
		return domain.Booking{}, fmt.Errorf("booking %s payment: %w", b.ID, err)
	}
	return b, nil
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
	return b, noRows(err)
}

func (r *Repo) ListBookings(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL, f.UserID, f.UserID, f.HotelID, f.HotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, s domain.BookingStatus) error {
	return affected(r.db.ExecContext(ctx, updateBookingStatusSQL, string(s), r.now(), id))
}

func (r *Repo) HasOverlappingBooking(ctx context.Context, hotelID string, in, out time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, overlapSQL, hotelID, out, in).Scan(&exists)
	return exists, err
}

// ---- ratings ----

func (r *Repo) CreateRating(ctx context.Context, rt *domain.Rating) error {
	now := r.now()
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, insertRatingSQL, id, rt.HotelID, rt.UserID, rt.Comment, rt.Rating, now, now); err != nil {
		return err
	}
	rt.ID, rt.CreatedAt, rt.UpdatedAt = id, now, now
	return nil
}

func (r *Repo) ListRatings(ctx context.Context, f domain.RatingFilter) ([]domain.Rating, error) {
	rows, err := r.db.QueryContext(ctx, listRatingsSQL, f.HotelID, f.HotelID, f.UserID, f.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Rating{}
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(&rt.ID, &rt.HotelID, &rt.UserID, &rt.Comment, &rt.Rating, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// ---- categories ----

func scanCategory(s scanner) (domain.Category, error) {
	var c domain.Category
	var img []byte
	if err := s.Scan(&c.ID, &c.Name, &img, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Category{}, err
	}
	if err := json.Unmarshal(img, &c.Image); err != nil {
		return domain.Category{}, fmt.Errorf("category %s image: %w", c.ID, err)
	}
	return c, nil
}

func (r *Repo) CreateCategory(ctx context.Context, c *domain.Category) error {
	img, err := valJSON(c.Image)
	if err != nil {
		return err
	}
	now := r.now()
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, insertCategorySQL, id, c.Name, img, now, now); err != nil {
		return dup(err)
	}
	c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
	return nil
}

func (r *Repo) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, getCategorySQL, id))
	return c, noRows(err)
}

func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateCategory(ctx context.Context, c domain.Category) error {
	if _, err := r.GetCategory(ctx, c.ID); err != nil {
		return err
	}
	img, err := valJSON(c.Image)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, updateCategorySQL, c.Name, img, r.now(), c.ID)
	return dup(err)
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, deleteCategorySQL, id))
}

// ---- users ----

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	var role string
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.MobileNumber, &u.Image, &role, &u.CreatedAt, &u.UpdatedAt)
	u.Role = domain.Role(role)
	return u, err
}

func (r *Repo) CreateUser(ctx context.Context, u *domain.User) error {
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	now := r.now()
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		id, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.MobileNumber, u.Image,
		string(u.Role), now, now,
	)
	if err != nil {
		return dup(err)
	}
	u.ID, u.CreatedAt, u.UpdatedAt = id, now, now
	return nil
}

func (r *Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserSQL, id))
	return u, noRows(err)
}

func (r *Repo) FindUser(ctx context.Context, login string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, findUserSQL, login, login))
	return u, noRows(err)
}

var _ domain.Store = (*Repo)(nil)
