package mysql

const hotelColumns = `id, owner_id, category_id, title, description, content, images, price,
  country, state, city, zip, address, latitude, longitude, created_at, updated_at`

const insertHotelSQL = `
INSERT INTO hotels (` + hotelColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getHotelSQL = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`

// Absent fields keep their stored value.
const updateHotelSQL = `
UPDATE hotels SET
  title       = COALESCE(?, title),
  description = COALESCE(?, description),
  content     = COALESCE(?, content),
  category_id = COALESCE(?, category_id),
  price       = COALESCE(?, price),
  country     = COALESCE(?, country),
  state       = COALESCE(?, state),
  city        = COALESCE(?, city),
  zip         = COALESCE(?, zip),
  address     = COALESCE(?, address),
  latitude    = COALESCE(?, latitude),
  longitude   = COALESCE(?, longitude),
  updated_at  = ?
WHERE id = ?
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`

const selectHotelImagesSQL = `SELECT images FROM hotels WHERE id = ? FOR UPDATE`

const setHotelImagesSQL = `UPDATE hotels SET images = ?, updated_at = ? WHERE id = ?`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

const bookingColumns = `id, user_id, hotel_id, payment_result, price, check_in_date, check_out_date,
  number_of_days, adults, children, status, created_at, updated_at`

const insertBookingSQL = `
INSERT INTO bookings (` + bookingColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getBookingSQL = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

const listBookingsSQL = `
SELECT ` + bookingColumns + ` FROM bookings
WHERE (? = '' OR user_id = ?) AND (? = '' OR hotel_id = ?)
ORDER BY seq
`

const updateBookingStatusSQL = `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`

// Both ends inclusive.
const overlapSQL = `
SELECT EXISTS (
  SELECT 1 FROM bookings
  WHERE hotel_id = ? AND status <> 'cancel'
    AND check_in_date <= ? AND check_out_date >= ?
)
`

// -----------------------------------------------------------------------------
// RATINGS, CATEGORIES, USERS
// -----------------------------------------------------------------------------

const insertRatingSQL = `
INSERT INTO ratings (id, hotel_id, user_id, comment, rating, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const listRatingsSQL = `
SELECT id, hotel_id, user_id, comment, rating, created_at, updated_at FROM ratings
WHERE (? = '' OR hotel_id = ?) AND (? = '' OR user_id = ?)
ORDER BY seq
`

const categoryColumns = `id, name, image, created_at, updated_at`

const insertCategorySQL = `INSERT INTO categories (` + categoryColumns + `) VALUES (?, ?, ?, ?, ?)`

const getCategorySQL = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`

const listCategoriesSQL = `SELECT ` + categoryColumns + ` FROM categories ORDER BY seq`

const updateCategorySQL = `UPDATE categories SET name = ?, image = ?, updated_at = ? WHERE id = ?`

const deleteCategorySQL = `DELETE FROM categories WHERE id = ?`

const userColumns = `id, username, email, password, first_name, last_name, mobile_number, image, role,
  created_at, updated_at`

const insertUserSQL = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const getUserSQL = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

const findUserSQL = `SELECT ` + userColumns + ` FROM users WHERE email = ? OR username = ? LIMIT 1`
