package model

// DefaultCustomerName is stored when a reservation is made without a name.
const DefaultCustomerName = "Guest"

// RemovedMovieTitle is reported for bookings whose movie no longer exists.
const RemovedMovieTitle = "(removed movie)"

// Booking is a confirmed reservation of one or more seats in one showtime.
// There is no in-place modification: a booking is created and later deleted.
type Booking struct {
	ID           string    `json:"-"`
	MovieID      string    `json:"movie_id"`
	Showtime     string    `json:"showtime"`
	Seats        []string  `json:"seats"`
	CustomerName string    `json:"name"`
	CreatedAt    Timestamp `json:"created_at"`
}

// Clone returns a deep copy.
func (b Booking) Clone() Booking {
	b.Seats = append([]string(nil), b.Seats...)
	return b
}

// BookingDetail is a Booking together with the title of its movie.
type BookingDetail struct {
	Booking
	MovieTitle string `json:"movie_title"`
}
