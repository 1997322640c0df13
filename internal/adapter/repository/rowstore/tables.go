package rowstore

// Sheet names in the backing store. Each repository owns exactly one
// table and does all key lookups in memory after a full range read.
const (
	matchesTable  = "Matches"
	bookingsTable = "Bookings"
	ratingsTable  = "Ratings"
	usersTable    = "Users"
)
