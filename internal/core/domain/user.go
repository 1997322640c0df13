package domain

// User is a profile record. Identity itself is external; the ID here is
// the opaque identifier the authentication collaborator hands us.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	BirthDate string
	Gender    string
	Role      string
	CreatedAt string
}
