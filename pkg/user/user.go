package user

// User is an entry in the company user directory, used for participant
// selection on calendar events.
type User struct {
	Id        int
	FirstName string
	LastName  string
	Email     string
}
