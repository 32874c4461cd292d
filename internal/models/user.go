package models

// RegisterRequest is the POST /api/auth/local/register payload.
// The profile fields are optional and ignored by the base registration handler.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Profile
}

// Profile holds the extension fields attached to a user after registration.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// User is the public representation of an identity store user.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterResponse is returned by a successful registration.
type RegisterResponse struct {
	JWT  string `json:"jwt"`
	User User   `json:"user"`
}

// ProfileFields lists the fields returned after profile enrichment, in order.
var ProfileFields = []string{
	"id", "username", "email",
	"firstName", "lastName", "phone", "address", "city", "country",
}
