package domain

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}

// Profile extends a user with shipping/contact details. Exactly one
// per user, created together with the account.
type Profile struct {
	UserID       string `db:"user_id"`
	PhoneNumber  string `db:"phone_number"`
	AddressLine1 string `db:"address_line1"`
	AddressLine2 string `db:"address_line2"`
	City         string `db:"city"`
	PostalCode   string `db:"postal_code"`
	Country      string `db:"country"`
}
