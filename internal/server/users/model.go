package users

import "time"

// User is a credential record. The username is unique and immutable once
// set; PasswordHash and Salt change only through UpdatePassword.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}
