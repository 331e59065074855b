package entities

import "unicode/utf8"

// Column names accepted by UserRepository.Update.
const (
	UserFieldUsername = "username"
	UserFieldEmail    = "email"
)

const (
	UsernameMinLength = 2
	UsernameMaxLength = 50
	EmailMaxLength    = 120
)

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewUser(username, email string) *User {
	return &User{
		Username: username,
		Email:    email,
	}
}

func (u *User) validate() error {
	n := utf8.RuneCountInString(u.Username)
	if n < UsernameMinLength || n > UsernameMaxLength {
		return NewValidationError(UserFieldUsername, "must be between 2 and 50 characters")
	}
	if utf8.RuneCountInString(u.Email) > EmailMaxLength {
		return NewValidationError(UserFieldEmail, "must be at most 120 characters")
	}
	if err := fieldValidator.Var(u.Email, "required,email"); err != nil {
		return NewValidationError(UserFieldEmail, "must be a valid email address")
	}
	return nil
}

// Clone returns a detached copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// UserPatch holds the fields of a sparse user update. Nil means not supplied.
type UserPatch struct {
	Username *string
	Email    *string
}
