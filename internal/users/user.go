// Package users is an example user management module served through anyhttp.
package users

import (
	"context"
	"strings"
	"time"

	"github.com/advdv/anyhttp"
	"github.com/cockroachdb/errors"
)

// ErrNotFound is returned by stores for unknown ids.
var ErrNotFound = errors.New("user not found")

// User is a stored user.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the request body of create and update calls. Update only changes the fields present.
type Input struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Store persists users.
type Store interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id string) (User, error)
	// Create assigns the id of u and stores it.
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
}

// validate checks the fields that are set, and requires all of them when full is true.
func (in Input) validate(full bool) error {
	details := map[string]string{}
	check := func(field string, v *string, ok func(string) bool, msg string) {
		switch {
		case v == nil && full:
			details[field] = "is required"
		case v != nil && strings.TrimSpace(*v) == "":
			details[field] = "must not be empty"
		case v != nil && !ok(*v):
			details[field] = msg
		}
	}

	always := func(string) bool { return true }
	check("name", in.Name, always, "")
	check("email", in.Email, func(s string) bool {
		at := strings.IndexByte(s, '@')
		return at > 0 && at < len(s)-1
	}, "must be an email address")
	check("password", in.Password, always, "")

	if len(details) > 0 {
		return anyhttp.NewError(anyhttp.CodeUnprocessableEntity, "validation_failed",
			"The request body is invalid.", anyhttp.WithDetails(details))
	}

	return nil
}

func (in Input) applyTo(u *User) {
	if in.Name != nil {
		u.Name = *in.Name
	}

	if in.Email != nil {
		u.Email = *in.Email
	}

	if in.Password != nil {
		u.Password = *in.Password
	}
}
