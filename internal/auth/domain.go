package auth

import (
	"time"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
)

// Account is the login view of a person row.
type Account struct {
	PersonID     int64
	Email        string
	PasswordHash string
	Status       string
}

// Statuses whose holders may not sign in.
var lockedStatuses = map[string]struct{}{
	"suspended":  {},
	"deceased":   {},
	"dismissed":  {},
	"resigned":   {},
	"uberbonked": {},
}

// CanLogin reports whether the account status permits signing in.
func (a Account) CanLogin() bool {
	_, locked := lockedStatuses[a.Status]
	return !locked
}

// Token is the bearer token handed back on login.
type Token struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	PersonID    int64     `json:"person_id"`
}

// Requester is an authenticated person together with the roles granted at
// the time the request was resolved.
type Requester struct {
	PersonID int64
	roles    filters.RoleSet
}

// NewRequester builds a Requester.
func NewRequester(personID int64, roles filters.RoleSet) *Requester {
	return &Requester{PersonID: personID, roles: roles}
}

// RequesterID implements filters.Requester.
func (r *Requester) RequesterID() int64 { return r.PersonID }

// Roles implements filters.Requester.
func (r *Requester) Roles() filters.RoleSet { return r.roles }
