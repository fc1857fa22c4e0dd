package models

import "time"

// User represents a registered user. Password holds the bcrypt hash,
// never the plaintext credential.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary is the public id+name projection used by listings.
type UserSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserInfo is the public profile view. EmailHash is an MD5 digest of the
// email address (gravatar style) so the address itself is never exposed.
type UserInfo struct {
	Name          string    `json:"name"`
	EmailHash     string    `json:"email_hash"`
	CreatedAt     time.Time `json:"created_at"`
	ProjectsCount int64     `json:"projects_count"`
}
