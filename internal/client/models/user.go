package models

// User is a profile record. Only Username is exposed for other users via the
// public lookup endpoint.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfileUpdate carries the fields the current user may change. Zero-valued
// fields are omitted so the server treats the update as partial.
type ProfileUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthResponse is the success body of login and registration calls.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
