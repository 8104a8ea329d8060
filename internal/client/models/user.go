package models

// Identity is the third-party identity payload submitted at login.
type Identity struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// UserProfile is the profile the backend returns on login. It is persisted
// in the local session store alongside the bearer token.
type UserProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
