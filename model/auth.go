package model

// Credentials is the body of a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Auth is returned after a successful login.
type Auth struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	Strategy  string `json:"strategy"`
}
