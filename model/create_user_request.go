package model

// CreateUser is the body of a user-management create request. The password
// is only used to create the identity and is never stored in the profile row.
type CreateUser struct {
	Data struct {
		User     *User  `json:"user,omitempty"`
		Password string `json:"password,omitempty"`
	} `json:"data"`
}
