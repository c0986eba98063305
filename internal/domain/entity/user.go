package entity

// UserProfile holds the profile fields returned by the login endpoint.
// The secure store is the sole owner of this data between logins; it is
// read back only for report document generation.
type UserProfile struct {
	Name      string `json:"name"`  // The user's display name.
	BirthDate string `json:"birth"` // Birth date as the backend formats it. May be empty.
	Email     string `json:"email"` // Contact email. May be empty.
}
