package domain

type User struct {
	Name       string `json:"name"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Address    string `json:"address,omitempty"`
	Address2   string `json:"address2,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type Token struct {
	Token     string   `json:"token"`
	Type      string   `json:"type"`
	Abilities []string `json:"abilities"`
	ExpiresAt string   `json:"expiresAt,omitempty"`
}

// Session is what the commerce backend hands back on login.
type Session struct {
	User  User  `json:"user"`
	Token Token `json:"token"`
}

type SignupRequest struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

type ProfileUpdate struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Address2   string `json:"address2,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
}
