package entity

// Cashier is the authenticated operator of a POS session, taken from the access token
type Cashier struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
}
