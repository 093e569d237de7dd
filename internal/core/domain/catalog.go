package domain

// Payer is a saved payer name a user can pick when entering expenses.
type Payer struct {
	PayerID  string `json:"payerID"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Category is a user-defined expense category label, optionally scoped to a
// list.
type Category struct {
	CategoryID string  `json:"categoryID"`
	Name       string  `json:"name"`
	Username   string  `json:"username"`
	ListID     *string `json:"listID,omitempty"`
}
