package models

// PreferenceRequest asks the payment provider for a checkout preference.
type PreferenceRequest struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	CurrencyID  string  `json:"currency_id"`
	Reference   string  `json:"external_reference,omitempty"`
}

// Preference is what the payment widget is mounted with.
type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point,omitempty"`
	Provider  string `json:"provider"`
}
