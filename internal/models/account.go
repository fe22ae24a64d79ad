package models

// AccountSnapshot is a read-only view of one client account.
type AccountSnapshot struct {
	Client    uint16 `json:"client"`
	Available Amount `json:"available"`
	Held      Amount `json:"held"`
	Total     Amount `json:"total"`
	Locked    bool   `json:"locked"`
}
