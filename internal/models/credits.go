package models

// CreditBalance is a capped, time-refilled entitlement to perform a
// privileged action (assign drinks, initiate a danger zone).
type CreditBalance struct {
	Credits    int   `json:"credits"`
	LastRefill int64 `json:"lastRefill"`
}
