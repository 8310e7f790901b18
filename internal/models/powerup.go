package models

// PowerUpKind identifies one of the spendable power-up types
type PowerUpKind string

const (
	// PowerUpMulligan lets a player re-do a bad outcome
	PowerUpMulligan PowerUpKind = "mulligan"

	// PowerUpReverseMulligan lets a player force someone else to re-do a good outcome
	PowerUpReverseMulligan PowerUpKind = "reverse_mulligan"

	// PowerUpGiveDrinks lets a player hand out drinks
	PowerUpGiveDrinks PowerUpKind = "give_drinks"
)

// Count returns the held quantity of the given kind
func (p *PowerUps) Count(kind PowerUpKind) int {
	switch kind {
	case PowerUpMulligan:
		return p.Mulligans
	case PowerUpReverseMulligan:
		return p.ReverseMulligans
	case PowerUpGiveDrinks:
		return p.GiveDrinks
	}
	return 0
}

// Add increments the held quantity of the given kind by n
func (p *PowerUps) Add(kind PowerUpKind, n int) {
	switch kind {
	case PowerUpMulligan:
		p.Mulligans += n
	case PowerUpReverseMulligan:
		p.ReverseMulligans += n
	case PowerUpGiveDrinks:
		p.GiveDrinks += n
	}
}
