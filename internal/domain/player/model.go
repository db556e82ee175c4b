package player

import (
	"strings"
	"unicode/utf8"

	"badminton/internal/domain/ledger"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
	ContactDigits = 10
)

// ContactUnknown is stored when a player has no phone number on file.
const ContactUnknown = "unknown"

// Player is a club member, keyed by name.
type Player struct {
	Name     string
	Contact  string
	Position int64 // insertion order, assigned by the store
}

// New builds a normalized Player and validates it.
// PRE: none
// POST: Name is trimmed, an empty contact becomes ContactUnknown
func New(name, contact string) (Player, error) {
	p := Player{
		Name:    strings.TrimSpace(name),
		Contact: NormalizeContact(contact),
	}
	if err := p.Validate(); err != nil {
		return Player{}, err
	}
	return p, nil
}

// NormalizeContact trims the contact and maps an empty value to ContactUnknown.
func NormalizeContact(contact string) string {
	contact = strings.TrimSpace(contact)
	if contact == "" || strings.EqualFold(contact, ContactUnknown) {
		return ContactUnknown
	}
	return contact
}

// Validate checks if the Player has valid data.
// PRE: Player struct is initialized
// POST: Returns an error wrapping ledger.ErrValidation if validation fails, nil otherwise
// INVARIANT: Name is non-empty; Contact is ten digits or ContactUnknown
func (p *Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ledger.Validationf("player name cannot be empty")
	}
	if utf8.RuneCountInString(p.Name) > MaxNameLength {
		return ledger.Validationf("player name cannot exceed %d characters", MaxNameLength)
	}
	if !ValidContact(p.Contact) {
		return ledger.Validationf("contact must be a %d-digit number", ContactDigits)
	}
	return nil
}

// ValidContact reports whether c is exactly ten ASCII digits or ContactUnknown.
func ValidContact(c string) bool {
	if c == ContactUnknown {
		return true
	}
	if len(c) != ContactDigits {
		return false
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HasContact reports whether a phone number is on file.
func (p *Player) HasContact() bool {
	return p.Contact != ContactUnknown
}
