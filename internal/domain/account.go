package domain

import (
	"fmt"
	"strings"
)

// AccountSeparator joins the internet and phone ids in an account serial.
const AccountSeparator = "|"

// Account identifies one subscriber line on the portal.
type Account struct {
	Internet string
	Phone    string
}

func NewAccount(internet, phone string) Account {
	return Account{Internet: internet, Phone: phone}
}

// ParseAccount deserializes an "<internet>|<phone>" key.
func ParseAccount(key string) (Account, error) {
	if !strings.Contains(key, AccountSeparator) {
		return Account{}, &FormatError{Key: key, Reason: "missing separator"}
	}

	parts := strings.Split(key, AccountSeparator)
	if len(parts) != 2 {
		return Account{}, &FormatError{Key: key, Reason: fmt.Sprintf("expected 2 parts, got %d", len(parts))}
	}
	if parts[0] == "" || parts[1] == "" {
		return Account{}, &FormatError{Key: key, Reason: "empty internet or phone id"}
	}

	return Account{Internet: parts[0], Phone: parts[1]}, nil
}

func (a Account) Serial() string {
	return a.Internet + AccountSeparator + a.Phone
}

func (a Account) IsZero() bool {
	return a.Internet == "" && a.Phone == ""
}

// String is a display label only; identity is Serial.
func (a Account) String() string {
	switch {
	case a.Internet != "" && a.Phone != "":
		return fmt.Sprintf("DSL# %s | Phone# %s", a.Internet, a.Phone)
	case a.Phone != "":
		return fmt.Sprintf("Phone# %s", a.Phone)
	case a.Internet != "":
		return fmt.Sprintf("DSL# %s", a.Internet)
	default:
		return ""
	}
}
