package domain

import (
	"strings"
	"time"
)

type EntryID string

const (
	IntegrationDomain = "ogero"
	IntegrationName   = "Ogero"
	Attribution       = "Data retrieved from https://ogero.gov.lb/"
)

type EntryData struct {
	Username string
	Password string
	Account  string
}

type ConfigEntry struct {
	ID        EntryID
	Title     string
	Data      EntryData
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e ConfigEntry) HasUsername() bool {
	return strings.TrimSpace(e.Data.Username) != ""
}

func (e ConfigEntry) HasAccount() bool {
	return strings.TrimSpace(e.Data.Account) != ""
}
