package application

import "github.com/oraad/ogero-sensors/internal/domain"

type AddEntryCommand struct {
	Title string
	Data  domain.EntryData
}
