package domain

import (
	"fmt"
	"strings"
	"time"
)

type BillStatus string

const (
	BillStatusPaid    BillStatus = "paid"
	BillStatusUnpaid  BillStatus = "unpaid"
	BillStatusUnknown BillStatus = "unknown"
)

func ParseBillStatus(raw string) BillStatus {
	switch BillStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case BillStatusPaid:
		return BillStatusPaid
	case BillStatusUnpaid:
		return BillStatusUnpaid
	default:
		return BillStatusUnknown
	}
}

// Name is the upper-case status name used in bill descriptions.
func (s BillStatus) Name() string {
	return strings.ToUpper(string(s))
}

type Money struct {
	Amount   float64
	Currency string
}

type Bill struct {
	Date   time.Time
	Amount Money
	Status BillStatus
}

type BillInfo struct {
	TotalOutstanding Money
	Bills            []Bill
}

// BillHistoryEntry is one (month, description) pair of the unpaid bill history.
type BillHistoryEntry struct {
	Month       string `json:"month"`
	Description string `json:"description"`
}

// UnpaidHistory keeps the unpaid bills in upstream order.
func (b BillInfo) UnpaidHistory() []BillHistoryEntry {
	history := make([]BillHistoryEntry, 0, len(b.Bills))
	for _, bill := range b.Bills {
		if bill.Status != BillStatusUnpaid {
			continue
		}
		history = append(history, BillHistoryEntry{
			Month:       bill.Date.Format("2006-01"),
			Description: fmt.Sprintf("%s %d (%s)", bill.Amount.Currency, int64(bill.Amount.Amount), bill.Status.Name()),
		})
	}

	return history
}
