package portal

import (
	"fmt"
	"time"

	"github.com/oraad/ogero-sensors/internal/domain"
)

const billDateLayout = "2006-01-02"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type accountPayload struct {
	Internet string `json:"internet"`
	Phone    string `json:"phone"`
}

type moneyPayload struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type billPayload struct {
	Date   string       `json:"date"`
	Amount moneyPayload `json:"amount"`
	Status string       `json:"status"`
}

type billInfoPayload struct {
	TotalOutstanding moneyPayload  `json:"total_outstanding"`
	Bills            []billPayload `json:"bills"`
}

type consumptionPayload struct {
	Quota            int64     `json:"quota"`
	Speed            string    `json:"speed"`
	TotalConsumption float64   `json:"total_consumption"`
	ExtraConsumption float64   `json:"extra_consumption"`
	LastUpdate       time.Time `json:"last_update"`
}

func (p accountPayload) toDomain() domain.Account {
	return domain.NewAccount(p.Internet, p.Phone)
}

func (p moneyPayload) toDomain() domain.Money {
	return domain.Money{Amount: p.Amount, Currency: p.Currency}
}

func (p billInfoPayload) toDomain() (domain.BillInfo, error) {
	bills := make([]domain.Bill, 0, len(p.Bills))
	for _, bill := range p.Bills {
		date, err := time.Parse(billDateLayout, bill.Date)
		if err != nil {
			return domain.BillInfo{}, fmt.Errorf("parse bill date %q: %w", bill.Date, err)
		}
		bills = append(bills, domain.Bill{
			Date:   date,
			Amount: bill.Amount.toDomain(),
			Status: domain.ParseBillStatus(bill.Status),
		})
	}

	return domain.BillInfo{
		TotalOutstanding: p.TotalOutstanding.toDomain(),
		Bills:            bills,
	}, nil
}

func (p consumptionPayload) toDomain() domain.Consumption {
	return domain.Consumption{
		Quota:            p.Quota,
		Speed:            p.Speed,
		TotalConsumption: p.TotalConsumption,
		ExtraConsumption: p.ExtraConsumption,
		LastUpdate:       p.LastUpdate,
	}
}
