package application

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oraad/ogero-sensors/internal/domain"
)

var testAccount = domain.NewAccount("L1234", "01234567")

func mockAnyContext() interface{} {
	return mock.Anything
}

func testConsumption() *domain.Consumption {
	return &domain.Consumption{
		Quota:            100,
		Speed:            "8 Mbps",
		TotalConsumption: 45.5,
		ExtraConsumption: 1.5,
		LastUpdate:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func bill(year int, month time.Month, amount float64, status domain.BillStatus) domain.Bill {
	return domain.Bill{
		Date:   time.Date(year, month, 5, 0, 0, 0, 0, time.UTC),
		Amount: domain.Money{Amount: amount, Currency: "LBP"},
		Status: status,
	}
}

func testBills(bills ...domain.Bill) *domain.BillInfo {
	if len(bills) == 0 {
		bills = []domain.Bill{
			bill(2026, time.January, 1500, domain.BillStatusUnpaid),
			bill(2026, time.February, 2000, domain.BillStatusPaid),
		}
	}
	return &domain.BillInfo{
		TotalOutstanding: domain.Money{Amount: 45.9, Currency: "LBP"},
		Bills:            bills,
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}
