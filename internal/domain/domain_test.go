package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountSerialRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		internet string
		phone    string
	}{
		{name: "digits", internet: "L123456", phone: "01234567"},
		{name: "single characters", internet: "a", phone: "b"},
		{name: "spaces kept verbatim", internet: " dsl ", phone: " 70 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewAccount(tt.internet, tt.phone)

			got, err := ParseAccount(account.Serial())
			require.NoError(t, err)
			assert.Equal(t, account, got)
		})
	}
}

func TestParseAccountRejectsMalformedKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "no separator", key: "L123456"},
		{name: "empty", key: ""},
		{name: "too many parts", key: "a|b|c"},
		{name: "empty internet", key: "|01234567"},
		{name: "empty phone", key: "L123456|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccount(tt.key)
			require.Error(t, err)

			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.key, formatErr.Key)
		})
	}
}

func TestAccountLabel(t *testing.T) {
	assert.Equal(t, "DSL# L1 | Phone# 01", Account{Internet: "L1", Phone: "01"}.String())
	assert.Equal(t, "Phone# 01", Account{Phone: "01"}.String())
	assert.Equal(t, "DSL# L1", Account{Internet: "L1"}.String())
	assert.Equal(t, "", Account{}.String())
}

func TestUnpaidHistoryKeepsUnpaidBillsInOrder(t *testing.T) {
	info := BillInfo{
		TotalOutstanding: Money{Amount: 45.9, Currency: "LBP"},
		Bills: []Bill{
			{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Amount: Money{Amount: 1500.75, Currency: "LBP"}, Status: BillStatusUnpaid},
			{Date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), Amount: Money{Amount: 900, Currency: "LBP"}, Status: BillStatusPaid},
			{Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Amount: Money{Amount: 2000.2, Currency: "LBP"}, Status: BillStatusUnpaid},
		},
	}

	assert.Equal(t, []BillHistoryEntry{
		{Month: "2024-01", Description: "LBP 1500 (UNPAID)"},
		{Month: "2024-03", Description: "LBP 2000 (UNPAID)"},
	}, info.UnpaidHistory())
}

func TestUnpaidHistoryEmptyWhenAllPaid(t *testing.T) {
	info := BillInfo{Bills: []Bill{{Date: time.Now(), Status: BillStatusPaid}}}

	assert.Empty(t, info.UnpaidHistory())
}

func TestParseBillStatus(t *testing.T) {
	assert.Equal(t, BillStatusUnpaid, ParseBillStatus("UNPAID"))
	assert.Equal(t, BillStatusPaid, ParseBillStatus(" paid "))
	assert.Equal(t, BillStatusUnknown, ParseBillStatus("pending"))
	assert.Equal(t, "UNPAID", BillStatusUnpaid.Name())
}

func TestNewSnapshotTruncatesOutstandingBalance(t *testing.T) {
	lastUpdate := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	consumption := Consumption{Quota: 100, Speed: "60Mbps", TotalConsumption: 80.5, ExtraConsumption: 0, LastUpdate: lastUpdate}
	bills := BillInfo{TotalOutstanding: Money{Amount: 45.9, Currency: "LBP"}}

	snapshot := NewSnapshot(consumption, bills)

	assert.Equal(t, int64(45), snapshot.OutstandingBalance)
	assert.Equal(t, int64(100), snapshot.Quota)
	assert.Equal(t, "60Mbps", snapshot.Speed)
	assert.Equal(t, 80.5, snapshot.TotalConsumption)
	assert.Equal(t, lastUpdate, snapshot.LastUpdate)
	assert.Empty(t, snapshot.StateAttributes.OutstandingBalance)
}

func TestSnapshotValueByKey(t *testing.T) {
	snapshot := Snapshot{Quota: 100, Speed: "8Mbps", OutstandingBalance: 12}

	value, ok := snapshot.Value(SensorQuota)
	require.True(t, ok)
	assert.Equal(t, int64(100), value)

	value, ok = snapshot.Value(SensorSpeed)
	require.True(t, ok)
	assert.Equal(t, "8Mbps", value)

	_, ok = snapshot.Value(SensorKey("download"))
	assert.False(t, ok)
}

func TestClientErrorKinds(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	commErr := NewCommunicationError("get bills", cause)
	authErr := NewAuthenticationError("login", nil)
	clientErr := NewClientError("No bill info found.", nil)

	assert.ErrorIs(t, commErr, ErrCommunication)
	assert.NotErrorIs(t, commErr, ErrAuthentication)
	assert.ErrorIs(t, commErr, cause)

	assert.ErrorIs(t, authErr, ErrAuthentication)
	assert.ErrorIs(t, authErr, ErrCommunication)

	assert.NotErrorIs(t, clientErr, ErrCommunication)
	assert.NotErrorIs(t, clientErr, ErrAuthentication)

	for _, err := range []error{commErr, authErr, clientErr} {
		var target *ClientError
		assert.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &target)
	}
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("refresh: %w", NewAuthenticationError("login", nil)))
	require.True(t, ok)
	assert.Equal(t, KindAuthentication, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestUniqueID(t *testing.T) {
	assert.Equal(t, "entry-1_outstanding_balance", UniqueID("entry-1", SensorOutstandingBalance))
}

func TestNewDeviceInfoUsesPhoneAsName(t *testing.T) {
	device := NewDeviceInfo("entry-1", NewAccount("L1", "01234567"), "1.2.0")

	assert.Equal(t, "01234567", device.Name)
	assert.Equal(t, DeviceIdentifier{Domain: "ogero", ID: "entry-1"}, device.Identifier)
	assert.Equal(t, "Ogero", device.Manufacturer)
	assert.Equal(t, "1.2.0", device.Model)
}
