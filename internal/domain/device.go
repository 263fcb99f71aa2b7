package domain

// DeviceIdentifier is the (domain, id) pair a host registers a device under.
type DeviceIdentifier struct {
	Domain string `json:"domain"`
	ID     string `json:"id"`
}

type DeviceInfo struct {
	Identifier   DeviceIdentifier `json:"identifier"`
	Name         string           `json:"name"`
	Manufacturer string           `json:"manufacturer"`
	Model        string           `json:"model"`
}

func NewDeviceInfo(entryID EntryID, account Account, model string) DeviceInfo {
	return DeviceInfo{
		Identifier:   DeviceIdentifier{Domain: IntegrationDomain, ID: string(entryID)},
		Name:         account.Phone,
		Manufacturer: IntegrationName,
		Model:        model,
	}
}
