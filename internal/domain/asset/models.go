package asset

const (
	StatusActive      = "ACTIVE"
	StatusReturned    = "RETURNED"
	StatusMaintenance = "MAINTENANCE"

	ConditionGood = "GOOD"
	ConditionFair = "FAIR"
	ConditionPoor = "POOR"
)

var (
	Statuses   = []string{StatusActive, StatusReturned, StatusMaintenance}
	Conditions = []string{ConditionGood, ConditionFair, ConditionPoor}
)

// Asset is a company item, optionally assigned to an employee.
type Asset struct {
	ID           int64  `json:"id"`
	AssetName    string `json:"assetName"`
	Category     string `json:"category"`
	SerialNumber string `json:"serialNumber"`
	Status       string `json:"status"`
	Condition    string `json:"assetcondition"`
	AssignedTo   string `json:"assignedTo,omitempty"`
}

type Input struct {
	AssetName    string `json:"assetName" validate:"required,max=255"`
	Category     string `json:"category" validate:"max=128"`
	SerialNumber string `json:"serialNumber" validate:"required,max=128"`
	Status       string `json:"status" validate:"max=32"`
	Condition    string `json:"assetcondition" validate:"max=32"`
	AssignedTo   string `json:"assignedTo" validate:"max=64"`
}
