package records

import (
	"encoding/json"
	"slices"
	"strings"

	"idms/internal/portal/form"
)

const (
	AssetActive      = "active"
	AssetReturned    = "returned"
	AssetMaintenance = "maintenance"

	ConditionGood = "good"
	ConditionFair = "fair"
	ConditionPoor = "poor"
)

var (
	AssetStatuses   = []string{AssetActive, AssetReturned, AssetMaintenance}
	AssetConditions = []string{ConditionGood, ConditionFair, ConditionPoor}
)

// Asset keeps status and condition lower-case on the client.
type Asset struct {
	ID           int64
	AssetName    string
	Category     string
	SerialNumber string
	Status       string
	Condition    string
	AssignedTo   string
}

type assetWire struct {
	ID           int64  `json:"id,omitempty"`
	AssetName    string `json:"assetName"`
	Category     string `json:"category"`
	SerialNumber string `json:"serialNumber"`
	Status       string `json:"status,omitempty"`
	Condition    string `json:"assetcondition,omitempty"`
	AssignedTo   string `json:"assignedTo,omitempty"`
}

// AssetMapper lower-cases enums on receipt and upper-cases them on send.
type AssetMapper struct{}

func (AssetMapper) Decode(raw json.RawMessage) (Asset, error) {
	var w assetWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Asset{}, err
	}
	return Asset{
		ID:           w.ID,
		AssetName:    w.AssetName,
		Category:     w.Category,
		SerialNumber: w.SerialNumber,
		Status:       strings.ToLower(w.Status),
		Condition:    strings.ToLower(w.Condition),
		AssignedTo:   w.AssignedTo,
	}, nil
}

func (AssetMapper) Encode(a Asset) ([]byte, error) {
	return json.Marshal(assetWire{
		AssetName:    a.AssetName,
		Category:     a.Category,
		SerialNumber: a.SerialNumber,
		Status:       strings.ToUpper(a.Status),
		Condition:    strings.ToUpper(a.Condition),
		AssignedTo:   a.AssignedTo,
	})
}

type AssetForm struct {
	AssetName    string
	Category     string
	SerialNumber string
	Status       string
	Condition    string
	AssignedTo   string
}

type AssetBinding struct{}

func (AssetBinding) Key(a Asset) int64 { return a.ID }

func (AssetBinding) Blank() AssetForm {
	return AssetForm{Status: AssetActive, Condition: ConditionGood}
}

func (AssetBinding) FormOf(a Asset) AssetForm {
	return AssetForm{
		AssetName:    a.AssetName,
		Category:     a.Category,
		SerialNumber: a.SerialNumber,
		Status:       a.Status,
		Condition:    a.Condition,
		AssignedTo:   a.AssignedTo,
	}
}

func (AssetBinding) Build(f AssetForm) (Asset, error) {
	var v form.Validator
	v.Required("assetName", f.AssetName)
	v.Required("serialNumber", f.SerialNumber)
	status := strings.ToLower(strings.TrimSpace(f.Status))
	if status != "" && !slices.Contains(AssetStatuses, status) {
		v.Add("status", "must be active, returned or maintenance")
	}
	condition := strings.ToLower(strings.TrimSpace(f.Condition))
	if condition != "" && !slices.Contains(AssetConditions, condition) {
		v.Add("assetcondition", "must be good, fair or poor")
	}
	if err := v.Err(); err != nil {
		return Asset{}, err
	}
	return Asset{
		AssetName:    strings.TrimSpace(f.AssetName),
		Category:     strings.TrimSpace(f.Category),
		SerialNumber: strings.TrimSpace(f.SerialNumber),
		Status:       status,
		Condition:    condition,
		AssignedTo:   strings.TrimSpace(f.AssignedTo),
	}, nil
}
