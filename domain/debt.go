package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Debt struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Balance    decimal.Decimal `json:"balance" yaml:"balance"`
	APR        decimal.Decimal `json:"apr" yaml:"apr"` // percent, 18.99 means 18.99%
	MinPayment decimal.Decimal `json:"minPayment" yaml:"min_payment"`
	DueDay     int             `json:"dueDay,omitempty" yaml:"due_day,omitempty"`
	Include    bool            `json:"include" yaml:"include"`
	Category   string          `json:"category,omitempty" yaml:"category,omitempty"`
	Notes      string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// debtAlias drops the Debt methods so the decoders below do not recurse.
type debtAlias Debt

// UnmarshalJSON treats a missing "include" as true.
func (d *Debt) UnmarshalJSON(data []byte) error {
	aux := debtAlias{Include: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Debt(aux)
	return nil
}

// UnmarshalYAML treats a missing "include" as true.
func (d *Debt) UnmarshalYAML(value *yaml.Node) error {
	aux := debtAlias{Include: true}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*d = Debt(aux)
	return nil
}

// RawDebt is an unvalidated row coming from an import or a form.
type RawDebt struct {
	Row        int
	ID         string
	Name       string
	Balance    string
	APR        string
	MinPayment string
	DueDay     string
	Include    string
	Category   string
	Notes      string
}
