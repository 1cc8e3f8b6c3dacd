package service

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"debt-payoff/domain"
)

// PlanKey identifies a simulation by its inputs. Settings must already be
// resolved so that an empty start date never hashes to a stale schedule.
func PlanKey(debts []domain.Debt, settings domain.Settings) (string, error) {
	payload, err := json.Marshal(struct {
		Debts    []domain.Debt   `json:"debts"`
		Settings domain.Settings `json:"settings"`
	}{debts, settings})
	if err != nil {
		return "", fmt.Errorf("encode plan key: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(payload)), nil
}
