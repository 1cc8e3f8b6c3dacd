package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"debt-payoff/domain"
)

// DebtService turns raw imported rows into validated debts.
type DebtService struct {
	logger *log.Logger
	newID  func() string
}

func NewDebtService(logger *log.Logger) *DebtService {
	return &DebtService{
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Normalize parses every row, assigns ids to rows without one and defaults
// Include to true. Negative amounts are rejected, never clamped.
func (s *DebtService) Normalize(raw []domain.RawDebt) ([]domain.Debt, error) {
	debts := make([]domain.Debt, 0, len(raw))
	for i, r := range raw {
		row := r.Row
		if row == 0 {
			row = i + 1
		}

		debt, err := s.normalizeRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if r.ID == "" {
			s.logger.Debug("assigned debt id", "row", row, "name", debt.Name, "id", debt.ID)
		}
		debts = append(debts, debt)
	}

	if err := ValidateDebts(debts); err != nil {
		return nil, err
	}
	return debts, nil
}

func (s *DebtService) normalizeRow(r domain.RawDebt) (domain.Debt, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return domain.Debt{}, fmt.Errorf("%w: debt name cannot be empty", domain.ErrInvalidInput)
	}

	balance, err := parseAmount("balance", r.Balance)
	if err != nil {
		return domain.Debt{}, err
	}
	apr, err := parseAmount("apr", r.APR)
	if err != nil {
		return domain.Debt{}, err
	}
	minPayment, err := parseAmount("minimum payment", r.MinPayment)
	if err != nil {
		return domain.Debt{}, err
	}

	dueDay := 0
	if v := strings.TrimSpace(r.DueDay); v != "" {
		if dueDay, err = strconv.Atoi(v); err != nil {
			return domain.Debt{}, fmt.Errorf("%w: due day %q is not a number", domain.ErrInvalidInput, r.DueDay)
		}
	}

	include, err := parseFlag(r.Include, true)
	if err != nil {
		return domain.Debt{}, err
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = s.newID()
	}

	return domain.Debt{
		ID:         id,
		Name:       name,
		Balance:    balance,
		APR:        apr,
		MinPayment: minPayment,
		DueDay:     dueDay,
		Include:    include,
		Category:   strings.TrimSpace(r.Category),
		Notes:      strings.TrimSpace(r.Notes),
	}, nil
}

// parseAmount accepts "$1,234.50", "18.99%" and blanks (zero).
func parseAmount(field, value string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(strings.TrimSpace(value))
	if cleaned == "" {
		return decimal.Zero, nil
	}
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		return decimal.Zero, fmt.Errorf("%w: %s %q cannot be negative", domain.ErrInvalidInput, field, value)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidInput, field, value)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s %q cannot be negative", domain.ErrInvalidInput, field, value)
	}
	return amount, nil
}

func parseFlag(value string, fallback bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return fallback, nil
	case "1", "true", "yes", "y", "x":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("%w: include flag %q is not yes/no", domain.ErrInvalidInput, value)
}
