package domain

import (
	"fmt"
	"strings"
)

type Strategy string

const (
	StrategySnowball  Strategy = "snowball"  // smallest balance first
	StrategyAvalanche Strategy = "avalanche" // highest APR first
	StrategyMinimum   Strategy = "minimum"   // minimum payments only
)

// Strategies lists every supported strategy in presentation order.
var Strategies = []Strategy{StrategySnowball, StrategyAvalanche, StrategyMinimum}

func (s Strategy) Valid() bool {
	switch s {
	case StrategySnowball, StrategyAvalanche, StrategyMinimum:
		return true
	}
	return false
}

// AllocatesExtra reports whether the strategy spends money beyond the minimums.
func (s Strategy) AllocatesExtra() bool {
	switch s {
	case StrategySnowball, StrategyAvalanche:
		return true
	case StrategyMinimum:
		return false
	}
	return false
}

func ParseStrategy(value string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, value)
	}
	return s, nil
}
