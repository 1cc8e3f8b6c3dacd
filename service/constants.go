package service

const (
	DefaultHorizonMonths = 600  // 50 years
	MaxHorizonMonths     = 1200 // 100 years
	MaxAPR               = 1000 // percent
	MaxDueDay            = 28
	MaxDebtsPerPlan      = 50

	centPlaces = 2
)
