package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")
	ErrStoreLocked         = errors.New("plan file is encrypted and no passphrase was given")
)
