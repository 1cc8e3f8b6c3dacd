package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"debt-payoff/config"
	"debt-payoff/domain"
	"debt-payoff/repository"
)

// readPassphrase takes the passphrase from the configured environment
// variable, or prompts for it when stdin is a terminal.
func readPassphrase(cfg *config.Config, confirm bool) (string, error) {
	if passphrase := cfg.Passphrase(); passphrase != "" {
		return passphrase, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: set %s or run from a terminal", domain.ErrStoreLocked, cfg.PassphraseEnv)
	}

	passphrase, err := prompt(fd, "Passphrase: ")
	if err != nil {
		return "", err
	}
	if passphrase == "" {
		return "", fmt.Errorf("%w: passphrase cannot be empty", domain.ErrInvalidInput)
	}

	if confirm {
		again, err := prompt(fd, "Repeat passphrase: ")
		if err != nil {
			return "", err
		}
		if again != passphrase {
			return "", errors.New("passphrases do not match")
		}
	}
	return passphrase, nil
}

func prompt(fd int, label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return string(secret), nil
}

// loadPlan reads a plan file, asking for the passphrase only if the file
// turns out to be encrypted.
func loadPlan(cfg *config.Config, path string) (domain.Plan, error) {
	plan, err := repository.ReadPlanFile(path, cfg.Passphrase())
	if !errors.Is(err, domain.ErrStoreLocked) {
		return plan, err
	}

	passphrase, err := readPassphrase(cfg, false)
	if err != nil {
		return domain.Plan{}, err
	}
	return repository.ReadPlanFile(path, passphrase)
}
