package main

import (
	"github.com/spf13/cobra"

	"debt-payoff/repository"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <plan.yaml>",
	Short: "Encrypt a plan file in place with a passphrase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		passphrase, err := readPassphrase(cfg, true)
		if err != nil {
			return err
		}
		if err := repository.EncryptPlanFile(args[0], passphrase); err != nil {
			return err
		}

		logger.Info("plan encrypted", "file", args[0])
		return nil
	},
}
