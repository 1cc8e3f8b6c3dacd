package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"debt-payoff/domain"
	"debt-payoff/repository"
	"debt-payoff/service"
)

var timeNow = time.Now

var importCmd = &cobra.Command{
	Use:   "import [flags] <debts.csv|debts.xls>",
	Short: "Build a plan file from a CSV or Excel list of debts",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringP("output", "o", "", "plan file to write (default: stdout)")
	importCmd.Flags().String("name", "", "plan name (default: input file name)")
	importCmd.Flags().String("strategy", string(domain.StrategySnowball), "strategy stored in the plan")
	importCmd.Flags().Bool("encrypt", false, "encrypt the written plan file")
}

func readRawDebts(path string) ([]domain.RawDebt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return repository.ImportCSV(f)
	case ".xls":
		return repository.ImportXLS(f)
	}
	return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidInput, filepath.Ext(path))
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	inputPath := args[0]
	raw, err := readRawDebts(inputPath)
	if err != nil {
		return err
	}

	debts, err := service.NewDebtService(logger).Normalize(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(inputPath), err)
	}

	value, _ := cmd.Flags().GetString("strategy")
	strategy, err := domain.ParseStrategy(value)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}

	plan := domain.Plan{
		ID:        uuid.New().String(),
		Name:      name,
		Debts:     debts,
		Settings:  domain.Settings{Strategy: strategy},
		CreatedAt: timeNow().UTC(),
	}
	plan.UpdatedAt = plan.CreatedAt

	output, _ := cmd.Flags().GetString("output")
	encrypt, _ := cmd.Flags().GetBool("encrypt")
	if output == "" {
		if encrypt {
			return fmt.Errorf("%w: --encrypt needs --output", domain.ErrInvalidInput)
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return err
		}
		return enc.Close()
	}

	passphrase := ""
	if encrypt {
		if passphrase, err = readPassphrase(cfg, true); err != nil {
			return err
		}
	}
	if err := repository.WritePlanFile(output, plan, passphrase); err != nil {
		return err
	}

	logger.Info("plan written", "file", output, "debts", len(debts), "encrypted", encrypt)
	return nil
}
