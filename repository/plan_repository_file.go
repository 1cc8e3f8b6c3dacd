package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"debt-payoff/domain"
)

const planFileExt = ".yaml"

// FilePlanRepository keeps one YAML file per plan in a directory. When a
// passphrase is set new files are age-encrypted; plaintext files stay readable.
type FilePlanRepository struct {
	mu         sync.Mutex
	dir        string
	passphrase string
	now        func() time.Time
}

func NewFilePlanRepository(dir, passphrase string) (*FilePlanRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plans directory: %w", err)
	}
	return &FilePlanRepository{
		dir:        dir,
		passphrase: passphrase,
		now:        time.Now,
	}, nil
}

func (r *FilePlanRepository) Save(_ context.Context, plan domain.Plan) (domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var existing domain.Plan
	if plan.ID != "" {
		path, err := r.path(plan.ID)
		if err != nil {
			return domain.Plan{}, err
		}
		stored, err := ReadPlanFile(path, r.passphrase)
		if err != nil && !errors.Is(err, domain.ErrPlanNotFound) {
			return domain.Plan{}, err
		}
		existing = stored
	}

	plan = stamp(plan, existing, r.now())
	path, err := r.path(plan.ID)
	if err != nil {
		return domain.Plan{}, err
	}
	if err := WritePlanFile(path, plan, r.passphrase); err != nil {
		return domain.Plan{}, err
	}
	return plan, nil
}

func (r *FilePlanRepository) Get(_ context.Context, id string) (domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := r.path(id)
	if err != nil {
		return domain.Plan{}, err
	}
	return ReadPlanFile(path, r.passphrase)
}

func (r *FilePlanRepository) List(_ context.Context) ([]domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	paths, err := filepath.Glob(filepath.Join(r.dir, "*"+planFileExt))
	if err != nil {
		return nil, err
	}

	plans := make([]domain.Plan, 0, len(paths))
	for _, path := range paths {
		plan, err := ReadPlanFile(path, r.passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		plans = append(plans, plan)
	}
	sortPlans(plans)
	return plans, nil
}

func (r *FilePlanRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := r.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrPlanNotFound
		}
		return err
	}
	return nil
}

func (r *FilePlanRepository) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: plan id %q cannot be used as a file name", domain.ErrInvalidInput, id)
	}
	return filepath.Join(r.dir, id+planFileExt), nil
}

// ReadPlanFile loads a plan file, decrypting it when it is age-encrypted.
func ReadPlanFile(path, passphrase string) (domain.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Plan{}, domain.ErrPlanNotFound
		}
		return domain.Plan{}, err
	}

	if isAgeEncrypted(data) {
		if passphrase == "" {
			return domain.Plan{}, domain.ErrStoreLocked
		}
		if data, err = decryptData(data, passphrase); err != nil {
			return domain.Plan{}, err
		}
	}

	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return plan, nil
}

// WritePlanFile writes the plan atomically, encrypted when passphrase is set.
func WritePlanFile(path string, plan domain.Plan, passphrase string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if passphrase != "" {
		if data, err = encryptData(data, passphrase); err != nil {
			return fmt.Errorf("failed to encrypt: %w", err)
		}
	}
	return atomicWrite(path, data, 0o600)
}

// EncryptPlanFile encrypts a plaintext plan file in place.
func EncryptPlanFile(path, passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("%w: passphrase is required", domain.ErrInvalidInput)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isAgeEncrypted(data) {
		return fmt.Errorf("%s is already encrypted", filepath.Base(path))
	}

	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}

	encrypted, err := encryptData(data, passphrase)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}
	return atomicWrite(path, encrypted, 0o600)
}

// IsEncryptedFile reports whether the file at path is age-encrypted.
func IsEncryptedFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return isAgeEncrypted(data), nil
}

// atomicWrite writes to a temp file and renames it over path.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
