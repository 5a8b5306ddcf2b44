package scenario

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/musdomains/domains/internal/registry"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoaderAdapter loads scenarios from the built-in set or from YAML files
type LoaderAdapter struct{}

// NewLoaderAdapter creates a new scenario loader
func NewLoaderAdapter() *LoaderAdapter {
	return &LoaderAdapter{}
}

// BuiltinScenarios returns the names of the embedded scenarios, sorted
func (l *LoaderAdapter) BuiltinScenarios() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	names := lo.Map(entries, func(e os.DirEntry, _ int) string {
		return strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
	})
	sort.Strings(names)
	return names
}

// LoadScenario resolves ref as a built-in name first, then as a file path
func (l *LoaderAdapter) LoadScenario(_ context.Context, ref string) (*models.Scenario, error) {
	if lo.Contains(l.BuiltinScenarios(), ref) {
		data, err := builtinFS.ReadFile(path.Join("builtin", ref+".yaml"))
		if err != nil {
			return nil, err
		}
		return Parse(data)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: scenario %q is neither built in (%s) nor a file", domain.ErrNotFound, ref, strings.Join(l.BuiltinScenarios(), ", "))
		}
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(path.Base(ref), path.Ext(ref))
	}
	return s, nil
}

// Parse decodes and validates a scenario document. Unknown fields are rejected.
func Parse(data []byte) (*models.Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s models.Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scenario is empty")
		}
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step's action and required fields
func Validate(s *models.Scenario) error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}

	var errs []error
	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err))
		}
	}
	return errors.Join(errs...)
}

func validateStep(step models.ScenarioStep) error {
	if !lo.Contains(models.Actions, step.Action) {
		return fmt.Errorf("unknown action, expected one of: %s", strings.Join(lo.Map(models.Actions, func(a models.StepAction, _ int) string {
			return string(a)
		}), ", "))
	}

	switch step.Action {
	case models.ActionRegister, models.ActionGetAddress, models.ActionGetRecord, models.ActionPrice:
		if step.Name == "" {
			return fmt.Errorf("name is required")
		}
	case models.ActionSetRecord:
		if step.Name == "" {
			return fmt.Errorf("name is required")
		}
		if step.Record == "" {
			return fmt.Errorf("record is required")
		}
	case models.ActionBalance:
		if step.Of == "" {
			return fmt.Errorf("of is required (registry, an account index or an address)")
		}
	}

	if step.Value != "" {
		if _, err := domain.ParseEther(step.Value); err != nil {
			return fmt.Errorf("value: %w", err)
		}
	}
	if step.Expect != "" {
		if _, err := registry.ParseKind(step.Expect); err != nil {
			return fmt.Errorf("expect: %w", err)
		}
	}
	return nil
}

var _ usecase.ScenarioLoader = (*LoaderAdapter)(nil)
