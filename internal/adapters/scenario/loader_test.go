package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinScenarios(t *testing.T) {
	l := NewLoaderAdapter()
	assert.Equal(t, []string{"deploy", "negative", "run"}, l.BuiltinScenarios())

	for _, name := range l.BuiltinScenarios() {
		t.Run(name, func(t *testing.T) {
			s, err := l.LoadScenario(context.Background(), name)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			assert.Equal(t, models.ActionDeploy, s.Steps[0].Action)
			assert.Equal(t, "mus", s.Steps[0].TLD)
		})
	}

	negative, err := l.LoadScenario(context.Background(), "negative")
	require.NoError(t, err)
	var expects []string
	for _, step := range negative.Steps {
		if step.Expect != "" {
			expects = append(expects, step.Expect)
		}
	}
	assert.Equal(t, []string{"AlreadyRegistered", "InvalidName", "Unauthorized"}, expects)
}

func TestLoadScenarioFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "mine.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
steps:
  - action: register
    name: abc
  - action: getRecord
    name: abc
`), 0644))

	s, err := NewLoaderAdapter().LoadScenario(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "mine", s.Name)
	assert.Len(t, s.Steps, 2)

	_, err = NewLoaderAdapter().LoadScenario(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"no steps", "name: x\n", "no steps"},
		{"unknown field", "steps:\n  - action: price\n    name: abc\n    colour: red\n", "colour"},
		{"unknown action", "steps:\n  - action: transfer\n", "unknown action"},
		{"missing name", "steps:\n  - action: register\n", "name is required"},
		{"missing record", "steps:\n  - action: setRecord\n    name: abc\n", "record is required"},
		{"missing of", "steps:\n  - action: balance\n", "of is required"},
		{"bad value", "steps:\n  - action: register\n    name: abc\n    value: lots\n", "value"},
		{"bad expect", "steps:\n  - action: withdraw\n    expect: Oops\n", "unknown error kind"},
		{"valid", "steps:\n  - action: withdraw\n    expect: unauthorized\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
