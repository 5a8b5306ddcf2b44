package interactive

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzySuggester(t *testing.T) {
	s := NewFuzzySuggester()
	names := []string{"twice", "music", "twitch", "abc"}

	got := s.Suggest("twce", names)
	require.NotEmpty(t, got)
	assert.Equal(t, "twice", got[0])
	assert.NotContains(t, got, "abc")

	assert.Empty(t, s.Suggest("twice", []string{"twice"}))
	assert.Nil(t, s.Suggest("", names))
	assert.Len(t, s.Suggest("i", []string{"ia", "ib", "ic", "id", "ie"}), MaxSuggestions)
}

func TestFuzzySearchFunc(t *testing.T) {
	items := []string{"0x5FbD .mus", "0xe7f1 .eth"}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("MUS", 0))
	assert.False(t, search("mus", 1))
	assert.True(t, search("0x5m", 0))
}

func TestSelectorNonInteractive(t *testing.T) {
	ctx := context.Background()
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	ok, err := s.Confirm(ctx, "Withdraw?")
	require.NoError(t, err)
	assert.False(t, ok)

	one := &models.Deployment{Address: common.HexToAddress("0x01"), TLD: "mus", CreatedAt: time.Now()}
	picked, err := s.SelectDeployment(ctx, []*models.Deployment{one}, "Select")
	require.NoError(t, err)
	assert.Equal(t, one, picked)

	_, err = s.SelectDeployment(ctx, []*models.Deployment{one, one}, "Select")
	assert.Error(t, err)

	_, err = s.SelectDeployment(ctx, nil, "Select")
	assert.Error(t, err)
}
