package render

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/musdomains/domains/internal/registry"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestScenarioRenderer(t *testing.T) {
	steps := []models.ScenarioStep{
		{Action: models.ActionDeploy, TLD: "mus"},
		{Action: models.ActionRegister, Name: "twice", Value: "1", Expect: "AlreadyRegistered"},
		{Action: models.ActionBalance, Of: "registry"},
		{Action: models.ActionWithdraw, From: "1"},
	}
	result := &usecase.RunScenarioResult{
		Scenario: &models.Scenario{Name: "negative", Steps: steps},
		Network:  "hardhat",
		Steps: []*models.StepResult{
			{Index: 0, Step: steps[0], Output: "Contract deployed to: 0x5FbDB2315678afecb367f032d93F642f64180aa3"},
			{Index: 1, Step: steps[1], Err: &registry.OpError{Op: "register", Name: "twice", Err: registry.ErrAlreadyRegistered}, Expected: true},
			{Index: 2, Step: steps[2], Output: "Contract balance: 0.1"},
			{Index: 3, Step: steps[3], Err: errors.New("boom")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewScenarioRenderer(&buf, false).Render(result))
	assert.Equal(t, "Contract deployed to: 0x5FbDB2315678afecb367f032d93F642f64180aa3\n"+
		"register(\"twice\", 1) rejected as expected: AlreadyRegistered\n"+
		"Contract balance: 0.1\n", buf.String())

	buf.Reset()
	require.NoError(t, NewScenarioRenderer(&buf, true).Render(result))
	assert.Contains(t, buf.String(), "Scenario negative on hardhat")
	assert.Contains(t, buf.String(), "[3/4] balance(registry)")
	assert.Contains(t, buf.String(), "[4/4] withdraw()")
	assert.Contains(t, buf.String(), "❌ Boom")
}

func TestRenderLookup(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistryRenderer(&buf)

	require.NoError(t, r.RenderLookup(&usecase.LookupDomainResult{
		Domain:      &models.Domain{Name: "twce", TLD: "mus"},
		Suggestions: []string{"twice"},
	}))
	assert.Contains(t, buf.String(), "Owner of domain twce: 0x0000000000000000000000000000000000000000")
	assert.Contains(t, buf.String(), "twce.mus is not registered")
	assert.Contains(t, buf.String(), "Did you mean: twice.mus?")

	buf.Reset()
	owner := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	require.NoError(t, r.RenderLookup(&usecase.LookupDomainResult{
		Domain: &models.Domain{Name: "twice", TLD: "mus", Owner: owner, Record: "https://example.com"},
	}))
	assert.Equal(t, "Owner of domain twice: "+owner.Hex()+"\nRecord of domain twice: https://example.com\n", buf.String())
}

func TestRenderTables(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistryRenderer(&buf)

	require.NoError(t, r.RenderQuotes(&usecase.QuotePriceResult{
		TLD: "mus",
		Quotes: []usecase.Quote{
			{Name: "twice", Price: registry.DefaultFee},
			{Name: "fresh", Price: registry.DefaultFee, Available: true},
			{Name: "2", Err: registry.ErrInvalidName},
		},
	}))
	out := buf.String()
	assert.Contains(t, out, "twice.mus")
	assert.Contains(t, out, "0.1 ETH")
	assert.Contains(t, out, "available")
	assert.Contains(t, out, "InvalidName")

	buf.Reset()
	require.NoError(t, r.RenderBalances(&usecase.QueryBalanceResult{
		Network:  "hardhat",
		Balances: []models.Balance{{Label: "account 0", Wei: big.NewInt(0)}},
	}))
	assert.Contains(t, buf.String(), "Account 0")
	assert.Contains(t, buf.String(), "0.0 ETH")
}

func TestNetworkViews(t *testing.T) {
	views := NetworkViews(&usecase.ListNetworksResult{
		Current: "hardhat",
		Networks: []usecase.NetworkStatus{
			{Name: "hardhat", Type: config.NetworkTypeLocal, ChainID: 31337, Ephemeral: true},
			{Name: "mumbai", Error: errors.New("environment variable ALCHEMY_URL is not set")},
		},
	})
	require.Len(t, views, 2)
	assert.True(t, views[0].Current)
	assert.Equal(t, "local", views[0].Type)
	assert.Equal(t, "environment variable ALCHEMY_URL is not set", views[1].Error)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, views[0]))
	assert.JSONEq(t, `{"name":"hardhat","type":"local","chainId":31337,"ephemeral":true,"current":true}`, buf.String())
}

func TestRenderExplorerLinks(t *testing.T) {
	result := &usecase.ListNetworksResult{
		Current: "polygon",
		Networks: []usecase.NetworkStatus{
			{Name: "polygon", Type: config.NetworkTypeRPC, ChainID: 137, Explorer: "https://polygonscan.com"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(result))
	assert.Contains(t, buf.String(), "https://polygonscan.com")
	assert.Equal(t, "https://polygonscan.com", NetworkViews(result)[0].Explorer)

	buf.Reset()
	receipt := &models.Receipt{BlockNumber: 7, Fee: big.NewInt(0), URL: "https://polygonscan.com/tx/0x01"}
	require.NoError(t, NewRegistryRenderer(&buf).RenderSetRecord(&usecase.SetRecordResult{
		Domain:  &models.Domain{Name: "twice", TLD: "mus", Record: "x"},
		Receipt: receipt,
	}))
	assert.Contains(t, buf.String(), "in block 7")
	assert.Contains(t, buf.String(), "https://polygonscan.com/tx/0x01")
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ Boom", FormatError("register twice: boom"))
}
