package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/registry"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/samber/lo"
)

// RegistryRenderer renders the results of registry calls
type RegistryRenderer struct {
	out io.Writer
}

// NewRegistryRenderer creates a new registry renderer
func NewRegistryRenderer(out io.Writer) *RegistryRenderer {
	return &RegistryRenderer{out: out}
}

// RenderDeploy renders a new deployment
func (r *RegistryRenderer) RenderDeploy(result *usecase.DeployRegistryResult) error {
	dep := result.Deployment
	fmt.Fprintf(r.out, "Contract deployed to: %s\n", addressStyle.Sprint(dep.Address.Hex()))
	fmt.Fprintf(r.out, "Contract deployed by: %s\n", dep.Deployer.Hex())
	fmt.Fprintf(r.out, "TLD: .%s on %s (chain %d)\n", dep.TLD, dep.Network, dep.ChainID)
	fmt.Fprintln(r.out, faintStyle.Sprintf("tx %s in block %d", dep.TxHash.Hex(), dep.BlockNumber))
	return nil
}

// RenderRegister renders a registration
func (r *RegistryRenderer) RenderRegister(result *usecase.RegisterDomainResult) error {
	fmt.Fprintln(r.out, FormatSuccess("Minted domain "+nameStyle.Sprint(result.Domain.FullName())))
	fmt.Fprintf(r.out, "Owner: %s\n", Owner(result.Domain.Owner))
	fmt.Fprintf(r.out, "Paid:  %s", amountStyle.Sprint(Ether(result.Paid)))
	if result.Paid.Cmp(result.Price) > 0 {
		fmt.Fprint(r.out, faintStyle.Sprintf(" (price %s)", Ether(result.Price)))
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, receiptLine(result.Receipt))
	return nil
}

// RenderSetRecord renders a record update
func (r *RegistryRenderer) RenderSetRecord(result *usecase.SetRecordResult) error {
	fmt.Fprintln(r.out, FormatSuccess("Set record for "+nameStyle.Sprint(result.Domain.FullName())))
	fmt.Fprintf(r.out, "Record: %s\n", result.Domain.Record)
	fmt.Fprintln(r.out, receiptLine(result.Receipt))
	return nil
}

// RenderLookup renders the owner and record of a name
func (r *RegistryRenderer) RenderLookup(result *usecase.LookupDomainResult) error {
	d := result.Domain
	fmt.Fprintf(r.out, "Owner of domain %s: %s\n", d.Name, d.Owner.Hex())
	if !d.Registered() {
		fmt.Fprintln(r.out, FormatWarning(d.FullName()+" is not registered"))
		if len(result.Suggestions) > 0 {
			names := lo.Map(result.Suggestions, func(s string, _ int) string {
				return nameStyle.Sprint(s + "." + d.TLD)
			})
			fmt.Fprintf(r.out, "Did you mean: %s?\n", strings.Join(names, ", "))
		}
		return nil
	}
	if d.Record != "" {
		fmt.Fprintf(r.out, "Record of domain %s: %s\n", d.Name, d.Record)
	}
	return nil
}

// RenderDomains renders registered names in registration order
func (r *RegistryRenderer) RenderDomains(result *usecase.ListDomainsResult) error {
	if len(result.Domains) == 0 {
		fmt.Fprintf(r.out, "No .%s domains registered at %s\n", result.TLD, result.Registry.Hex())
		return nil
	}

	fmt.Fprintln(r.out, headerStyle.Sprintf(".%s registry %s", result.TLD, result.Registry.Hex()))
	fmt.Fprintln(r.out)

	t := newTable("DOMAIN", "OWNER", "RECORD")
	for _, d := range result.Domains {
		t.AppendRow(table.Row{nameStyle.Sprint(d.FullName()), d.Owner.Hex(), d.Record})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintf(r.out, "\n%d domain(s)\n", len(result.Domains))
	return nil
}

// RenderQuotes renders registration prices
func (r *RegistryRenderer) RenderQuotes(result *usecase.QuotePriceResult) error {
	t := newTable("DOMAIN", "PRICE", "STATUS")
	for _, q := range result.Quotes {
		full := q.Name + "." + result.TLD
		switch {
		case q.Err != nil:
			t.AppendRow(table.Row{full, "-", expectedStyle.Sprint(registry.KindOf(q.Err))})
		case q.Available:
			t.AppendRow(table.Row{nameStyle.Sprint(full), amountStyle.Sprint(Ether(q.Price)), "available"})
		default:
			t.AppendRow(table.Row{full, Ether(q.Price), faintStyle.Sprint("taken")})
		}
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderWithdraw renders a treasury withdrawal
func (r *RegistryRenderer) RenderWithdraw(result *usecase.WithdrawTreasuryResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Withdrew %s to %s", amountStyle.Sprint(Ether(result.Amount)), result.To.Hex())))
	fmt.Fprintf(r.out, "Contract balance: %s\n", domain.FormatEther(result.TreasuryAfter))
	fmt.Fprintf(r.out, "Owner balance:    %s -> %s\n", domain.FormatEther(result.BalanceBefore), domain.FormatEther(result.BalanceAfter))
	fmt.Fprintln(r.out, receiptLine(result.Receipt))
	return nil
}

// RenderBalances renders native balances
func (r *RegistryRenderer) RenderBalances(result *usecase.QueryBalanceResult) error {
	t := newTable("", "ADDRESS", "BALANCE")
	for _, b := range result.Balances {
		t.AppendRow(table.Row{Title(b.Label), addressStyle.Sprint(b.Address.Hex()), amountStyle.Sprint(Ether(b.Wei))})
	}
	fmt.Fprintln(r.out, headerStyle.Sprintf("Balances on %s", result.Network))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, t.Render())
	return nil
}
