package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/musdomains/domains/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the list of networks, marking the active one
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable("", "NETWORK", "TYPE", "CHAIN ID", "EXPLORER", "")
	for _, network := range result.Networks {
		marker := " "
		if network.Name == result.Current {
			marker = color.New(color.FgGreen).Sprint("▸")
		}
		if network.Error != nil {
			t.AppendRow(table.Row{marker, network.Name, "-", "-", "-", color.New(color.FgRed).Sprintf("❌ %v", network.Error)})
			continue
		}
		note := ""
		if network.Ephemeral {
			note = faintStyle.Sprint("ephemeral")
		}
		t.AppendRow(table.Row{marker, network.Name, Title(string(network.Type)), network.ChainID, network.Explorer, note})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// NetworkView is the JSON form of a network status
type NetworkView struct {
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	ChainID   uint64 `json:"chainId,omitempty"`
	Ephemeral bool   `json:"ephemeral"`
	Explorer  string `json:"explorer,omitempty"`
	Current   bool   `json:"current"`
	Error     string `json:"error,omitempty"`
}

// NetworkViews converts statuses for JSON output
func NetworkViews(result *usecase.ListNetworksResult) []NetworkView {
	views := make([]NetworkView, 0, len(result.Networks))
	for _, n := range result.Networks {
		view := NetworkView{
			Name:      n.Name,
			Type:      string(n.Type),
			ChainID:   n.ChainID,
			Ephemeral: n.Ephemeral,
			Explorer:  n.Explorer,
			Current:   n.Name == result.Current,
		}
		if n.Error != nil {
			view.Error = n.Error.Error()
		}
		views = append(views, view)
	}
	return views
}
