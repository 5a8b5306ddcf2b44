package render

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	addressStyle  = color.New(color.FgWhite, color.Bold)
	nameStyle     = color.New(color.FgCyan, color.Bold)
	amountStyle   = color.New(color.FgGreen)
	faintStyle    = color.New(color.Faint)
	headerStyle   = color.New(color.Bold, color.FgHiWhite)
	expectedStyle = color.New(color.FgYellow)
	titleCaser    = cases.Title(language.English)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon. Only the
// innermost cause of a wrapped chain is shown, capitalized.
func FormatError(message string) string {
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// Title capitalizes each word, e.g. "account 0" -> "Account 0"
func Title(s string) string {
	return titleCaser.String(s)
}

// Ether renders wei as "0.1 ETH"
func Ether(wei *big.Int) string {
	return domain.FormatEther(wei) + " ETH"
}

// Owner renders an owner address, or "(unregistered)" for the zero address
func Owner(addr common.Address) string {
	if addr == (common.Address{}) {
		return faintStyle.Sprint("(unregistered)")
	}
	return addressStyle.Sprint(addr.Hex())
}

// receiptLine renders "tx 0xabc… in block 3 (fee 0.0 ETH)"
func receiptLine(r *models.Receipt) string {
	if r == nil {
		return ""
	}
	line := faintStyle.Sprintf("tx %s in block %d (fee %s)", r.TxHash.Hex(), r.BlockNumber, Ether(r.Fee))
	if r.URL != "" {
		line += "\n" + faintStyle.Sprint(r.URL)
	}
	return line
}

// newTable returns a borderless go-pretty table writing to a string
func newTable(header ...interface{}) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box = table.BoxStyle{
		PaddingRight:     "   ",
		MiddleHorizontal: "─",
	}
	if len(header) > 0 {
		t.AppendHeader(table.Row(header))
	}
	return t
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}
