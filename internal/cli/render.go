package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tienda/internal/models"
	"tienda/internal/services"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#0EA5E9") // sky
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	okStyle       = lipgloss.NewStyle().Foreground(success)
	errStyle      = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	headStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	valueStyle    = lipgloss.NewStyle().Bold(true).Foreground(success)
	separatorLine = lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("─", 72))
)

func banner(title string) string {
	return bannerStyle.Render(title) + "\n"
}

func section(title string) string {
	return "\n" + sectionStyle.Render(title) + "\n"
}

func okLine(format string, args ...any) string {
	return "  " + okStyle.Render("✔") + " " + fmt.Sprintf(format, args...) + "\n"
}

func errLine(format string, args ...any) string {
	return "  " + errStyle.Render("✘") + " " + fmt.Sprintf(format, args...) + "\n"
}

func warnLine(format string, args ...any) string {
	return "  " + warnStyle.Render("!") + " " + fmt.Sprintf(format, args...) + "\n"
}

// renderProducts lays out products as an aligned table.
func renderProducts(products []*models.Product) string {
	if len(products) == 0 {
		return "  " + dimStyle.Render("no products") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s %s %s %s\n",
		headStyle.Render(padLeft("ID", 5)),
		headStyle.Render(padRight("Name", 32)),
		headStyle.Render(padRight("Category", 12)),
		headStyle.Render(padLeft("Price", 10)),
		headStyle.Render(padLeft("Stock", 6)),
	)
	b.WriteString("  " + separatorLine + "\n")
	for _, p := range products {
		stock := padLeft(fmt.Sprintf("%d", p.Stock()), 6)
		if p.Stock() == 0 {
			stock = errStyle.Render(stock)
		}
		fmt.Fprintf(&b, "  %s %s %s %s %s\n",
			dimStyle.Render(padLeft(fmt.Sprintf("%d", p.ID()), 5)),
			padRight(truncate(p.Name(), 32), 32),
			padRight(truncate(p.Category(), 12), 12),
			padLeft(formatMoney(p.Price()), 10),
			stock,
		)
	}
	return b.String()
}

// renderProduct shows every field of one product.
func renderProduct(p *models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %d\n", dimStyle.Render(padRight("ID", 12)), p.ID())
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("Name", 12)), p.Name())
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("Category", 12)), p.Category())
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("Price", 12)), formatMoney(p.Price()))
	fmt.Fprintf(&b, "  %s %d\n", dimStyle.Render(padRight("Stock", 12)), p.Stock())
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("Description", 12)), p.Description())
	return b.String()
}

func renderLowStock(products []*models.Product, threshold int) string {
	if len(products) == 0 {
		return okLine("no products under %d units", threshold)
	}
	var b strings.Builder
	for _, p := range products {
		b.WriteString(warnLine("%s - only %d units", p.Name(), p.Stock()))
	}
	return b.String()
}

func renderSummary(summary *services.InventorySummary) string {
	var b strings.Builder
	for _, c := range summary.Categories {
		fmt.Fprintf(&b, "  %s %s %s\n",
			padRight(c.Category, 14),
			dimStyle.Render(padLeft(fmt.Sprintf("%d products", c.Products), 12)),
			dimStyle.Render(padLeft(formatMoney(c.Value), 12)),
		)
	}
	b.WriteString("  " + separatorLine + "\n")
	fmt.Fprintf(&b, "  %s %d products, %d units\n", padRight("Total", 14), summary.Products, summary.Units)
	fmt.Fprintf(&b, "  %s %s\n", padRight("Value", 14), valueStyle.Render(formatMoney(summary.TotalValue)))
	return b.String()
}

func renderSale(sale *models.Sale) string {
	var b strings.Builder
	for _, item := range sale.Items {
		fmt.Fprintf(&b, "    %dx %s @ %s\n", item.Quantity, item.Name, formatMoney(item.UnitPrice))
	}
	fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render("total"), formatMoney(sale.Total))
	return b.String()
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
