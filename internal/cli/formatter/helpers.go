package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// FormatMinutes renders minutes as "1h 30m", "2h" or "45m".
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// FormatCost renders a per-person cost range such as "€18–27".
func FormatCost(c domain.CostRange, currency string) string {
	sym := currencySymbol(currency)
	if c.Low == c.High {
		return fmt.Sprintf("%s%d", sym, c.Low)
	}
	return fmt.Sprintf("%s%d–%d", sym, c.Low, c.High)
}

func currencySymbol(code string) string {
	switch strings.ToUpper(code) {
	case "", "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	default:
		return strings.ToUpper(code) + " "
	}
}

// Stars renders a 0–5 rating as "★ 4.6", or a dim dash when unknown.
func Stars(r *float64) string {
	if r == nil {
		return Dim("–")
	}
	return StyleYellow.Render(fmt.Sprintf("★ %.1f", *r))
}

// PriceTier renders a price level 0–4 as "€€", dim when unknown.
func PriceTier(level *int) string {
	if level == nil {
		return Dim("?")
	}
	if *level == 0 {
		return StyleGreen.Render("free")
	}
	return StyleFg.Render(strings.Repeat("€", *level))
}
