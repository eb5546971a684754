package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/outing/internal/app"
	"github.com/alexanderramin/outing/internal/domain"
)

// FormatPlanResponse renders the plans, swap menu and notes of a response.
func FormatPlanResponse(resp *app.PlanResponse) string {
	var b strings.Builder
	currency := resp.Skeleton.Budget.Currency

	b.WriteString(Header("Your outing"))
	b.WriteString("\n")
	b.WriteString(skeletonSummary(resp.Skeleton))
	b.WriteString("\n\n")

	for _, w := range resp.Warnings {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}
	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
	}

	for _, p := range resp.Plans {
		b.WriteString(RenderBox(fmt.Sprintf("Plan %s · %s", p.ID, p.Title), formatPlanBody(p, currency)))
		b.WriteString("\n\n")
	}

	if len(resp.SwapMenu) > 0 {
		b.WriteString(Header("If things change"))
		b.WriteString("\n")
		for _, item := range resp.SwapMenu {
			b.WriteString(fmt.Sprintf("%s %s\n", StylePurple.Render(swapLabel(item.Tag)+":"), item.Instruction))
		}
		b.WriteString("\n")
	}

	if len(resp.Clusters) > 0 {
		b.WriteString(Dim(clusterSummary(resp.Clusters)))
		b.WriteString("\n")
	}
	b.WriteString(Dim(fmt.Sprintf("request %s · calls: search %d, details %d, route %d",
		resp.RequestID, resp.Calls.Search, resp.Calls.Details, resp.Calls.Route)))
	b.WriteString("\n")
	return b.String()
}

func formatPlanBody(p domain.Plan, currency string) string {
	rows := make([][]string, 0, len(p.Stops))
	for _, s := range p.Stops {
		travel := ""
		if s.TravelMin > 0 {
			travel = Dim("+" + FormatMinutes(s.TravelMin))
		}
		rows = append(rows, []string{
			StyleBlue.Render(s.Time),
			Bold(s.Label),
			StyleFg.Render(s.Venue.Name),
			Stars(s.Venue.Rating),
			PriceTier(s.Venue.PriceLevel),
			FormatCost(s.Cost, currency),
			travel,
			OpenCheckStyle(s.OpenCheck),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(
		[]string{"Time", "Stop", "Venue", "Rating", "Price", "Per person", "Travel", "Hours"},
		rows,
	))
	total := p.TotalCost()
	b.WriteString("\n")
	b.WriteString(StyleGreen.Render("Estimated per person: " + FormatCost(total, currency)))

	if len(p.Backups) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Dim("Backups"))
		for _, bk := range p.Backups {
			b.WriteString(fmt.Sprintf("\n  %s %s %s", StyleYellow.Render("•"), bk.Name, Dim("("+bk.Rationale+")")))
		}
	}
	return b.String()
}

func skeletonSummary(s domain.Skeleton) string {
	return fmt.Sprintf("%s  %s  %s",
		StylePurple.Render(string(s.Template)),
		StyleFg.Render(fmt.Sprintf("from %s for %s", s.WindowStart, FormatMinutes(s.WindowMinutes))),
		StyleGreen.Render(fmt.Sprintf("budget %s%.0f", currencySymbol(s.Budget.Currency), s.Budget.Amount)),
	)
}

func swapLabel(tag domain.SwapTag) string {
	switch tag {
	case domain.SwapRainMode:
		return "Rain"
	case domain.SwapBudgetLower:
		return "Tighter budget"
	case domain.SwapNoAlcohol:
		return "No alcohol"
	case domain.SwapMoreWalkable:
		return "Less walking"
	default:
		return string(tag)
	}
}

func clusterSummary(clusters []app.ClusterSummary) string {
	sizes := make([]string, len(clusters))
	for i, c := range clusters {
		sizes[i] = fmt.Sprintf("%d", len(c.Venues))
	}
	noun := "areas"
	if len(clusters) == 1 {
		noun = "area"
	}
	return fmt.Sprintf("%d walkable %s (venues per area: %s)", len(clusters), noun, strings.Join(sizes, ", "))
}

// FormatSkeleton renders a skeleton as a slot table.
func FormatSkeleton(s domain.Skeleton) string {
	var b strings.Builder
	b.WriteString(Header("Outing skeleton"))
	b.WriteString("\n")
	b.WriteString(skeletonSummary(s))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(s.Slots))
	for _, sl := range s.Slots {
		share := sl.BudgetPercent * s.Budget.Amount / 100
		rows = append(rows, []string{
			StyleBlue.Render(sl.StartTime),
			Bold(sl.Label),
			FormatMinutes(sl.DurationMin),
			fmt.Sprintf("%.0f%%", sl.BudgetPercent),
			fmt.Sprintf("%s%.0f", currencySymbol(s.Budget.Currency), share),
		})
	}
	b.WriteString(RenderTable([]string{"Start", "Slot", "Duration", "Share", "Budget"}, rows))
	return b.String()
}

// FormatDraftNotes renders how free text was read, for display before a plan.
func FormatDraftNotes(req domain.OutingRequest, warnings []string) string {
	var b strings.Builder
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}
	b.WriteString(Dim(fmt.Sprintf("Understood: %s%.0f in %s, %s–%s, party of %d",
		currencySymbol(req.Budget.Currency), req.Budget.Amount, req.City, req.StartTime, req.EndTime, req.PartySize)))
	b.WriteString("\n")
	return b.String()
}
