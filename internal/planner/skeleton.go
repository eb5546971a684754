package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/outing/internal/domain"
)

const minutesPerDay = 24 * 60

// Template selection thresholds.
const (
	budgetCeiling     = 80.0
	fancyFloor        = 250.0
	lateStartMin      = 20 * 60
	afternoonStartMin = 14 * 60
	afternoonEndMin   = 18 * 60
	shortWindowMin    = 180
)

// ParseClock parses "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("time %q must be HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("time %q has invalid hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q has invalid minute", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes after midnight as "HH:MM", wrapping past midnight.
func FormatClock(min int) string {
	min = ((min % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// WindowMinutes returns the length of the start..end window, wrapping past
// midnight. A zero-length window is read as a full day.
func WindowMinutes(startMin, endMin int) int {
	w := ((endMin-startMin)%minutesPerDay + minutesPerDay) % minutesPerDay
	if w == 0 {
		return minutesPerDay
	}
	return w
}

// SelectTemplate applies the template rules in order; the first match wins.
func SelectTemplate(amount float64, startMin, endMin int) domain.TemplateName {
	window := WindowMinutes(startMin, endMin)
	switch {
	case amount < budgetCeiling:
		return domain.TemplateBudget
	case amount > fancyFloor:
		return domain.TemplateFancy
	case startMin >= lateStartMin:
		return domain.TemplateLateStart
	case startMin >= afternoonStartMin && endMin <= afternoonEndMin && endMin > startMin:
		return domain.TemplateAfternoon
	case window < shortWindowMin:
		return domain.TemplateShort
	default:
		return domain.TemplateDefault
	}
}

// BuildSkeleton turns a budget and a time window into a time/budget
// template. Times are assumed to be well-formed "HH:MM"; callers validate
// before invoking. It never fails and always returns at least one slot.
func BuildSkeleton(budget domain.Budget, start, end string, tables Tables) domain.Skeleton {
	startMin, _ := ParseClock(start)
	endMin, _ := ParseClock(end)
	window := WindowMinutes(startMin, endMin)

	name := SelectTemplate(budget.Amount, startMin, endMin)
	tmpl := tables.Templates[name]
	if len(tmpl) == 0 {
		name = domain.TemplateDefault
		tmpl = DefaultTables().Templates[name]
	}

	var durations []int
	if name == domain.TemplateShort && len(tmpl) == 2 {
		durations = splitShortWindow(window)
	} else {
		durations = rescaleDurations(tmpl, window)
	}

	slots := make([]domain.Slot, len(tmpl))
	cursor := startMin
	for i, st := range tmpl {
		slots[i] = domain.Slot{
			Label:         st.Label,
			Category:      st.Category,
			BudgetPercent: st.Percent,
			DurationMin:   durations[i],
			StartTime:     FormatClock(cursor),
		}
		cursor += durations[i] + travelBufferMin
	}

	return domain.Skeleton{
		Template:      name,
		Budget:        budget,
		WindowStart:   FormatClock(startMin),
		WindowMinutes: window,
		Slots:         slots,
	}
}

func splitShortWindow(window int) []int {
	first := int(math.Round(float64(window) * 0.4))
	return []int{first, window - first}
}

// rescaleDurations scales nominal durations linearly so they sum to window.
func rescaleDurations(tmpl []SlotTemplate, window int) []int {
	nominal := 0
	for _, st := range tmpl {
		nominal += st.NominalMin
	}
	out := make([]int, len(tmpl))
	if nominal <= 0 {
		even := window / len(tmpl)
		for i := range out {
			out[i] = even
		}
		return out
	}
	scale := float64(window) / float64(nominal)
	for i, st := range tmpl {
		out[i] = int(math.Round(float64(st.NominalMin) * scale))
	}
	return out
}

// BudgetForSlot returns the rounded budget of the first slot of the given
// category, or 0 when the skeleton has no such slot.
func BudgetForSlot(s domain.Skeleton, c domain.Category) int {
	for _, sl := range s.Slots {
		if sl.Category == c {
			return int(math.Round(s.Budget.Amount * sl.BudgetPercent / 100))
		}
	}
	return 0
}

// ValidateSkeleton reports whether the slot budget shares sum to 95..105%.
func ValidateSkeleton(s domain.Skeleton) bool {
	total := s.TotalPercent()
	return total >= 95 && total <= 105
}
