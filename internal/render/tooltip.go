package render

import (
	"fmt"
	"html"

	"github.com/dustin/go-humanize"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

// Tooltip fragments are small HTML snippets placed in a data-tooltip attribute
// and shown in the page's single shared tooltip element. Any data-derived text
// is escaped before it is composed into markup.

func trackTooltip(h domain.Hurricane) string {
	return fmt.Sprintf("<strong>%s</strong><br>Year: %d<br>Category: %s<br>Max Wind: %d knots",
		html.EscapeString(h.Name), h.Year, h.Category, h.MaxWind)
}

func timelineTooltip(year, count int, metric domain.Metric) string {
	label := "Hurricanes"
	if metric == domain.MetricMajor {
		label = "Major hurricanes"
	}
	return fmt.Sprintf("Year: %d<br>%s: %s", year, label, humanize.Comma(int64(count)))
}

func categoryTooltip(c domain.Category, count int, selected bool, mode CategoryMode) string {
	base := fmt.Sprintf("Category: %s<br>Count: %s", c, humanize.Comma(int64(count)))
	if mode != CategoryToggle {
		return base
	}
	action := "show"
	if selected {
		action = "hide"
	}
	return base + "<br><em>Click to " + action + "</em>"
}
