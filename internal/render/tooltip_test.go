package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

func TestTrackTooltip(t *testing.T) {
	h := domain.Hurricane{Name: "KATRINA", Year: 2005, Category: domain.Cat5, MaxWind: 150}
	assert.Equal(t,
		"<strong>KATRINA</strong><br>Year: 2005<br>Category: Cat5<br>Max Wind: 150 knots",
		trackTooltip(h))
}

func TestTrackTooltip_EscapesName(t *testing.T) {
	h := domain.Hurricane{Name: `<img src=x onerror="alert(1)">`, Year: 2005, Category: domain.TS}
	got := trackTooltip(h)
	assert.NotContains(t, got, "<img")
	assert.Contains(t, got, "&lt;img")
}

func TestTimelineTooltip(t *testing.T) {
	assert.Equal(t, "Year: 1992<br>Hurricanes: 7", timelineTooltip(1992, 7, domain.MetricTotal))
	assert.Equal(t, "Year: 1992<br>Major hurricanes: 1,204", timelineTooltip(1992, 1204, domain.MetricMajor))
}

func TestCategoryTooltip(t *testing.T) {
	assert.Equal(t, "Category: Cat3<br>Count: 12", categoryTooltip(domain.Cat3, 12, true, CategoryCheckbox))
	assert.Equal(t, "Category: Cat3<br>Count: 12<br><em>Click to hide</em>", categoryTooltip(domain.Cat3, 12, true, CategoryToggle))
	assert.Equal(t, "Category: TD<br>Count: 0<br><em>Click to show</em>", categoryTooltip(domain.TD, 0, false, CategoryToggle))
}

func TestPalette_MergeAndLegend(t *testing.T) {
	base := DefaultPalette()
	merged := base.Merge(map[domain.Category]string{domain.TD: "#000000", domain.TS: "  "})

	assert.Equal(t, "#000000", merged.Color(domain.TD))
	assert.Equal(t, base.Color(domain.TS), merged.Color(domain.TS))
	assert.Equal(t, "#1b4f72", base.Color(domain.TD), "merge must not mutate the receiver")
	assert.Equal(t, colorUnselected, Palette{}.Color(domain.Cat1))

	legend := merged.Legend()
	assert.Len(t, legend, domain.CategoryCount)
	assert.Equal(t, LegendItem{Label: "TD", Color: "#000000"}, legend[0])
}
