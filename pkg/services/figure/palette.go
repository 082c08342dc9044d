package figure

// Qualitative palettes for categorical color assignment.
var (
	pastel = []string{
		"#66C5CC", "#F6CF71", "#F89C74", "#DCB0F2", "#87C55F", "#9EB9F3",
		"#FE88B1", "#C9DB74", "#8BE0A4", "#B497E7", "#B3B3B3",
	}
	pastel1 = []string{
		"#FBB4AE", "#B3CDE3", "#CCEBC5", "#DECBE4", "#FED9A6",
		"#FFFFCC", "#E5D8BD", "#FDDAEC", "#F2F2F2",
	}
	set2 = []string{
		"#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3",
		"#A6D854", "#FFD92F", "#E5C494", "#B3B3B3",
	}
)

const (
	lineColor    = "#007BFF"
	emptyColor   = "#888888"
	emptyFont    = 16
	pieHole      = 0.4
	piePull      = 0.03
	noDataText   = "No data for the selected filters"
	noDataSuffix = " (no data)"
)

func colorAt(palette []string, i int) string {
	return palette[i%len(palette)]
}
