package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/de-tools/consumption-atlas/pkg/store/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvData = `Country,Continent,Beverage,Alcohol_Strength,Year,Consumption_Liters_Per_Capita,Avg_Price_Per_Liter
France,Europe,Beer,Low,2020,2.0,3.0
Germany,Europe,Beer,Low,2020,3.0,2.0
Japan,Asia,Spirits,High,2020,1.0,20.0
France,Europe,Beer,Low,2021,2.5,3.2
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "consumption.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{
		Registry:  sources.NewRegistry(),
		Output:    &out,
		LogOutput: &bytes.Buffer{},
		Args:      args,
	})
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_Summary(t *testing.T) {
	// Given
	path := writeDataset(t)

	// When
	out, err := run(t, "summary", "--dataset", path, "--continent", "Europe", "--beverage", "Beer", "--year", "2020")

	// Then
	require.NoError(t, err)
	assert.Contains(t, out, "Global Alcohol Consumption")
	assert.Contains(t, out, "Total consumption (l/capita): 5.00")
	assert.Contains(t, out, "Unique countries: 2")
	assert.Contains(t, out, "Average consumption by beverage in 2020")
}

func TestCLI_SummaryTextFormatWithNoBeverages(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "summary", "--dataset", path, "--beverage=", "--format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "no beverages")
	assert.Contains(t, out, "Total consumption (l/capita): N/A")
	assert.Contains(t, out, "Status: No data for the selected filters")
}

func TestCLI_SummaryUnknownFormat(t *testing.T) {
	path := writeDataset(t)

	_, err := run(t, "summary", "--dataset", path, "--format", "xml")

	assert.Error(t, err)
}

func TestCLI_SummaryInvalidYear(t *testing.T) {
	path := writeDataset(t)

	_, err := run(t, "summary", "--dataset", path, "--year", "1990")

	assert.Error(t, err)
}

func TestCLI_MissingDataset(t *testing.T) {
	_, err := run(t, "options", "--dataset", filepath.Join(t.TempDir(), "absent.csv"))

	assert.ErrorIs(t, err, dataset.ErrNotFound)
}

func TestCLI_Options(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "options", "--dataset", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Continents: Asia, Europe")
	assert.Contains(t, out, "Beverages:  Beer, Spirits")
	assert.Contains(t, out, "Strengths:  All_Strengths, High, Low")
	assert.Contains(t, out, "Years:      2020, 2021 (2020-2021)")
}

func TestCLI_Render(t *testing.T) {
	// Given
	path := writeDataset(t)
	outDir := filepath.Join(t.TempDir(), "charts")

	// When
	out, err := run(t, "render", "--dataset", path, "--out", outDir, "--width", "400", "--height", "300")

	// Then
	require.NoError(t, err)
	for _, name := range []string{"bar", "pie", "scatter", "line"} {
		file := filepath.Join(outDir, name+".png")
		assert.Contains(t, out, file)
		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), name)
	}
}

func TestCLI_RenderUnknownFigure(t *testing.T) {
	path := writeDataset(t)

	_, err := run(t, "render", "--dataset", path, "--out", t.TempDir(), "--figure", "histogram")

	assert.Error(t, err)
}

func TestCLI_ImportThenReadFromDuckDB(t *testing.T) {
	// Given
	path := writeDataset(t)
	dbPath := filepath.Join(t.TempDir(), "atlas.duckdb")

	// When
	out, err := run(t, "import", "--dataset", path, "--db", dbPath)
	require.NoError(t, err)
	summary, err := run(t, "summary", "--dataset", dbPath, "--continent", "Europe", "--beverage", "Beer", "--year", "2020")

	// Then
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 4 records (2020-2021)")
	assert.Contains(t, summary, "Total consumption (l/capita): 5.00")
}

func TestCLI_SummaryYAML(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "summary", "--dataset", path, "--continent", "Asia", "--year", "2020", "--format", "yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "title: Global Alcohol Consumption")
	assert.Contains(t, out, "continent: Asia")
	assert.Contains(t, out, "Total consumption (l/capita): \"1.00\"")
}

func TestCLI_RenderRepeatedFigureWrittenOnce(t *testing.T) {
	// Given
	path := writeDataset(t)
	outDir := t.TempDir()

	// When
	out, err := run(t, "render", "--dataset", path, "--out", outDir, "--figure", "bar,pie,bar")

	// Then
	require.NoError(t, err)
	barPath := filepath.Join(outDir, "bar.png")
	assert.Equal(t, 1, strings.Count(out, barPath))
	assert.Contains(t, out, filepath.Join(outDir, "pie.png"))
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
