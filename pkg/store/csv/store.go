package csv

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog"
)

var columnTypes = map[string]series.Type{
	dataset.ColCountry:     series.String,
	dataset.ColContinent:   series.String,
	dataset.ColBeverage:    series.String,
	dataset.ColStrength:    series.String,
	dataset.ColYear:        series.Int,
	dataset.ColConsumption: series.Float,
	dataset.ColAvgPrice:    series.Float,
}

var nanValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL"}

// candidate separators in tie-break order
var separators = []rune{',', ';', '\t', '|'}

type loader struct {
	path      string
	delimiter rune
}

// Factory builds a CSV loader. An empty delimiter is detected from the header line.
func Factory(cfg dataset.Config) (dataset.Loader, error) {
	delimiter, err := ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	return &loader{path: cfg.Path, delimiter: delimiter}, nil
}

func (l *loader) Load(ctx context.Context) (domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Dataset{}, fmt.Errorf("%w: %s", dataset.ErrNotFound, l.path)
		}
		return domain.Dataset{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delimiter := l.delimiter
	if delimiter == 0 {
		delimiter, err = DetectDelimiter(f)
		if err != nil {
			return domain.Dataset{}, err
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return domain.Dataset{}, fmt.Errorf("rewind csv: %w", err)
		}
	}

	ds, err := Read(f, delimiter)
	if err != nil {
		return domain.Dataset{}, err
	}

	logger.Info().
		Str("path", l.path).
		Str("delimiter", string(delimiter)).
		Int("records", ds.Len()).
		Msg("csv dataset loaded")
	return ds, nil
}

// Read parses a delimited table with a header row into a dataset.
func Read(r io.Reader, delimiter rune) (domain.Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(delimiter),
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return domain.Dataset{}, fmt.Errorf("parse csv: %w", df.Err)
	}
	return FromDataFrame(df)
}

// FromDataFrame converts a typed dataframe into domain records.
func FromDataFrame(df dataframe.DataFrame) (domain.Dataset, error) {
	if err := dataset.CheckColumns(df.Names()); err != nil {
		return domain.Dataset{}, err
	}

	countries := df.Col(dataset.ColCountry)
	continents := df.Col(dataset.ColContinent)
	beverages := df.Col(dataset.ColBeverage)
	strengths := df.Col(dataset.ColStrength)

	for _, required := range []series.Series{continents, beverages, strengths} {
		for row, missing := range required.IsNaN() {
			if missing {
				return domain.Dataset{}, dataset.InvalidRecord(row, required.Name)
			}
		}
	}

	years, err := df.Col(dataset.ColYear).Int()
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %s: %v", dataset.ErrInvalidRecord, dataset.ColYear, err)
	}

	country := countries.Records()
	countryNaN := countries.IsNaN()
	continent := continents.Records()
	beverage := beverages.Records()
	strength := strengths.Records()
	consumption := df.Col(dataset.ColConsumption).Float()
	price := df.Col(dataset.ColAvgPrice).Float()

	records := make([]domain.Record, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		rec := domain.Record{
			Country:     country[i],
			Continent:   continent[i],
			Beverage:    beverage[i],
			Strength:    strength[i],
			Year:        years[i],
			Consumption: consumption[i],
			AvgPrice:    price[i],
		}
		if countryNaN[i] {
			rec.Country = ""
		}
		records = append(records, rec)
	}
	return domain.NewDataset(records), nil
}

// DetectDelimiter picks the most frequent separator of the header line.
// Comma wins ties and is the fallback for an empty input.
func DetectDelimiter(r io.Reader) (rune, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, fmt.Errorf("read csv header: %w", err)
		}
		return ',', nil
	}

	header := scanner.Text()
	best, bestCount := ',', 0
	for _, sep := range separators {
		if n := strings.Count(header, string(sep)); n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best, nil
}

// ParseDelimiter accepts a single character or the names "tab", "comma",
// "semicolon" and "pipe". Empty means detect.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid csv delimiter %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
