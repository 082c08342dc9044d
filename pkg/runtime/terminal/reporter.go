package terminal

import (
	"io"
	"os"
	"text/template"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
)

var textReport = template.Must(template.New("report").Parse(`
{{.Title}}
Filter: {{with .Filter.Continent}}{{.}}{{else}}all continents{{end}} / {{range $i, $b := .Filter.Beverages}}{{if $i}}, {{end}}{{$b}}{{else}}no beverages{{end}} / {{.Filter.Strength}} / {{.Filter.Year}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}{{range .Details}}- {{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}{{if .Description}} ({{.Description}}){{end}}
{{end}}{{end}}`))

// Reporter prints a dashboard report as plain lines, one section after another.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

func (r *Reporter) Handle(report *domain.Report) error {
	return textReport.Execute(r.out, report)
}
