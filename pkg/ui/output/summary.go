package output

import (
	"bytes"
	_ "embed"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/arthur-debert/gpm/pkg/ui/output/styles"
)

//go:embed templates/summary.tmpl
var summaryTemplate string

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(summaryTemplate))

// tagPattern matches a single-line <Style>text</Style> span
var tagPattern = regexp.MustCompile(`<([A-Z][A-Za-z]*)>(.*?)</([A-Z][A-Za-z]*)>`)

// RenderSummary writes the end-of-run summary for r
func RenderSummary(w io.Writer, r types.RunResult) error {
	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, r); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render summary")
	}
	if _, err := io.WriteString(w, ExpandTags(buf.String())); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write summary")
	}
	return nil
}

// ExpandTags replaces known style tags with styled text. Unknown or
// mismatched tags are left untouched.
func ExpandTags(s string) string {
	return tagPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := tagPattern.FindStringSubmatch(m)
		if parts[1] != parts[3] || !styles.Has(parts[1]) {
			return m
		}
		return styles.Render(parts[1], parts[2])
	})
}
