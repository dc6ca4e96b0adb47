package report

import (
	"embed"
	"html/template"
	"os"
	"time"

	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
	"github.com/NoelNavall/secure-code-review-automation/internal/types"
)

//go:embed template.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "template.html"))

// HTMLOptions controls report rendering.
type HTMLOptions struct {
	// ContextLines is how many lines of file context to show around each
	// finding line.
	ContextLines int
	// ItemsPerPage is the client-side pagination size.
	ItemsPerPage int
}

// findingView is one finding prepared for the template: an index for display,
// the resolved code context, and the finding itself.
type findingView struct {
	Index   int
	Context string
	finding.Finding
}

// htmlData is the root template payload.
type htmlData struct {
	GeneratedAt  string
	Summary      finding.Summary
	Total        int
	ItemsPerPage int
	Findings     []findingView
}

// WriteHTML renders the self-contained HTML report to path. The page needs no
// server: severity filtering and pagination run client-side over the same
// ordered finding array the JSON report carries.
func WriteHTML(path string, now time.Time, findings []finding.Finding, opts HTMLOptions) error {
	if opts.ItemsPerPage <= 0 {
		opts.ItemsPerPage = 20
	}

	views := make([]findingView, 0, len(findings))
	for i, f := range findings {
		ctx, err := CodeContext(f.File, f.Line, opts.ContextLines)
		if err != nil {
			// Fall back to whatever snippet the tool reported.
			ctx = f.Code
		}
		views = append(views, findingView{
			Index:   i + 1,
			Context: ctx,
			Finding: f,
		})
	}

	data := htmlData{
		GeneratedAt:  now.Format("2006-01-02 15:04:05"),
		Summary:      finding.Summarize(findings),
		Total:        len(findings),
		ItemsPerPage: opts.ItemsPerPage,
		Findings:     views,
	}

	f, err := os.Create(path)
	if err != nil {
		return types.WrapError(types.REPORT_WRITE_FAILED, "failed to create HTML report", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return types.WrapError(types.REPORT_RENDER_FAILED, "failed to render HTML report", err)
	}

	return nil
}
