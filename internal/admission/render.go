package admission

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// FontMeasurer measures text with the core Helvetica metrics used by the
// renderer. It is safe for concurrent use.
type FontMeasurer struct {
	mu  sync.Mutex
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewFontMeasurer returns a Measurer backed by fpdf font metrics.
func NewFontMeasurer() *FontMeasurer {
	pdf := fpdf.New("P", "pt", "A4", "")
	return &FontMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// TextWidth implements Measurer.
func (m *FontMeasurer) TextWidth(s string, font Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(fontFamily, string(font.Style), font.Size)
	return m.pdf.GetStringWidth(m.tr(s))
}

// RenderOptions carries document metadata.
type RenderOptions struct {
	Title string
	// CreatedAt is stamped into the PDF info dictionary so that equal
	// inputs render to equal bytes.
	CreatedAt time.Time
}

// Render draws pages into a single A4 PDF written to w.
func Render(pages []*Page, opts RenderOptions, w io.Writer) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(MarginLeft, MarginTop, MarginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(opts.CreatedAt)
	pdf.SetCreator("EAVI admissions", false)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	registered := make(map[string]bool)
	for _, page := range pages {
		pdf.AddPage()
		for _, el := range page.Elements {
			switch el.Kind {
			case TextElement:
				pdf.SetFont(fontFamily, string(el.Font.Style), el.Font.Size)
				pdf.Text(el.X, el.Y, tr(el.Text))
			case RuleElement:
				pdf.SetLineWidth(1)
				pdf.Line(el.X, el.Y, el.X+el.Width, el.Y)
			case ImageElement:
				if el.Image == nil {
					continue
				}
				opt := fpdf.ImageOptions{ImageType: "PNG"}
				if !registered[el.Image.Name] {
					pdf.RegisterImageOptionsReader(el.Image.Name, opt, bytes.NewReader(el.Image.Data))
					registered[el.Image.Name] = true
				}
				pdf.ImageOptions(el.Image.Name, el.X, el.Y, el.Width, el.Height, false, opt, 0, "")
			}
		}
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("render page %s: %w", page.Name, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
