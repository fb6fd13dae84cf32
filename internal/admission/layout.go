package admission

import (
	"strings"
)

// A4 portrait page geometry in points.
const (
	PageWidth   = 595.28
	PageHeight  = 841.89
	MarginLeft  = 60.0
	MarginRight = 60.0
	MarginTop   = 40.0
	LineHeight  = 16.0
)

// FontStyle selects a face of the Helvetica family.
type FontStyle string

const (
	Regular FontStyle = ""
	Bold    FontStyle = "B"
	Italic  FontStyle = "I"
)

// Font is a style and point size.
type Font struct {
	Style FontStyle
	Size  float64
}

var (
	regular11 = Font{Regular, 11}
	italic11  = Font{Italic, 11}
	bold11    = Font{Bold, 11}
	bold12    = Font{Bold, 12}
	bold13    = Font{Bold, 13}
	bold14    = Font{Bold, 14}
	bold18    = Font{Bold, 18}
	small9    = Font{Regular, 9}
)

// Measurer reports the rendered width of text.
type Measurer interface {
	TextWidth(s string, font Font) float64
}

// ElementKind tells the renderer how to draw an Element.
type ElementKind int

const (
	TextElement ElementKind = iota
	RuleElement
	ImageElement
)

// Element is one positioned drawing instruction. Coordinates have their
// origin at the top-left corner; text Y is the baseline.
type Element struct {
	Kind ElementKind
	X    float64
	Y    float64
	Text string
	Font Font
	// Width and Height size images; Width is also the length of a rule.
	Width  float64
	Height float64
	Image  *Image
}

// Page is the laid-out content of one document page.
type Page struct {
	Name     string
	Elements []Element
}

// Texts returns the page's text runs in drawing order.
func (p *Page) Texts() []string {
	var out []string
	for _, e := range p.Elements {
		if e.Kind == TextElement {
			out = append(out, e.Text)
		}
	}
	return out
}

// Text joins the page's text runs with single spaces, so wrapped
// paragraphs read as continuous text.
func (p *Page) Text() string {
	return strings.Join(p.Texts(), " ")
}

// Contains reports whether the page text contains s.
func (p *Page) Contains(s string) bool {
	return strings.Contains(p.Text(), s)
}

// flow appends elements top to bottom, advancing a vertical cursor.
type flow struct {
	page *Page
	m    Measurer
	y    float64
}

func newFlow(m Measurer, name string) *flow {
	return &flow{page: &Page{Name: name}, m: m, y: MarginTop + LineHeight}
}

func (f *flow) advance(dy float64) {
	f.y += dy
}

// text draws s at x on the current line and returns the x where it ends.
func (f *flow) text(x float64, s string, font Font) float64 {
	f.page.Elements = append(f.page.Elements, Element{Kind: TextElement, X: x, Y: f.y, Text: s, Font: font})
	return x + f.m.TextWidth(s, font)
}

// underlined draws s with a rule two points below the baseline.
func (f *flow) underlined(x float64, s string, font Font) float64 {
	end := f.text(x, s, font)
	f.rule(x, end-x)
	return end
}

func (f *flow) rule(x, width float64) {
	f.page.Elements = append(f.page.Elements, Element{Kind: RuleElement, X: x, Y: f.y + 2, Width: width})
}

// centered draws s horizontally centred on the page.
func (f *flow) centered(s string, font Font) {
	f.text((PageWidth-f.m.TextWidth(s, font))/2, s, font)
}

// paragraph wraps s to the printable width starting at x. The cursor is
// left on the baseline of the last line.
func (f *flow) paragraph(x float64, s string, font Font, lineHeight float64) {
	lines := wrap(f.m, s, font, PageWidth-MarginRight-x)
	for i, line := range lines {
		if i > 0 {
			f.advance(lineHeight)
		}
		f.text(x, line, font)
	}
}

// bullets draws one indented item per line and moves below the last one.
func (f *flow) bullets(items []string, font Font, lineHeight float64) {
	for _, item := range items {
		f.text(MarginLeft+15, "• "+item, font)
		f.advance(lineHeight)
	}
}

func (f *flow) image(img *Image, x, y, w, h float64) {
	f.page.Elements = append(f.page.Elements, Element{Kind: ImageElement, X: x, Y: y, Width: w, Height: h, Image: img})
}

// letterhead draws the header image across the top of the page and moves
// the cursor below it.
func (f *flow) letterhead(img *Image) {
	if img == nil || img.Width == 0 {
		return
	}
	w := PageWidth - 40
	h := float64(img.Height) / float64(img.Width) * w
	f.image(img, 20, 10, w, h)
	f.y = h + 30
}

// stamp places the stamp image at the right edge, bottom points above the
// page bottom.
func (f *flow) stamp(img *Image, bottom float64) {
	if img == nil || img.Width == 0 {
		return
	}
	w := float64(img.Width) * 0.8
	if w > 150 {
		w = 150
	}
	h := float64(img.Height) / float64(img.Width) * w
	f.image(img, PageWidth-w-40, PageHeight-bottom-h, w, h)
}

// wrap splits s into lines no wider than width. A single word wider than
// the line is kept whole.
func wrap(m Measurer, s string, font Font, width float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if m.TextWidth(candidate, font) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
