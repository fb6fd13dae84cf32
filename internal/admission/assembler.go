package admission

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
)

func init() {
	// pdfcpu otherwise creates a configuration directory under the user's
	// home on first use.
	api.DisableConfigDir()
}

// CorePages is the number of generated pages that precede the fee structure.
const CorePages = 3

// FeeSource resolves a course's fee-structure filename to PDF bytes.
type FeeSource interface {
	OpenFeeStructure(ctx context.Context, filename string) ([]byte, error)
}

// Package is an assembled admission package.
type Package struct {
	Data        []byte
	Pages       int
	FeeAppended bool
}

// Assembler builds the three generated pages and appends the course's
// fee-structure document when one can be read.
type Assembler struct {
	measurer Measurer
	fees     FeeSource
	log      zerolog.Logger
}

// NewAssembler creates an Assembler. fees may be nil, in which case no
// fee structure is ever appended.
func NewAssembler(measurer Measurer, fees FeeSource, log zerolog.Logger) *Assembler {
	return &Assembler{measurer: measurer, fees: fees, log: log}
}

// Assemble lays out and renders the package. Failures in the generated
// pages abort; any failure to append the fee structure is logged and the
// three-page package is returned instead.
func (a *Assembler) Assemble(ctx context.Context, in Input) (*Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages := []*Page{
		BuildAdmissionLetter(a.measurer, in),
		BuildBursaryLetter(a.measurer, in),
		BuildRequirements(a.measurer, in),
	}

	var core bytes.Buffer
	opts := RenderOptions{
		Title:     "Admission package " + in.Student.AdmissionNumber,
		CreatedAt: in.IssuedOn,
	}
	if err := Render(pages, opts, &core); err != nil {
		return nil, fmt.Errorf("render admission pages: %w", err)
	}

	pkg := &Package{Data: core.Bytes(), Pages: CorePages}
	if in.Course.FeeStructureFile == "" || a.fees == nil {
		return pkg, nil
	}

	log := a.log.With().
		Str("admission_number", in.Student.AdmissionNumber).
		Str("fee_structure", in.Course.FeeStructureFile).
		Logger()

	fee, err := a.fees.OpenFeeStructure(ctx, in.Course.FeeStructureFile)
	if err != nil {
		log.Warn().Err(err).Msg("Fee structure unavailable, issuing package without it")
		return pkg, nil
	}

	merged, feePages, err := appendPDF(pkg.Data, fee)
	if err != nil {
		log.Warn().Err(err).Msg("Fee structure could not be appended, issuing package without it")
		return pkg, nil
	}

	log.Debug().Int("fee_pages", feePages).Msg("Fee structure appended")
	return &Package{Data: merged, Pages: CorePages + feePages, FeeAppended: true}, nil
}

func pdfConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// appendPDF concatenates fee after core, keeping the fee pages unchanged.
func appendPDF(core, fee []byte) ([]byte, int, error) {
	feePages, err := api.PageCount(bytes.NewReader(fee), pdfConfig())
	if err != nil {
		return nil, 0, fmt.Errorf("read fee structure: %w", err)
	}
	if feePages == 0 {
		return nil, 0, fmt.Errorf("fee structure has no pages")
	}

	var out bytes.Buffer
	sources := []io.ReadSeeker{bytes.NewReader(core), bytes.NewReader(fee)}
	if err := api.MergeRaw(sources, &out, false, pdfConfig()); err != nil {
		return nil, 0, fmt.Errorf("merge fee structure: %w", err)
	}
	return out.Bytes(), feePages, nil
}

// PageCount returns the number of pages in a PDF.
func PageCount(data []byte) (int, error) {
	return api.PageCount(bytes.NewReader(data), pdfConfig())
}
