package admission

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapFeeSource map[string][]byte

func (m mapFeeSource) OpenFeeStructure(_ context.Context, filename string) ([]byte, error) {
	data, ok := m[filename]
	if !ok {
		return nil, fmt.Errorf("%s: %w", filename, os.ErrNotExist)
	}
	return data, nil
}

// feePDF renders a k-page document standing in for an uploaded fee structure.
func feePDF(t *testing.T, k int) []byte {
	t.Helper()
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 1; i <= k; i++ {
		pdf.AddPage()
		pdf.Text(60, 80, fmt.Sprintf("Fee structure page %d", i))
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func newTestAssembler(fees FeeSource) *Assembler {
	return NewAssembler(NewFontMeasurer(), fees, zerolog.Nop())
}

func TestAssemble_AppendsFeeStructure(t *testing.T) {
	const k = 2
	in := sampleInput()
	in.Course.FeeStructureFile = "medical_lab.pdf"

	a := newTestAssembler(mapFeeSource{"medical_lab.pdf": feePDF(t, k)})
	pkg, err := a.Assemble(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, pkg.FeeAppended)
	assert.Equal(t, CorePages+k, pkg.Pages)

	n, err := PageCount(pkg.Data)
	require.NoError(t, err)
	assert.Equal(t, CorePages+k, n)
}

func TestAssemble_DegradesWithoutFeeStructure(t *testing.T) {
	tests := []struct {
		name string
		file string
		fees FeeSource
	}{
		{name: "no reference", file: "", fees: mapFeeSource{}},
		{name: "missing file", file: "gone.pdf", fees: mapFeeSource{}},
		{name: "corrupt file", file: "broken.pdf", fees: mapFeeSource{"broken.pdf": []byte("%PDF-1.4 not really")}},
		{name: "no source", file: "medical_lab.pdf", fees: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput()
			in.Course.FeeStructureFile = tt.file

			pkg, err := newTestAssembler(tt.fees).Assemble(context.Background(), in)
			require.NoError(t, err)
			assert.False(t, pkg.FeeAppended)

			n, err := PageCount(pkg.Data)
			require.NoError(t, err)
			assert.Equal(t, CorePages, n)
		})
	}
}

func TestAssemble_SameInputSameBytes(t *testing.T) {
	a := newTestAssembler(nil)

	first, err := a.Assemble(context.Background(), sampleInput())
	require.NoError(t, err)
	second, err := a.Assemble(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first.Data, second.Data))
}

func TestAssemble_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAssembler(nil).Assemble(ctx, sampleInput())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAssemble_WithImages(t *testing.T) {
	dir := t.TempDir()
	header := imaging.New(2400, 400, color.NRGBA{R: 20, G: 60, B: 120, A: 255})
	stamp := imaging.New(200, 200, color.NRGBA{R: 200, A: 255})
	require.NoError(t, imaging.Save(header, filepath.Join(dir, headerFile)))
	require.NoError(t, imaging.Save(stamp, filepath.Join(dir, stampFile)))

	assets := LoadAssets(dir, zerolog.Nop())
	require.NotNil(t, assets.Header)
	require.NotNil(t, assets.Stamp)
	assert.Equal(t, maxHeaderWidth, assets.Header.Width)
	assert.Equal(t, 200, assets.Header.Height)

	decoded, _, err := image.Decode(bytes.NewReader(assets.Stamp.Data))
	require.NoError(t, err)
	assert.Equal(t, 200, decoded.Bounds().Dx())

	in := sampleInput()
	in.Assets = assets
	pkg, err := newTestAssembler(nil).Assemble(context.Background(), in)
	require.NoError(t, err)

	n, err := PageCount(pkg.Data)
	require.NoError(t, err)
	assert.Equal(t, CorePages, n)
}

func TestLoadAssets_MissingImages(t *testing.T) {
	assets := LoadAssets(t.TempDir(), zerolog.Nop())
	assert.Nil(t, assets.Header)
	assert.Nil(t, assets.Stamp)
}
