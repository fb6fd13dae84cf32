package admission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer gives every character half the font size.
type fixedMeasurer struct{}

func (fixedMeasurer) TextWidth(s string, font Font) float64 {
	return float64(len([]rune(s))) * font.Size * 0.5
}

func sampleInput() Input {
	reporting := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	return Input{
		Student: StudentInfo{Name: "Consolidation Test Student", AdmissionNumber: "VERIFY/2026/001"},
		Course: CourseInfo{
			Name:       "Diploma in Medical Laboratory Technology",
			Department: "Health Sciences",
			FeePerTerm: "25000.00",
			FeePerYear: "75000.00",
		},
		IssuedOn:      time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC),
		ReportingDate: &reporting,
	}
}

func assertFlowsDownward(t *testing.T, p *Page) {
	t.Helper()
	last := 0.0
	for _, e := range p.Elements {
		if e.Kind != TextElement {
			continue
		}
		require.GreaterOrEqual(t, e.Y, last, "text %q drawn above previous line", e.Text)
		require.Less(t, e.Y, PageHeight, "text %q below page bottom", e.Text)
		last = e.Y
	}
}

func TestBuildAdmissionLetter(t *testing.T) {
	p := BuildAdmissionLetter(fixedMeasurer{}, sampleInput())

	for _, want := range []string{
		"VERIFY/2026/001",
		"Date: 15/10/2026",
		"RE: ADMISSION LETTER",
		"CONSOLIDATION TEST STUDENT",
		"East Africa Vision Institute (EAVI).",
		"You have been admitted for the Diploma in ",
		"Diploma in Medical Laboratory Technology",
		"Monday, 12 January 2026",
		"Account No. 0470292838961",
		"Account No. 1115207350",
		"257557, Account Number: Consolidation Test Student",
		"We do not accept cash payments.",
		"TRIZAH JUMA",
		"R. B. Patel (B.Sc. Eng, M.Sc.)",
	} {
		assert.True(t, p.Contains(want), "admission letter missing %q", want)
	}
	assertFlowsDownward(t, p)
}

func TestBuildAdmissionLetter_Placeholders(t *testing.T) {
	in := Input{IssuedOn: time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)}
	p := BuildAdmissionLetter(fixedMeasurer{}, in)

	assert.True(t, p.Contains("EAVI/REF/2027"))
	assert.True(t, p.Contains(namePlaceholder))
	assert.True(t, p.Contains(coursePlaceholder))
	assert.True(t, p.Contains(admissionPlaceholder))
	assert.True(t, p.Contains(reportingPlaceholder))
	assert.True(t, p.Contains("the "+CourseTypeFallback+" in "))
	assert.True(t, p.Contains("Account Number: "+namePlaceholder))
}

func TestBuildAdmissionLetter_UnderlinesName(t *testing.T) {
	p := BuildAdmissionLetter(fixedMeasurer{}, sampleInput())

	var nameY float64
	for _, e := range p.Elements {
		if e.Kind == TextElement && e.Text == "CONSOLIDATION TEST STUDENT" {
			nameY = e.Y
		}
	}
	require.NotZero(t, nameY)

	var underline *Element
	for i, e := range p.Elements {
		if e.Kind == RuleElement && e.Y == nameY+2 {
			underline = &p.Elements[i]
		}
	}
	require.NotNil(t, underline)
	assert.InDelta(t, fixedMeasurer{}.TextWidth("CONSOLIDATION TEST STUDENT", bold12), underline.Width, 0.001)
}

func TestBuildBursaryLetter(t *testing.T) {
	p := BuildBursaryLetter(fixedMeasurer{}, sampleInput())

	for _, want := range []string{
		"THE CHAIRPERSON",
		"BURSARY COMMITTEE",
		"RE: BURSARY SUPPORT FOR,",
		"Adm. No. VERIFY/2026/001",
		"Enrolled for Diploma course in ",
		"KES 25000.00.",
		"KES 75000.00.",
		"MPESA: PAYBILL NO 257557, ACCOUNT NO Consolidation Test Student",
		"I believe you will consider her/his request.",
		"For College Principal",
	} {
		assert.True(t, p.Contains(want), "bursary letter missing %q", want)
	}
	assertFlowsDownward(t, p)
}

func TestBuildBursaryLetter_MissingFees(t *testing.T) {
	in := sampleInput()
	in.Course.FeePerTerm = ""
	in.Course.FeePerYear = ""

	p := BuildBursaryLetter(fixedMeasurer{}, in)

	assert.True(t, p.Contains("KES "+termFeePlaceholder+"."))
	assert.True(t, p.Contains("KES "+yearFeePlaceholder+"."))
}

func TestBuildBursaryLetter_MissingName(t *testing.T) {
	in := sampleInput()
	in.Student.Name = ""

	p := BuildBursaryLetter(fixedMeasurer{}, in)

	assert.True(t, p.Contains("ACCOUNT NO "+namePlaceholder))
}

func TestBuildRequirements(t *testing.T) {
	medical := BuildRequirements(fixedMeasurer{}, sampleInput())
	assert.True(t, medical.Contains("Uniforms & Clothing (Medical Students Only):"))
	assert.True(t, medical.Contains("• Scrubs: 2 pairs"))
	assert.True(t, medical.Contains("• Crocs: 2 pairs"))
	assert.True(t, medical.Contains("• Laptop or Tablet: For e-learning, research, and assignments"))
	assertFlowsDownward(t, medical)

	in := sampleInput()
	in.Course.Name = "Certificate in Accounting"
	in.Course.Department = "Business"
	plain := BuildRequirements(fixedMeasurer{}, in)
	assert.False(t, plain.Contains("Medical Students Only"))
	assert.True(t, plain.Contains("• KCSE Certificate or Results Slip: copy"))
	assert.True(t, plain.Contains("Academic & Stationery (All Students):"))
	assert.Less(t, len(plain.Elements), len(medical.Elements))
}

func TestLetterheadMovesCursor(t *testing.T) {
	in := sampleInput()
	in.Assets.Header = &Image{Name: "header", Width: 1000, Height: 200}
	in.Assets.Stamp = &Image{Name: "stamp", Width: 100, Height: 100}

	p := BuildRequirements(fixedMeasurer{}, in)

	require.Equal(t, ImageElement, p.Elements[0].Kind)
	headerHeight := (PageWidth - 40) * 0.2
	assert.InDelta(t, headerHeight, p.Elements[0].Height, 0.001)

	title := p.Elements[1]
	assert.Equal(t, "REQUIREMENTS", title.Text)
	assert.InDelta(t, headerHeight+30, title.Y, 0.001)

	stamp := p.Elements[len(p.Elements)-1]
	assert.Equal(t, ImageElement, stamp.Kind)
	assert.InDelta(t, 80, stamp.Width, 0.001)
	assert.InDelta(t, PageHeight-60-80, stamp.Y, 0.001)
}

func TestWrap(t *testing.T) {
	lines := wrap(fixedMeasurer{}, "aa bb cc dd", Font{Regular, 2}, 5)
	assert.Equal(t, []string{"aa bb", "cc dd"}, lines)
	assert.Nil(t, wrap(fixedMeasurer{}, "   ", regular11, 100))
}
