package admission

import (
	"fmt"
	"strings"
)

// BuildAdmissionLetter lays out page 1 of the package.
func BuildAdmissionLetter(m Measurer, in Input) *Page {
	inst := in.Institution.withDefaults()
	f := newFlow(m, "admission-letter")
	f.letterhead(in.Assets.Header)

	f.referenceLine(in)
	f.advance(40)

	f.text(MarginLeft, "Dear Sir/Madam,", bold12)
	f.advance(30)

	f.underlined(MarginLeft, "RE: ADMISSION LETTER", bold14)
	f.advance(40)

	f.nameLine(in.Student.Name)
	f.advance(35)

	f.paragraph(MarginLeft, fmt.Sprintf(
		"Congratulations! We are pleased to inform you that, with the approval of the Board of Directors, you have been admitted as a student of %s.",
		inst.FullName()), regular11, 15)
	f.advance(30)

	x := f.text(MarginLeft, fmt.Sprintf("You have been admitted for the %s in ", CourseType(in.Course.Name)), regular11)
	f.underlined(x, orPlaceholder(in.Course.Name, coursePlaceholder), bold11)
	f.advance(20)

	x = f.text(MarginLeft, "with Admission Number: ", regular11)
	f.underlined(x, orPlaceholder(in.Student.AdmissionNumber, admissionPlaceholder), bold11)
	f.advance(35)

	f.text(MarginLeft, "You are required to report to the Institute on:", regular11)
	f.advance(20)
	f.text(MarginLeft, in.reportingDate(), bold11)
	f.advance(35)

	x = f.text(MarginLeft, "Note:", bold11)
	f.text(x, " You are required to report to the college immediately.", italic11)
	f.advance(50)

	f.text(MarginLeft, "Fee Payment Details", bold13)
	f.advance(25)
	f.text(MarginLeft, inst.Name, bold11)
	f.advance(20)
	x = f.text(MarginLeft, "Equity Bank:", bold11)
	f.text(x, " Account No. "+inst.EquityAccount, regular11)
	f.advance(15)
	x = f.text(MarginLeft, "KCB Bank:", bold11)
	f.text(x, " Account No. "+inst.KCBAccount, regular11)
	f.advance(15)
	x = f.text(MarginLeft, "M-PESA Paybill:", bold11)
	f.text(x, fmt.Sprintf(" %s, Account Number: %s", inst.Paybill, orPlaceholder(in.Student.Name, namePlaceholder)), regular11)
	f.advance(30)

	x = f.text(MarginLeft, "Note:", bold11)
	f.paragraph(x+m.TextWidth(" ", regular11), "We do not accept cash payments. All fees must be deposited in the above accounts only.", regular11, 15)
	f.advance(50)

	f.text(MarginLeft, "Yours faithfully,", regular11)
	f.advance(30)
	f.text(MarginLeft, inst.Signatory, bold12)
	f.advance(18)
	f.text(MarginLeft, "For Directors:", regular11)
	f.advance(25)
	for i, director := range inst.Directors {
		if i > 0 {
			f.advance(12)
		}
		f.text(MarginLeft, director, small9)
	}

	f.stamp(in.Assets.Stamp, 100)
	return f.page
}

// referenceLine draws "Our Ref" on the left and the letter date on the right.
func (f *flow) referenceLine(in Input) {
	x := f.text(MarginLeft, "Our Ref:", bold11)
	f.text(x, " "+in.reference(), regular11)
	f.text(PageWidth-150, "Date: "+in.letterDate(), regular11)
}

// nameLine draws the upper-cased student name, underlined when present.
func (f *flow) nameLine(name string) {
	x := f.text(MarginLeft, "Name:", bold12)
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		f.text(x, " "+namePlaceholder, bold12)
		return
	}
	x = f.text(x, " ", bold12)
	f.underlined(x, upper, bold12)
}
