package admission

import "fmt"

// BuildBursaryLetter lays out page 2, a letter asking a bursary committee
// to support the student's fees.
func BuildBursaryLetter(m Measurer, in Input) *Page {
	inst := in.Institution.withDefaults()
	f := newFlow(m, "bursary-letter")
	f.letterhead(in.Assets.Header)

	f.referenceLine(in)
	f.advance(20)
	f.text(MarginLeft, "Your Ref:", bold11)
	f.advance(40)

	f.text(MarginLeft, "THE CHAIRPERSON", bold12)
	f.advance(18)
	f.text(MarginLeft, "BURSARY COMMITTEE", bold12)
	f.advance(40)

	f.underlined(MarginLeft, "RE: BURSARY SUPPORT FOR,", bold13)
	f.advance(35)

	f.nameLine(in.Student.Name)
	f.advance(30)

	x := f.text(MarginLeft, "The above-named student ", regular11)
	f.underlined(x, "Adm. No. "+orPlaceholder(in.Student.AdmissionNumber, bursaryAdmPlaceholder), bold11)
	f.advance(30)

	x = f.text(MarginLeft, fmt.Sprintf("Enrolled for %s course in ", CourseType(in.Course.Name)), regular11)
	f.underlined(x, orPlaceholder(in.Course.Name, coursePlaceholder), bold11)
	f.advance(40)

	f.paragraph(MarginLeft, fmt.Sprintf(
		"Due to financial difficulties, the student is not able to continue / start the course immediately; "+
			"therefore we request that you give the student school fees support. "+
			"The student has a fee balance of KES %s. The total fees per year is KES %s.",
		orPlaceholder(in.Course.FeePerTerm, termFeePlaceholder),
		orPlaceholder(in.Course.FeePerYear, yearFeePlaceholder)), regular11, 18)
	f.advance(48)

	f.text(MarginLeft, "Fee Payment Details", bold12)
	f.advance(25)
	f.text(MarginLeft, inst.Name, bold11)
	f.advance(20)
	f.text(MarginLeft, fmt.Sprintf("Equity Bank ACC NO: %s or", inst.EquityAccount), regular11)
	f.advance(15)
	f.text(MarginLeft, fmt.Sprintf("KCB A/C NO: %s or", inst.KCBAccount), regular11)
	f.advance(15)
	f.text(MarginLeft, fmt.Sprintf("MPESA: PAYBILL NO %s, ACCOUNT NO %s", inst.Paybill, orPlaceholder(in.Student.Name, namePlaceholder)), regular11)
	f.advance(45)

	f.text(MarginLeft, "I believe you will consider her/his request.", regular11)
	f.advance(20)
	f.text(MarginLeft, "Thank you in advance, yours faithfully,", regular11)
	f.advance(40)
	f.text(MarginLeft, inst.Signatory, bold12)
	f.advance(18)
	f.text(MarginLeft, "For College Principal", bold11)

	f.stamp(in.Assets.Stamp, 100)
	return f.page
}
