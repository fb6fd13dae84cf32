package admission

// requirementSection is one titled bullet list of the checklist.
type requirementSection struct {
	title       string
	items       []string
	medicalOnly bool
	// gap is the space left below the last item.
	gap float64
}

var requirementSections = []requirementSection{
	{
		title: "Documents (All Students):",
		items: []string{
			"Admission Letter: copy",
			"KCSE Certificate or Results Slip: copy",
			"National ID or Birth Certificate: copy",
			"Passport-Sized Photographs: 2-4 recent photos",
			"Bank Payment Slip: Proof of tuition fee payment",
			"Accommodation Payment Receipt: If applicable",
		},
		gap: 30,
	},
	{
		title: "Uniforms & Clothing (Medical Students Only):",
		items: []string{
			"KMTC Uniform with EAVI Logo",
			"Ladies: Dress - 2 pairs",
			"Boys: Trousers + White Shirt - 2 pairs",
			"White Lab Coat with EAVI Logo: 2 coats",
			"Scrubs: 2 pairs",
		},
		medicalOnly: true,
		gap:         30,
	},
	{
		title: "Footwear (Medical Students Only):",
		items: []string{
			"Crocs: 2 pairs",
			"Shoes: 2 pairs",
		},
		medicalOnly: true,
		gap:         17,
	},
	{
		title: "Academic & Stationery (All Students):",
		items: []string{
			"Notebooks: For lectures and practical's",
			"Writing Instruments: Pens, pencils, erasers, highlighters",
			"Calculator: Required for certain courses",
			"Laptop or Tablet: For e-learning, research, and assignments",
		},
		gap: 32,
	},
}

const requirementsClosingNote = "Ensure all items are prepared and organized prior to the reporting day to facilitate a smooth registration process."

// BuildRequirements lays out page 3, the reporting checklist. Medical
// sections appear only for medical courses.
func BuildRequirements(m Measurer, in Input) *Page {
	f := newFlow(m, "requirements")
	f.letterhead(in.Assets.Header)

	f.centered("REQUIREMENTS", bold18)
	f.advance(45)

	medical := IsMedical(in.Course.Department, in.Course.Name)
	for _, section := range requirementSections {
		if section.medicalOnly && !medical {
			continue
		}
		f.text(MarginLeft, section.title, bold13)
		f.advance(25)
		f.bullets(section.items, regular11, 18)
		f.advance(section.gap)
	}

	f.paragraph(MarginLeft, requirementsClosingNote, bold11, 15)

	f.stamp(in.Assets.Stamp, 60)
	return f.page
}
