package admission

import (
	"fmt"
	"time"
)

// Placeholders printed where a value is missing.
const (
	namePlaceholder       = "................................................................"
	coursePlaceholder     = "................................................"
	admissionPlaceholder  = ".........................."
	bursaryAdmPlaceholder = "....................................."
	reportingPlaceholder  = "...................................................................."
	termFeePlaceholder    = ".........."
	yearFeePlaceholder    = "............"
)

// StudentInfo is the student data printed on the package.
type StudentInfo struct {
	Name            string
	AdmissionNumber string
}

// CourseInfo is the course data printed on the package.
type CourseInfo struct {
	Name             string
	Department       string
	FeePerTerm       string
	FeePerYear       string
	FeeStructureFile string
}

// Institution holds letterhead, signatory and payment details.
type Institution struct {
	Name          string
	ShortName     string
	EquityAccount string
	KCBAccount    string
	Paybill       string
	Signatory     string
	Directors     []string
}

// DefaultInstitution returns the details used when configuration leaves
// them empty.
func DefaultInstitution() Institution {
	return Institution{
		Name:          "East Africa Vision Institute",
		ShortName:     "EAVI",
		EquityAccount: "0470292838961",
		KCBAccount:    "1115207350",
		Paybill:       "257557",
		Signatory:     "TRIZAH JUMA",
		Directors: []string{
			"Philemon Saina (B.Sc. Eng, MBA)",
			"Beth Mwangi (B.A, MBA, PhD Finance)",
			"R. B. Patel (B.Sc. Eng, M.Sc.)",
		},
	}
}

func (i Institution) withDefaults() Institution {
	d := DefaultInstitution()
	if i.Name == "" {
		i.Name = d.Name
	}
	if i.ShortName == "" {
		i.ShortName = d.ShortName
	}
	if i.EquityAccount == "" {
		i.EquityAccount = d.EquityAccount
	}
	if i.KCBAccount == "" {
		i.KCBAccount = d.KCBAccount
	}
	if i.Paybill == "" {
		i.Paybill = d.Paybill
	}
	if i.Signatory == "" {
		i.Signatory = d.Signatory
	}
	if len(i.Directors) == 0 {
		i.Directors = d.Directors
	}
	return i
}

// FullName is the institution name followed by its abbreviation.
func (i Institution) FullName() string {
	return fmt.Sprintf("%s (%s)", i.Name, i.ShortName)
}

// Image is a PNG ready to embed, with its pixel size.
type Image struct {
	Name   string
	Data   []byte
	Width  int
	Height int
}

// Assets are the optional images drawn on every page.
type Assets struct {
	Header *Image
	Stamp  *Image
}

// Input is everything the page builders need. Builders never consult the
// clock; IssuedOn supplies the letter date.
type Input struct {
	Student       StudentInfo
	Course        CourseInfo
	Institution   Institution
	Assets        Assets
	IssuedOn      time.Time
	ReportingDate *time.Time
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// reference is the "Our Ref" value: the admission number, or a generic
// reference for the issue year.
func (in Input) reference() string {
	if in.Student.AdmissionNumber != "" {
		return in.Student.AdmissionNumber
	}
	return fmt.Sprintf("%s/REF/%d", in.Institution.withDefaults().ShortName, in.IssuedOn.Year())
}

func (in Input) letterDate() string {
	return in.IssuedOn.Format("2/1/2006")
}

func (in Input) reportingDate() string {
	if in.ReportingDate == nil {
		return reportingPlaceholder
	}
	return in.ReportingDate.Format("Monday, 2 January 2006")
}
