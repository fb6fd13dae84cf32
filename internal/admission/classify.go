package admission

import "strings"

// CourseTypeFallback is printed when a course name names no known level.
const CourseTypeFallback = "Diploma / Certificate / Artisan"

type keywordRule struct {
	keyword string
	label   string
}

// courseTypeRules are evaluated in order against the course name; the
// first keyword found wins.
var courseTypeRules = []keywordRule{
	{keyword: "diploma", label: "Diploma"},
	{keyword: "certificate", label: "Certificate"},
	{keyword: "artisan", label: "Artisan"},
}

// medicalKeywords mark a course as medical when found in either the
// department or the course name.
var medicalKeywords = []string{
	"medical",
	"health",
	"nursing",
	"perioperative",
	"lab",
	"psychology",
}

// CourseType returns the qualification level named by a course, matched
// case-insensitively.
func CourseType(courseName string) string {
	name := strings.ToLower(courseName)
	for _, rule := range courseTypeRules {
		if strings.Contains(name, rule.keyword) {
			return rule.label
		}
	}
	return CourseTypeFallback
}

// IsMedical reports whether the medical uniform and footwear requirements
// apply. The same vocabulary is checked against both fields.
func IsMedical(department, courseName string) bool {
	for _, target := range []string{department, courseName} {
		t := strings.ToLower(target)
		for _, kw := range medicalKeywords {
			if strings.Contains(t, kw) {
				return true
			}
		}
	}
	return false
}
