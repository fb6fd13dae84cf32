package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/braxton0054/eavisystem/internal/admission"
	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/app/repositories"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/email"
	"github.com/braxton0054/eavisystem/internal/pkg/filestorage"
)

var (
	eat = time.FixedZone("EAT", 3*60*60)
	// Thursday.
	testNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, eat)
)

func fixedClock() time.Time { return testNow }

func testCampuses() *Campuses {
	return NewCampuses("EAVI/{seq}/{year}",
		Campus{Key: "twon", Name: "Twon Campus", StartingSequence: 1001},
		Campus{Key: "west", Name: "West Campus", StartingSequence: 2001},
	)
}

// fakeSettings serialises every operation under one mutex, as the row lock
// does in the database.
type fakeSettings struct {
	mu   sync.Mutex
	rows map[string]*models.CampusSettings
	err  error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{rows: map[string]*models.CampusSettings{}}
}

func (f *fakeSettings) ensure(campus string, d models.SettingsDefaults) *models.CampusSettings {
	row, ok := f.rows[campus]
	if !ok {
		row = &models.CampusSettings{
			Campus:                campus,
			AdmissionNumberFormat: d.AdmissionNumberFormat,
			StartingSequence:      d.StartingSequence,
			CurrentSequence:       d.StartingSequence,
		}
		f.rows[campus] = row
	}
	return row
}

func (f *fakeSettings) GetOrCreate(_ context.Context, campus string, d models.SettingsDefaults) (*models.CampusSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	row := *f.ensure(campus, d)
	return &row, nil
}

func (f *fakeSettings) Update(_ context.Context, campus string, d models.SettingsDefaults, upd models.SettingsUpdate,
	check func(*models.CampusSettings) error,
) (*models.CampusSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	row := f.ensure(campus, d)
	snapshot := *row
	if err := check(&snapshot); err != nil {
		return nil, err
	}
	if upd.AdmissionNumberFormat != nil {
		row.AdmissionNumberFormat = *upd.AdmissionNumberFormat
	}
	if upd.StartingSequence != nil {
		row.StartingSequence = *upd.StartingSequence
		if *upd.StartingSequence > row.CurrentSequence {
			row.CurrentSequence = *upd.StartingSequence
		}
	}
	row.ReportingDates = upd.ReportingDates
	out := *row
	return &out, nil
}

func (f *fakeSettings) NextSequence(_ context.Context, campus string, d models.SettingsDefaults) (string, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", 0, f.err
	}
	row := f.ensure(campus, d)
	seq := row.CurrentSequence
	row.CurrentSequence++
	return row.AdmissionNumberFormat, seq, nil
}

func (f *fakeSettings) current(campus string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[campus]; ok {
		return row.CurrentSequence
	}
	return 0
}

type fakeStudents struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*models.Student
	courses   *fakeCourses
	createErr error
	setErr    error
	setCalls  int
}

func newFakeStudents(courses *fakeCourses) *fakeStudents {
	return &fakeStudents{byID: map[int64]*models.Student{}, courses: courses}
}

func (f *fakeStudents) detail(s *models.Student) *models.StudentDetail {
	d := &models.StudentDetail{Student: *s}
	if f.courses != nil {
		if c, err := f.courses.GetByID(context.Background(), s.Campus, s.CourseID); err == nil {
			d.CourseName = c.Name
			d.Department = c.Department
			d.FeeStructureFile = c.FeeStructureFile
		}
	}
	return d
}

func (f *fakeStudents) add(s models.Student) *models.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s.ID = f.nextID
	f.byID[s.ID] = &s
	return &s
}

func (f *fakeStudents) Create(_ context.Context, s *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Campus == s.Campus && existing.AdmissionNumber == s.AdmissionNumber {
			return apperrors.NewConflictError("admission number already issued")
		}
	}
	f.nextID++
	s.ID = f.nextID
	s.AdmissionDate = testNow
	stored := *s
	f.byID[s.ID] = &stored
	return nil
}

func (f *fakeStudents) GetByAdmissionNumber(_ context.Context, campus, number string) (*models.StudentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byID {
		if s.Campus == campus && s.AdmissionNumber == number {
			return f.detail(s), nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudents) GetByID(_ context.Context, campus string, id int64) (*models.StudentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.byID[id]; ok && s.Campus == campus {
		return f.detail(s), nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudents) List(_ context.Context, campus string, filter repositories.StudentListFilter) ([]*models.StudentDetail, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.StudentDetail
	for _, s := range f.byID {
		if s.Campus == campus && (filter.Status == "" || s.Status == filter.Status) {
			out = append(out, f.detail(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeStudents) UpdateStatus(_ context.Context, campus string, id int64, status models.StudentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok || s.Campus != campus {
		return apperrors.ErrStudentNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeStudents) Delete(_ context.Context, campus string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok || s.Campus != campus {
		return apperrors.ErrStudentNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeStudents) SetDocumentPath(_ context.Context, campus string, id int64, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	s, ok := f.byID[id]
	if !ok || s.Campus != campus {
		return apperrors.ErrStudentNotFound
	}
	s.DocumentPath = &filename
	return nil
}

func (f *fakeStudents) documentPath(id int64) *string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id].DocumentPath
}

type fakeCourses struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Course
}

func newFakeCourses() *fakeCourses {
	return &fakeCourses{byID: map[int64]*models.Course{}}
}

func (f *fakeCourses) add(c models.Course) *models.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	f.byID[c.ID] = &c
	return &c
}

func (f *fakeCourses) Create(_ context.Context, c *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Campus == c.Campus && existing.Code == c.Code {
			return apperrors.ErrCourseCodeExists
		}
	}
	f.nextID++
	c.ID = f.nextID
	stored := *c
	f.byID[c.ID] = &stored
	return nil
}

func (f *fakeCourses) GetByID(_ context.Context, campus string, id int64) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.byID[id]; ok && c.Campus == campus {
		out := *c
		return &out, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourses) List(_ context.Context, campus, department string) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Course
	for _, c := range f.byID {
		if c.Campus == campus && (department == "" || c.Department == department) {
			cc := *c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCourses) Update(_ context.Context, c *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byID[c.ID]; !ok || existing.Campus != c.Campus {
		return apperrors.ErrCourseNotFound
	}
	stored := *c
	f.byID[c.ID] = &stored
	return nil
}

func (f *fakeCourses) Delete(_ context.Context, campus string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.byID[id]; !ok || c.Campus != campus {
		return apperrors.ErrCourseNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCourses) ListDepartments(_ context.Context, campus string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, c := range f.byID {
		if c.Campus == campus && !seen[c.Department] {
			seen[c.Department] = true
			out = append(out, c.Department)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeAdmins struct {
	mu     sync.Mutex
	admins map[string]*models.Admin
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{admins: map[string]*models.Admin{}}
}

func (f *fakeAdmins) GetByUsername(_ context.Context, campus, username string) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.admins[campus+"|"+username]; ok {
		out := *a
		return &out, nil
	}
	return nil, apperrors.ErrAdminNotFound
}

func (f *fakeAdmins) Create(_ context.Context, a *models.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := a.Campus + "|" + a.Username
	if _, ok := f.admins[key]; ok {
		return apperrors.ErrResourceAlreadyExists
	}
	a.ID = int64(len(f.admins) + 1)
	stored := *a
	f.admins[key] = &stored
	return nil
}

// countingAssembler counts how often packages are synthesised.
type countingAssembler struct {
	next  PackageAssembler
	calls atomic.Int32
}

func (c *countingAssembler) Assemble(ctx context.Context, in admission.Input) (*admission.Package, error) {
	c.calls.Add(1)
	return c.next.Assemble(ctx, in)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []email.Message
}

func (f *fakeMailer) Send(_ context.Context, msg email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) messages() []email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]email.Message(nil), f.sent...)
}

// feePDF renders a k-page stand-in for an uploaded fee structure.
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

// documentFixture wires a DocumentService over fakes and a temp directory.
type documentFixture struct {
	settings  *fakeSettings
	students  *fakeStudents
	courses   *fakeCourses
	storage   *filestorage.LocalStorage
	assembler *countingAssembler
	service   *DocumentService
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	courses := newFakeCourses()
	f := &documentFixture{
		settings: newFakeSettings(),
		courses:  courses,
		students: newFakeStudents(courses),
		storage:  storage,
	}
	fees := NewFeeService(storage, storage, 10<<20, zerolog.Nop())
	f.assembler = &countingAssembler{next: admission.NewAssembler(admission.NewFontMeasurer(), fees, zerolog.Nop())}
	f.service = NewDocumentService(f.students, f.courses, f.settings, testCampuses(), f.assembler, storage,
		DocumentConfig{Institution: admission.DefaultInstitution(), Location: eat}, fixedClock, zerolog.Nop())
	return f
}

// consolidationStudent registers the end-to-end scenario student.
func (f *documentFixture) consolidationStudent(feeFile *string) *models.Student {
	course := f.courses.add(models.Course{
		Code:             "MLT",
		Name:             "Medical Laboratory Technology",
		Department:       "Health Sciences",
		FeePerTerm:       "25000",
		FeePerYear:       "75000",
		DurationYears:    3,
		FeeStructureFile: feeFile,
		Campus:           "twon",
	})
	return f.students.add(models.Student{
		AdmissionNumber: "VERIFY/2026/001",
		FullName:        "Consolidation Test Student",
		Email:           "consolidation@example.com",
		CourseID:        course.ID,
		Term:            1,
		Campus:          "twon",
		Status:          models.StatusAdmitted,
	})
}
