package impl

import (
	"context"
	"strings"
	"sync"
	"testing"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
	"emotrack/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
)

// memCourseStore is an in-memory stand-in for the gorm store, enforcing the
// same partial-unique semantics the real indexes provide.
type memCourseStore struct {
	mu          sync.Mutex
	courses     map[int64]*domain.Course
	schedules   map[int64][]domain.Schedule
	enrollments map[int64]*domain.Enrollment
	students    map[int64]*domain.Student
	professors  map[int64]*domain.Professor
	nextID      int64
}

func newMemCourseStore() *memCourseStore {
	return &memCourseStore{
		courses:     map[int64]*domain.Course{},
		schedules:   map[int64][]domain.Schedule{},
		enrollments: map[int64]*domain.Enrollment{},
		students:    map[int64]*domain.Student{},
		professors:  map[int64]*domain.Professor{},
	}
}

func (m *memCourseStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memCourseStore) addStudent(accountID int64) *domain.Student {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &domain.Student{ID: m.id(), FirstName: "Stu", LastName: "Dent", AccountID: accountID}
	m.students[s.ID] = s
	return s
}

func (m *memCourseStore) addProfessor(accountID int64, first, last string) *domain.Professor {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &domain.Professor{ID: m.id(), FirstName: first, LastName: last, AccountID: accountID}
	m.professors[p.ID] = p
	return p
}

func (m *memCourseStore) WithTx(ctx context.Context, fn func(tx courseTx) error) error {
	return fn(memTx{m})
}

type memTx struct{ m *memCourseStore }

func (t memTx) Courses() courseStore         { return memCourses{t.m} }
func (t memTx) Schedules() scheduleStore     { return memSchedules{t.m} }
func (t memTx) Enrollments() enrollmentStore { return memEnrollments{t.m} }
func (t memTx) Students() studentStore       { return memStudents{t.m} }
func (t memTx) Professors() professorStore   { return memProfessors{t.m} }

type memCourses struct{ m *memCourseStore }

func (c memCourses) Create(ctx context.Context, course *domain.Course) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	for _, existing := range c.m.courses {
		if existing.Active && existing.Name == course.Name && existing.GroupCode == course.GroupCode {
			return &pgconn.PgError{Code: "23505", ConstraintName: "ux_courses_name_group_active"}
		}
	}
	course.ID = c.m.id()
	cp := *course
	c.m.courses[course.ID] = &cp
	return nil
}

func (c memCourses) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	course, ok := c.m.courses[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	out := *course
	out.Schedules = append([]domain.Schedule(nil), c.m.schedules[id]...)
	if prof, ok := c.m.professors[course.ProfessorID]; ok {
		p := *prof
		out.Professor = &p
	}
	return &out, nil
}

func (c memCourses) GetByNameGroup(ctx context.Context, name, groupCode string) (*domain.Course, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var best *domain.Course
	for _, course := range c.m.courses {
		if course.Name != name || course.GroupCode != groupCode {
			continue
		}
		if best == nil || (course.Active && !best.Active) || (course.Active == best.Active && course.ID > best.ID) {
			best = course
		}
	}
	if best == nil {
		return nil, store.ErrRecordNotFound
	}
	out := *best
	return &out, nil
}

func (c memCourses) ActiveExistsExcept(ctx context.Context, name, groupCode string, exceptID int64) (bool, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	for _, course := range c.m.courses {
		if course.Active && course.ID != exceptID && course.Name == name && course.GroupCode == groupCode {
			return true, nil
		}
	}
	return false, nil
}

func (c memCourses) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	course, ok := c.m.courses[id]
	if !ok {
		return store.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "active":
			course.Active = v.(bool)
		case "name":
			course.Name = v.(string)
		case "group_code":
			course.GroupCode = v.(string)
		case "professor_id":
			course.ProfessorID = v.(int64)
		}
	}
	return nil
}

func (c memCourses) Delete(ctx context.Context, id int64) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	delete(c.m.courses, id)
	delete(c.m.schedules, id)
	return nil
}

func (c memCourses) Search(ctx context.Context, query string, limit, offset int) ([]domain.Course, int64, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var matched []domain.Course
	q := strings.ToLower(query)
	for id := int64(1); id <= c.m.nextID; id++ {
		course, ok := c.m.courses[id]
		if !ok || !course.Active {
			continue
		}
		prof := c.m.professors[course.ProfessorID]
		hay := strings.ToLower(course.Name)
		if prof != nil {
			hay += " " + strings.ToLower(prof.FirstName) + " " + strings.ToLower(prof.LastName)
		}
		if q == "" || strings.Contains(hay, q) {
			matched = append(matched, *course)
		}
	}
	total := int64(len(matched))
	if limit > 0 {
		if offset > len(matched) {
			matched = nil
		} else {
			matched = matched[offset:]
		}
		if len(matched) > limit {
			matched = matched[:limit]
		}
	}
	return matched, total, nil
}

func (c memCourses) ListByProfessor(ctx context.Context, professorID int64) ([]domain.Course, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var out []domain.Course
	for id := int64(1); id <= c.m.nextID; id++ {
		if course, ok := c.m.courses[id]; ok && course.Active && course.ProfessorID == professorID {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (c memCourses) ListByStudent(ctx context.Context, studentID int64) ([]domain.Course, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var out []domain.Course
	for _, enr := range c.m.enrollments {
		if enr.StudentID != studentID || !enr.Active {
			continue
		}
		if course, ok := c.m.courses[enr.CourseID]; ok && course.Active {
			out = append(out, *course)
		}
	}
	return out, nil
}

type memSchedules struct{ m *memCourseStore }

func (s memSchedules) ReplaceForCourse(ctx context.Context, courseID int64, schedules []domain.Schedule) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.schedules, courseID)
	for i := range schedules {
		schedules[i].ID = s.m.id()
		schedules[i].CourseID = courseID
	}
	if len(schedules) > 0 {
		s.m.schedules[courseID] = schedules
	}
	return nil
}

func (s memSchedules) DeleteForCourse(ctx context.Context, courseID int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.schedules, courseID)
	return nil
}

type memEnrollments struct{ m *memCourseStore }

func (e memEnrollments) GetByCourseStudent(ctx context.Context, courseID, studentID int64) (*domain.Enrollment, error) {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	var best *domain.Enrollment
	for _, enr := range e.m.enrollments {
		if enr.CourseID != courseID || enr.StudentID != studentID {
			continue
		}
		if best == nil || (enr.Active && !best.Active) || (enr.Active == best.Active && enr.ID > best.ID) {
			best = enr
		}
	}
	if best == nil {
		return nil, store.ErrRecordNotFound
	}
	out := *best
	return &out, nil
}

func (e memEnrollments) InsertActive(ctx context.Context, enr *domain.Enrollment) (bool, error) {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	for _, existing := range e.m.enrollments {
		if existing.Active && existing.CourseID == enr.CourseID && existing.StudentID == enr.StudentID {
			return false, nil
		}
	}
	enr.Active = true
	enr.ID = e.m.id()
	cp := *enr
	e.m.enrollments[enr.ID] = &cp
	return true, nil
}

func (e memEnrollments) SetActive(ctx context.Context, id int64, active bool) error {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	if enr, ok := e.m.enrollments[id]; ok {
		enr.Active = active
	}
	return nil
}

func (e memEnrollments) DeactivateForCourse(ctx context.Context, courseID int64) error {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	for _, enr := range e.m.enrollments {
		if enr.CourseID == courseID {
			enr.Active = false
		}
	}
	return nil
}

func (e memEnrollments) DeleteForCourse(ctx context.Context, courseID int64) error {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	for id, enr := range e.m.enrollments {
		if enr.CourseID == courseID {
			delete(e.m.enrollments, id)
		}
	}
	return nil
}

type memStudents struct{ m *memCourseStore }

func (s memStudents) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if student, ok := s.m.students[id]; ok {
		out := *student
		return &out, nil
	}
	return nil, store.ErrRecordNotFound
}

func (s memStudents) GetByAccountID(ctx context.Context, accountID int64) (*domain.Student, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, student := range s.m.students {
		if student.AccountID == accountID {
			out := *student
			return &out, nil
		}
	}
	return nil, store.ErrRecordNotFound
}

type memProfessors struct{ m *memCourseStore }

func (p memProfessors) GetByID(ctx context.Context, id int64) (*domain.Professor, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	if prof, ok := p.m.professors[id]; ok {
		out := *prof
		return &out, nil
	}
	return nil, store.ErrRecordNotFound
}

func (p memProfessors) GetByAccountID(ctx context.Context, accountID int64) (*domain.Professor, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	for _, prof := range p.m.professors {
		if prof.AccountID == accountID {
			out := *prof
			return &out, nil
		}
	}
	return nil, store.ErrRecordNotFound
}

func newCourseService(m *memCourseStore) *CourseServiceImpl {
	return &CourseServiceImpl{Store: m}
}

func TestCreateCourse(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	svc := newCourseService(m)
	ctx := context.Background()

	course, err := svc.Create(ctx, dto.CreateCourseRequest{
		Name:        "Calc III",
		GroupCode:   "102-1",
		ProfessorID: prof.ID,
		Schedules: []dto.ScheduleInput{
			{Weekday: "monday", StartTime: "08:00", EndTime: "10:00"},
			{Weekday: "wednesday", StartTime: "08:00", EndTime: "10:00"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !course.Active {
		t.Error("new course should be active")
	}
	if len(course.Schedules) != 2 {
		t.Errorf("schedules = %d, want 2", len(course.Schedules))
	}
}

func TestCreateCourseActiveDuplicateConflicts(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	svc := newCourseService(m)
	ctx := context.Background()

	req := dto.CreateCourseRequest{Name: "Calc III", GroupCode: "102-1", ProfessorID: prof.ID}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, req); !domain.IsConflict(err) {
		t.Fatalf("duplicate create err = %v, want Conflict", err)
	}
}

func TestCreateCourseUnknownProfessor(t *testing.T) {
	svc := newCourseService(newMemCourseStore())
	_, err := svc.Create(context.Background(), dto.CreateCourseRequest{
		Name: "Calc III", GroupCode: "102-1", ProfessorID: 99,
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestDeactivateThenRecreateReactivatesSameRow(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	other := m.addProfessor(11, "Alan", "Turing")
	svc := newCourseService(m)
	ctx := context.Background()

	course, err := svc.Create(ctx, dto.CreateCourseRequest{
		Name: "Calc III", GroupCode: "102-1", ProfessorID: prof.ID,
		Schedules: []dto.ScheduleInput{{Weekday: "monday", StartTime: "08:00", EndTime: "10:00"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	student := m.addStudent(20)
	if _, err := svc.Enroll(ctx, course.ID, student.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	deactivated, err := svc.Deactivate(ctx, course.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if deactivated.Active {
		t.Error("course still active after deactivation")
	}
	if len(deactivated.Schedules) != 0 {
		t.Errorf("schedules = %d after deactivation, want 0", len(deactivated.Schedules))
	}
	for _, enr := range m.enrollments {
		if enr.CourseID == course.ID && enr.Active {
			t.Error("enrollment still active after course deactivation")
		}
	}

	// Deactivating twice is a conflict, not a no-op.
	if _, err := svc.Deactivate(ctx, course.ID); !domain.IsConflict(err) {
		t.Fatalf("second deactivate err = %v, want Conflict", err)
	}

	// Same (name, group) again: same row comes back, new owner, new schedules.
	recreated, err := svc.Create(ctx, dto.CreateCourseRequest{
		Name: "Calc III", GroupCode: "102-1", ProfessorID: other.ID,
		Schedules: []dto.ScheduleInput{{Weekday: "friday", StartTime: "14:00", EndTime: "16:00"}},
	})
	if err != nil {
		t.Fatalf("recreate: %v", err)
	}
	if recreated.ID != course.ID {
		t.Errorf("recreate id = %d, want reactivated row %d", recreated.ID, course.ID)
	}
	if !recreated.Active {
		t.Error("reactivated course should be active")
	}
	if recreated.ProfessorID != other.ID {
		t.Errorf("professor = %d, want %d", recreated.ProfessorID, other.ID)
	}
	if len(recreated.Schedules) != 1 || recreated.Schedules[0].Weekday != "friday" {
		t.Errorf("schedules not replaced: %+v", recreated.Schedules)
	}

	// Reactivation does not restore enrollments; the student must re-enroll.
	for _, enr := range m.enrollments {
		if enr.CourseID == course.ID && enr.Active {
			t.Error("reactivation must not restore enrollments")
		}
	}
}

func TestEnrollLifecycle(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	student := m.addStudent(20)
	svc := newCourseService(m)
	ctx := context.Background()

	course, err := svc.Create(ctx, dto.CreateCourseRequest{Name: "Calc III", GroupCode: "102-1", ProfessorID: prof.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	enr, err := svc.Enroll(ctx, course.ID, student.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if !enr.Active {
		t.Error("enrollment should be active")
	}

	if _, err := svc.Enroll(ctx, course.ID, student.ID); !domain.IsConflict(err) {
		t.Fatalf("re-enroll err = %v, want Conflict", err)
	}

	unenrolled, err := svc.Unenroll(ctx, course.ID, student.ID)
	if err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	if unenrolled.Active {
		t.Error("enrollment should be inactive after unenroll")
	}
	if unenrolled.ID != enr.ID {
		t.Errorf("unenroll touched row %d, want %d", unenrolled.ID, enr.ID)
	}

	// Unenroll is not idempotent.
	if _, err := svc.Unenroll(ctx, course.ID, student.ID); !domain.IsConflict(err) {
		t.Fatalf("second unenroll err = %v, want Conflict", err)
	}

	// Re-enrolling reactivates the same row instead of inserting.
	again, err := svc.Enroll(ctx, course.ID, student.ID)
	if err != nil {
		t.Fatalf("re-enroll after unenroll: %v", err)
	}
	if again.ID != enr.ID {
		t.Errorf("re-enroll id = %d, want reactivated row %d", again.ID, enr.ID)
	}
	if !again.Active {
		t.Error("reactivated enrollment should be active")
	}
	if len(m.enrollments) != 1 {
		t.Errorf("enrollment rows = %d, want 1", len(m.enrollments))
	}
}

func TestEnrollEdgeCases(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	student := m.addStudent(20)
	svc := newCourseService(m)
	ctx := context.Background()

	course, err := svc.Create(ctx, dto.CreateCourseRequest{Name: "Calc III", GroupCode: "102-1", ProfessorID: prof.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Enroll(ctx, course.ID, 999); !domain.IsNotFound(err) {
		t.Errorf("enroll unknown student err = %v, want NotFound", err)
	}
	if _, err := svc.Enroll(ctx, 999, student.ID); !domain.IsNotFound(err) {
		t.Errorf("enroll unknown course err = %v, want NotFound", err)
	}
	if _, err := svc.Unenroll(ctx, course.ID, student.ID); !domain.IsNotFound(err) {
		t.Errorf("unenroll without enrollment err = %v, want NotFound", err)
	}

	if _, err := svc.Deactivate(ctx, course.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Enroll(ctx, course.ID, student.ID); !domain.IsConflict(err) {
		t.Errorf("enroll into inactive course err = %v, want Conflict", err)
	}
}

func TestEnrollByStudentToken(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	student := m.addStudent(20)
	svc := newCourseService(m)
	ctx := context.Background()

	course, err := svc.Create(ctx, dto.CreateCourseRequest{Name: "Calc III", GroupCode: "102-1", ProfessorID: prof.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	enr, err := svc.EnrollByStudentToken(ctx, course.ID, 20)
	if err != nil {
		t.Fatalf("enroll by token: %v", err)
	}
	if enr.StudentID != student.ID {
		t.Errorf("studentID = %d, want %d", enr.StudentID, student.ID)
	}

	if _, err := svc.EnrollByStudentToken(ctx, course.ID, 999); !domain.IsNotFound(err) {
		t.Errorf("enroll with unknown account err = %v, want NotFound", err)
	}

	if _, err := svc.UnenrollByStudentToken(ctx, course.ID, 20); err != nil {
		t.Fatalf("unenroll by token: %v", err)
	}
}

func TestCreateByProfessorToken(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	svc := newCourseService(m)
	ctx := context.Background()

	course, err := svc.CreateByProfessorToken(ctx, dto.CreateCourseRequest{
		Name: "Calc III", GroupCode: "102-1", ProfessorID: 999, // ignored
	}, 10)
	if err != nil {
		t.Fatalf("create by token: %v", err)
	}
	if course.ProfessorID != prof.ID {
		t.Errorf("professorID = %d, want resolved %d", course.ProfessorID, prof.ID)
	}

	if _, err := svc.CreateByProfessorToken(ctx, dto.CreateCourseRequest{
		Name: "Algebra", GroupCode: "101-1",
	}, 999); !domain.IsNotFound(err) {
		t.Errorf("unknown account err = %v, want NotFound", err)
	}
}

func TestUpdateCourse(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	svc := newCourseService(m)
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.CreateCourseRequest{Name: "Calc III", GroupCode: "102-1", ProfessorID: prof.ID})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := svc.Create(ctx, dto.CreateCourseRequest{Name: "Algebra", GroupCode: "101-1", ProfessorID: prof.ID})
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	// Renaming b onto a's active (name, group) pair collides.
	name, group := "Calc III", "102-1"
	if _, err := svc.Update(ctx, b.ID, dto.UpdateCourseRequest{Name: &name, GroupCode: &group}); !domain.IsConflict(err) {
		t.Fatalf("update onto taken pair err = %v, want Conflict", err)
	}

	// Replace-all schedule semantics on update.
	schedules := []dto.ScheduleInput{{Weekday: "tuesday", StartTime: "10:00", EndTime: "12:00"}}
	updated, err := svc.Update(ctx, a.ID, dto.UpdateCourseRequest{Schedules: &schedules})
	if err != nil {
		t.Fatalf("update schedules: %v", err)
	}
	if len(updated.Schedules) != 1 || updated.Schedules[0].Weekday != "tuesday" {
		t.Errorf("schedules not replaced: %+v", updated.Schedules)
	}

	empty := []dto.ScheduleInput{}
	updated, err = svc.Update(ctx, a.ID, dto.UpdateCourseRequest{Schedules: &empty})
	if err != nil {
		t.Fatalf("clear schedules: %v", err)
	}
	if len(updated.Schedules) != 0 {
		t.Errorf("schedules = %d after clearing, want 0", len(updated.Schedules))
	}

	if _, err := svc.Update(ctx, 999, dto.UpdateCourseRequest{}); !domain.IsNotFound(err) {
		t.Errorf("update missing course err = %v, want NotFound", err)
	}
}

func TestDeleteCourseHardDeletesEnrollments(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	student := m.addStudent(20)
	svc := newCourseService(m)
	ctx := context.Background()

	course, err := svc.Create(ctx, dto.CreateCourseRequest{Name: "Calc III", GroupCode: "102-1", ProfessorID: prof.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Enroll(ctx, course.ID, student.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if err := svc.Delete(ctx, course.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(m.enrollments) != 0 {
		t.Errorf("enrollment rows = %d after hard delete, want 0", len(m.enrollments))
	}
	if _, err := svc.Get(ctx, course.ID); !domain.IsNotFound(err) {
		t.Errorf("get deleted course err = %v, want NotFound", err)
	}

	if err := svc.Delete(ctx, course.ID); !domain.IsNotFound(err) {
		t.Errorf("delete missing course err = %v, want NotFound", err)
	}
}

func TestSearchPagination(t *testing.T) {
	m := newMemCourseStore()
	ada := m.addProfessor(10, "Ada", "Lovelace")
	alan := m.addProfessor(11, "Alan", "Turing")
	svc := newCourseService(m)
	ctx := context.Background()

	seed := []struct {
		name, group string
		prof        int64
	}{
		{"Calc I", "101-1", ada.ID},
		{"Calc II", "101-2", ada.ID},
		{"Calc III", "102-1", ada.ID},
		{"Databases", "201-1", alan.ID},
	}
	for _, s := range seed {
		if _, err := svc.Create(ctx, dto.CreateCourseRequest{Name: s.name, GroupCode: s.group, ProfessorID: s.prof}); err != nil {
			t.Fatalf("seed %s: %v", s.name, err)
		}
	}
	// Inactive courses stay out of search results.
	hidden, err := svc.Create(ctx, dto.CreateCourseRequest{Name: "Calc IV", GroupCode: "103-1", ProfessorID: ada.ID})
	if err != nil {
		t.Fatalf("seed hidden: %v", err)
	}
	if _, err := svc.Deactivate(ctx, hidden.ID); err != nil {
		t.Fatalf("deactivate hidden: %v", err)
	}

	page, err := svc.Search(ctx, "calc", 2, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Metadata == nil {
		t.Fatal("expected pagination metadata")
	}
	if page.Metadata.Total != 3 {
		t.Errorf("total = %d, want 3", page.Metadata.Total)
	}
	if page.Metadata.Count != 2 || len(page.Data) != 2 {
		t.Errorf("count = %d (len %d), want 2", page.Metadata.Count, len(page.Data))
	}

	// Professor-name match, case-insensitive.
	page, err = svc.Search(ctx, "TURING", 0, 0)
	if err != nil {
		t.Fatalf("search by professor: %v", err)
	}
	if page.Metadata != nil {
		t.Error("unpaginated search should carry no metadata")
	}
	if len(page.Data) != 1 || page.Data[0].Name != "Databases" {
		t.Errorf("search by professor = %+v", page.Data)
	}
}

func TestListByStudentAndProfessor(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	student := m.addStudent(20)
	svc := newCourseService(m)
	ctx := context.Background()

	course, err := svc.Create(ctx, dto.CreateCourseRequest{Name: "Calc III", GroupCode: "102-1", ProfessorID: prof.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Enroll(ctx, course.ID, student.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	byStudent, err := svc.ListByStudentAccount(ctx, 20)
	if err != nil {
		t.Fatalf("list by student account: %v", err)
	}
	if len(byStudent) != 1 || byStudent[0].ID != course.ID {
		t.Errorf("by student = %+v", byStudent)
	}

	byProf, err := svc.ListByProfessorAccount(ctx, 10)
	if err != nil {
		t.Fatalf("list by professor account: %v", err)
	}
	if len(byProf) != 1 || byProf[0].ID != course.ID {
		t.Errorf("by professor = %+v", byProf)
	}

	if _, err := svc.ListByStudent(ctx, 999); !domain.IsNotFound(err) {
		t.Errorf("list unknown student err = %v, want NotFound", err)
	}

	// Deactivation empties both current listings.
	if _, err := svc.Deactivate(ctx, course.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	byStudent, err = svc.ListByStudentAccount(ctx, 20)
	if err != nil {
		t.Fatalf("list after deactivate: %v", err)
	}
	if len(byStudent) != 0 {
		t.Errorf("by student after deactivate = %+v", byStudent)
	}
}

func TestEnrollLostRaceFailsClosed(t *testing.T) {
	m := newMemCourseStore()
	prof := m.addProfessor(10, "Ada", "Lovelace")
	student := m.addStudent(20)
	svc := newCourseService(m)
	ctx := context.Background()

	course, err := svc.Create(ctx, dto.CreateCourseRequest{Name: "Calc III", GroupCode: "102-1", ProfessorID: prof.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Simulate a concurrent winner sneaking in between the read and the
	// insert: the read misses, the insert hits the unique index.
	svc = &CourseServiceImpl{Store: &racingEnrollments{memCourseStore: m}}

	if _, err := svc.Enroll(ctx, course.ID, student.ID); !domain.IsConflict(err) {
		t.Fatalf("lost race err = %v, want Conflict", err)
	}
}

// racingEnrollments hides the winner row from reads and reveals it at insert
// time, like a unique index would.
type racingEnrollments struct {
	*memCourseStore
}

func (r *racingEnrollments) WithTx(ctx context.Context, fn func(tx courseTx) error) error {
	return fn(racingTx{memTx{r.memCourseStore}, r})
}

type racingTx struct {
	memTx
	r *racingEnrollments
}

func (t racingTx) Enrollments() enrollmentStore {
	return racedEnrollments{memEnrollments{t.r.memCourseStore}, t.r}
}

type racedEnrollments struct {
	memEnrollments
	r *racingEnrollments
}

func (e racedEnrollments) GetByCourseStudent(ctx context.Context, courseID, studentID int64) (*domain.Enrollment, error) {
	return nil, store.ErrRecordNotFound
}

func (e racedEnrollments) InsertActive(ctx context.Context, enr *domain.Enrollment) (bool, error) {
	return false, nil
}
