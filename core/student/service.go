package student

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/hiendao/smartclass/core"
)

var (
	// errors
	ErrNotFound = errors.New("record not found")
)

type (
	Repository interface {
		CreateStudent(st Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		UpdateStudent(st Student) (Student, error)
		DeleteStudent(id string) error

		CreateClass(cls Class) (Class, error)
		QueryAllClasses() ([]Class, error)
		GetClassByID(id string) (Class, error)
		UpdateClass(cls Class) (Class, error)
		DeleteClass(id string) error

		CreateParent(p Parent) (Parent, error)
		QueryAllParents() ([]Parent, error)
		GetParentByID(id string) (Parent, error)
		UpdateParent(p Parent) (Parent, error)
		DeleteParent(id string) error

		// CreateBehaviorAdjustPoints appends the audit row and applies its
		// point delta to the student's stored points under one write lock.
		CreateBehaviorAdjustPoints(b Behavior) (Behavior, Student, error)
		QueryAllBehaviors() ([]Behavior, error)
		QueryBehaviorsByStudent(studentID string) ([]Behavior, error)

		CreateAttendance(a Attendance) (Attendance, error)
		QueryAllAttendance() ([]Attendance, error)
		QueryAttendanceByStudent(studentID string) ([]Attendance, error)
	}

	Service struct {
		repo Repository
		log  core.Logger
	}
)

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (svc *Service) CreateStudent(ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	st := Student{
		FullName: ns.FullName,
		DOB:      ns.DOB,
		Gender:   ns.Gender,
		Address:  ns.Address,
		Avatar:   ns.Avatar,
		ClassID:  ns.ClassID,
		ParentID: ns.ParentID,
		Status:   StatusActive,
	}
	return svc.repo.CreateStudent(st)
}

func (svc *Service) QueryAllStudents() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetStudentByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) UpdateStudent(id string, us UpdateStudent) (Student, error) {
	if err := us.Validate(); err != nil {
		return Student{}, err
	}
	st, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if us.FullName != "" {
		st.FullName = us.FullName
	}
	if us.DOB != "" {
		st.DOB = us.DOB
	}
	if us.Gender != "" {
		st.Gender = us.Gender
	}
	if us.Address != "" {
		st.Address = us.Address
	}
	if us.Avatar != "" {
		st.Avatar = us.Avatar
	}
	if us.ClassID != "" {
		st.ClassID = us.ClassID
	}
	if us.ParentID != "" {
		st.ParentID = us.ParentID
	}
	if us.Status != "" {
		st.Status = us.Status
	}
	return svc.repo.UpdateStudent(st)
}

func (svc *Service) DeleteStudent(id string) error {
	return svc.repo.DeleteStudent(id)
}

func (svc *Service) CreateClass(nc NewClass) (Class, error) {
	if err := nc.Validate(); err != nil {
		return Class{}, err
	}
	return svc.repo.CreateClass(Class{ClassName: nc.ClassName, Level: nc.Level})
}

func (svc *Service) QueryAllClasses() ([]Class, error) {
	return svc.repo.QueryAllClasses()
}

func (svc *Service) GetClassByID(id string) (Class, error) {
	return svc.repo.GetClassByID(id)
}

// ResolveClassName tolerates dangling class references: an unknown id
// resolves to the empty placeholder instead of failing.
func (svc *Service) ResolveClassName(classID string) string {
	cls, err := svc.repo.GetClassByID(classID)
	if err != nil {
		return ""
	}
	return cls.ClassName
}

func (svc *Service) CreateParent(np NewParent) (Parent, error) {
	if err := np.Validate(); err != nil {
		return Parent{}, err
	}
	return svc.repo.CreateParent(Parent{
		FullName:     np.FullName,
		Phone:        np.Phone,
		Email:        np.Email,
		Relationship: np.Relationship,
	})
}

func (svc *Service) QueryAllParents() ([]Parent, error) {
	return svc.repo.QueryAllParents()
}

func (svc *Service) GetParentByID(id string) (Parent, error) {
	return svc.repo.GetParentByID(id)
}

// RecordBehavior is the only path that moves Student.Points. The audit row
// and the points bump commit together.
func (svc *Service) RecordBehavior(nb NewBehavior) (Behavior, error) {
	if err := nb.Validate(); err != nil {
		return Behavior{}, err
	}
	b := Behavior{
		StudentID: nb.StudentID,
		Type:      nb.Type,
		Points:    nb.Points,
		Note:      nb.Note,
		CreatedAt: time.Now().UTC(),
	}
	b, st, err := svc.repo.CreateBehaviorAdjustPoints(b)
	if err != nil {
		return Behavior{}, err
	}
	svc.log.Debug(fmt.Sprintf("behavior %s for student %s: %+d points (now %d)", b.Type, st.ID, b.Points, st.Points))
	return b, nil
}

func (svc *Service) QueryAllBehaviors() ([]Behavior, error) {
	return svc.repo.QueryAllBehaviors()
}

func (svc *Service) QueryBehaviorsByStudent(studentID string) ([]Behavior, error) {
	return svc.repo.QueryBehaviorsByStudent(studentID)
}

func (svc *Service) RecordAttendance(na NewAttendance) (Attendance, error) {
	if err := na.Validate(); err != nil {
		return Attendance{}, err
	}
	return svc.repo.CreateAttendance(Attendance{
		StudentID: na.StudentID,
		Date:      na.Date,
		Status:    na.Status,
		Note:      na.Note,
	})
}

func (svc *Service) QueryAttendanceByStudent(studentID string) ([]Attendance, error) {
	return svc.repo.QueryAttendanceByStudent(studentID)
}

// Profile joins a student with its class and parent. Dangling references
// resolve to zero values rather than errors.
type Profile struct {
	Student Student `json:"student"`
	Class   Class   `json:"class"`
	Parent  Parent  `json:"parent"`
}

func (svc *Service) GetProfile(studentID string) (Profile, error) {
	st, err := svc.repo.GetStudentByID(studentID)
	if err != nil {
		return Profile{}, err
	}
	prof := Profile{Student: st}
	if cls, err := svc.repo.GetClassByID(st.ClassID); err == nil {
		prof.Class = cls
	}
	if st.ParentID != "" {
		if p, err := svc.repo.GetParentByID(st.ParentID); err == nil {
			prof.Parent = p
		}
	}
	return prof, nil
}

// PointsAudit compares the stored points accumulator against the sum of
// behavior deltas. The stored field stays authoritative; a divergence is a
// data-integrity bug and gets logged, never auto-corrected.
type PointsAudit struct {
	StudentID string `json:"studentId"`
	Stored    int    `json:"stored"`
	Derived   int    `json:"derived"`
}

func (pa PointsAudit) Consistent() bool { return pa.Stored == pa.Derived }

func (svc *Service) AuditPoints(studentID string) (PointsAudit, error) {
	st, err := svc.repo.GetStudentByID(studentID)
	if err != nil {
		return PointsAudit{}, err
	}
	behaviors, err := svc.repo.QueryBehaviorsByStudent(studentID)
	if err != nil {
		return PointsAudit{}, err
	}
	var derived int
	for _, b := range behaviors {
		derived += b.Points
	}
	audit := PointsAudit{StudentID: studentID, Stored: st.Points, Derived: derived}
	if !audit.Consistent() {
		svc.log.Warn(fmt.Sprintf("points divergence for student %s: stored=%d derived=%d", studentID, audit.Stored, audit.Derived))
	}
	return audit, nil
}

// ConductSummary backs the admin dashboard tiles.
type ConductSummary struct {
	TotalStudents int `json:"totalStudents"`
	PraisePoints  int `json:"praisePoints"`
	WarnCount     int `json:"warnCount"`
}

func (svc *Service) Summary() (ConductSummary, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return ConductSummary{}, err
	}
	behaviors, err := svc.repo.QueryAllBehaviors()
	if err != nil {
		return ConductSummary{}, err
	}
	sum := ConductSummary{TotalStudents: len(students)}
	for _, b := range behaviors {
		switch b.Type {
		case BehaviorPraise:
			sum.PraisePoints += b.Points
		case BehaviorWarn:
			sum.WarnCount++
		}
	}
	return sum, nil
}
