package student

import (
	"time"

	"github.com/hiendao/smartclass/core"
)

// Student statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Behavior types
const (
	BehaviorPraise = "PRAISE"
	BehaviorWarn   = "WARN"
)

// Attendance statuses
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
)

// Parent relationships
const (
	RelationshipFather = "Father"
	RelationshipMother = "Mother"
	RelationshipOther  = "Other"
)

type Student struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	DOB      string `json:"dob,omitempty"` // YYYY-MM-DD
	Gender   string `json:"gender,omitempty"`
	Address  string `json:"address,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	ClassID  string `json:"classId"`
	ParentID string `json:"parentId,omitempty"`
	// Points is the stored accumulator; it only moves through behavior records.
	Points int    `json:"points"`
	Status string `json:"status"`
}

func (s *Student) EntityID() string      { return s.ID }
func (s *Student) SetEntityID(id string) { s.ID = id }
func (s *Student) Clone() Student        { return *s }

type Class struct {
	ID        string `json:"id"`
	ClassName string `json:"className"`
	Level     string `json:"level,omitempty"`
}

// Grade extracts the numeric grade embedded in the class label,
// e.g. "Lớp 3A" -> "3". Empty when no digit run is found.
func (c Class) Grade() string {
	if g := core.FirstDigitRun(c.Level); g != "" {
		return g
	}
	return core.FirstDigitRun(c.ClassName)
}

func (c *Class) EntityID() string      { return c.ID }
func (c *Class) SetEntityID(id string) { c.ID = id }
func (c *Class) Clone() Class          { return *c }

type Parent struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

func (p *Parent) EntityID() string      { return p.ID }
func (p *Parent) SetEntityID(id string) { p.ID = id }
func (p *Parent) Clone() Parent         { return *p }

type Behavior struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Type      string    `json:"type"`
	Points    int       `json:"points"` // signed delta
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

func (b *Behavior) EntityID() string      { return b.ID }
func (b *Behavior) SetEntityID(id string) { b.ID = id }
func (b *Behavior) Clone() Behavior       { return *b }

type Attendance struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"` // YYYY-MM-DD
	Status    string `json:"status"`
	Note      string `json:"note,omitempty"`
}

func (a *Attendance) EntityID() string      { return a.ID }
func (a *Attendance) SetEntityID(id string) { a.ID = id }
func (a *Attendance) Clone() Attendance     { return *a }

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	FullName string `json:"fullName" validate:"required"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
	ClassID  string `json:"classId" validate:"required"`
	ParentID string `json:"parentId"`
}

func (ns *NewStudent) Validate() error {
	ns.FullName = core.CleanString(ns.FullName)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what may be modified on an existing Student.
// Points is absent on purpose; points only move through RecordBehavior.
type UpdateStudent struct {
	FullName string `json:"fullName"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
	ClassID  string `json:"classId"`
	ParentID string `json:"parentId"`
	Status   string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

func (us *UpdateStudent) Validate() error {
	us.FullName = core.CleanString(us.FullName)
	return core.Validate.Struct(us)
}

type NewClass struct {
	ClassName string `json:"className" validate:"required"`
	Level     string `json:"level"`
}

func (nc *NewClass) Validate() error {
	nc.ClassName = core.CleanString(nc.ClassName)
	nc.Level = core.CleanString(nc.Level)
	return core.Validate.Struct(nc)
}

type NewParent struct {
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Relationship string `json:"relationship" validate:"omitempty,oneof=Father Mother Other"`
}

func (np *NewParent) Validate() error {
	np.FullName = core.CleanString(np.FullName)
	np.Email = core.CleanString(np.Email, true /* lower */)
	return core.Validate.Struct(np)
}

// NewBehavior records a praise or warning; its point delta is applied to the
// student's stored points in the same operation.
type NewBehavior struct {
	StudentID string `json:"studentId" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=PRAISE WARN"`
	Points    int    `json:"points"`
	Note      string `json:"note"`
}

func (nb *NewBehavior) Validate() error {
	return core.Validate.Struct(nb)
}

type NewAttendance struct {
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=Present Absent Late"`
	Note      string `json:"note"`
}

func (na *NewAttendance) Validate() error {
	return core.Validate.Struct(na)
}
