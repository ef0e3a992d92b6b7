package snapshot

import (
	"github.com/hiendao/smartclass/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(st student.Student) (student.Student, error) {
	return repo.db.students.create(st)
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	return repo.db.students.list(), nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	return repo.db.students.get(id)
}

func (repo *studentRepository) UpdateStudent(st student.Student) (student.Student, error) {
	return repo.db.students.update(st)
}

func (repo *studentRepository) DeleteStudent(id string) error {
	return repo.db.students.remove(id)
}

func (repo *studentRepository) CreateClass(cls student.Class) (student.Class, error) {
	return repo.db.classes.create(cls)
}

func (repo *studentRepository) QueryAllClasses() ([]student.Class, error) {
	return repo.db.classes.list(), nil
}

func (repo *studentRepository) GetClassByID(id string) (student.Class, error) {
	return repo.db.classes.get(id)
}

func (repo *studentRepository) UpdateClass(cls student.Class) (student.Class, error) {
	return repo.db.classes.update(cls)
}

func (repo *studentRepository) DeleteClass(id string) error {
	return repo.db.classes.remove(id)
}

func (repo *studentRepository) CreateParent(p student.Parent) (student.Parent, error) {
	return repo.db.parents.create(p)
}

func (repo *studentRepository) QueryAllParents() ([]student.Parent, error) {
	return repo.db.parents.list(), nil
}

func (repo *studentRepository) GetParentByID(id string) (student.Parent, error) {
	return repo.db.parents.get(id)
}

func (repo *studentRepository) UpdateParent(p student.Parent) (student.Parent, error) {
	return repo.db.parents.update(p)
}

func (repo *studentRepository) DeleteParent(id string) error {
	return repo.db.parents.remove(id)
}

// CreateBehaviorAdjustPoints commits the behavior audit row and the matching
// Student.Points adjustment under one write lock; the stored accumulator
// never drops below zero.
func (repo *studentRepository) CreateBehaviorAdjustPoints(b student.Behavior) (student.Behavior, student.Student, error) {
	db := repo.db
	db.mu.Lock()
	defer db.mu.Unlock()

	i, ok := db.students.idx[b.StudentID]
	if !ok {
		return student.Behavior{}, student.Student{}, student.ErrNotFound
	}

	created, err := db.behaviors.createLocked(b)
	if err != nil {
		return student.Behavior{}, student.Student{}, err
	}

	st := &db.students.rows[i]
	prevPoints := st.Points
	st.Points += b.Points
	if st.Points < 0 {
		st.Points = 0
	}
	if err = db.students.save(); err != nil {
		// undo both halves; a half-applied mutation must not stay visible
		st.Points = prevPoints
		db.behaviors.rows = db.behaviors.rows[:len(db.behaviors.rows)-1]
		delete(db.behaviors.idx, created.ID)
		_ = db.behaviors.save()
		return student.Behavior{}, student.Student{}, err
	}
	return created, st.Clone(), nil
}

func (repo *studentRepository) QueryAllBehaviors() ([]student.Behavior, error) {
	return repo.db.behaviors.list(), nil
}

func (repo *studentRepository) QueryBehaviorsByStudent(studentID string) ([]student.Behavior, error) {
	all := repo.db.behaviors.list()
	out := make([]student.Behavior, 0, len(all))
	for _, b := range all {
		if b.StudentID == studentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (repo *studentRepository) CreateAttendance(a student.Attendance) (student.Attendance, error) {
	return repo.db.attendance.create(a)
}

func (repo *studentRepository) QueryAllAttendance() ([]student.Attendance, error) {
	return repo.db.attendance.list(), nil
}

func (repo *studentRepository) QueryAttendanceByStudent(studentID string) ([]student.Attendance, error) {
	all := repo.db.attendance.list()
	out := make([]student.Attendance, 0, len(all))
	for _, a := range all {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}
