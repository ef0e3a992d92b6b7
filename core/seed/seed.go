// Package seed loads the demonstration dataset into a fresh store.
package seed

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/comms"
	"github.com/hiendao/smartclass/core/student"
	"github.com/hiendao/smartclass/core/task"
	"github.com/hiendao/smartclass/core/user"
)

// Seeder populates every collection once. Each seeded row carries a fixed
// well-known id and is guarded by an existence probe, so an interrupted seed
// retried later converges without duplicating rows. Users are seeded last
// and double as the "seeded" marker.
type Seeder struct {
	users    user.Repository
	students student.Repository
	tasks    task.Repository
	comms    comms.Repository
	log      core.Logger
}

func New(users user.Repository, students student.Repository, tasks task.Repository, commsRepo comms.Repository, log core.Logger) *Seeder {
	return &Seeder{users: users, students: students, tasks: tasks, comms: commsRepo, log: log}
}

// EnsureSeeded is a no-op when the Users collection is non-empty. A failure
// surfaces as a shutdown error: the process must not run on a half-seeded
// store, and the next startup retries from the probes.
func (s *Seeder) EnsureSeeded() error {
	if err := s.ensure(); err != nil {
		return core.NewShutdownError(fmt.Sprintf("seeding: %v", err))
	}
	return nil
}

func (s *Seeder) ensure() error {
	existing, err := s.users.QueryAllUsers()
	if err != nil {
		return errors.Wrap(err, "probing users")
	}
	if len(existing) > 0 {
		s.log.Debug("seed: store already populated")
		return nil
	}

	if err = s.seedClasses(); err != nil {
		return errors.Wrap(err, "seeding classes")
	}
	if err = s.seedParents(); err != nil {
		return errors.Wrap(err, "seeding parents")
	}
	if err = s.seedStudents(); err != nil {
		return errors.Wrap(err, "seeding students")
	}
	if err = s.seedBehaviors(); err != nil {
		return errors.Wrap(err, "seeding behaviors")
	}
	if err = s.seedTasks(); err != nil {
		return errors.Wrap(err, "seeding tasks")
	}
	if err = s.seedAnnouncements(); err != nil {
		return errors.Wrap(err, "seeding announcements")
	}
	if err = s.seedUsers(); err != nil {
		return errors.Wrap(err, "seeding users")
	}
	s.log.Info("seed: demonstration dataset loaded")
	return nil
}

func (s *Seeder) seedClasses() error {
	classes := []student.Class{
		{ID: "cls-3a", ClassName: "Lớp 3A", Level: "Lớp 3"},
		{ID: "cls-4b", ClassName: "Lớp 4B", Level: "Lớp 4"},
	}
	for _, cls := range classes {
		if _, err := s.students.GetClassByID(cls.ID); err == nil {
			continue
		} else if !errors.Is(err, student.ErrNotFound) {
			return err
		}
		if _, err := s.students.CreateClass(cls); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedParents() error {
	parents := []student.Parent{
		{ID: "par-mai", FullName: "Trần Thị Mai", Phone: "0901234567", Relationship: student.RelationshipMother},
		{ID: "par-hung", FullName: "Nguyễn Văn Hùng", Phone: "0907654321", Relationship: student.RelationshipFather},
	}
	for _, p := range parents {
		if _, err := s.students.GetParentByID(p.ID); err == nil {
			continue
		} else if !errors.Is(err, student.ErrNotFound) {
			return err
		}
		if _, err := s.students.CreateParent(p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedStudents() error {
	students := []student.Student{
		{ID: "stu-an", FullName: "Nguyễn Văn An", DOB: "2016-09-02", Gender: "Nam", ClassID: "cls-3a", ParentID: "par-mai", Status: student.StatusActive},
		{ID: "stu-binh", FullName: "Trần Thanh Bình", DOB: "2016-03-15", Gender: "Nam", ClassID: "cls-3a", Status: student.StatusActive},
		{ID: "stu-chi", FullName: "Lê Mai Chi", DOB: "2015-11-20", Gender: "Nữ", ClassID: "cls-4b", ParentID: "par-hung", Status: student.StatusActive},
	}
	for _, st := range students {
		if _, err := s.students.GetStudentByID(st.ID); err == nil {
			continue
		} else if !errors.Is(err, student.ErrNotFound) {
			return err
		}
		if _, err := s.students.CreateStudent(st); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedBehaviors() error {
	now := time.Now().UTC()
	behaviors := []student.Behavior{
		{ID: "bhv-01", StudentID: "stu-an", Type: student.BehaviorPraise, Points: 10, Note: "Phát biểu xây dựng bài", CreatedAt: now},
		{ID: "bhv-02", StudentID: "stu-an", Type: student.BehaviorPraise, Points: 15, Note: "Giúp đỡ bạn học", CreatedAt: now},
		{ID: "bhv-03", StudentID: "stu-binh", Type: student.BehaviorPraise, Points: 5, Note: "Làm bài đầy đủ", CreatedAt: now},
		{ID: "bhv-04", StudentID: "stu-chi", Type: student.BehaviorPraise, Points: 12, Note: "Điểm kiểm tra tốt", CreatedAt: now},
	}
	existing, err := s.students.QueryAllBehaviors()
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		seen[b.ID] = struct{}{}
	}
	for _, b := range behaviors {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		// the combined op keeps Student.Points in step with the audit trail
		if _, _, err := s.students.CreateBehaviorAdjustPoints(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedTasks() error {
	due := time.Now().UTC().AddDate(0, 0, 14)
	tasks := []task.Task{
		{
			ID: "tsk-01", ClassID: "cls-3a", Unit: "Unit 1", Title: "Luyện đọc bài 1",
			Description: "Đọc to đoạn văn và thu âm lại.", DueDate: due, RequireReply: true,
			Attachments: []task.Attachment{{Kind: task.KindPDF, URL: "https://example.com/unit1.pdf", Name: "Bài đọc Unit 1"}},
			CreatedAt:   time.Now().UTC(),
		},
		{
			ID: "tsk-02", ClassID: task.GlobalClassID, Grade: "3", Unit: "Unit 1", Title: "Bài tập về nhà khối 3",
			Description: "Hoàn thành phiếu bài tập.", DueDate: due, RequireReply: true,
			CreatedAt: time.Now().UTC(),
		},
		{
			ID: "tsk-03", ClassID: task.GlobalClassID, Title: "Thông báo toàn trường",
			Description: "Xem video hướng dẫn an toàn giao thông.", DueDate: due, RequireReply: false,
			Attachments: []task.Attachment{{Kind: task.KindLink, URL: "https://example.com/video", Name: "Video"}},
			CreatedAt:   time.Now().UTC(),
		},
		{
			ID: "tsk-04", ClassID: "cls-3a", Title: "Ôn tập chung", Description: "Ôn lại từ vựng đã học.",
			DueDate: due, RequireReply: true, CreatedAt: time.Now().UTC(),
		},
	}
	for _, t := range tasks {
		if _, err := s.tasks.GetTaskByID(t.ID); err == nil {
			continue
		} else if !errors.Is(err, task.ErrNotFound) {
			return err
		}
		if _, err := s.tasks.CreateTask(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedAnnouncements() error {
	anns := []comms.Announcement{
		{
			ID: "ann-01", Title: "Chào mừng năm học mới", ClassID: "all", Pinned: true,
			Content:   "Chúc các em một năm học nhiều niềm vui và tiến bộ!",
			CreatedAt: time.Now().UTC(),
		},
	}
	for _, a := range anns {
		if _, err := s.comms.GetAnnouncementByID(a.ID); err == nil {
			continue
		} else if !errors.Is(err, comms.ErrNotFound) {
			return err
		}
		if _, err := s.comms.CreateAnnouncement(a); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedUsers() error {
	accounts := []struct {
		usr user.User
		pwd string
	}{
		{user.User{ID: "usr-admin", Username: "admin", FullName: "Cô Hiền", Role: user.RoleAdmin}, "123"},
		{user.User{ID: "usr-hs", Username: "hs", FullName: "Nguyễn Văn An", Role: user.RoleStudent, RelatedID: "stu-an"}, "123"},
		{user.User{ID: "usr-ph", Username: "ph", FullName: "Trần Thị Mai", Role: user.RoleParent, RelatedID: "par-mai"}, "123"},
	}
	now := time.Now().UTC()
	for _, acc := range accounts {
		if _, err := s.users.GetUserByID(acc.usr.ID); err == nil {
			continue
		} else if !errors.Is(err, user.ErrNotFound) {
			return err
		}
		acc.usr.CreatedAt = now
		acc.usr.UpdatedAt = now
		if err := acc.usr.SetPassword(acc.pwd); err != nil {
			return errors.Wrap(err, fmt.Sprintf("hashing password for %s", acc.usr.Username))
		}
		if _, err := s.users.CreateUser(acc.usr); err != nil {
			return err
		}
	}
	return nil
}
