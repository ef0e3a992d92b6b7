package task

import (
	"time"

	"github.com/pkg/errors"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/student"
)

var (
	// errors
	ErrNotFound = errors.New("task not found")
)

type (
	Repository interface {
		CreateTask(t Task) (Task, error)
		QueryAllTasks() ([]Task, error)
		// QueryTasksByClass returns tasks scoped to exactly this class id;
		// pass GlobalClassID for the global ones.
		QueryTasksByClass(classID string) ([]Task, error)
		GetTaskByID(id string) (Task, error)
		UpdateTask(t Task) (Task, error)
		DeleteTask(id string) error

		CreateReply(r Reply) (Reply, error)
		QueryAllReplies() ([]Reply, error)
		QueryRepliesByTask(taskID string) ([]Reply, error)
	}

	// Directory is the read-only window into the people collections that
	// assignment resolution and aggregation join against.
	Directory interface {
		GetStudentByID(id string) (student.Student, error)
		GetClassByID(id string) (student.Class, error)
		QueryAllStudents() ([]student.Student, error)
		QueryAllClasses() ([]student.Class, error)
	}

	Service struct {
		repo Repository
		dir  Directory
		log  core.Logger
	}
)

func NewService(repo Repository, dir Directory, log core.Logger) *Service {
	return &Service{repo: repo, dir: dir, log: log}
}

func (svc *Service) Create(nt NewTask) (Task, error) {
	if err := nt.Validate(); err != nil {
		return Task{}, err
	}
	due, err := ParseDueDate(nt.DueDate)
	if err != nil {
		return Task{}, err
	}
	atts, err := ParseAttachments(nt.AttachmentsJSON)
	if err != nil {
		return Task{}, err
	}
	t := Task{
		ClassID:      nt.ClassID,
		Grade:        nt.Grade,
		Unit:         nt.Unit,
		Title:        nt.Title,
		Description:  nt.Description,
		DueDate:      due,
		RequireReply: nt.RequireReply,
		Attachments:  atts,
		CreatedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateTask(t)
}

func (svc *Service) QueryAll() ([]Task, error) {
	return svc.repo.QueryAllTasks()
}

func (svc *Service) QueryByClass(classID string) ([]Task, error) {
	return svc.repo.QueryTasksByClass(classID)
}

func (svc *Service) GetByID(id string) (Task, error) {
	return svc.repo.GetTaskByID(id)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteTask(id)
}

// Reply stores a student's submission. Duplicate submissions for the same
// (task, student) pair are tolerated; aggregation counts them once.
func (svc *Service) Reply(nr NewReply) (Reply, error) {
	if err := nr.Validate(); err != nil {
		return Reply{}, err
	}
	atts, err := ParseAttachments(nr.AttachmentsJSON)
	if err != nil {
		return Reply{}, err
	}
	r := Reply{
		TaskID:      nr.TaskID,
		StudentID:   nr.StudentID,
		ReplyText:   nr.ReplyText,
		Attachments: atts,
		SubmittedAt: time.Now().UTC(),
	}
	return svc.repo.CreateReply(r)
}

func (svc *Service) GetReplies(taskID string) ([]Reply, error) {
	return svc.repo.QueryRepliesByTask(taskID)
}
