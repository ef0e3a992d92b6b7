package snapshot

import (
	"github.com/hiendao/smartclass/core/task"
)

type taskRepository struct {
	db *DB
}

var _ task.Repository = (*taskRepository)(nil)

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) CreateTask(t task.Task) (task.Task, error) {
	return repo.db.tasks.create(t)
}

func (repo *taskRepository) QueryAllTasks() ([]task.Task, error) {
	return repo.db.tasks.list(), nil
}

func (repo *taskRepository) QueryTasksByClass(classID string) ([]task.Task, error) {
	all := repo.db.tasks.list()
	out := make([]task.Task, 0, len(all))
	for _, t := range all {
		if t.ClassID == classID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (repo *taskRepository) GetTaskByID(id string) (task.Task, error) {
	return repo.db.tasks.get(id)
}

func (repo *taskRepository) UpdateTask(t task.Task) (task.Task, error) {
	return repo.db.tasks.update(t)
}

func (repo *taskRepository) DeleteTask(id string) error {
	return repo.db.tasks.remove(id)
}

func (repo *taskRepository) CreateReply(r task.Reply) (task.Reply, error) {
	return repo.db.replies.create(r)
}

func (repo *taskRepository) QueryAllReplies() ([]task.Reply, error) {
	return repo.db.replies.list(), nil
}

func (repo *taskRepository) QueryRepliesByTask(taskID string) ([]task.Reply, error) {
	all := repo.db.replies.list()
	out := make([]task.Reply, 0, len(all))
	for _, r := range all {
		if r.TaskID == taskID {
			out = append(out, r)
		}
	}
	return out, nil
}
