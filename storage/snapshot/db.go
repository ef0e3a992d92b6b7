// Package snapshot is the portal's entity store: in-memory tables behind the
// domain repository interfaces, with every mutation synchronously rewriting
// that collection's JSON snapshot (temp file + rename) before returning.
// A single RWMutex serializes writes; reads may fan out concurrently.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/comms"
	"github.com/hiendao/smartclass/core/student"
	"github.com/hiendao/smartclass/core/task"
	"github.com/hiendao/smartclass/core/user"
)

// row is what every stored record must provide: a stable id and a deep copy.
// The copies keep callers from mutating table state without an update call.
type row[T any] interface {
	EntityID() string
	SetEntityID(string)
	Clone() T
}

type DB struct {
	dir string
	mu  sync.RWMutex

	users         *collection[userRow, *userRow]
	students      *collection[student.Student, *student.Student]
	classes       *collection[student.Class, *student.Class]
	parents       *collection[student.Parent, *student.Parent]
	behaviors     *collection[student.Behavior, *student.Behavior]
	attendance    *collection[student.Attendance, *student.Attendance]
	tasks         *collection[task.Task, *task.Task]
	replies       *collection[task.Reply, *task.Reply]
	announcements *collection[comms.Announcement, *comms.Announcement]
	documents     *collection[comms.Document, *comms.Document]
	messages      *collection[comms.Message, *comms.Message]
}

// Open restores all collections from the snapshot directory, creating it
// when absent.
func Open(conf *core.Config) (*DB, error) {
	if err := os.MkdirAll(conf.DataDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	db := &DB{dir: conf.DataDir}

	var err error
	if db.users, err = newCollection[userRow](db, "users", user.ErrNotFound); err != nil {
		return nil, err
	}
	if db.students, err = newCollection[student.Student](db, "students", student.ErrNotFound); err != nil {
		return nil, err
	}
	if db.classes, err = newCollection[student.Class](db, "classes", student.ErrNotFound); err != nil {
		return nil, err
	}
	if db.parents, err = newCollection[student.Parent](db, "parents", student.ErrNotFound); err != nil {
		return nil, err
	}
	if db.behaviors, err = newCollection[student.Behavior](db, "behaviors", student.ErrNotFound); err != nil {
		return nil, err
	}
	if db.attendance, err = newCollection[student.Attendance](db, "attendance", student.ErrNotFound); err != nil {
		return nil, err
	}
	if db.tasks, err = newCollection[task.Task](db, "tasks", task.ErrNotFound); err != nil {
		return nil, err
	}
	if db.replies, err = newCollection[task.Reply](db, "task_replies", task.ErrNotFound); err != nil {
		return nil, err
	}
	if db.announcements, err = newCollection[comms.Announcement](db, "announcements", comms.ErrNotFound); err != nil {
		return nil, err
	}
	if db.documents, err = newCollection[comms.Document](db, "documents", comms.ErrNotFound); err != nil {
		return nil, err
	}
	if db.messages, err = newCollection[comms.Message](db, "messages", comms.ErrNotFound); err != nil {
		return nil, err
	}
	return db, nil
}

// collection is one persisted table. Rows keep insertion order; idx maps
// entity id to slice position.
type collection[T any, PT interface {
	row[T]
	*T
}] struct {
	db       *DB
	name     string
	notFound error
	rows     []T
	idx      map[string]int
}

func newCollection[T any, PT interface {
	row[T]
	*T
}](db *DB, name string, notFound error) (*collection[T, PT], error) {
	c := &collection[T, PT]{db: db, name: name, notFound: notFound, idx: make(map[string]int)}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *collection[T, PT]) path() string {
	return filepath.Join(c.db.dir, c.name+".json")
}

func (c *collection[T, PT]) load() error {
	data, err := os.ReadFile(c.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "loading %s snapshot", c.name)
	}
	if err = json.Unmarshal(data, &c.rows); err != nil {
		return errors.Wrapf(err, "decoding %s snapshot", c.name)
	}
	c.reindex()
	return nil
}

func (c *collection[T, PT]) reindex() {
	c.idx = make(map[string]int, len(c.rows))
	for i := range c.rows {
		c.idx[PT(&c.rows[i]).EntityID()] = i
	}
}

// save rewrites the whole collection snapshot atomically. Callers hold the
// DB write lock.
func (c *collection[T, PT]) save() error {
	data, err := json.MarshalIndent(c.rows, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s snapshot", c.name)
	}
	tmp := c.path() + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s snapshot", c.name)
	}
	if err = os.Rename(tmp, c.path()); err != nil {
		return errors.Wrapf(err, "committing %s snapshot", c.name)
	}
	return nil
}

func (c *collection[T, PT]) list() []T {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	out := make([]T, len(c.rows))
	for i := range c.rows {
		out[i] = PT(&c.rows[i]).Clone()
	}
	return out
}

func (c *collection[T, PT]) get(id string) (T, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	i, ok := c.idx[id]
	if !ok {
		var zero T
		return zero, c.notFound
	}
	return PT(&c.rows[i]).Clone(), nil
}

func (c *collection[T, PT]) create(v T) (T, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	return c.createLocked(v)
}

func (c *collection[T, PT]) createLocked(v T) (T, error) {
	var zero T
	pv := PT(&v)
	if pv.EntityID() == "" {
		pv.SetEntityID(uuid.NewString())
	}
	id := pv.EntityID()
	if _, exists := c.idx[id]; exists {
		return zero, errors.Errorf("%s: duplicate id %q", c.name, id)
	}

	c.rows = append(c.rows, pv.Clone())
	c.idx[id] = len(c.rows) - 1
	if err := c.save(); err != nil {
		// roll back; the failed write must not become visible
		c.rows = c.rows[:len(c.rows)-1]
		delete(c.idx, id)
		return zero, err
	}
	return pv.Clone(), nil
}

func (c *collection[T, PT]) update(v T) (T, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	var zero T
	pv := PT(&v)
	i, ok := c.idx[pv.EntityID()]
	if !ok {
		return zero, c.notFound
	}

	prev := c.rows[i]
	c.rows[i] = pv.Clone()
	if err := c.save(); err != nil {
		c.rows[i] = prev
		return zero, err
	}
	return pv.Clone(), nil
}

func (c *collection[T, PT]) remove(id string) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	i, ok := c.idx[id]
	if !ok {
		return c.notFound
	}

	prev := c.rows
	c.rows = append(append([]T{}, c.rows[:i]...), c.rows[i+1:]...)
	c.reindex()
	if err := c.save(); err != nil {
		c.rows = prev
		c.reindex()
		return err
	}
	return nil
}

func (c *collection[T, PT]) count() int {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()
	return len(c.rows)
}
