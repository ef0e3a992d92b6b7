package honor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/honor"
	"github.com/hiendao/smartclass/core/student"
	"github.com/hiendao/smartclass/core/task"
	"github.com/hiendao/smartclass/storage/snapshot"
)

type fixture struct {
	svc      *honor.Service
	students student.Repository
	tasks    task.Repository
}

func setup(t *testing.T) fixture {
	db, err := snapshot.Open(&core.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	stdRepo := snapshot.NewStudentRepository(db)
	tskRepo := snapshot.NewTaskRepository(db)
	tskSvc := task.NewService(tskRepo, stdRepo, core.NopLogger{})
	return fixture{
		svc:      honor.NewService(stdRepo, tskSvc, core.NopLogger{}),
		students: stdRepo,
		tasks:    tskRepo,
	}
}

func (f fixture) createStudent(t *testing.T, id, classID string, points int) {
	_, err := f.students.CreateStudent(student.Student{ID: id, FullName: id, ClassID: classID, Points: points, Status: student.StatusActive})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
}

func (f fixture) createClass(t *testing.T, id, name string) {
	if _, err := f.students.CreateClass(student.Class{ID: id, ClassName: name}); err != nil {
		t.Fatalf("createClass() failed: %v", err)
	}
}

func (f fixture) createTasks(t *testing.T, classID string, n int) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tsk, err := f.tasks.CreateTask(task.Task{ClassID: classID, Title: "task"})
		if err != nil {
			t.Fatalf("createTasks() failed: %v", err)
		}
		ids = append(ids, tsk.ID)
	}
	return ids
}

func (f fixture) reply(t *testing.T, studentID string, taskIDs ...string) {
	for _, id := range taskIDs {
		if _, err := f.tasks.CreateReply(task.Reply{TaskID: id, StudentID: studentID, ReplyText: "done"}); err != nil {
			t.Fatalf("reply() failed: %v", err)
		}
	}
}

func ids(entries []honor.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Student.ID)
	}
	return out
}

func TestService_Standings_rankingAndTieBreaks(t *testing.T) {
	f := setup(t)
	f.createClass(t, "cls-3a", "Lớp 3A")

	// a and b tie on points; a is further along
	f.createStudent(t, "a", "cls-3a", 25)
	f.createStudent(t, "b", "cls-3a", 25)
	f.createStudent(t, "c", "cls-3a", 10)

	tasks := f.createTasks(t, "cls-3a", 4)
	f.reply(t, "a", tasks...)
	f.reply(t, "b", tasks[0], tasks[1])
	f.reply(t, "c", tasks...)

	entries, err := f.svc.Standings(honor.AllClasses, honor.MetricPoints)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(entries))
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})

	// progress metric: c's 100% ties a's, points break it
	entries, err = f.svc.Standings(honor.AllClasses, honor.MetricProgress)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(entries))
}

func TestService_Standings_badges(t *testing.T) {
	f := setup(t)
	f.createClass(t, "cls-3a", "Lớp 3A")

	f.createStudent(t, "full", "cls-3a", 25)   // 100% + 20+ pts
	f.createStudent(t, "half", "cls-3a", 19)   // exactly 50%, below the star line
	f.createStudent(t, "low", "cls-3a", 20)    // 25%, at the star line
	f.createStudent(t, "idle", "cls-3a", 0)    // nothing at all

	tasks := f.createTasks(t, "cls-3a", 4)
	f.reply(t, "full", tasks...)
	f.reply(t, "half", tasks[0], tasks[1])
	f.reply(t, "low", tasks[0])

	entries, err := f.svc.Standings(honor.AllClasses, honor.MetricPoints)
	require.NoError(t, err)

	byID := make(map[string]honor.Entry, len(entries))
	for _, e := range entries {
		byID[e.Student.ID] = e
	}

	assert.Equal(t, []string{honor.BadgeLegend, honor.BadgeHardworking, honor.BadgeRisingStar}, byID["full"].Badges)
	assert.Equal(t, []string{honor.BadgeLegend, honor.BadgeBookworm}, byID["half"].Badges)
	assert.Equal(t, []string{honor.BadgeLegend, honor.BadgeRisingStar}, byID["low"].Badges)
	assert.Empty(t, byID["idle"].Badges) // zero points never makes legend
}

func TestService_Standings_hardworkingNeedsAssignedWork(t *testing.T) {
	f := setup(t)
	f.createClass(t, "cls-3a", "Lớp 3A")
	f.createStudent(t, "a", "cls-3a", 5)

	// no tasks at all: 0/0 is not 100%
	entries, err := f.svc.Standings(honor.AllClasses, honor.MetricPoints)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Badges, honor.BadgeHardworking)
}

func TestService_Standings_legendIsGlobal(t *testing.T) {
	f := setup(t)
	f.createClass(t, "cls-3a", "Lớp 3A")
	f.createClass(t, "cls-4b", "Lớp 4B")

	// the school's top 3 by points sit in 3A
	f.createStudent(t, "a1", "cls-3a", 50)
	f.createStudent(t, "a2", "cls-3a", 40)
	f.createStudent(t, "a3", "cls-3a", 30)
	f.createStudent(t, "b1", "cls-4b", 20)
	f.createStudent(t, "b2", "cls-4b", 10)

	// filtering to 4B must not promote b1/b2 into legend
	entries, err := f.svc.Standings("cls-4b", honor.MetricPoints)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"b1", "b2"}, ids(entries))
	for _, e := range entries {
		assert.NotContains(t, e.Badges, honor.BadgeLegend)
	}
	assert.Equal(t, 1, entries[0].Rank) // ranks are recomputed within the filter
	assert.Equal(t, "Lớp 4B", entries[0].ClassName)
}

func TestService_Standings_danglingClassRef(t *testing.T) {
	f := setup(t)
	f.createStudent(t, "a", "ghost", 5)

	entries, err := f.svc.Standings(honor.AllClasses, honor.MetricPoints)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].ClassName)
}
