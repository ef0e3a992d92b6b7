package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/comms"
	"github.com/hiendao/smartclass/core/student"
	"github.com/hiendao/smartclass/core/task"
	"github.com/hiendao/smartclass/core/user"
	"github.com/hiendao/smartclass/storage/snapshot"
)

type repos struct {
	users    user.Repository
	students student.Repository
	tasks    task.Repository
	comms    comms.Repository
}

func setup(t *testing.T) (*Seeder, repos) {
	db, err := snapshot.Open(&core.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	r := repos{
		users:    snapshot.NewUserRepository(db),
		students: snapshot.NewStudentRepository(db),
		tasks:    snapshot.NewTaskRepository(db),
		comms:    snapshot.NewCommsRepository(db),
	}
	return New(r.users, r.students, r.tasks, r.comms, core.NopLogger{}), r
}

func counts(t *testing.T, r repos) (users, students, classes, tasks int) {
	us, err := r.users.QueryAllUsers()
	require.NoError(t, err)
	sts, err := r.students.QueryAllStudents()
	require.NoError(t, err)
	cls, err := r.students.QueryAllClasses()
	require.NoError(t, err)
	tks, err := r.tasks.QueryAllTasks()
	require.NoError(t, err)
	return len(us), len(sts), len(cls), len(tks)
}

func TestSeeder_EnsureSeeded(t *testing.T) {
	seeder, r := setup(t)

	require.NoError(t, seeder.EnsureSeeded())

	users, students, classes, tasks := counts(t, r)
	assert.Equal(t, 3, users)
	assert.Equal(t, 3, students)
	assert.Equal(t, 2, classes)
	assert.Equal(t, 4, tasks)

	// demo accounts log in
	admin, err := r.users.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.NoError(t, admin.CheckPassword("123"))
	assert.True(t, admin.IsAdmin())

	hs, err := r.users.GetUserByUsername("hs")
	require.NoError(t, err)
	assert.NoError(t, hs.CheckPassword("123"))
	assert.Equal(t, "stu-an", hs.RelatedID)

	// behavior deltas landed on the stored accumulator
	an, err := r.students.GetStudentByID("stu-an")
	require.NoError(t, err)
	assert.Equal(t, 25, an.Points)
}

func TestSeeder_EnsureSeededIsIdempotent(t *testing.T) {
	seeder, r := setup(t)

	require.NoError(t, seeder.EnsureSeeded())
	u1, s1, c1, t1 := counts(t, r)

	for i := 0; i < 3; i++ {
		require.NoError(t, seeder.EnsureSeeded())
	}

	u2, s2, c2, t2 := counts(t, r)
	assert.Equal(t, u1, u2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, c1, c2)
	assert.Equal(t, t1, t2)

	// points are not re-applied either
	an, err := r.students.GetStudentByID("stu-an")
	require.NoError(t, err)
	assert.Equal(t, 25, an.Points)
}

func TestSeeder_resumesInterruptedSeed(t *testing.T) {
	seeder, r := setup(t)

	require.NoError(t, seeder.EnsureSeeded())

	// drop the users marker, simulating a run that died before the last step
	for _, id := range []string{"usr-admin", "usr-hs", "usr-ph"} {
		require.NoError(t, r.users.DeleteUser(id))
	}

	require.NoError(t, seeder.EnsureSeeded())

	users, students, classes, tasks := counts(t, r)
	assert.Equal(t, 3, users)
	assert.Equal(t, 3, students) // existing rows were probed, not duplicated
	assert.Equal(t, 2, classes)
	assert.Equal(t, 4, tasks)

	an, err := r.students.GetStudentByID("stu-an")
	require.NoError(t, err)
	assert.Equal(t, 25, an.Points) // behavior deltas not re-applied
}
