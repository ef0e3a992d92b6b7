package task

import (
	"math"

	"github.com/hiendao/smartclass/core/student"
)

// Progress is a student's completion stats over their assigned tasks.
type Progress struct {
	TotalAssigned int `json:"totalAssigned"`
	Completed     int `json:"completed"`
	Percent       int `json:"percent"`
}

// UnitSummary is the per-unit completion breakdown; a unit is Done once every
// task in it has a reply.
type UnitSummary struct {
	Unit      string `json:"unit"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Done      bool   `json:"done"`
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// computeProgress counts distinct assigned task ids with at least one reply.
// Duplicate replies for one (task, student) pair count once.
func computeProgress(assigned []Task, replied map[string]struct{}) Progress {
	var completed int
	for _, t := range assigned {
		if _, ok := replied[t.ID]; ok {
			completed++
		}
	}
	return Progress{
		TotalAssigned: len(assigned),
		Completed:     completed,
		Percent:       percent(completed, len(assigned)),
	}
}

// repliedTaskIDs indexes a reply set by student, collapsing duplicates.
func repliedTaskIDs(replies []Reply) map[string]map[string]struct{} {
	byStudent := make(map[string]map[string]struct{})
	for _, r := range replies {
		set, ok := byStudent[r.StudentID]
		if !ok {
			set = make(map[string]struct{})
			byStudent[r.StudentID] = set
		}
		set[r.TaskID] = struct{}{}
	}
	return byStudent
}

// StudentProgress computes one student's completion stats. A dangling class
// reference yields a consistent result instead of an error.
func (svc *Service) StudentProgress(studentID string) (Progress, error) {
	assigned, err := svc.AssignedTasks(studentID)
	if err != nil {
		return Progress{}, err
	}
	replies, err := svc.repo.QueryAllReplies()
	if err != nil {
		return Progress{}, err
	}
	replied := repliedTaskIDs(replies)[studentID]
	return computeProgress(assigned, replied), nil
}

// ProgressAll is the batch form used by the honor board: tasks, replies,
// students and classes are each loaded once and joined in a single pass, so
// it stays numerically identical to StudentProgress without the per-student
// re-querying.
func (svc *Service) ProgressAll() (map[string]Progress, error) {
	students, err := svc.dir.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	classes, err := svc.dir.QueryAllClasses()
	if err != nil {
		return nil, err
	}
	tasks, err := svc.repo.QueryAllTasks()
	if err != nil {
		return nil, err
	}
	replies, err := svc.repo.QueryAllReplies()
	if err != nil {
		return nil, err
	}

	classByID := make(map[string]student.Class, len(classes))
	for _, c := range classes {
		classByID[c.ID] = c
	}
	replied := repliedTaskIDs(replies)

	out := make(map[string]Progress, len(students))
	for _, st := range students {
		assigned := ResolveAssigned(tasks, st, classByID[st.ClassID])
		out[st.ID] = computeProgress(assigned, replied[st.ID])
	}
	return out, nil
}

// UnitSummaries breaks a student's assigned tasks down by unit, ordered by
// the unit's embedded number with the general bucket last.
func (svc *Service) UnitSummaries(studentID string) ([]UnitSummary, error) {
	assigned, err := svc.AssignedTasks(studentID)
	if err != nil {
		return nil, err
	}
	replies, err := svc.repo.QueryAllReplies()
	if err != nil {
		return nil, err
	}
	replied := repliedTaskIDs(replies)[studentID]

	byUnit := make(map[string]*UnitSummary)
	var units []string
	for _, t := range assigned {
		sum, ok := byUnit[t.Unit]
		if !ok {
			sum = &UnitSummary{Unit: t.Unit}
			byUnit[t.Unit] = sum
			units = append(units, t.Unit)
		}
		sum.Total++
		if _, done := replied[t.ID]; done {
			sum.Completed++
		}
	}
	SortUnits(units)

	out := make([]UnitSummary, 0, len(units))
	for _, u := range units {
		sum := byUnit[u]
		sum.Done = sum.Total > 0 && sum.Completed == sum.Total
		out = append(out, *sum)
	}
	return out, nil
}
