package task

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/student"
)

// ResolveAssigned computes the set of tasks visible to a student:
// tasks scoped to the student's class, plus global tasks whose grade filter
// (if any) matches the grade extracted from the class label. A grade-filtered
// global task is excluded when the class has no extractable grade digit.
// Deduplicated by task id, first occurrence wins.
func ResolveAssigned(all []Task, st student.Student, cls student.Class) []Task {
	grade := cls.Grade()
	assigned := make([]Task, 0, len(all))
	seen := make(map[string]struct{}, len(all))

	keep := func(t Task) {
		if _, dup := seen[t.ID]; dup {
			return
		}
		seen[t.ID] = struct{}{}
		assigned = append(assigned, t)
	}

	for _, t := range all {
		if t.ClassID == st.ClassID {
			keep(t)
		}
	}
	for _, t := range all {
		if t.ClassID != GlobalClassID {
			continue
		}
		if t.Grade == "" || t.Grade == grade {
			keep(t)
		}
	}
	return assigned
}

// AssignedTasks resolves the student and their class, then applies
// ResolveAssigned. A dangling class reference degrades to the empty class.
func (svc *Service) AssignedTasks(studentID string) ([]Task, error) {
	st, err := svc.dir.GetStudentByID(studentID)
	if err != nil {
		return nil, err
	}
	var cls student.Class
	if c, err := svc.dir.GetClassByID(st.ClassID); err == nil {
		cls = c
	}
	all, err := svc.repo.QueryAllTasks()
	if err != nil {
		return nil, err
	}
	return ResolveAssigned(all, st, cls), nil
}

// GeneralUnit labels the bucket for tasks without a unit; they are grouped
// there rather than dropped.
const GeneralUnit = ""

// SortUnits orders unit labels by their embedded number ("Unit 2" before
// "Unit 10"); the general bucket sorts last.
func SortUnits(units []string) {
	num := func(u string) int {
		n, _ := strconv.Atoi(core.FirstDigitRun(u))
		return n
	}
	sort.SliceStable(units, func(i, j int) bool {
		if (units[i] == GeneralUnit) != (units[j] == GeneralUnit) {
			return units[j] == GeneralUnit
		}
		if a, b := num(units[i]), num(units[j]); a != b {
			return a < b
		}
		return strings.Compare(units[i], units[j]) < 0
	})
}
