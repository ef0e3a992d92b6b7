// Package honor computes the honor-board standings: students ranked by
// accumulated points or task progress, decorated with achievement badges.
package honor

import (
	"sort"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/student"
	"github.com/hiendao/smartclass/core/task"
)

// Badges
const (
	BadgeLegend      = "legend"       // global top 3 by points
	BadgeHardworking = "hardworking"  // 100% of assigned tasks done
	BadgeBookworm    = "bookworm"     // at least half done
	BadgeRisingStar  = "rising_star"  // 20+ accumulated points
)

// Sort metrics
const (
	MetricPoints   = "points"
	MetricProgress = "progress"
)

// legendTopN is how many of the global points ranking hold the legend badge.
const legendTopN = 3

const risingStarThreshold = 20

// AllClasses disables class filtering in Standings.
const AllClasses = "all"

// Entry is one row of the honor board. Rank is 1-based within the returned
// standings and recomputed on every call, never stored.
type Entry struct {
	Student   student.Student `json:"student"`
	ClassName string          `json:"className"`
	Points    int             `json:"points"`
	Progress  task.Progress   `json:"progress"`
	Badges    []string        `json:"badges"`
	Rank      int             `json:"rank"`
}

type (
	// ProgressSource supplies batch completion stats (one join pass).
	ProgressSource interface {
		ProgressAll() (map[string]task.Progress, error)
	}

	Service struct {
		dir      task.Directory
		progress ProgressSource
		log      core.Logger
	}
)

func NewService(dir task.Directory, progress ProgressSource, log core.Logger) *Service {
	return &Service{dir: dir, progress: progress, log: log}
}

// Standings returns the honor board for one class, or the whole school when
// classID is empty or AllClasses. Legend badges are decided against the
// unfiltered population, so a class filter never changes who holds legend.
func (svc *Service) Standings(classID, metric string) ([]Entry, error) {
	students, err := svc.dir.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	classes, err := svc.dir.QueryAllClasses()
	if err != nil {
		return nil, err
	}
	progressByStudent, err := svc.progress.ProgressAll()
	if err != nil {
		return nil, err
	}

	classNames := make(map[string]string, len(classes))
	for _, c := range classes {
		classNames[c.ID] = c.ClassName
	}

	entries := make([]Entry, 0, len(students))
	for _, st := range students {
		e := Entry{
			Student:   st,
			ClassName: classNames[st.ClassID], // dangling ref -> empty placeholder
			Points:    st.Points,
			Progress:  progressByStudent[st.ID],
		}
		e.Badges = baseBadges(e)
		entries = append(entries, e)
	}

	for _, i := range legendIndexes(entries) {
		entries[i].Badges = append([]string{BadgeLegend}, entries[i].Badges...)
	}

	if classID != "" && classID != AllClasses {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Student.ClassID == classID {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	Rank(entries, metric)
	return entries, nil
}

// baseBadges evaluates the rank-independent badge rules in their fixed order.
func baseBadges(e Entry) []string {
	var badges []string
	if e.Progress.TotalAssigned > 0 && e.Progress.Percent == 100 {
		badges = append(badges, BadgeHardworking)
	} else if e.Progress.TotalAssigned > 0 && e.Progress.Percent >= 50 {
		badges = append(badges, BadgeBookworm)
	}
	if e.Points >= risingStarThreshold {
		badges = append(badges, BadgeRisingStar)
	}
	return badges
}

// legendIndexes picks the top-3 of the global points ranking, zero-point
// students excluded.
func legendIndexes(entries []Entry) []int {
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return entries[idx[a]].Points > entries[idx[b]].Points
	})
	var top []int
	for _, i := range idx {
		if len(top) == legendTopN {
			break
		}
		if entries[i].Points > 0 {
			top = append(top, i)
		}
	}
	return top
}

// Rank stable-sorts entries by the chosen metric and assigns 1-based ranks.
// Points ties break on progress percent; progress ties break on points.
func Rank(entries []Entry, metric string) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if metric == MetricProgress {
			if a.Progress.Percent != b.Progress.Percent {
				return a.Progress.Percent > b.Progress.Percent
			}
			return a.Points > b.Points
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.Progress.Percent > b.Progress.Percent
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
