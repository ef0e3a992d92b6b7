package task

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hiendao/smartclass/core/student"
)

func TestResolveAssigned(t *testing.T) {
	tasks := []Task{
		{ID: "t-3a", ClassID: "cls-3a"},
		{ID: "t-4b", ClassID: "cls-4b"},
		{ID: "t-g3", ClassID: GlobalClassID, Grade: "3"},
		{ID: "t-g4", ClassID: GlobalClassID, Grade: "4"},
		{ID: "t-all", ClassID: GlobalClassID},
	}

	ids := func(tasks []Task) []string {
		out := make([]string, 0, len(tasks))
		for _, tk := range tasks {
			out = append(out, tk.ID)
		}
		return out
	}

	tests := []struct {
		name string
		st   student.Student
		cls  student.Class
		want []string
	}{
		{
			name: "class tasks first, then matching global ones",
			st:   student.Student{ID: "s1", ClassID: "cls-3a"},
			cls:  student.Class{ID: "cls-3a", ClassName: "Lớp 3A", Level: "Lớp 3"},
			want: []string{"t-3a", "t-g3", "t-all"},
		},
		{
			name: "grade read from class name when level has no digits",
			st:   student.Student{ID: "s2", ClassID: "cls-4b"},
			cls:  student.Class{ID: "cls-4b", ClassName: "Lớp 4B"},
			want: []string{"t-4b", "t-g4", "t-all"},
		},
		{
			name: "no extractable grade excludes grade-filtered globals",
			st:   student.Student{ID: "s3", ClassID: "cls-x"},
			cls:  student.Class{ID: "cls-x", ClassName: "Mầm non"},
			want: []string{"t-all"},
		},
		{
			name: "dangling class still sees unfiltered globals",
			st:   student.Student{ID: "s4", ClassID: "ghost"},
			cls:  student.Class{},
			want: []string{"t-all"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAssigned(tasks, tt.st, tt.cls)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestResolveAssigned_dedup(t *testing.T) {
	// a global task duplicated in the input counts once, first occurrence wins
	tasks := []Task{
		{ID: "t1", ClassID: "cls-3a"},
		{ID: "t1", ClassID: GlobalClassID},
		{ID: "t2", ClassID: GlobalClassID},
	}
	st := student.Student{ID: "s1", ClassID: "cls-3a"}
	cls := student.Class{ID: "cls-3a", ClassName: "Lớp 3A"}

	got := ResolveAssigned(tasks, st, cls)
	assert.Len(t, got, 2)
	assert.Equal(t, "cls-3a", got[0].ClassID)
	assert.Equal(t, "t2", got[1].ID)
}

func TestSortUnits(t *testing.T) {
	units := []string{"Unit 10", GeneralUnit, "Unit 2", "Unit 1"}
	SortUnits(units)
	assert.Equal(t, []string{"Unit 1", "Unit 2", "Unit 10", GeneralUnit}, units)
}

func TestParseAttachments(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []Attachment
		wantErr bool
	}{
		{name: "empty payload", payload: "  ", want: nil},
		{
			name:    "bare string becomes a link",
			payload: `["https://x.test/doc"]`,
			want:    []Attachment{{Kind: KindLink, URL: "https://x.test/doc", Name: "https://x.test/doc"}},
		},
		{
			name:    "object with kind",
			payload: `[{"kind":"pdf","url":"u","name":"n"}]`,
			want:    []Attachment{{Kind: KindPDF, URL: "u", Name: "n"}},
		},
		{
			name:    "legacy type key",
			payload: `[{"type":"quiz","url":"u","name":"n"}]`,
			want:    []Attachment{{Kind: KindQuiz, URL: "u", Name: "n"}},
		},
		{
			name:    "missing kind defaults to link",
			payload: `[{"url":"u","name":"n"}]`,
			want:    []Attachment{{Kind: KindLink, URL: "u", Name: "n"}},
		},
		{name: "malformed payload", payload: `{nope`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAttachments(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAttachments_degradesOnMalformedPayload(t *testing.T) {
	assert.Nil(t, NormalizeAttachments(`{nope`))
	assert.Len(t, NormalizeAttachments(`["u"]`), 1)
}

func TestParseDueDate(t *testing.T) {
	got, err := ParseDueDate("2026-09-15")
	assert.NoError(t, err)
	assert.Equal(t, 2026, got.Year())

	got, err = ParseDueDate("2026-09-15T08:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 8, got.Hour())

	_, err = ParseDueDate("15/09/2026")
	assert.Error(t, err)
}
