package task

import (
	"encoding/json"
	"time"

	"github.com/hiendao/smartclass/core"
)

// GlobalClassID marks a task visible across classes (optionally grade-filtered).
const GlobalClassID = "all"

// Attachment kinds
const (
	KindLink = "link"
	KindFile = "file"
	KindPDF  = "pdf"
	KindQuiz = "quiz"
)

// Attachment is the normalized form of a task/reply attachment. Legacy
// payloads sometimes carry bare string URLs; those are upgraded to
// {kind: link} once at the storage boundary instead of re-sniffed per read.
type Attachment struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ParseAttachments decodes an attachment-list payload, upgrading legacy
// bare-string entries. A syntactically invalid payload is an error; callers
// on the read path degrade it to an empty list via NormalizeAttachments.
func ParseAttachments(payload string) ([]Attachment, error) {
	if core.CleanString(payload) == "" {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, core.NewValidationError(err, core.FieldError{Field: "attachments", Error: "malformed attachment payload"})
	}
	atts := make([]Attachment, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			atts = append(atts, Attachment{Kind: KindLink, URL: s, Name: s})
			continue
		}
		var obj struct {
			Kind string `json:"kind"`
			Type string `json:"type"` // legacy key
			URL  string `json:"url"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		kind := obj.Kind
		if kind == "" {
			kind = obj.Type
		}
		if kind == "" {
			kind = KindLink
		}
		atts = append(atts, Attachment{Kind: kind, URL: obj.URL, Name: obj.Name})
	}
	return atts, nil
}

// NormalizeAttachments is the tolerant read-path variant of ParseAttachments:
// malformed payloads degrade to an empty list.
func NormalizeAttachments(payload string) []Attachment {
	atts, err := ParseAttachments(payload)
	if err != nil {
		return nil
	}
	return atts
}

type Task struct {
	ID      string `json:"id"`
	ClassID string `json:"classId"` // a class id, or "all"
	// Grade filters a global task to classes whose label embeds this number.
	Grade        string       `json:"grade,omitempty"`
	Unit         string       `json:"unit,omitempty"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	DueDate      time.Time    `json:"dueDate"`
	RequireReply bool         `json:"requireReply"`
	Attachments  []Attachment `json:"attachments,omitempty"`
	CreatedAt    time.Time    `json:"created_at"` // UTC
}

func (t *Task) EntityID() string      { return t.ID }
func (t *Task) SetEntityID(id string) { t.ID = id }

func (t *Task) Clone() Task {
	cp := *t
	if t.Attachments != nil {
		cp.Attachments = append([]Attachment(nil), t.Attachments...)
	}
	return cp
}

type Reply struct {
	ID          string       `json:"id"`
	TaskID      string       `json:"taskId"`
	StudentID   string       `json:"studentId"`
	ReplyText   string       `json:"replyText"`
	Attachments []Attachment `json:"attachments,omitempty"`
	SubmittedAt time.Time    `json:"submittedAt"` // UTC
}

func (r *Reply) EntityID() string      { return r.ID }
func (r *Reply) SetEntityID(id string) { r.ID = id }

func (r *Reply) Clone() Reply {
	cp := *r
	if r.Attachments != nil {
		cp.Attachments = append([]Attachment(nil), r.Attachments...)
	}
	return cp
}

// NewTask contains information needed to assign a new Task.
type NewTask struct {
	ClassID      string `json:"classId" validate:"required"`
	Grade        string `json:"grade"`
	Unit         string `json:"unit"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	DueDate      string `json:"dueDate" validate:"required"`
	RequireReply bool   `json:"requireReply"`
	// AttachmentsJSON carries the raw attachment-list payload from the form.
	AttachmentsJSON string `json:"attachmentsJson"`
}

func (nt *NewTask) Validate() error {
	nt.Title = core.CleanString(nt.Title)
	nt.Unit = core.CleanString(nt.Unit)
	nt.Grade = core.CleanString(nt.Grade)
	return core.Validate.Struct(nt)
}

// NewReply contains a student's submission for a task.
type NewReply struct {
	TaskID          string `json:"taskId" validate:"required"`
	StudentID       string `json:"studentId" validate:"required"`
	ReplyText       string `json:"replyText" validate:"required"`
	AttachmentsJSON string `json:"attachmentsJson"`
}

func (nr *NewReply) Validate() error {
	nr.ReplyText = core.CleanString(nr.ReplyText)
	return core.Validate.Struct(nr)
}

var dueDateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDueDate accepts the date formats the portal forms produce.
func ParseDueDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, core.NewValidationError(lastErr, core.FieldError{Field: "dueDate", Error: "unparseable date"})
}
