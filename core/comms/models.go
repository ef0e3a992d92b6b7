package comms

import (
	"time"

	"github.com/hiendao/smartclass/core"
)

type Announcement struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// ClassID scopes the announcement; "all" broadcasts it school-wide.
	ClassID   string    `json:"classId"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

func (a *Announcement) EntityID() string      { return a.ID }
func (a *Announcement) SetEntityID(id string) { a.ID = id }
func (a *Announcement) Clone() Announcement   { return *a }

type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	URL       string    `json:"url"`
	ClassID   string    `json:"classId"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

func (d *Document) EntityID() string      { return d.ID }
func (d *Document) SetEntityID(id string) { d.ID = id }
func (d *Document) Clone() Document       { return *d }

type Message struct {
	ID      string    `json:"id"`
	FromID  string    `json:"fromId"`
	ToID    string    `json:"toId"`
	Content string    `json:"content"`
	Read    bool      `json:"read"`
	SentAt  time.Time `json:"sentAt"` // UTC
}

func (m *Message) EntityID() string      { return m.ID }
func (m *Message) SetEntityID(id string) { m.ID = id }
func (m *Message) Clone() Message        { return *m }

type NewAnnouncement struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	ClassID string `json:"classId" validate:"required"`
	Pinned  bool   `json:"pinned"`
}

func (na *NewAnnouncement) Validate() error {
	na.Title = core.CleanString(na.Title)
	return core.Validate.Struct(na)
}

type NewDocument struct {
	Name    string `json:"name" validate:"required"`
	Kind    string `json:"kind" validate:"omitempty,oneof=link file pdf quiz"`
	URL     string `json:"url" validate:"required"`
	ClassID string `json:"classId"`
}

func (nd *NewDocument) Validate() error {
	nd.Name = core.CleanString(nd.Name)
	return core.Validate.Struct(nd)
}

type NewMessage struct {
	FromID  string `json:"fromId" validate:"required"`
	ToID    string `json:"toId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (nm *NewMessage) Validate() error {
	return core.Validate.Struct(nm)
}
