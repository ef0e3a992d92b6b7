package comms

import (
	"time"

	"github.com/pkg/errors"

	"github.com/hiendao/smartclass/core"
)

var (
	// errors
	ErrNotFound = errors.New("record not found")
)

type (
	Repository interface {
		CreateAnnouncement(a Announcement) (Announcement, error)
		QueryAllAnnouncements() ([]Announcement, error)
		GetAnnouncementByID(id string) (Announcement, error)
		UpdateAnnouncement(a Announcement) (Announcement, error)
		DeleteAnnouncement(id string) error

		CreateDocument(d Document) (Document, error)
		QueryAllDocuments() ([]Document, error)
		GetDocumentByID(id string) (Document, error)
		DeleteDocument(id string) error

		CreateMessage(m Message) (Message, error)
		QueryAllMessages() ([]Message, error)
		GetMessageByID(id string) (Message, error)
		UpdateMessage(m Message) (Message, error)
	}

	Service struct {
		repo Repository
		log  core.Logger
	}
)

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (svc *Service) Announce(na NewAnnouncement) (Announcement, error) {
	if err := na.Validate(); err != nil {
		return Announcement{}, err
	}
	return svc.repo.CreateAnnouncement(Announcement{
		Title:     na.Title,
		Content:   na.Content,
		ClassID:   na.ClassID,
		Pinned:    na.Pinned,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) QueryAnnouncements() ([]Announcement, error) {
	return svc.repo.QueryAllAnnouncements()
}

// FeedFor returns announcements visible to one class: its own plus the
// school-wide ones, pinned entries first.
func (svc *Service) FeedFor(classID string) ([]Announcement, error) {
	all, err := svc.repo.QueryAllAnnouncements()
	if err != nil {
		return nil, err
	}
	feed := make([]Announcement, 0, len(all))
	for _, a := range all {
		if a.Pinned && (a.ClassID == classID || a.ClassID == "all") {
			feed = append(feed, a)
		}
	}
	for _, a := range all {
		if !a.Pinned && (a.ClassID == classID || a.ClassID == "all") {
			feed = append(feed, a)
		}
	}
	return feed, nil
}

func (svc *Service) DeleteAnnouncement(id string) error {
	return svc.repo.DeleteAnnouncement(id)
}

func (svc *Service) AddDocument(nd NewDocument) (Document, error) {
	if err := nd.Validate(); err != nil {
		return Document{}, err
	}
	kind := nd.Kind
	if kind == "" {
		kind = "link"
	}
	return svc.repo.CreateDocument(Document{
		Name:      nd.Name,
		Kind:      kind,
		URL:       nd.URL,
		ClassID:   nd.ClassID,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) QueryDocuments() ([]Document, error) {
	return svc.repo.QueryAllDocuments()
}

func (svc *Service) DeleteDocument(id string) error {
	return svc.repo.DeleteDocument(id)
}

func (svc *Service) Send(nm NewMessage) (Message, error) {
	if err := nm.Validate(); err != nil {
		return Message{}, err
	}
	return svc.repo.CreateMessage(Message{
		FromID:  nm.FromID,
		ToID:    nm.ToID,
		Content: nm.Content,
		SentAt:  time.Now().UTC(),
	})
}

// Inbox lists messages addressed to the given participant, newest last.
func (svc *Service) Inbox(userID string) ([]Message, error) {
	all, err := svc.repo.QueryAllMessages()
	if err != nil {
		return nil, err
	}
	inbox := make([]Message, 0, len(all))
	for _, m := range all {
		if m.ToID == userID {
			inbox = append(inbox, m)
		}
	}
	return inbox, nil
}

func (svc *Service) MarkRead(id string) (Message, error) {
	m, err := svc.repo.GetMessageByID(id)
	if err != nil {
		return Message{}, err
	}
	m.Read = true
	return svc.repo.UpdateMessage(m)
}
