package snapshot

import (
	"github.com/hiendao/smartclass/core/comms"
)

type commsRepository struct {
	db *DB
}

var _ comms.Repository = (*commsRepository)(nil)

func NewCommsRepository(db *DB) comms.Repository {
	return &commsRepository{db: db}
}

func (repo *commsRepository) CreateAnnouncement(a comms.Announcement) (comms.Announcement, error) {
	return repo.db.announcements.create(a)
}

func (repo *commsRepository) QueryAllAnnouncements() ([]comms.Announcement, error) {
	return repo.db.announcements.list(), nil
}

func (repo *commsRepository) GetAnnouncementByID(id string) (comms.Announcement, error) {
	return repo.db.announcements.get(id)
}

func (repo *commsRepository) UpdateAnnouncement(a comms.Announcement) (comms.Announcement, error) {
	return repo.db.announcements.update(a)
}

func (repo *commsRepository) DeleteAnnouncement(id string) error {
	return repo.db.announcements.remove(id)
}

func (repo *commsRepository) CreateDocument(d comms.Document) (comms.Document, error) {
	return repo.db.documents.create(d)
}

func (repo *commsRepository) QueryAllDocuments() ([]comms.Document, error) {
	return repo.db.documents.list(), nil
}

func (repo *commsRepository) GetDocumentByID(id string) (comms.Document, error) {
	return repo.db.documents.get(id)
}

func (repo *commsRepository) DeleteDocument(id string) error {
	return repo.db.documents.remove(id)
}

func (repo *commsRepository) CreateMessage(m comms.Message) (comms.Message, error) {
	return repo.db.messages.create(m)
}

func (repo *commsRepository) QueryAllMessages() ([]comms.Message, error) {
	return repo.db.messages.list(), nil
}

func (repo *commsRepository) GetMessageByID(id string) (comms.Message, error) {
	return repo.db.messages.get(id)
}

func (repo *commsRepository) UpdateMessage(m comms.Message) (comms.Message, error) {
	return repo.db.messages.update(m)
}
