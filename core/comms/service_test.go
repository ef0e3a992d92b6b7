package comms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/comms"
	"github.com/hiendao/smartclass/storage/snapshot"
)

func setup(t *testing.T) *comms.Service {
	db, err := snapshot.Open(&core.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return comms.NewService(snapshot.NewCommsRepository(db), core.NopLogger{})
}

func TestService_FeedFor(t *testing.T) {
	svc := setup(t)

	announce := func(title, classID string, pinned bool) {
		_, err := svc.Announce(comms.NewAnnouncement{Title: title, Content: "c", ClassID: classID, Pinned: pinned})
		require.NoError(t, err)
	}
	announce("broadcast", "all", false)
	announce("for 3a", "cls-3a", false)
	announce("for 4b", "cls-4b", false)
	announce("pinned broadcast", "all", true)

	titles := func(feed []comms.Announcement) []string {
		out := make([]string, 0, len(feed))
		for _, a := range feed {
			out = append(out, a.Title)
		}
		return out
	}

	// class feed: own plus broadcasts, pinned first
	feed, err := svc.FeedFor("cls-3a")
	require.NoError(t, err)
	assert.Equal(t, []string{"pinned broadcast", "broadcast", "for 3a"}, titles(feed))

	// "all" feed carries only the broadcasts
	feed, err = svc.FeedFor("all")
	require.NoError(t, err)
	assert.Equal(t, []string{"pinned broadcast", "broadcast"}, titles(feed))

	_, err = svc.Announce(comms.NewAnnouncement{Title: "no content", ClassID: "all"})
	assert.Error(t, err)
}

func TestService_AddDocument(t *testing.T) {
	svc := setup(t)

	doc, err := svc.AddDocument(comms.NewDocument{Name: "Syllabus", URL: "https://x.test/syllabus"})
	require.NoError(t, err)
	assert.Equal(t, "link", doc.Kind) // kind defaults to link

	doc, err = svc.AddDocument(comms.NewDocument{Name: "Workbook", Kind: "pdf", URL: "https://x.test/wb.pdf", ClassID: "cls-3a"})
	require.NoError(t, err)
	assert.Equal(t, "pdf", doc.Kind)

	_, err = svc.AddDocument(comms.NewDocument{Name: "Bad", Kind: "zip", URL: "u"})
	assert.Error(t, err)

	docs, err := svc.QueryDocuments()
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestService_Messaging(t *testing.T) {
	svc := setup(t)

	m1, err := svc.Send(comms.NewMessage{FromID: "usr-admin", ToID: "usr-ph", Content: "hello"})
	require.NoError(t, err)
	assert.False(t, m1.Read)

	_, err = svc.Send(comms.NewMessage{FromID: "usr-ph", ToID: "usr-admin", Content: "hi back"})
	require.NoError(t, err)

	inbox, err := svc.Inbox("usr-ph")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "hello", inbox[0].Content)

	got, err := svc.MarkRead(m1.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	// the flag sticks
	inbox, err = svc.Inbox("usr-ph")
	require.NoError(t, err)
	assert.True(t, inbox[0].Read)

	_, err = svc.MarkRead("ghost")
	assert.ErrorIs(t, err, comms.ErrNotFound)
}
