package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/eazybee/internal/events"
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

type recorder struct {
	topics []events.Topic
}

func (r *recorder) Publish(topic events.Topic) {
	r.topics = append(r.topics, topic)
}

func fixedClock(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

func TestWatchlistToggle(t *testing.T) {
	pub := &recorder{}
	repos := New(storage.NewMemoryStore(0), pub)

	movie := model.WatchlistEntry{ID: 550, MediaType: model.MediaTypeMovie, Title: "Fight Club"}
	show := model.WatchlistEntry{ID: 550, MediaType: model.MediaTypeTV, Title: "Other"}

	present, err := repos.Watchlist.Toggle(movie)
	require.NoError(t, err)
	assert.True(t, present)

	present, err = repos.Watchlist.Toggle(show)
	require.NoError(t, err)
	assert.True(t, present)

	assert.True(t, repos.Watchlist.Contains(550, model.MediaTypeMovie))
	assert.Equal(t, []model.WatchlistEntry{movie, show}, repos.Watchlist.List())

	present, err = repos.Watchlist.Toggle(movie)
	require.NoError(t, err)
	assert.False(t, present)
	assert.Equal(t, []model.WatchlistEntry{show}, repos.Watchlist.List())

	assert.Equal(t, []events.Topic{events.WatchlistUpdate, events.WatchlistUpdate, events.WatchlistUpdate}, pub.topics)
}

func TestWatchlistRemoveMissingDoesNotPublish(t *testing.T) {
	pub := &recorder{}
	repos := New(storage.NewMemoryStore(0), pub)

	removed, err := repos.Watchlist.Remove(1, model.MediaTypeMovie)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, pub.topics)
}

func TestWatchlistPublishesOnQuota(t *testing.T) {
	pub := &recorder{}
	backend := storage.NewMemoryStore(4)
	repos := New(storage.NewSession("ns", backend), pub)

	present, err := repos.Watchlist.Toggle(model.WatchlistEntry{ID: 1, MediaType: model.MediaTypeMovie, Title: "Long title"})
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
	assert.True(t, present)
	assert.Equal(t, []events.Topic{events.WatchlistUpdate}, pub.topics)

	// 当前会话内仍能读到
	assert.True(t, repos.Watchlist.Contains(1, model.MediaTypeMovie))
}

func TestHistoryRecordUpsertsFront(t *testing.T) {
	pub := &recorder{}
	repos := New(storage.NewMemoryStore(0), pub)

	fixedClock(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	_, err := repos.History.Record(model.WatchHistoryEntry{ID: 1, MediaType: model.MediaTypeMovie})
	require.NoError(t, err)
	_, err = repos.History.Record(model.WatchHistoryEntry{ID: 2, MediaType: model.MediaTypeTV})
	require.NoError(t, err)

	fixedClock(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	entry, err := repos.History.Record(model.WatchHistoryEntry{ID: 1, MediaType: model.MediaTypeMovie})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01T00:00:00.000Z", entry.WatchedAt)

	list := repos.History.List()
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "2024-02-01T00:00:00.000Z", list[0].WatchedAt)
	assert.Equal(t, int64(2), list[1].ID)

	require.NoError(t, repos.History.Clear())
	assert.Empty(t, repos.History.List())
	assert.Len(t, pub.topics, 4)
	for _, topic := range pub.topics {
		assert.Equal(t, events.WatchHistoryUpdate, topic)
	}
}

func TestHistoryKeepsSuppliedTimestamp(t *testing.T) {
	repos := New(storage.NewMemoryStore(0), nil)
	entry, err := repos.History.Record(model.WatchHistoryEntry{ID: 5, WatchedAt: "2023-05-05T00:00:00.000Z"})
	require.NoError(t, err)
	assert.Equal(t, "2023-05-05T00:00:00.000Z", entry.WatchedAt)
}

func TestContinueWatching(t *testing.T) {
	repos := New(storage.NewMemoryStore(0), nil)

	first, err := repos.ContinueWatching.Start(model.ContinueWatchingEntry{ID: 10, MediaType: model.MediaTypeMovie, Progress: 50})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Progress)
	assert.Equal(t, 120, first.Runtime)

	_, err = repos.ContinueWatching.Start(model.ContinueWatchingEntry{ID: 20, MediaType: model.MediaTypeTV, Runtime: 45})
	require.NoError(t, err)

	for range 12 {
		_, ok, err := repos.ContinueWatching.Advance(10, 0)
		require.NoError(t, err)
		require.True(t, ok)
	}

	list := repos.ContinueWatching.List()
	require.Len(t, list, 2)
	assert.Equal(t, int64(10), list[0].ID)
	assert.Equal(t, 100, list[0].Progress)

	// 再次开始不会重置进度
	again, err := repos.ContinueWatching.Start(model.ContinueWatchingEntry{ID: 10, MediaType: model.MediaTypeMovie})
	require.NoError(t, err)
	assert.Equal(t, 100, again.Progress)

	// 只按 id 去重：同 id 的剧集会被当作同一条
	collided, err := repos.ContinueWatching.Start(model.ContinueWatchingEntry{ID: 10, MediaType: model.MediaTypeTV})
	require.NoError(t, err)
	assert.Equal(t, model.MediaTypeMovie, collided.MediaType)

	_, ok, err := repos.ContinueWatching.Advance(999, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := repos.ContinueWatching.Remove(20)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, repos.ContinueWatching.List(), 1)
}

func TestDeleteContentDoesNotCascade(t *testing.T) {
	store := storage.NewMemoryStore(0)
	repos := New(store, nil)

	item := model.LocalContentItem{ID: 1700000000000, Title: "Local", Type: model.ContentTypeMovie}
	require.NoError(t, repos.Content.Add(item))
	require.NoError(t, repos.Content.Add(model.LocalContentItem{ID: 1700000000001, Title: "Other", Type: model.ContentTypeKDrama}))

	_, err := repos.Watchlist.Toggle(model.WatchlistEntry{ID: item.ID, MediaType: model.MediaTypeLocal})
	require.NoError(t, err)
	_, err = repos.ContinueWatching.Start(model.ContinueWatchingEntry{ID: item.ID, MediaType: model.MediaTypeLocal})
	require.NoError(t, err)
	require.NoError(t, repos.Comments.Add(model.MediaTypeLocal, item.ID, model.CommentEntry{ID: "c1", Rating: 5}))

	snapshot := func() map[string]string {
		out := map[string]string{}
		for _, key := range []string{KeyWatchlist, KeyContinueWatching, CommentsKey(model.MediaTypeLocal, item.ID)} {
			raw, _, err := store.Get(key)
			require.NoError(t, err)
			out[key] = string(raw)
		}
		return out
	}
	before := snapshot()

	deleted, err := repos.Content.Delete(item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	list := repos.Content.List()
	require.Len(t, list, 1)
	assert.Equal(t, int64(1700000000001), list[0].ID)
	assert.Equal(t, before, snapshot())
}

func TestContentListByTypeAndUpdate(t *testing.T) {
	repos := New(storage.NewMemoryStore(0), nil)
	for i, typ := range []string{model.ContentTypeMovie, model.ContentTypeTV, model.ContentTypeKDrama, model.ContentTypeCDrama} {
		require.NoError(t, repos.Content.Add(model.LocalContentItem{ID: int64(i + 1), Type: typ}))
	}

	assert.Len(t, repos.Content.ListByType(), 4)
	assert.Len(t, repos.Content.ListByType(model.ContentTypeMovie), 1)
	assert.Len(t, repos.Content.ListByType(model.ContentTypeTV, model.ContentTypeKDrama, model.ContentTypeCDrama), 3)

	found, err := repos.Content.Update(model.LocalContentItem{ID: 2, Type: model.ContentTypeTV, Title: "Edited"})
	require.NoError(t, err)
	assert.True(t, found)
	got, ok := repos.Content.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Edited", got.Title)
}

func TestCommentsNewestFirst(t *testing.T) {
	repos := New(storage.NewMemoryStore(0), nil)
	require.NoError(t, repos.Comments.Add(model.MediaTypeMovie, 7, model.CommentEntry{ID: "a"}))
	require.NoError(t, repos.Comments.Add(model.MediaTypeMovie, 7, model.CommentEntry{ID: "b"}))
	require.NoError(t, repos.Comments.Add(model.MediaTypeTV, 7, model.CommentEntry{ID: "c"}))

	list := repos.Comments.List(model.MediaTypeMovie, 7)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "comments-movie-7", CommentsKey(model.MediaTypeMovie, 7))
}

func TestUsersAndAnnouncements(t *testing.T) {
	repos := New(storage.NewMemoryStore(0), nil)
	require.NoError(t, repos.Users.Add(model.AppUser{ID: 1, FullName: "Jane", Email: "Jane@x.com", Role: model.AppRoleUser}))

	u, ok := repos.Users.Get(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), u.ID)

	u.Role = model.AppRoleAdmin
	found, err := repos.Users.Update(u)
	require.NoError(t, err)
	assert.True(t, found)

	deleted, err := repos.Users.Delete(1)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, repos.Users.List())

	require.NoError(t, repos.Announcements.Add(model.Announcement{ID: 1, Title: "Hi", Type: model.AnnouncementInfo}))
	deleted, err = repos.Announcements.Delete(2)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, repos.Announcements.List(), 1)
}

func TestSessionRepository(t *testing.T) {
	store := storage.NewMemoryStore(0)
	repos := New(store, nil)

	_, _, ok := repos.Session.Load()
	assert.False(t, ok)

	user := &model.SessionUser{ID: "user-1", Name: "a", Email: "a@b.com", Role: model.RoleUser}
	require.NoError(t, repos.Session.Save("tok", user))

	token, got, ok := repos.Session.Load()
	require.True(t, ok)
	assert.Equal(t, "tok", token)
	assert.Equal(t, user, got)

	require.NoError(t, store.Set(KeyUser, []byte("{broken")))
	_, _, ok = repos.Session.Load()
	assert.False(t, ok)

	require.NoError(t, repos.Session.Clear())
	_, ok, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSettingsDefaults(t *testing.T) {
	store := storage.NewMemoryStore(0)
	repos := New(store, nil)
	defaults := model.DefaultSiteSettings("EazyBee")

	assert.Equal(t, defaults, repos.Settings.Load(defaults))

	s := defaults
	s.MaintenanceMode = true
	require.NoError(t, repos.Settings.Save(s))
	assert.True(t, repos.Settings.Load(defaults).MaintenanceMode)

	require.NoError(t, store.Set(KeySettings, []byte("[")))
	assert.Equal(t, defaults, repos.Settings.Load(defaults))
}
