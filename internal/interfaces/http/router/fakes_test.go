package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/domain/repository"
)

// memStore 内存仓储，满足三个仓储接口
type memStore struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	stories  map[string]*entity.Story
	chapters []*entity.Chapter
	likes    []*entity.Like
	comments []*entity.Comment
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]*entity.User),
		stories: make(map[string]*entity.Story),
	}
}

// tick 保证创建时间严格递增
func (m *memStore) tick() time.Time {
	m.seq++
	return time.Date(2024, 1, 1, 0, 0, m.seq, 0, time.UTC)
}

type memUsers struct{ *memStore }
type memStories struct{ *memStore }
type memSocial struct{ *memStore }

var (
	_ repository.UserRepository   = memUsers{}
	_ repository.StoryRepository  = memStories{}
	_ repository.SocialRepository = memSocial{}
)

func (m memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.NewString()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memUsers) UpdatePreferences(_ context.Context, id string, prefs entity.Preferences) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if prefs == nil {
		prefs = entity.Preferences{}
	}
	u.Preferences = prefs
	cp := *u
	return &cp, nil
}

func (m memStories) withStats(s *entity.Story) *entity.Story {
	cp := *s
	if u, ok := m.users[s.UserID]; ok {
		cp.AuthorUsername = u.Username
	}
	for _, l := range m.likes {
		if l.StoryID == s.ID {
			cp.LikesCount++
		}
	}
	for _, c := range m.comments {
		if c.StoryID == s.ID {
			cp.CommentsCount++
		}
	}
	return &cp
}

func (m memStories) Create(_ context.Context, s *entity.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.NewString()
	s.CreatedAt = m.tick()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	m.stories[s.ID] = &cp
	return nil
}

func (m memStories) GetByID(_ context.Context, id string) (*entity.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stories[id]; ok {
		return m.withStats(s), nil
	}
	return nil, nil
}

func (m memStories) sorted(keep func(*entity.Story) bool) []*entity.Story {
	var out []*entity.Story
	for _, s := range m.stories {
		if keep(s) {
			out = append(out, m.withStats(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m memStories) List(_ context.Context, f entity.StoryFilter) ([]*entity.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	limit, offset := repository.NormalizeLimit(f.Limit, f.Offset)
	out := m.sorted(func(s *entity.Story) bool {
		return s.Status == f.Status && (f.Genre == "" || s.Genre == f.Genre)
	})
	if offset >= len(out) {
		return []*entity.Story{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m memStories) ListByUser(_ context.Context, userID string) ([]*entity.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(s *entity.Story) bool { return s.UserID == userID }), nil
}

func (m memStories) Update(_ context.Context, id string, updates map[string]any) (*entity.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return nil, nil
	}
	for k, v := range updates {
		switch k {
		case "title":
			s.Title = v.(string)
		case "description":
			s.Description = v.(string)
		case "content":
			s.Content = v.(string)
		case "status":
			s.Status = v.(entity.StoryStatus)
		case "genre":
			s.Genre = v.(string)
		case "setting":
			s.Setting = v.(string)
		}
	}
	return m.withStats(s), nil
}

func (m memStories) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stories, id)
	return nil
}

func (m memStories) AddChapter(_ context.Context, ch *entity.Chapter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch.ID = uuid.NewString()
	ch.CreatedAt = m.tick()
	cp := *ch
	m.chapters = append(m.chapters, &cp)
	return nil
}

func (m memStories) ListChapters(_ context.Context, storyID string) ([]*entity.Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Chapter{}
	for _, ch := range m.chapters {
		if ch.StoryID == storyID {
			cp := *ch
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (m memSocial) AddLike(_ context.Context, userID, storyID string) (*entity.Like, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.likes {
		if l.UserID == userID && l.StoryID == storyID {
			cp := *l
			return &cp, false, nil
		}
	}
	l := &entity.Like{UserID: userID, StoryID: storyID, CreatedAt: m.tick()}
	m.likes = append(m.likes, l)
	cp := *l
	return &cp, true, nil
}

func (m memSocial) RemoveLike(_ context.Context, userID, storyID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.likes {
		if l.UserID == userID && l.StoryID == storyID {
			m.likes = append(m.likes[:i], m.likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m memSocial) ListLikes(_ context.Context, storyID string) ([]*entity.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Like{}
	for i := len(m.likes) - 1; i >= 0; i-- {
		if l := m.likes[i]; l.StoryID == storyID {
			cp := *l
			if u, ok := m.users[l.UserID]; ok {
				cp.Username = u.Username
			}
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m memSocial) AddComment(_ context.Context, c *entity.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = m.tick()
	cp := *c
	m.comments = append(m.comments, &cp)
	return nil
}

func (m memSocial) ListComments(_ context.Context, storyID string) ([]*entity.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Comment{}
	for i := len(m.comments) - 1; i >= 0; i-- {
		if c := m.comments[i]; c.StoryID == storyID {
			cp := *c
			if u, ok := m.users[c.UserID]; ok {
				cp.Username = u.Username
			}
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m memSocial) DeleteComment(_ context.Context, storyID, commentID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.comments {
		if c.ID == commentID && c.StoryID == storyID && c.UserID == userID {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
