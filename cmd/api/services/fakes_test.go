package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ai-blog-generator/models"
	"ai-blog-generator/repositories"
)

type fakeFetcher struct {
	text  string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, link string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeGenerator struct {
	content string
	err     error
	input   string
	calls   int
}

func (g *fakeGenerator) Summarize(ctx context.Context, transcript string) (string, error) {
	g.calls++
	g.input = transcript
	return g.content, g.err
}

type memSummaries struct {
	mu        sync.Mutex
	records   []models.Summary
	createErr error
	findErr   error
	seq       int
}

func (m *memSummaries) Create(ctx context.Context, s *models.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	if s.ID == "" {
		s.ID = fmt.Sprintf("sum-%d", m.seq)
	}
	s.CreatedAt = time.Now().UTC()
	m.records = append(m.records, *s)
	return nil
}

func (m *memSummaries) FindByID(ctx context.Context, id string) (*models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for i := range m.records {
		if m.records[i].ID == id {
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memSummaries) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Summary{}
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].UserID == userID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

type memUsers struct {
	mu          sync.Mutex
	users       []models.User
	createCalls int
	createErr   error
}

func (m *memUsers) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return errors.Join(repositories.ErrDuplicate, errors.New("E11000 duplicate key"))
		}
	}
	if u.ID == "" {
		u.ID = "user-" + u.Username
	}
	u.CreatedAt = time.Now().UTC()
	m.users = append(m.users, *u)
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Username == username {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]models.Session{}}
}

func (m *memSessions) Create(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memSessions) Get(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (m *memSessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
