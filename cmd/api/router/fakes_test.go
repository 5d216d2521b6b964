package router

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ai-blog-generator/models"
	"ai-blog-generator/repositories"
)

type stubFetcher struct {
	text string
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, link string) (string, error) {
	return f.text, f.err
}

type stubGenerator struct {
	content string
	err     error
}

func (g *stubGenerator) Summarize(ctx context.Context, transcript string) (string, error) {
	return g.content, g.err
}

type memStore struct {
	mu          sync.Mutex
	summaries   []models.Summary
	users       []models.User
	sessions    map[string]models.Session
	createCalls int
	saveErr     error
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]models.Session{}}
}

type memSummaryRepo struct{ s *memStore }

func (r memSummaryRepo) Create(ctx context.Context, sum *models.Summary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.saveErr != nil {
		return r.s.saveErr
	}
	sum.ID = fmt.Sprintf("sum-%d", len(r.s.summaries)+1)
	sum.CreatedAt = time.Now().UTC()
	r.s.summaries = append(r.s.summaries, *sum)
	return nil
}

func (r memSummaryRepo) FindByID(ctx context.Context, id string) (*models.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sum := range r.s.summaries {
		if sum.ID == id {
			out := sum
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memSummaryRepo) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Summary{}
	for i := len(r.s.summaries) - 1; i >= 0; i-- {
		if r.s.summaries[i].UserID == userID {
			out = append(out, r.s.summaries[i])
		}
	}
	return out, nil
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.createCalls++
	for _, existing := range r.s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return errors.Join(repositories.ErrDuplicate, errors.New("E11000"))
		}
	}
	u.ID = "user-" + u.Username
	u.CreatedAt = time.Now().UTC()
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r memUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type memSessionRepo struct{ s *memStore }

func (r memSessionRepo) Create(ctx context.Context, sess *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[sess.ID] = *sess
	return nil
}

func (r memSessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &sess, nil
}

func (r memSessionRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}
