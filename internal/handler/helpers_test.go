package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/task-tracker/internal/config"
	"github.com/iliyamo/task-tracker/internal/middleware"
	"github.com/iliyamo/task-tracker/internal/model"
	"github.com/iliyamo/task-tracker/internal/repository"
	"github.com/iliyamo/task-tracker/internal/service"
)

// Handlers are exercised against real services wired to in-memory stores, so
// the tests cover the full mapping from service errors to status codes.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return repository.ErrEmailExists
	}
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uint64]*model.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uint64]*model.Task)}
}

func (s *fakeTaskStore) Create(_ context.Context, t *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s *fakeTaskStore) GetByIDAndOwner(_ context.Context, id, userID uint64) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTaskStore) ListByOwner(_ context.Context, userID uint64) ([]*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Task, 0)
	for _, t := range s.tasks {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) Update(_ context.Context, id, userID uint64, p model.TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return repository.ErrNoChange
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	return nil
}

func (s *fakeTaskStore) Delete(_ context.Context, id, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

type fakeSequencer struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

func newFakeSequencer() *fakeSequencer {
	return &fakeSequencer{seqs: make(map[string]uint64)}
}

func (s *fakeSequencer) Next(_ context.Context, name string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[name]++
	return s.seqs[name], nil
}

type fixture struct {
	auth  *AuthHandler
	tasks *TaskHandler
	users *fakeUserStore
}

func newFixture() *fixture {
	cfg := config.Config{
		JWTSecret:      "handler-test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 1,
		BcryptCost:     bcrypt.MinCost,
	}
	users := newFakeUserStore()
	seq := newFakeSequencer()
	authSvc := service.NewAuthService(cfg, users, seq)
	taskSvc := service.NewTaskService(newFakeTaskStore(), seq, nil)
	return &fixture{
		auth:  NewAuthHandler(authSvc),
		tasks: NewTaskHandler(taskSvc, authSvc, middleware.CacheInvalidator{}),
		users: users,
	}
}

// jsonCtx builds an echo context carrying a JSON body.
func jsonCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// formCtx builds an echo context carrying a urlencoded form body.
func formCtx(target, form string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser marks the context as authenticated, the way JWTAuth would.
func asUser(c echo.Context, email string) {
	c.Set(middleware.ContextEmailKey, email)
}
