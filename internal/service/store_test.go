package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/task-tracker/internal/model"
	"github.com/iliyamo/task-tracker/internal/queue"
	"github.com/iliyamo/task-tracker/internal/repository"
)

// In-memory fakes standing in for the MySQL-backed repositories. They mimic
// the repositories' error contracts. No-op patches are rejected by the
// service before any store access, so Update applies fields unconditionally
// just like the SQL store does.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by email
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (s *memUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return repository.ErrEmailExists
	}
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
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

type memSequencer struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

func newMemSequencer() *memSequencer {
	return &memSequencer{seqs: make(map[string]uint64)}
}

func (s *memSequencer) Next(_ context.Context, name string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[name]++
	return s.seqs[name], nil
}

type memTaskStore struct {
	mu    sync.Mutex
	tasks map[uint64]*model.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[uint64]*model.Task)}
}

func (s *memTaskStore) Create(_ context.Context, t *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s *memTaskStore) GetByIDAndOwner(_ context.Context, id, userID uint64) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *memTaskStore) ListByOwner(_ context.Context, userID uint64) ([]*model.Task, error) {
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

func (s *memTaskStore) Update(_ context.Context, id, userID uint64, p model.TaskPatch) error {
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
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *memTaskStore) Delete(_ context.Context, id, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.TaskEvent
}

func (p *recordingPublisher) PublishTaskEvent(_ context.Context, e queue.TaskEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Event
	}
	return out
}
