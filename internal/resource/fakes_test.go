package resource

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/coursecloud/service/internal/provision"
)

// memStore is an in-memory Store.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Resource
	err    error
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]Resource{}}
}

func (m *memStore) Create(_ context.Context, res *Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if res.IDNumber != nil {
		for _, r := range m.rows {
			if r.IDNumber != nil && *r.IDNumber == *res.IDNumber {
				return ErrAlreadyExists
			}
		}
	}
	m.nextID++
	res.ID = m.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	m.rows[res.ID] = *res
	return nil
}

func (m *memStore) GetByID(_ context.Context, id int64) (*Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *memStore) GetByIDNumber(_ context.Context, courseID int64, idNumber string) (*Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.CourseID == courseID && r.IDNumber != nil && *r.IDNumber == idNumber {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) ListByCourse(_ context.Context, courseID int64) ([]*Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []*Resource{}
	for _, r := range m.rows {
		if r.CourseID == courseID {
			r := r
			list = append(list, &r)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *memStore) Update(_ context.Context, res *Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[res.ID]; !ok {
		return ErrNotFound
	}
	res.UpdatedAt = time.Now()
	m.rows[res.ID] = *res
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) EnsureCourseFolder(ctx context.Context, courseID int64, shortName, principal string) (provision.Outcome, error) {
	args := m.Called(courseID, shortName, principal)
	return args.Get(0).(provision.Outcome), args.Error(1)
}

func (m *MockPublisher) UploadAndShare(ctx context.Context, courseFolder, filename string, content []byte, principal string) (provision.Outcome, error) {
	args := m.Called(courseFolder, filename, content, principal)
	return args.Get(0).(provision.Outcome), args.Error(1)
}
