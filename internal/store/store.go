package store

import (
	"errors"
	"fmt"

	"github.com/rogersnm/roster/internal/model"
	"go.uber.org/zap"
)

var (
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrNotFound         = errors.New("employee not found")
	// ErrIO marks a failed save. The in-memory change it accompanies has
	// already been applied.
	ErrIO = errors.New("saving employees failed")
)

// Codec persists the full roster. flatfile.Codec is the file-backed
// implementation.
type Codec interface {
	Save(records []model.Employee) error
	Load() ([]model.Employee, error)
}

// Store owns the roster and its id counter. It is not safe for
// concurrent use.
type Store struct {
	codec    Codec
	log      *zap.Logger
	capacity int
	records  []model.Employee
	nextID   int
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithCapacity overrides model.Capacity.
func WithCapacity(n int) Option {
	return func(s *Store) { s.capacity = n }
}

// New returns an empty store backed by codec.
func New(codec Codec, opts ...Option) *Store {
	s := &Store{
		codec:    codec,
		log:      zap.NewNop(),
		capacity: model.Capacity,
		nextID:   1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open returns a store populated from codec.
func Open(codec Codec, opts ...Option) (*Store, error) {
	s := New(codec, opts...)
	records, err := codec.Load()
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	if len(records) > s.capacity {
		records = records[:s.capacity]
	}
	s.records = records
	s.nextID = len(records) + 1
	for _, r := range records {
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
	s.log.Info("loaded employees",
		zap.Int("records", len(records)),
		zap.Int("next_id", s.nextID))
	return s, nil
}

// Add appends a new active employee with the next id.
func (s *Store) Add(name, role string, salary float64) (model.Employee, error) {
	if len(s.records) >= s.capacity {
		return model.Employee{}, fmt.Errorf("%w: roster holds %d records", ErrCapacityExceeded, s.capacity)
	}
	e := model.Employee{
		ID:     s.nextID,
		Name:   name,
		Role:   role,
		Salary: salary,
		Active: true,
	}
	if err := e.Validate(); err != nil {
		return model.Employee{}, err
	}
	s.nextID++
	s.records = append(s.records, e)
	s.log.Debug("added employee", zap.Int("id", e.ID))
	return e, s.persist()
}

// List returns active employees in insertion order.
func (s *Store) List() []model.Employee {
	out := make([]model.Employee, 0, len(s.records))
	for _, r := range s.records {
		if r.Active {
			out = append(out, r)
		}
	}
	return out
}

// FindByID looks up a record whether or not it is active.
func (s *Store) FindByID(id int) (model.Employee, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	return model.Employee{}, false
}

// Update rewrites the mutable fields of an active employee.
func (s *Store) Update(id int, name, role string, salary float64) (model.Employee, error) {
	i := s.activeIndex(id)
	if i < 0 {
		return model.Employee{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	e := s.records[i]
	e.Name = name
	e.Role = role
	e.Salary = salary
	if err := e.Validate(); err != nil {
		return model.Employee{}, err
	}
	s.records[i] = e
	s.log.Debug("updated employee", zap.Int("id", id))
	return e, s.persist()
}

// SoftDelete marks an active employee inactive. The record keeps its slot.
func (s *Store) SoftDelete(id int) error {
	i := s.activeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	s.records[i].Active = false
	s.log.Debug("deactivated employee", zap.Int("id", id))
	return s.persist()
}

// Save writes the whole roster through the codec.
func (s *Store) Save() error {
	return s.persist()
}

// All returns every stored record, inactive ones included.
func (s *Store) All() []model.Employee {
	out := make([]model.Employee, len(s.records))
	copy(out, s.records)
	return out
}

// Len counts every stored record, active or not.
func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) ActiveLen() int {
	n := 0
	for _, r := range s.records {
		if r.Active {
			n++
		}
	}
	return n
}

func (s *Store) Capacity() int {
	return s.capacity
}

func (s *Store) indexOf(id int) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) activeIndex(id int) int {
	for i, r := range s.records {
		if r.ID == id && r.Active {
			return i
		}
	}
	return -1
}

func (s *Store) persist() error {
	if err := s.codec.Save(s.All()); err != nil {
		s.log.Warn("save failed, in-memory roster is ahead of disk", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
