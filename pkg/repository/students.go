// pkg/repository/students.go
package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joeydtaylor/steeze-students/pkg/model"
)

// ErrNotFound is returned by mutations that name an id the collection does not hold.
var ErrNotFound = errors.New("student was not found")

// Catalog is the shared subject list every student references.
var Catalog = []model.Subject{
	{ID: 1, Name: "PIZ", ECT: 10},
	{ID: 2, Name: "DIS", ECT: 12},
}

var placeholderDob = model.NewDate(1999, time.January, 1)

// Placeholder grades: seeded students and created students differ on purpose.
var (
	seedGrades    = []float64{2, 3, 4, 4}
	createdGrades = []float64{2, 5, 3, 4}
)

// Students owns the student collection. Records are never mutated in place:
// an update swaps the old value for a rebuilt one.
type Students struct {
	mu       sync.RWMutex
	students []model.Student
}

// NewStudents seeds n synthetic students with ids 0..n-1.
func NewStudents(n int) *Students {
	if n < 0 {
		n = 0
	}
	s := &Students{students: make([]model.Student, 0, n)}
	for i := 0; i < n; i++ {
		s.students = append(s.students, model.NewStudent(i, fmt.Sprintf("Student%d", i), placeholderDob, seedGrades, Catalog))
	}
	return s
}

// GetAll returns a snapshot; its order is not part of the contract.
func (s *Students) GetAll() []model.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Student{}, s.students...)
}

func (s *Students) Get(id int) (model.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.students[i], true
	}
	return model.Student{}, false
}

// Create assigns max(id)+1, or 0 when the collection is empty.
func (s *Students) Create(name string) model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := model.NewStudent(s.nextID(), name, placeholderDob, createdGrades, Catalog)
	s.students = append(s.students, st)
	return st
}

func (s *Students) Update(id int, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("update %d: %w", id, ErrNotFound)
	}
	replacement := s.students[i].WithName(newName)
	s.removeAt(i)
	s.students = append(s.students, replacement)
	return nil
}

func (s *Students) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	s.removeAt(i)
	return nil
}

func (s *Students) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students)
}

// caller holds mu
func (s *Students) indexOf(id int) int {
	for i := range s.students {
		if s.students[i].ID() == id {
			return i
		}
	}
	return -1
}

// caller holds mu
func (s *Students) nextID() int {
	if len(s.students) == 0 {
		return 0
	}
	top := s.students[0].ID()
	for _, st := range s.students[1:] {
		if st.ID() > top {
			top = st.ID()
		}
	}
	return top + 1
}

// caller holds mu
func (s *Students) removeAt(i int) {
	copy(s.students[i:], s.students[i+1:])
	s.students[len(s.students)-1] = model.Student{}
	s.students = s.students[:len(s.students)-1]
}
