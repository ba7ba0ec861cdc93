package repository

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/joeydtaylor/steeze-students/pkg/model"
)

type StudentsSuite struct {
	suite.Suite
	repo *Students
}

func (s *StudentsSuite) SetupTest() {
	s.repo = NewStudents(2)
}

func TestStudentsSuite(t *testing.T) {
	suite.Run(t, new(StudentsSuite))
}

func ids(students []model.Student) []int {
	out := make([]int, 0, len(students))
	for _, st := range students {
		out = append(out, st.ID())
	}
	sort.Ints(out)
	return out
}

// TestSeed verifies the synthetic population.
func (s *StudentsSuite) TestSeed() {
	all := s.repo.GetAll()
	s.Equal([]int{0, 1}, ids(all))

	st, ok := s.repo.Get(1)
	s.Require().True(ok)
	s.Equal("Student1", st.Name())
	s.Equal(placeholderDob, st.Dob())
	s.Equal([]float64{2, 3, 4, 4}, st.Grades())
	s.Equal(Catalog, st.Subjects())

	s.Equal(0, NewStudents(0).Len())
	s.Equal(0, NewStudents(-3).Len())
}

func (s *StudentsSuite) TestGet() {
	s.Run("missing id reports absence", func() {
		_, ok := s.repo.Get(9999)
		s.False(ok)
	})

	s.Run("snapshot is detached from the collection", func() {
		all := s.repo.GetAll()
		all[0] = model.Student{}
		_, ok := s.repo.Get(0)
		s.True(ok)
		s.Equal(2, s.repo.Len())
	})
}

func (s *StudentsSuite) TestCreate() {
	s.Run("assigns max id plus one", func() {
		st := s.repo.Create("Zoe")
		s.Equal(2, st.ID())
		s.Equal("Zoe", st.Name())
		s.Equal(placeholderDob, st.Dob())
		s.Equal([]float64{2, 5, 3, 4}, st.Grades())
		s.Equal(Catalog, st.Subjects())

		got, ok := s.repo.Get(2)
		s.Require().True(ok)
		s.Equal(st, got)
	})

	s.Run("uses max rather than count after deletes", func() {
		s.Require().NoError(s.repo.Delete(0))
		st := s.repo.Create("Max")
		s.Equal(3, st.ID())
	})

	s.Run("starts at zero on an empty collection", func() {
		empty := NewStudents(0)
		s.Equal(0, empty.Create("First").ID())
		s.Equal(1, empty.Create("Second").ID())
	})
}

func (s *StudentsSuite) TestUpdate() {
	s.Run("replaces name only", func() {
		before, _ := s.repo.Get(1)
		s.Require().NoError(s.repo.Update(1, "Renamed"))

		after, ok := s.repo.Get(1)
		s.Require().True(ok)
		s.Equal("Renamed", after.Name())
		s.Equal(before.ID(), after.ID())
		s.Equal(before.Dob(), after.Dob())
		s.Equal(before.Grades(), after.Grades())
		s.Equal(before.Subjects(), after.Subjects())
		s.Equal("Student1", before.Name())
		s.Equal(2, s.repo.Len())
	})

	s.Run("missing id is an error", func() {
		err := s.repo.Update(42, "x")
		s.Require().ErrorIs(err, ErrNotFound)
		s.Equal(2, s.repo.Len())
	})
}

func (s *StudentsSuite) TestDelete() {
	s.Require().NoError(s.repo.Delete(0))
	_, ok := s.repo.Get(0)
	s.False(ok)
	s.Equal([]int{1}, ids(s.repo.GetAll()))

	s.Require().ErrorIs(s.repo.Delete(0), ErrNotFound)
}

// TestConcurrentCreate verifies id assignment stays unique under parallel writers.
func (s *StudentsSuite) TestConcurrentCreate() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.repo.Create("parallel")
		}()
	}
	wg.Wait()

	got := ids(s.repo.GetAll())
	s.Len(got, 52)
	for i, id := range got {
		s.Equal(i, id)
	}
}
