// pkg/model/student.go
package model

// Subject is an entry of the shared course catalog.
type Subject struct {
	ID   int
	Name string
	ECT  int
}

// Student is an immutable record. Changes go through With* methods, which
// return a new value and leave the receiver untouched.
type Student struct {
	id       int
	name     string
	dob      Date
	grades   []float64
	subjects []Subject
}

// NewStudent copies grades and subjects so the caller keeps no alias into the value.
func NewStudent(id int, name string, dob Date, grades []float64, subjects []Subject) Student {
	return Student{
		id:       id,
		name:     name,
		dob:      dob,
		grades:   append([]float64(nil), grades...),
		subjects: append([]Subject(nil), subjects...),
	}
}

func (s Student) ID() int      { return s.id }
func (s Student) Name() string { return s.name }
func (s Student) Dob() Date    { return s.dob }

func (s Student) Grades() []float64   { return append([]float64(nil), s.grades...) }
func (s Student) Subjects() []Subject { return append([]Subject(nil), s.subjects...) }

// WithName builds the replacement used by a rename: same id, dob, grades and subjects.
func (s Student) WithName(name string) Student {
	return NewStudent(s.id, name, s.dob, s.grades, s.subjects)
}
