// pkg/codec/students.go
package codec

import (
	"fmt"

	"github.com/joeydtaylor/steeze-students/pkg/model"
)

type subjectWire struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	ECT  int    `json:"ect"`
}

type studentWire struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Dob      string        `json:"dob"`
	Grades   []float64     `json:"grades"`
	Subjects []subjectWire `json:"subjects"`
}

// StudentCodec is the JSON codec for model.Student values and slices of them.
// The dob field goes through the configured DateFormat in both directions.
type StudentCodec struct {
	dates DateFormat
}

func NewStudentCodec(dates DateFormat) StudentCodec {
	return StudentCodec{dates: dates}
}

func (c StudentCodec) Marshal(v any) ([]byte, error) {
	switch x := v.(type) {
	case model.Student:
		return JSONStrict.Marshal(c.toWire(x))
	case *model.Student:
		if x == nil {
			return nil, fmt.Errorf("student codec: nil student")
		}
		return JSONStrict.Marshal(c.toWire(*x))
	case []model.Student:
		out := make([]studentWire, 0, len(x))
		for _, s := range x {
			out = append(out, c.toWire(s))
		}
		return JSONStrict.Marshal(out)
	default:
		return nil, fmt.Errorf("student codec: unsupported type %T", v)
	}
}

func (c StudentCodec) Unmarshal(data []byte, v any) error {
	switch dst := v.(type) {
	case *model.Student:
		var w studentWire
		if err := JSONStrict.Unmarshal(data, &w); err != nil {
			return err
		}
		s, err := c.fromWire(w)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	case *[]model.Student:
		var ws []studentWire
		if err := JSONStrict.Unmarshal(data, &ws); err != nil {
			return err
		}
		out := make([]model.Student, 0, len(ws))
		for i, w := range ws {
			s, err := c.fromWire(w)
			if err != nil {
				return fmt.Errorf("student %d: %w", i, err)
			}
			out = append(out, s)
		}
		*dst = out
		return nil
	default:
		return fmt.Errorf("student codec: unsupported target %T", v)
	}
}

func (StudentCodec) ContentType() string { return JSONStrict.ContentType() }

func (c StudentCodec) toWire(s model.Student) studentWire {
	grades := s.Grades()
	if grades == nil {
		grades = []float64{}
	}
	subjects := make([]subjectWire, 0, len(s.Subjects()))
	for _, sub := range s.Subjects() {
		subjects = append(subjects, subjectWire{ID: sub.ID, Name: sub.Name, ECT: sub.ECT})
	}
	return studentWire{
		ID:       s.ID(),
		Name:     s.Name(),
		Dob:      c.dates.Format(s.Dob()),
		Grades:   grades,
		Subjects: subjects,
	}
}

func (c StudentCodec) fromWire(w studentWire) (model.Student, error) {
	dob, err := c.dates.Parse(w.Dob)
	if err != nil {
		return model.Student{}, err
	}
	subjects := make([]model.Subject, 0, len(w.Subjects))
	for _, sub := range w.Subjects {
		subjects = append(subjects, model.Subject{ID: sub.ID, Name: sub.Name, ECT: sub.ECT})
	}
	return model.NewStudent(w.ID, w.Name, dob, w.Grades, subjects), nil
}
