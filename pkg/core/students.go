// core/students.go
package core

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

const (
	msgNotFound       = "Not Found"
	msgNotImplemented = "Not Implemented"
	msgBadRequest     = "Bad Request"
	msgCreated        = "Created"
	msgOK             = "OK"
	msgFileNotFound   = "File not found"
)

// StudentIDFromPath reads the id of /<segment>/<id>. Any other shape, or a
// non-integer id, yields ok == false rather than an error.
func StudentIDFromPath(path string) (id int, ok bool) {
	parts := strings.Split(path, "/")
	if len(parts) != 3 {
		return 0, false
	}
	id, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	return id, true
}

func (d *Dispatcher) listStudents(_ context.Context, _ Request) (string, int, error) {
	out, err := d.codec.Marshal(d.store.GetAll())
	if err != nil {
		return "", 0, err
	}
	return string(out), http.StatusOK, nil
}

// A malformed id answers 501, not 400; clients depend on that.
func (d *Dispatcher) getStudent(_ context.Context, req Request) (string, int, error) {
	id, ok := StudentIDFromPath(req.Path)
	if !ok {
		return msgNotImplemented, http.StatusNotImplemented, nil
	}
	st, found := d.store.Get(id)
	if !found {
		return msgNotFound, http.StatusNotFound, nil
	}
	out, err := d.codec.Marshal(st)
	if err != nil {
		return "", 0, err
	}
	return string(out), http.StatusOK, nil
}

// The body is the new student's name, verbatim.
func (d *Dispatcher) createStudent(ctx context.Context, req Request) (string, int, error) {
	if req.Body == "" {
		return msgBadRequest, http.StatusBadRequest, nil
	}
	st := d.store.Create(req.Body)
	d.publish(ctx, EventCreated, st.ID(), st.Name())
	return msgCreated, http.StatusCreated, nil
}

func (d *Dispatcher) updateStudent(ctx context.Context, req Request) (string, int, error) {
	id, ok := StudentIDFromPath(req.Path)
	if !ok {
		return msgNotImplemented, http.StatusNotImplemented, nil
	}
	if _, found := d.store.Get(id); !found {
		return msgNotFound, http.StatusNotFound, nil
	}
	if req.Body == "" {
		return msgBadRequest, http.StatusBadRequest, nil
	}
	if err := d.store.Update(id, req.Body); err != nil {
		return "", 0, err
	}
	d.publish(ctx, EventUpdated, id, req.Body)
	return msgOK, http.StatusOK, nil
}

func (d *Dispatcher) deleteStudent(ctx context.Context, req Request) (string, int, error) {
	id, ok := StudentIDFromPath(req.Path)
	if !ok {
		return msgNotImplemented, http.StatusNotImplemented, nil
	}
	st, found := d.store.Get(id)
	if !found {
		return msgNotFound, http.StatusNotFound, nil
	}
	if err := d.store.Delete(id); err != nil {
		return "", 0, err
	}
	d.publish(ctx, EventDeleted, id, st.Name())
	return msgOK, http.StatusOK, nil
}

func fileNotFound(context.Context, Request) (string, int, error) {
	return msgFileNotFound, http.StatusNotFound, nil
}
