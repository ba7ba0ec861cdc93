// core/dispatcher.go
package core

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/joeydtaylor/steeze-students/pkg/codec"
	"github.com/joeydtaylor/steeze-students/pkg/model"
)

// StudentStore is the repository surface the handlers depend on.
type StudentStore interface {
	GetAll() []model.Student
	Get(id int) (model.Student, bool)
	Create(name string) model.Student
	Update(id int, newName string) error
	Delete(id int) error
}

type pathShape int

const (
	anyPath pathShape = iota
	collectionPath
)

const studentsCollection = "/students"

func (p pathShape) matches(path string) bool {
	switch p {
	case collectionPath:
		return path == studentsCollection
	default:
		return true
	}
}

// route is one rule of the dispatch table; contentType applies to 2xx bodies.
type route struct {
	name        RouteName
	method      string
	shape       pathShape
	handle      Handler
	contentType string
}

// Dispatcher selects exactly one handler per request and keeps handler
// faults from reaching the transport.
type Dispatcher struct {
	store    StudentStore
	codec    codec.Codec
	events   EventPublisher
	log      *zap.Logger
	routes   []route
	fallback route
}

type Option func(*Dispatcher)

func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

func WithEvents(p EventPublisher) Option {
	return func(d *Dispatcher) {
		if p != nil {
			d.events = p
		}
	}
}

func NewDispatcher(store StudentStore, c codec.Codec, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:  store,
		codec:  c,
		events: NoopPublisher{},
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(d)
	}
	ctJSON := c.ContentType()
	// Order matters: the exact collection GET must precede the GET catch-all.
	d.routes = []route{
		{name: RouteListStudents, method: http.MethodGet, shape: collectionPath, handle: d.listStudents, contentType: ctJSON},
		{name: RouteGetStudent, method: http.MethodGet, shape: anyPath, handle: d.getStudent, contentType: ctJSON},
		{name: RouteCreateStudent, method: http.MethodPost, shape: anyPath, handle: d.createStudent},
		{name: RouteUpdateStudent, method: http.MethodPut, shape: anyPath, handle: d.updateStudent},
		{name: RouteDeleteStudent, method: http.MethodDelete, shape: anyPath, handle: d.deleteStudent},
	}
	d.fallback = route{name: RouteNotFound, handle: fileNotFound}
	return d
}

// Dispatch runs the matching handler and always yields a response.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (out string, status int) {
	out, status, _ = d.dispatch(ctx, req)
	return out, status
}

func (d *Dispatcher) dispatch(ctx context.Context, req Request) (string, int, string) {
	rt := d.match(req)
	out, status := d.run(ctx, rt, req)
	ct := ""
	if status >= 200 && status < 300 {
		ct = rt.contentType
	}
	return out, status, ct
}

func (d *Dispatcher) match(req Request) route {
	for _, rt := range d.routes {
		if rt.method == req.Method && rt.shape.matches(req.Path) {
			return rt
		}
	}
	return d.fallback
}

// Route reports which rule a request would be dispatched to.
func (d *Dispatcher) Route(method, path string) RouteName {
	return d.match(Request{Method: method, Path: path}).name
}

func (d *Dispatcher) run(ctx context.Context, rt route, req Request) (out string, status int) {
	defer func() {
		if p := recover(); p != nil {
			msg := panicMessage(p)
			d.log.Error("handler panic",
				zap.String("route", string(rt.name)),
				zap.String("method", req.Method),
				zap.String("path", req.Path),
				zap.String("panic", msg),
				zap.Stack("stack"),
			)
			out, status = msg, http.StatusInternalServerError
		}
	}()

	// An expired request is not started; mutations must not outlive it.
	if err := ctx.Err(); err != nil {
		d.log.Error("request expired",
			zap.String("route", string(rt.name)),
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		return err.Error(), http.StatusInternalServerError
	}

	out, status, err := rt.handle(ctx, req)
	if err != nil {
		d.log.Error("handler failed",
			zap.String("route", string(rt.name)),
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		return err.Error(), http.StatusInternalServerError
	}
	return out, status
}

func panicMessage(p any) string {
	if err, ok := p.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(p)
}
