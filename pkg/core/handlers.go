// core/handlers.go
package core

import "context"

// Request is everything a handler sees of an HTTP request.
type Request struct {
	Method string
	Path   string
	Body   string
}

// Handler maps one request to response text and a status code. A non-nil
// error is a fault; the dispatcher answers it with 500 and the error text.
type Handler func(ctx context.Context, req Request) (out string, status int, err error)

// RouteName identifies a rule of the dispatch table in logs.
type RouteName string

const (
	RouteListStudents  RouteName = "students.list"
	RouteGetStudent    RouteName = "students.get"
	RouteCreateStudent RouteName = "students.create"
	RouteUpdateStudent RouteName = "students.update"
	RouteDeleteStudent RouteName = "students.delete"
	RouteNotFound      RouteName = "not_found"
)
