package dispatch

import "errors"

// ErrNoRoute is returned when no registered route matches the path.
// The front controller answers it with 404 Not Found.
var ErrNoRoute = errors.New("no route found")

// ErrMethodNotFound is returned when the selected controller has no method
// for the resolved identifier, or the controller itself is not registered.
var ErrMethodNotFound = errors.New("method not found")

// ErrResultNotFound is returned when an action method names a result that
// neither its controller nor the dispatcher defines.
var ErrResultNotFound = errors.New("result not found")

// ErrForwardLoop is returned when forwarded dispatches nest deeper than
// MaxForwards.
var ErrForwardLoop = errors.New("too many forwards")

// ErrSealed is returned when routes or controllers are registered after the
// dispatcher started serving requests.
var ErrSealed = errors.New("dispatcher is sealed")
