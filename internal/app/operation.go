package app

import (
	"errors"

	"bugg-go/internal/bugg"
)

// Operation statuses recorded in the log when a command finishes.
const (
	StatusSuccess  = "success"
	StatusDeclined = "declined"
	StatusError    = "error"
)

// Operation tracks one CLI command from start to finish.
type Operation struct {
	Name   string
	Folder string
	Status string
	Err    error
}

// NewOperation creates an operation that is successful until Finish says otherwise.
func NewOperation(name, folder string) *Operation {
	return &Operation{Name: name, Folder: folder, Status: StatusSuccess}
}

// Finish records the outcome of the command. An operator decline is not a failure.
func (op *Operation) Finish(err error) {
	op.Err = err
	switch {
	case err == nil:
		op.Status = StatusSuccess
	case errors.Is(err, bugg.ErrDeclined):
		op.Status = StatusDeclined
	default:
		op.Status = StatusError
	}
}

// Failed returns true if the command ended in an error other than a decline.
func (op *Operation) Failed() bool {
	return op.Status == StatusError
}
