package Workflow

import "errors"

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrEmptyContent   = errors.New("content must not be empty")
	ErrNotResponsible = errors.New("actor is not the responsible user of this task")
	ErrNotAccountable = errors.New("actor is not the accountable user of this task")
	ErrNotConsulted   = errors.New("actor is not a consulted user of this task")
	ErrInvalidStatus  = errors.New("current task status does not allow this transition")
	ErrStaleTask      = errors.New("task was modified concurrently, reload and retry")
)
