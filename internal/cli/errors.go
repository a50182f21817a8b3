package cli

import (
	"fmt"
	"strings"

	"taskdeck/internal/taskform"
)

type notFoundError struct {
	kind string
	id   int
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.kind, e.id)
}

func errNotFound(kind string, id int) error {
	return notFoundError{kind: kind, id: id}
}

type invalidFormError struct {
	fields []taskform.FieldError
}

func (e invalidFormError) Error() string {
	parts := make([]string, len(e.fields))
	for i, f := range e.fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

func errInvalidForm(fields []taskform.FieldError) error {
	return invalidFormError{fields: fields}
}
