package storage

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

// Identifiers also key player records, so the pattern admits email addresses.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9@._+-]+$`)

// ValidatingSpec is implemented by every record type held in a store.
type ValidatingSpec interface {
	Validate() error
}

// Asset is the on-disk envelope wrapping a single record.
type Asset[T ValidatingSpec] struct {
	Version    uint   `json:"version"`
	Identifier string `json:"id"`
	Spec       T      `json:"spec"`
}

func (a *Asset[T]) Id() string {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	} else if !identifierPattern.MatchString(a.Identifier) {
		el.Add(fmt.Errorf("id %q contains invalid characters", a.Identifier))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}
