package corpus

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Store.Get for unknown document ids.
var ErrNotFound = errors.New("document not found")

// DuplicateIDError reports two or more input documents resolving to the
// same id during ingestion. Since ids derive from category+title, this
// almost always means two files in one folder share a heading.
type DuplicateIDError struct {
	ID    string
	Paths []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate document id %s (%s)", e.ID, strings.Join(e.Paths, ", "))
}
