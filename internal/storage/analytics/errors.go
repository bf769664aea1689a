package analytics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marcboeker/go-duckdb"
)

// Kind tags the failures callers are expected to tell apart.
type Kind int

const (
	KindOther Kind = iota
	KindRelationNotFound
	KindRelationExists
)

func (k Kind) String() string {
	switch k {
	case KindRelationNotFound:
		return "relation not found"
	case KindRelationExists:
		return "relation exists"
	default:
		return "other"
	}
}

var (
	ErrRelationNotFound = errors.New("relation not found")
	ErrRelationExists   = errors.New("relation already exists")
)

// Error is returned by Store operations that touch the catalog.
type Error struct {
	Kind     Kind
	Op       string
	Relation string
	Err      error
}

func (e *Error) Error() string {
	if e.Relation != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Relation, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRelationNotFound:
		return e.Kind == KindRelationNotFound
	case ErrRelationExists:
		return e.Kind == KindRelationExists
	}
	return false
}

// KindOf reports the kind carried by err, or KindOther.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

func wrap(d dialect, op, relation string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: d.classify(err), Op: op, Relation: relation, Err: err}
}

func classifyDuckDB(err error) Kind {
	var dErr *duckdb.Error
	if errors.As(err, &dErr) {
		if dErr.Type != duckdb.ErrorTypeCatalog {
			return KindOther
		}
		return classifyCatalog(dErr.Msg)
	}
	return classifyMessage(err.Error())
}

func classifySQLite(err error) Kind {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		return KindRelationNotFound
	case strings.Contains(msg, "already exists"):
		return KindRelationExists
	}
	return KindOther
}

func classifyMessage(msg string) Kind {
	if !strings.Contains(strings.ToLower(msg), "catalog error") {
		return KindOther
	}
	return classifyCatalog(msg)
}

func classifyCatalog(msg string) Kind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "does not exist"):
		return KindRelationNotFound
	case strings.Contains(lower, "already exists"):
		return KindRelationExists
	}
	return KindOther
}
