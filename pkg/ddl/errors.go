package ddl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Sentinel errors for errors.Is.
var (
	ErrUnresolved      = errors.New("unresolved reference")
	ErrDuplicate       = errors.New("duplicate definition")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrUnsupported     = errors.New("unsupported")
	ErrCircular        = errors.New("circular definition")
)

// Severity ranks diagnostics.
type Severity int

// Severities.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalText renders the severity by name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Code classifies diagnostics.
type Code string

// Diagnostic codes.
const (
	CodeValueOutOfRange Code = "ValueOutOfRange"
	CodeDuplicate       Code = "Duplicate"
	CodeUnknownObject   Code = "UnknownObject"
	CodeUnsupported     Code = "Unsupported"
	CodeCircularLike    Code = "CircularLike"
)

// Diagnostic is an anomaly found while walking a statement. Diagnostics never
// stop the walk.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     Code     `json:"code" yaml:"code"`
	// Object is the qualified name of the most specific object involved.
	Object  string         `json:"object,omitempty" yaml:"object,omitempty"`
	Message string         `json:"message" yaml:"message"`
	Pos     token.Position `json:"pos" yaml:"pos"`
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	if d.Pos.IsValid() {
		fmt.Fprintf(&sb, "line %d, column %d: ", d.Pos.Line, d.Pos.Column)
	}
	if d.Object != "" {
		sb.WriteString(d.Object + ": ")
	}
	sb.WriteString(d.Message)
	return sb.String()
}

// Unwrap maps the code onto its sentinel error.
func (d *Diagnostic) Unwrap() error {
	switch d.Code {
	case CodeValueOutOfRange:
		return ErrValueOutOfRange
	case CodeDuplicate:
		return ErrDuplicate
	case CodeUnknownObject:
		return ErrUnresolved
	case CodeUnsupported:
		return ErrUnsupported
	case CodeCircularLike:
		return ErrCircular
	}
	return nil
}

// RefKind tags deferred references and the resolution errors they produce.
type RefKind int

// Reference kinds.
const (
	RefIndex RefKind = iota
	RefReferencing
	RefReferenced
	RefTable
)

func (k RefKind) String() string {
	switch k {
	case RefIndex:
		return "Index"
	case RefReferencing:
		return "Referencing"
	case RefReferenced:
		return "Referenced"
	case RefTable:
		return "TableRef"
	}
	return fmt.Sprintf("RefKind(%d)", int(k))
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k RefKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ResolutionError reports a deferred reference that did not resolve.
type ResolutionError struct {
	Kind RefKind `json:"kind" yaml:"kind"`
	// OwnerID and Owner identify the object holding the reference.
	OwnerID catalog.ID `json:"owner_id" yaml:"owner_id"`
	Owner   string     `json:"owner" yaml:"owner"`
	// Object names the index or foreign key carrying the reference, if any.
	Object string `json:"object,omitempty" yaml:"object,omitempty"`
	// Target is the object kind that was looked up.
	Target catalog.Kind `json:"target" yaml:"target"`
	// Names lists the names that did not resolve.
	Names []string `json:"names" yaml:"names"`
}

func (e *ResolutionError) Error() string {
	owner := e.Owner
	if e.Object != "" {
		owner += " (" + e.Object + ")"
	}
	return fmt.Sprintf("%s reference from %s: unresolved %s %s",
		e.Kind, owner, e.Target, strings.Join(e.Names, ", "))
}

// Unwrap returns ErrUnresolved.
func (e *ResolutionError) Unwrap() error {
	return ErrUnresolved
}
