package ir

import (
	"fmt"
)

// Every resolution failure is a schema-authoring defect. The first one aborts
// the whole pass with the offending definition named; a partial registry is
// never returned.
type (
	// ErrMissingAttribute reports a mandatory attribute that was not declared
	// on an object or field.
	ErrMissingAttribute struct {
		Owner string
		Name  string
	}

	// ErrInvalidAttribute reports an attribute whose value does not parse into
	// the type the caller asked for.
	ErrInvalidAttribute struct {
		Owner string
		Name  string
		Value string
		Want  string
		Cause error
	}

	// ErrUnknownObject reports a registry lookup of a fully-qualified name
	// that resolved to nothing.
	ErrUnknownObject struct {
		FQName string
	}

	// ErrMalformedDeclaration reports a raw definition the resolver cannot
	// accept: no declaration file, an unsupported base-type tag, or an
	// unrecognized scalar wrapper.
	ErrMalformedDeclaration struct {
		FQName string
		Reason string
	}

	// ErrUnknownPackage reports a package name that matches none of the
	// recognized domain roles.
	ErrUnknownPackage struct {
		PkgName string
	}
)

func (r ErrMissingAttribute) Error() string {
	return fmt.Sprintf("no `%s` attribute was specified for `%s`", r.Name, r.Owner)
}

func (r ErrInvalidAttribute) Error() string {
	msg := fmt.Sprintf(
		"invalid `%s` attribute for `%s`: expected %s, got `%s` instead",
		r.Name, r.Owner, r.Want, r.Value,
	)
	return msg
}

func (r ErrInvalidAttribute) Unwrap() error {
	return r.Cause
}

func (r ErrUnknownObject) Error() string {
	return fmt.Sprintf("unknown object: %q", r.FQName)
}

func (r ErrMalformedDeclaration) Error() string {
	return fmt.Sprintf("%s for `%s`", r.Reason, r.FQName)
}

func (r ErrUnknownPackage) Error() string {
	return fmt.Sprintf("unknown package %q", r.PkgName)
}
