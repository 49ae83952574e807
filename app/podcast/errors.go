package podcast

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ParseError reports a document that is not well-formed XML or carries
// content after the root element.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse feed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UndefinedEntityError reports a named entity that is neither predefined
// by XML nor present in the entity table.
type UndefinedEntityError struct {
	Name string
	Err  error
}

func (e *UndefinedEntityError) Error() string {
	return fmt.Sprintf("named entity isn't defined: &%s;", e.Name)
}

func (e *UndefinedEntityError) Unwrap() error {
	return e.Err
}

// MissingElementError reports a missing structural element (rss or channel).
type MissingElementError struct {
	Name string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("missing required <%s> element", e.Name)
}

const undefinedEntityMsg = "invalid character entity "

// classifyDecodeError maps a decoder failure onto the engine's error kinds.
func classifyDecodeError(err error) error {
	msg := err.Error()
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		msg = syntaxErr.Msg
	}

	if _, ent, ok := strings.Cut(msg, undefinedEntityMsg); ok {
		// "&name;" or "&name (no semicolon)"
		name, _, _ := strings.Cut(strings.TrimSpace(ent), " ")
		name = strings.TrimSuffix(strings.TrimPrefix(name, "&"), ";")
		// Malformed character references (&#xZZ;) are not named entities.
		if name == "" || strings.HasPrefix(name, "#") {
			return &ParseError{Err: err}
		}
		return &UndefinedEntityError{Name: name, Err: err}
	}

	return &ParseError{Err: err}
}

// Kind names the failure class of an error returned by Parse, or "" for
// any other error.
func Kind(err error) string {
	var (
		parseErr   *ParseError
		entityErr  *UndefinedEntityError
		missingErr *MissingElementError
	)
	switch {
	case errors.As(err, &entityErr):
		return "UndefinedEntity"
	case errors.As(err, &missingErr):
		return "MissingElement"
	case errors.As(err, &parseErr):
		return "ParseFailure"
	}
	return ""
}
