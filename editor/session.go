// Package editor holds the editing session that connects stored HTML to the
// structured document shown in the rich-text editor.
package editor

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rgonek/contentdesk/converter"
	"github.com/rgonek/contentdesk/document"
	"github.com/rgonek/contentdesk/htmlconverter"
	"github.com/rs/zerolog"
)

var sessionLogger zerolog.Logger

// SetLogger sets the logger used by every session.
func SetLogger(l zerolog.Logger) {
	sessionLogger = l
}

// ChangeFunc receives the serialized HTML after every edit.
type ChangeFunc func(html string)

// Session owns the document of one editor instance. The stored HTML is parsed
// once; after that the document is the source of truth and every edit is
// serialized back through the change callback.
type Session struct {
	id       string
	parser   *htmlconverter.Converter
	renderer *converter.Converter
	onChange ChangeFunc

	mu       sync.Mutex
	notifyMu sync.Mutex
	doc      document.Doc
	loaded   bool
	warnings []document.Warning
}

// NewSession creates a session. onChange may be nil.
func NewSession(parser *htmlconverter.Converter, renderer *converter.Converter, onChange ChangeFunc) *Session {
	return &Session{
		id:       uuid.NewString(),
		parser:   parser,
		renderer: renderer,
		onChange: onChange,
		doc:      document.NewDoc(),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Load parses html into the session document the first time it is called.
// Later calls return the current document and ignore html. A parse failure
// leaves an empty document and a parse_failed warning; the change callback
// is not invoked, so the stored HTML stays as it was until the next edit.
func (s *Session) Load(html string) document.Doc {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.load(html)
	}
	return s.doc.Clone()
}

// Reset discards the session document and loads html again.
func (s *Session) Reset(html string) document.Doc {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(html)
	return s.doc.Clone()
}

func (s *Session) load(html string) {
	s.loaded = true

	result, err := s.parser.Convert(html)
	if err != nil {
		sessionLogger.Warn().
			Err(err).
			Str("session_id", s.id).
			Msg("Failed to parse stored HTML, starting with an empty document")
		s.doc = document.NewDoc()
		s.warnings = []document.Warning{{
			Type:    document.WarningParseFailed,
			Message: err.Error(),
		}}
		return
	}

	for _, warning := range result.Warnings {
		sessionLogger.Debug().
			Str("session_id", s.id).
			Str("warning_type", string(warning.Type)).
			Str("node_type", warning.NodeType).
			Msg(warning.Message)
	}

	s.doc = result.Doc
	s.warnings = result.Warnings
}

// Loaded reports whether the session document has been initialized.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Document returns a copy of the current document.
func (s *Session) Document() document.Doc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Warnings returns the warnings produced by the last load.
func (s *Session) Warnings() []document.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]document.Warning(nil), s.warnings...)
}

// OnEdit replaces the session document, serializes it and reports the HTML
// through the change callback. The callback runs after the session lock is
// released; callbacks are delivered in commit order.
func (s *Session) OnEdit(doc document.Doc) (string, error) {
	s.mu.Lock()
	return s.commit(doc.Clone())
}

// Apply runs edit on a copy of the current document and commits the result.
// Reading, editing and committing happen under one lock; edit must not call
// back into the session.
func (s *Session) Apply(edit func(doc *document.Doc) error) (string, error) {
	s.mu.Lock()
	doc := s.doc.Clone()
	if err := edit(&doc); err != nil {
		s.mu.Unlock()
		return "", err
	}
	return s.commit(doc)
}

// commit must be called with mu held and releases it.
func (s *Session) commit(doc document.Doc) (string, error) {
	result, err := s.renderer.Convert(doc)
	if err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}
	s.doc = doc
	s.loaded = true
	onChange := s.onChange

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Unlock()

	for _, warning := range result.Warnings {
		sessionLogger.Debug().
			Str("session_id", s.id).
			Str("warning_type", string(warning.Type)).
			Msg(warning.Message)
	}

	if onChange != nil {
		onChange(result.HTML)
	}
	return result.HTML, nil
}
