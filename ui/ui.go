package ui

import (
	"encoding/json"
	"io"
)

// Severity is the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
	SeverityCritical
)

// StyledText pairs a plain string with a Severity. It marshals to JSON as
// the plain string.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is the output side of every l2plugins command.
//
// Production code uses TerminalUI, tests use RecordingUI and inspect what was
// written.
type UI interface {
	// Style colours t according to its Severity. Without colours the plain
	// text is returned.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error does not exit, callers decide what to do next.
	Error(format string, args ...any)
	// Critical is for data the user must review, such as the fields of a
	// transaction about to be signed.
	Critical(format string, args ...any)

	// Section writes a separator centred around title.
	Section(title string)

	// KeyValue renders label/value rows with the values aligned.
	KeyValue(rows [][2]string)

	// Table renders a bordered table. No header row is drawn when headers
	// is empty.
	Table(headers []string, rows [][]string)

	// Spinner shows msg until the returned stop function is called.
	Spinner(msg string) func()

	// Indent returns a child UI one level deeper sharing the same output.
	Indent() UI

	// Writer prepends the current indentation to every written line.
	Writer() io.Writer
}

// KindText styles a network kind: live networks stand out, forks are
// flagged and local networks stay plain.
func KindText(kind string) StyledText {
	switch kind {
	case "live":
		return StyledText{Text: kind, Severity: SeveritySuccess}
	case "fork":
		return StyledText{Text: kind, Severity: SeverityWarn}
	}
	return StyledText{Text: kind, Severity: SeverityInfo}
}
