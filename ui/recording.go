package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry is one recorded UI call.
type Entry struct {
	Method string
	Value  string
}

type sharedState struct {
	entries []Entry
	buf     *bytes.Buffer
}

// RecordingUI implements UI for tests. Every call is kept in an entry log,
// and children created by Indent share the log of their parent.
type RecordingUI struct {
	shared      *sharedState
	indentLevel int
}

func NewRecordingUI() *RecordingUI {
	return &RecordingUI{
		shared: &sharedState{buf: &bytes.Buffer{}},
	}
}

func (r *RecordingUI) record(method, value string) {
	r.shared.entries = append(r.shared.entries, Entry{Method: method, Value: value})
}

// Style returns the plain text so tests compare clean strings.
func (r *RecordingUI) Style(t StyledText) string {
	return t.Text
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Critical(format string, args ...any) {
	r.record("Critical", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

// KeyValue records one "label: value" entry per row.
func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+": "+row[1])
	}
}

// Table records one entry per row with the cells joined by " | ".
func (r *RecordingUI) Table(headers []string, rows [][]string) {
	for _, row := range rows {
		r.record("Table", strings.Join(row, " | "))
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{
		shared:      r.shared,
		indentLevel: r.indentLevel + 1,
	}
}

// Writer appends to an internal buffer, see Output.
func (r *RecordingUI) Writer() io.Writer {
	return r.shared.buf
}

func (r *RecordingUI) Entries() []Entry {
	return r.shared.entries
}

// Messages returns the values recorded by one method.
func (r *RecordingUI) Messages(method string) []string {
	var out []string
	for _, e := range r.shared.entries {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

// HasMessage reports whether any entry contains substr, ignoring case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.shared.entries {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}

// Output returns everything written to Writer.
func (r *RecordingUI) Output() string {
	return r.shared.buf.String()
}
