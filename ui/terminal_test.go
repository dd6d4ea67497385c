package ui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferUI() (*TerminalUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewTerminalUIWithWriter(buf), buf
}

func TestKeyValueAlignment(t *testing.T) {
	u, buf := newBufferUI()
	u.KeyValue([][2]string{{"Chain ID", "8453"}, {"Type", "static"}})

	assert.Equal(t, "Chain ID  8453\nType      static\n", buf.String())
}

func TestTable(t *testing.T) {
	u, buf := newBufferUI()
	u.Table([]string{"Name", "Chain ID"}, [][]string{{"mainnet", "8453"}, {"local", "0"}})

	lines := strings.Split(strings.TrimSpace(ansi.Strip(buf.String())), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "┌─────────┬──────────┐", lines[0])
	assert.Equal(t, "│ Name    │ Chain ID │", lines[1])
	assert.Equal(t, "│ mainnet │ 8453     │", lines[3])
	assert.Equal(t, "└─────────┴──────────┘", lines[5])
}

func TestSectionAndIndent(t *testing.T) {
	u, buf := newBufferUI()
	u.Section("base")
	child := u.Indent()
	child.Info("mainnet")
	fmt.Fprintln(child.Writer(), "nested")

	out := buf.String()
	assert.Contains(t, out, strings.Repeat("=", 22)+" base "+strings.Repeat("=", 22))
	assert.Contains(t, out, "\n  mainnet\n")
	assert.Contains(t, out, "  nested\n")
}

func TestNoColoursOffTerminal(t *testing.T) {
	u, buf := newBufferUI()
	u.Success("connected")
	assert.Equal(t, "connected\n", buf.String())
	assert.Equal(t, "fork", u.Style(KindText("fork")))

	stop := u.Spinner("connecting")
	stop()
	assert.Contains(t, buf.String(), "connecting\n")
}

func TestRecordingUI(t *testing.T) {
	r := NewRecordingUI()
	r.Info("hello %s", "base")
	r.Indent().KeyValue([][2]string{{"Type", "dynamic"}})
	r.Table(nil, [][]string{{"a", "b"}})

	assert.Equal(t, []string{"hello base"}, r.Messages("Info"))
	assert.Equal(t, []string{"Type: dynamic"}, r.Messages("KeyValue"))
	assert.Equal(t, []string{"a | b"}, r.Messages("Table"))
	assert.True(t, r.HasMessage("DYNAMIC"))
}
