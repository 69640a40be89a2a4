package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/stretchr/testify/require"
)

const greetingFile = `viewer:
  id: alice
  aspect_ratio: 1.6
elements:
  - tag: greeting
    text: "Hello {0}, press {1}"
    position: 400
    parameters:
      - type: text
        value: Alice
      - type: keybind
        keybind_id: 3
  - tag: broken
    text: "a } b"
    position: 200
    z_index: 0
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	path := writeFile(t, "elements.yaml", greetingFile)

	out, err := runCmd(t, "render", path)
	require.NoError(t, err)
	require.Contains(t, out, "Hello Alice, press {1}")

	out, err = runCmd(t, "render", "--raw", path)
	require.NoError(t, err)
	require.Contains(t, out, "Hello {0}, press {1}")
	// the lone brace is escaped for the client's formatter
	require.Contains(t, out, "a }} b")
}

func TestRender_WritesPayload(t *testing.T) {
	path := writeFile(t, "elements.yaml", greetingFile)
	payloadPath := filepath.Join(t.TempDir(), "payload.bin")

	_, err := runCmd(t, "render", "--payload", payloadPath, path)
	require.NoError(t, err)

	payload, err := os.ReadFile(payloadPath)
	require.NoError(t, err)

	frame, err := combiner.Decode(payload)
	require.NoError(t, err)
	require.Equal(t, combiner.HintMessageID, frame.MessageID)
	require.Len(t, frame.Parameters, 2)
}

func TestInspect(t *testing.T) {
	path := writeFile(t, "elements.yaml", greetingFile)

	out, err := runCmd(t, "inspect", path)
	require.NoError(t, err)

	require.Contains(t, out, "payload for alice")
	require.Contains(t, out, "0x2e5d")
	require.Contains(t, out, "parameters (2)")
	require.Contains(t, out, `"Alice"`)
	require.Contains(t, out, "keybind 3")
	require.Contains(t, out, "element 1: 1 warnings")
	require.Contains(t, out, "lone_brace")
}

func TestRender_InvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "no_elements",
			content: "viewer:\n  id: alice\n",
			errText: "invalid element file",
		},
		{
			name:    "unknown_key",
			content: "elements:\n  - text: hi\n    colour: red\n",
			errText: "cannot parse element file",
		},
		{
			name:    "position_out_of_range",
			content: "elements:\n  - text: hi\n    position: 5000\n",
			errText: "invalid element file",
		},
		{
			name:    "bad_curve",
			content: "elements:\n  - text: hi\n    parameters:\n      - type: curve\n",
			errText: "elements[0]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "elements.yaml", tc.content)

			_, err := runCmd(t, "render", path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestRender_MissingFile(t *testing.T) {
	_, err := runCmd(t, "render", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	out, err := runCmd(t, "parse", "--param", "x", "one\n{0} {5} }")
	require.NoError(t, err)

	require.Contains(t, out, "modifications (4)")
	require.Contains(t, out, "linebreak")
	require.Contains(t, out, "format_item {0}")
	require.Contains(t, out, "invalid_format_item")
	require.Contains(t, out, "parse: 2 warnings")
	require.Contains(t, out, "lone_brace")
}

func TestParse_Literal(t *testing.T) {
	out, err := runCmd(t, "parse", "--literal", "<size=10>{")
	require.NoError(t, err)

	// inside noparse the brace is doubled without a warning
	require.NotContains(t, out, "lone_brace")
	require.NotContains(t, out, " tag <size")
}

func TestExample_RoundTrip(t *testing.T) {
	out, err := runCmd(t, "example")
	require.NoError(t, err)

	file, err := parseElementFile([]byte(out))
	require.NoError(t, err)
	require.Len(t, file.Elements, 2)
	require.Equal(t, "alice", file.viewerID())

	b, err := file.build()
	require.NoError(t, err)

	_, frame, err := b.frame()
	require.NoError(t, err)

	expanded := frame.Expand()
	require.Contains(t, expanded, "Round 3")
	// the footer has the lower z-index, so its parameter comes first
	require.Contains(t, expanded, "<players></noparse>: 12")
}
