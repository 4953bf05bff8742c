package asciidork_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/connerohnesorge/asciidork/asciidork"
	"github.com/connerohnesorge/asciidork/eval"
)

func TestParseAndEvaluateRoundTrip(t *testing.T) {
	out, err := asciidork.Parse("t.adoc", []byte("== Title\n\nSome *bold* text.\n"), asciidork.Config{})
	require.NoError(t, err)
	require.NotNil(t, out.Doc)

	b := eval.NewRecordingBackend()
	require.NoError(t, asciidork.Evaluate(out, b))
	require.Contains(t, b.Render(), "bold")
}

func TestParseStrictModeAbortsOnFirstError(t *testing.T) {
	out, err := asciidork.Parse("t.adoc", []byte("|===\n|unterminated\n"), asciidork.Config{Strict: true})
	require.Error(t, err)
	require.Nil(t, out.Doc)
}
