package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/connerohnesorge/asciidork/blockparser"
	"github.com/connerohnesorge/asciidork/eval"
)

func parse(t *testing.T, src string) (*eval.RecordingBackend, string) {
	t.Helper()
	p := blockparser.New("t.adoc", []byte(src), blockparser.Config{})
	doc, _, err := p.Parse()
	require.NoError(t, err)

	e := eval.New(doc.Anchors, nil)
	b := eval.NewRecordingBackend()
	require.NoError(t, e.Evaluate(doc, b))

	return b, b.Render()
}

func indexOf(events []string, target string) int {
	for i, ev := range events {
		if ev == target {
			return i
		}
	}

	return -1
}

func TestEvaluateParagraphRendersText(t *testing.T) {
	b, out := parse(t, "Hello world.\n")
	require.Contains(t, out, "Hello world.")
	require.Contains(t, b.Events, "enter:paragraph")
	require.Contains(t, b.Events, "exit:paragraph")
}

func TestEvaluateBoldNestsEnterExit(t *testing.T) {
	b, out := parse(t, "a *bold* word\n")
	require.Contains(t, out, "bold")
	idxEnter := indexOf(b.Events, "enter:bold")
	idxExit := indexOf(b.Events, "exit:bold")
	require.GreaterOrEqual(t, idxEnter, 0)
	require.Greater(t, idxExit, idxEnter)
}

func TestEvaluateSectionHeadingOrder(t *testing.T) {
	b, _ := parse(t, "== Introduction\n\ncontent here\n")
	require.Contains(t, b.Events, "enter:section-heading")
	require.Contains(t, b.Events, "exit:section-heading")
	idxSec := indexOf(b.Events, "enter:section:1")
	idxHead := indexOf(b.Events, "enter:section-heading")
	require.Greater(t, idxHead, idxSec)
}

func TestEvaluateXrefResolvesSectionTitle(t *testing.T) {
	b, out := parse(t, "== Introduction\n\nSee <<_introduction>> for more.\n")
	require.NotContains(t, b.Events, "missing-xref:_introduction")
	require.Contains(t, out, "Introduction")
}

func TestEvaluateKeyboardMacroSplitsKeys(t *testing.T) {
	b, _ := parse(t, "press kbd:[Ctrl+Alt+Del] now\n")
	require.Contains(t, b.Events, "kbd:Ctrl+Alt+Del")
}

func TestEvaluateMenuMacroSplitsItems(t *testing.T) {
	b, _ := parse(t, "select menu:File[Save As...] to continue\n")
	require.Contains(t, b.Events, "menu:File>Save As...")
}

func TestEvaluateUnknownXrefFallsBackToBracketedID(t *testing.T) {
	b, out := parse(t, "See <<nonexistent>> for more.\n")
	require.Contains(t, b.Events, "missing-xref:nonexistent")
	require.Contains(t, out, "[nonexistent]")
}

func TestEvaluateAsciidocTableCellRecursesIntoSubBackend(t *testing.T) {
	b, out := parse(t, "[cols=\"1a\"]\n|===\n|a *bold* cell\n|===\n")
	require.Contains(t, b.Events, "asciidoc-cell-result")
	require.Contains(t, out, "bold")
}

func TestEvaluateFileQualifiedXrefResolves(t *testing.T) {
	b, out := parse(t, "== Intro\n\nSee <<t.adoc#_intro>>.\n")
	require.NotContains(t, b.Events, "missing-xref:t.adoc#_intro")
	require.Contains(t, out, "Intro")
}

func TestEvaluateXrefCycleTerminates(t *testing.T) {
	// Two anchors whose reftexts reference each other; reftext is
	// rendered as plain text, so the inner reference is not resolved
	// again and rendering terminates.
	src := "[[a,see <<b>>]]alpha\n\n[[b,see <<a>>]]beta\n\nGo to <<a>>.\n"
	b, _ := parse(t, src)
	require.NotEmpty(t, b.Events)
}

func TestEvaluateQuotedXrefLinktextKeepsQuotes(t *testing.T) {
	_, out := parse(t, "== Intro\n\nSee <<_intro,\"the intro\">>.\n")
	require.Contains(t, out, "\"the intro\"")
}

func TestEvaluateDescriptionListDrivesTermAndDescription(t *testing.T) {
	b, out := parse(t, "CPU:: The brain.\n")
	require.Contains(t, b.Events, "enter:dlist")
	require.Contains(t, b.Events, "enter:dlist-term")
	require.Contains(t, b.Events, "enter:dlist-description")
	require.Contains(t, out, "CPU")
	require.Contains(t, out, "The brain.")
}
