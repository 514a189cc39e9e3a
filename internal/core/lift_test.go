package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	wantB = "# B\n" +
		"\n" +
		"- [C](C/README.md)\n" +
		"  - [C1](C/C1/README.md)\n" +
		"  - [C2](C/C2/README.md)\n"
	wantA = "# A\n" +
		"\n" +
		"- [B](B/README.md)\n" +
		"  - [C](B/C/README.md)\n" +
		"    - [C1](B/C/C1/README.md)\n" +
		"    - [C2](B/C/C2/README.md)\n" +
		"  - [D](B/D/README.md)\n"
	// liftedC is the entry for C as hosted by A, without its indentation.
	liftedC = "- [C](B/C/README.md)\n" +
		"  - [C1](B/C/C1/README.md)\n" +
		"  - [C2](B/C/C2/README.md)"
)

func strategies(steps []LiftStep) []Strategy {
	out := make([]Strategy, len(steps))
	for i, s := range steps {
		out[i] = s.Strategy
	}
	return out
}

func TestLift_EndToEnd(t *testing.T) {
	root := nestedTree(t)
	source := filepath.Join(root, "B", "C", "README.md")
	sourceBefore := readFile(t, source)

	res, err := Lift(source, LiftOptions{})
	require.NoError(t, err)

	assert.Equal(t, wantB, readFile(t, filepath.Join(root, "B", "README.md")))
	assert.Equal(t, wantA, readFile(t, filepath.Join(root, "README.md")))
	assert.Equal(t, sourceBefore, readFile(t, source), "source document must not change")

	assert.Equal(t, source, res.Source)
	assert.Equal(t, "C", res.Title)
	assert.Equal(t, "- [C](README.md)\n  - [C1](C1/README.md)\n  - [C2](C2/README.md)", res.Entry)
	assert.Equal(t, root, res.Root)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, []Strategy{StrategySegment, StrategySegment}, strategies(res.Steps))
	assert.Equal(t, "", res.Steps[0].Indent)
	assert.Equal(t, "  ", res.Steps[1].Indent)
	assert.True(t, res.Steps[0].Changed)
	assert.True(t, res.Steps[1].Changed)
}

func TestLift_FromChildOfIndexDirectory(t *testing.T) {
	root := nestedTree(t)
	writeFiles(t, root, map[string]string{"B/C/notes.md": "notes\n"})

	res, err := Lift(filepath.Join(root, "B", "C", "notes.md"), LiftOptions{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "B", "C", "README.md"), res.Source)
	assert.Len(t, res.Steps, 2)
	assert.Equal(t, wantA, readFile(t, filepath.Join(root, "README.md")))
}

func TestLift_IsIdempotent(t *testing.T) {
	root := nestedTree(t)
	source := filepath.Join(root, "B", "C", "README.md")

	_, err := Lift(source, LiftOptions{})
	require.NoError(t, err)
	res, err := Lift(source, LiftOptions{})
	require.NoError(t, err)

	assert.Equal(t, []Strategy{StrategySegment, StrategySegment}, strategies(res.Steps))
	for _, step := range res.Steps {
		assert.False(t, step.Changed, step.Document)
	}
	assert.Equal(t, wantB, readFile(t, filepath.Join(root, "B", "README.md")))
	assert.Equal(t, wantA, readFile(t, filepath.Join(root, "README.md")))
}

func TestLift_StopsAtRepositoryRoot(t *testing.T) {
	root := nestedTree(t)
	outside := filepath.Join(filepath.Dir(root), "README.md")
	writeFiles(t, filepath.Dir(root), map[string]string{
		"README.md": "# Outside\n\n- [A](A/README.md)\n  - [C](A/B/C/README.md)\n",
	})
	before := readFile(t, outside)

	res, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{})
	require.NoError(t, err)

	assert.Len(t, res.Steps, 2)
	assert.Equal(t, before, readFile(t, outside))
}

func TestLift_AppendsAfterTOC(t *testing.T) {
	root := nestedTree(t)
	writeFiles(t, root, map[string]string{
		"README.md": "# A\n\n- [B](B/README.md)\n\nMore text.\n",
	})
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)

	res, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{Logger: logger})
	require.NoError(t, err)

	want := "# A\n" +
		"\n" +
		"- [B](B/README.md)\n" +
		prefixEachLine(liftedC, "  ") + "\n" +
		"\n" +
		"More text.\n"
	assert.Equal(t, want, readFile(t, filepath.Join(root, "README.md")))
	assert.Equal(t, []Strategy{StrategySegment, StrategyAfterTOC}, strategies(res.Steps))
	assert.Equal(t, "  ", res.Steps[1].Indent)
	assert.Contains(t, logs.String(), "cannot find existing ToC segment")
	assert.Contains(t, logs.String(), filepath.Join(root, "README.md"))
	assert.NotContains(t, logs.String(), "cannot find ToC,")

	// The appended entry is found as a segment on the next run.
	res, err = Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{})
	require.NoError(t, err)
	assert.Equal(t, []Strategy{StrategySegment, StrategySegment}, strategies(res.Steps))
	assert.Equal(t, want, readFile(t, filepath.Join(root, "README.md")))
}

func TestLift_AppendsAfterTitle(t *testing.T) {
	root := nestedTree(t)
	writeFiles(t, root, map[string]string{
		"README.md": "# A\n\nIntro.\n",
	})
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)

	res, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{Logger: logger})
	require.NoError(t, err)

	want := "# A\n" +
		prefixEachLine(liftedC, "  ") + "\n" +
		"\n" +
		"Intro.\n"
	assert.Equal(t, want, readFile(t, filepath.Join(root, "README.md")))
	assert.Equal(t, StrategyAfterTitle, res.Steps[1].Strategy)
	assert.Contains(t, logs.String(), "cannot find existing ToC segment")
	assert.Contains(t, logs.String(), "cannot find ToC, trying to append after the title")

	_, err = Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{})
	require.NoError(t, err)
	assert.Equal(t, want, readFile(t, filepath.Join(root, "README.md")))
}

func TestLift_EmptyAncestor(t *testing.T) {
	root := nestedTree(t)
	writeFiles(t, root, map[string]string{"README.md": ""})

	res, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{})
	require.NoError(t, err)

	assert.Equal(t, StrategyAfterTitle, res.Steps[1].Strategy)
	assert.Equal(t, "\n"+prefixEachLine(liftedC, "  "), readFile(t, filepath.Join(root, "README.md")))
}

func TestLift_FallbackIndentAccumulates(t *testing.T) {
	root := nestedTree(t)
	writeFiles(t, root, map[string]string{
		"README.md":   "# A\n\n- [B](B/README.md)\n",
		"B/README.md": "# B\n\n- [X](X/README.md)\n",
	})

	res, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{})
	require.NoError(t, err)

	assert.Equal(t, []Strategy{StrategyAfterTOC, StrategyAfterTOC}, strategies(res.Steps))
	assert.Equal(t, "  ", res.Steps[0].Indent)
	assert.Equal(t, "    ", res.Steps[1].Indent)
	assert.Equal(t,
		"# B\n\n- [X](X/README.md)\n"+
			"  - [C](C/README.md)\n"+
			"    - [C1](C/C1/README.md)\n"+
			"    - [C2](C/C2/README.md)\n",
		readFile(t, filepath.Join(root, "B", "README.md")))
	assert.Equal(t,
		"# A\n\n- [B](B/README.md)\n"+prefixEachLine(liftedC, "    ")+"\n",
		readFile(t, filepath.Join(root, "README.md")))
}

func TestLift_ReplacementKeepsSegmentIndent(t *testing.T) {
	root := nestedTree(t)
	writeFiles(t, root, map[string]string{
		"README.md": "# A\n\n- [B](B/README.md)\n      - [C](B/C/README.md)\n        - [old](B/C/old.md)\n",
	})

	res, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{})
	require.NoError(t, err)

	step := res.Steps[1]
	require.Equal(t, StrategySegment, step.Strategy)
	require.Equal(t, "      ", step.Indent)

	got := readFile(t, filepath.Join(root, "README.md"))
	assert.NotContains(t, got, "old.md")
	replaced := strings.TrimPrefix(got, "# A\n\n- [B](B/README.md)\n")
	for _, line := range strings.Split(strings.TrimSuffix(replaced, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, step.Indent), "line %q is less indented than the segment", line)
	}
}

func TestLift_EncodedNames(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	writeFiles(t, root, map[string]string{
		"README.md":          "# Root\n\n- [My Notes](My%20Notes/README.md)\n",
		"My Notes/README.md": "# My Notes\n\n- [C#](C%23.md)\n- [100%](100%25.md)\n",
	})
	markRepositoryRoot(t, root)

	_, err := Lift(filepath.Join(root, "My Notes", "README.md"), LiftOptions{})
	require.NoError(t, err)

	assert.Equal(t,
		"# Root\n\n"+
			"- [My Notes](My%20Notes/README.md)\n"+
			"  - [C#](My%20Notes/C%23.md)\n"+
			"  - [100%](My%20Notes/100%25.md)\n",
		readFile(t, filepath.Join(root, "README.md")))
}

func TestLift_CustomMarkerAndIndent(t *testing.T) {
	root := nestedTree(t)
	cfg := DefaultConfig()
	cfg.ListMarker = "*"
	cfg.Indent = "    "

	res, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, "* [C](README.md)\n    - [C1](C1/README.md)\n    - [C2](C2/README.md)", res.Entry)
	assert.Equal(t,
		"# B\n\n* [C](C/README.md)\n    - [C1](C/C1/README.md)\n    - [C2](C/C2/README.md)\n",
		readFile(t, filepath.Join(root, "B", "README.md")))
}

func TestLift_DryRunWritesNothing(t *testing.T) {
	root := nestedTree(t)
	beforeA := readFile(t, filepath.Join(root, "README.md"))
	beforeB := readFile(t, filepath.Join(root, "B", "README.md"))

	res, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, res.DryRun)
	assert.Equal(t, beforeA, readFile(t, filepath.Join(root, "README.md")))
	assert.Equal(t, beforeB, readFile(t, filepath.Join(root, "B", "README.md")))
	require.Len(t, res.Steps, 2)
	assert.Equal(t, beforeB, res.Steps[0].Before)
	assert.Equal(t, wantB, res.Steps[0].After)
	assert.Equal(t, wantA, res.Steps[1].After)
}

func TestLift_NoAncestors(t *testing.T) {
	root := filepath.Join(t.TempDir(), "C")
	writeFiles(t, root, map[string]string{"README.md": "# C\n\n- [C1](C1/README.md)\n"})
	markRepositoryRoot(t, root)

	res, err := Lift(filepath.Join(root, "README.md"), LiftOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Steps)
	assert.Equal(t, root, res.Root)
}

func TestLift_FatalErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string // content of B/C/README.md; "-" removes it
		wantErr error
	}{
		{"no parent index", "-", ErrNoParentIndex},
		{"empty document", "", ErrNoTitle},
		{"blank title", "# \n\n- [C1](C1/README.md)\n", ErrNoTitle},
		{"no toc", "# C\n\nJust text.\n", ErrNoTOC},
		{"only nested toc", "# C\n\n  - [C1](C1/README.md)\n", ErrNoTOC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := nestedTree(t)
			sourcePath := filepath.Join(root, "B", "C", "README.md")
			if tt.source == "-" {
				require.NoError(t, os.Remove(sourcePath))
				writeFiles(t, root, map[string]string{"B/C/notes.md": "x\n"})
				sourcePath = filepath.Join(root, "B", "C", "notes.md")
			} else {
				writeFiles(t, root, map[string]string{"B/C/README.md": tt.source})
			}
			beforeA := readFile(t, filepath.Join(root, "README.md"))
			beforeB := readFile(t, filepath.Join(root, "B", "README.md"))

			_, err := Lift(sourcePath, LiftOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			assert.Equal(t, beforeA, readFile(t, filepath.Join(root, "README.md")))
			assert.Equal(t, beforeB, readFile(t, filepath.Join(root, "B", "README.md")))
		})
	}
}

func TestLift_PartialFailureKeepsEarlierAncestors(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	root := nestedTree(t)
	beforeA := readFile(t, filepath.Join(root, "README.md"))

	// A is read-only, so the temp file for A/README.md cannot be created.
	require.NoError(t, os.Chmod(root, 0o555))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	res, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{})
	require.Error(t, err)

	assert.Equal(t, wantB, readFile(t, filepath.Join(root, "B", "README.md")))
	assert.Equal(t, beforeA, readFile(t, filepath.Join(root, "README.md")))
	require.NotNil(t, res)
	require.Len(t, res.Steps, 1)
	assert.Equal(t, filepath.Join(root, "B", "README.md"), res.Steps[0].Document)
}

func TestLift_ErrorNamesDocument(t *testing.T) {
	root := nestedTree(t)
	writeFiles(t, root, map[string]string{"B/C/README.md": "# C\n\nJust text.\n"})

	_, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(root, "B", "C", "README.md"))
	assert.NotContains(t, err.Error(), "\n")
}

func TestLift_InvalidConfig(t *testing.T) {
	root := nestedTree(t)
	cfg := DefaultConfig()
	cfg.ListMarker = "+"

	_, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{Config: cfg})
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLift_OutputIsNestedMarkdownList(t *testing.T) {
	root := nestedTree(t)
	_, err := Lift(filepath.Join(root, "B", "C", "README.md"), LiftOptions{})
	require.NoError(t, err)

	tree := nestedLinks(t, readFile(t, filepath.Join(root, "README.md")))
	assert.Equal(t, []string{"B/C/README.md", "B/D/README.md"}, tree["B/README.md"])
	assert.Equal(t, []string{"B/C/C1/README.md", "B/C/C2/README.md"}, tree["B/C/README.md"])

	tree = nestedLinks(t, readFile(t, filepath.Join(root, "B", "README.md")))
	assert.Equal(t, []string{"C/C1/README.md", "C/C2/README.md"}, tree["C/README.md"])
}

// nestedLinks parses content with goldmark and maps the link destination of
// every list item to the destinations of its direct child items.
func nestedLinks(t *testing.T, content string) map[string][]string {
	t.Helper()
	src := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	tree := make(map[string][]string)
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		item, ok := n.(*ast.ListItem)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		dest := itemLink(item)
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			list, ok := c.(*ast.List)
			if !ok {
				continue
			}
			for li := list.FirstChild(); li != nil; li = li.NextSibling() {
				tree[dest] = append(tree[dest], itemLink(li))
			}
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return tree
}

// itemLink returns the destination of the first link in a list item's own text.
func itemLink(item ast.Node) string {
	first := item.FirstChild()
	if first == nil {
		return ""
	}
	var dest string
	_ = ast.Walk(first, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if link, ok := n.(*ast.Link); ok && entering {
			dest = string(link.Destination)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return dest
}
