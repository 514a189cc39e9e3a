package core

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoParentIndex means the lifted path has no index document above it.
	ErrNoParentIndex = errors.New("no parent index document")
	// ErrNoTitle means the source index document has no usable first line.
	ErrNoTitle = errors.New("document has no title, check if you have saved it")
	// ErrNoTOC means the source index document has no TOC block to lift.
	ErrNoTOC = errors.New("cannot find ToC")
)

// Strategy names how the lifted entry was placed in an ancestor.
type Strategy string

const (
	StrategySegment    Strategy = "segment"
	StrategyAfterTOC   Strategy = "after-toc"
	StrategyAfterTitle Strategy = "after-title"
)

// LiftOptions controls the lift operation.
type LiftOptions struct {
	Config Config
	DryRun bool // compute every step but write nothing
	Logger logrus.FieldLogger
}

// LiftStep reports what happened to one ancestor document.
type LiftStep struct {
	Document string   `json:"document" yaml:"document"`
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Indent   string   `json:"indent" yaml:"indent"`
	Changed  bool     `json:"changed" yaml:"changed"`
	Before   string   `json:"-" yaml:"-"`
	After    string   `json:"-" yaml:"-"`
}

// LiftResult reports the outcome of the lift operation.
type LiftResult struct {
	Source string `json:"source" yaml:"source"`
	Title  string `json:"title" yaml:"title"`
	Entry  string `json:"entry" yaml:"entry"`
	// Root is the directory of the last processed document.
	Root   string     `json:"root" yaml:"root"`
	DryRun bool       `json:"dry_run" yaml:"dry_run"`
	Steps  []LiftStep `json:"steps" yaml:"steps"`
}

// Lift propagates the TOC of path's nearest index document into every
// ancestor index document up to the repository root.
//
// Fatal input errors are returned before any file is written. Ancestors are
// written one at a time, so an error on ancestor k leaves 1..k-1 updated.
func Lift(path string, opts LiftOptions) (*LiftResult, error) {
	cfg := opts.Config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	next, stop := iter.Pull(Ancestors(abs, cfg))
	defer stop()

	source, ok := next()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoParentIndex, path)
	}
	content, err := readDocument(source)
	if err != nil {
		return nil, err
	}
	title, entry, err := buildEntry(source, content, cfg)
	if err != nil {
		return nil, err
	}
	log.WithField("document", source).Debugf("lifting %q", title)

	res := &LiftResult{
		Source: source,
		Title:  title,
		Entry:  entry,
		Root:   filepath.Dir(source),
		DryRun: opts.DryRun,
	}

	indent := ""
	for ancestor, ok := next(); ok; ancestor, ok = next() {
		step, err := liftInto(ancestor, source, entry, indent, cfg, log)
		if err != nil {
			return res, fmt.Errorf("%s: %w", ancestor, err)
		}
		if !opts.DryRun {
			if err := writeDocument(ancestor, step.After); err != nil {
				return res, err
			}
		}
		indent = step.Indent
		res.Steps = append(res.Steps, step)
		res.Root = filepath.Dir(ancestor)
	}
	return res, nil
}

// documentTitle returns the first line with its "# " marker removed.
func documentTitle(content string) (string, bool) {
	first, _, _ := strings.Cut(content, "\n")
	title := strings.TrimPrefix(first, "# ")
	if strings.TrimSpace(title) == "" {
		return "", false
	}
	return title, true
}

// buildEntry builds the list item that links to doc, with doc's TOC block
// nested one level below it.
func buildEntry(doc, content string, cfg Config) (title, entry string, err error) {
	title, ok := documentTitle(content)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrNoTitle, doc)
	}
	span, ok := FindTOC(content)
	if !ok {
		return "", "", fmt.Errorf("%w in %s", ErrNoTOC, doc)
	}
	head := fmt.Sprintf("%s [%s](%s)\n", cfg.ListMarker, title, EncodePath(filepath.Base(doc)))
	return title, head + prefixEachLine(content[span.Start:span.End], cfg.Indent), nil
}

// liftInto computes ancestor's new content. The segment key and the link
// prefix are both taken relative to the source document, so rewrites never
// compound from one ancestor to the next.
func liftInto(ancestor, source, entry, indent string, cfg Config, log logrus.FieldLogger) (LiftStep, error) {
	content, err := readDocument(ancestor)
	if err != nil {
		return LiftStep{}, err
	}
	dir := filepath.Dir(ancestor)
	key, err := relSlash(dir, source)
	if err != nil {
		return LiftStep{}, err
	}
	prefix, err := relSlash(dir, filepath.Dir(source))
	if err != nil {
		return LiftStep{}, err
	}

	a := locateAnchor(content, key, log.WithField("document", ancestor))
	separator := ""
	if a.inserted {
		indent += cfg.Indent
		separator = "\n"
	} else {
		indent = a.indent
	}
	log.WithFields(logrus.Fields{
		"document": ancestor,
		"strategy": a.strategy,
		"indent":   len(indent),
	}).Debug("placing entry")

	replacement := separator + prefixEachLine(RewriteLinks(entry, prefix+"/"), indent)
	after := content[:a.Start] + replacement + content[a.End:]
	return LiftStep{
		Document: ancestor,
		Strategy: a.strategy,
		Indent:   indent,
		Changed:  after != content,
		Before:   content,
		After:    after,
	}, nil
}

// anchor is where the entry goes in an ancestor. inserted anchors are empty
// spans; the entry is added there rather than replacing a segment.
type anchor struct {
	Span
	strategy Strategy
	indent   string
	inserted bool
}

type anchorLocator struct {
	strategy Strategy
	// missing is logged when this locator fails, before the next one runs.
	missing string
	locate  func(content, key string) (anchor, bool)
}

var anchorLocators = []anchorLocator{
	{StrategySegment, "cannot find existing ToC segment, trying to append after the ToC", locateSegment},
	{StrategyAfterTOC, "cannot find ToC, trying to append after the title", locateAfterTOC},
	{StrategyAfterTitle, "", locateAfterTitle},
}

func locateAnchor(content, key string, log logrus.FieldLogger) anchor {
	for _, l := range anchorLocators {
		if a, ok := l.locate(content, key); ok {
			a.strategy = l.strategy
			return a
		}
		log.Info(l.missing)
	}
	// locateAfterTitle always succeeds.
	panic("unreachable")
}

func locateSegment(content, key string) (anchor, bool) {
	seg, ok := FindSegment(content, key)
	if !ok {
		return anchor{}, false
	}
	return anchor{Span: seg.Span, indent: seg.Indent}, true
}

func locateAfterTOC(content, _ string) (anchor, bool) {
	span, ok := FindTOC(content)
	if !ok {
		return anchor{}, false
	}
	return anchor{Span: Span{Start: span.End, End: span.End}, inserted: true}, true
}

// locateAfterTitle anchors after the first line; an empty document anchors
// at its start.
func locateAfterTitle(content, _ string) (anchor, bool) {
	first, _, _ := strings.Cut(content, "\n")
	n := len(first)
	return anchor{Span: Span{Start: n, End: n}, inserted: true}, true
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
