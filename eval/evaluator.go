package eval

import (
	"fmt"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/diag"
)

// Evaluator drives a Backend over a parsed *ast.Document.
// One Evaluator is built per document and is not reused across
// documents;
// nested AsciiDoc table-cell documents get their own child Evaluator
// (see evalAsciidocCell) sharing this one's anchor registry so xrefs
// into the parent document still resolve from inside a cell.
type Evaluator struct {
	anchors      *ast.AnchorRegistry
	diags        *diag.Bag
	resolving    map[string]bool // xref cycle guard, keyed by anchor id
	footnoteNums map[string]int  // footnote id -> assigned ordinal
	footnoteNext int
}

// New creates an Evaluator over a document's anchor registry. diags may
// be nil; when non-nil, unresolved xrefs are recorded as warnings
// (an unknown anchor is always a warning, never an error).
func New(anchors *ast.AnchorRegistry, diags *diag.Bag) *Evaluator {
	return &Evaluator{
		anchors:      anchors,
		diags:        diags,
		resolving:    make(map[string]bool),
		footnoteNums: make(map[string]int),
	}
}

// Evaluate walks doc and drives b. It returns the first error any
// Backend method or nested evaluation raises.
func (e *Evaluator) Evaluate(doc *ast.Document, b Backend) error {
	if err := b.EnterDocument(doc); err != nil {
		return err
	}

	if doc.Title != nil {
		if err := runPair(b.EnterHeader, b.ExitHeader, doc, func() error {
			return runPair(b.EnterDocumentTitle, b.ExitDocumentTitle, doc, func() error {
				return e.evalInlines(doc.Title, b)
			})
		}); err != nil {
			return err
		}
	}

	if err := b.EnterContent(doc); err != nil {
		return err
	}

	if doc.TOC != nil && doc.TOC.Enabled && doc.TOC.Position == ast.TOCPreamble {
		hasMacro := false
		for _, blk := range doc.Body {
			if _, ok := blk.(*ast.TableOfContentsBlock); ok {
				hasMacro = true

				break
			}
		}
		if !hasMacro {
			if err := runPair(b.EnterPreamble, b.ExitPreamble, doc, func() error {
				return e.evalTOC(doc.TOC, b)
			}); err != nil {
				return err
			}
		}
	}

	if err := e.evalBlocksWithTOC(doc.Body, doc.TOC, b); err != nil {
		return err
	}

	if err := b.ExitContent(doc); err != nil {
		return err
	}
	if err := runPair(b.EnterFooter, b.ExitFooter, doc, func() error { return nil }); err != nil {
		return err
	}

	return b.ExitDocument(doc)
}

// evalBlocksWithTOC walks a document's top-level body. An explicit
// toc::[] macro block, if present, always wins over Position;
// otherwise the TOC is placed once, before the first block,
// honoring a Left/Right/Auto Position (Preamble was already placed by
// the caller before this runs).
func (e *Evaluator) evalBlocksWithTOC(body []ast.Block, toc *ast.TOC, b Backend) error {
	hasExplicitMacro := false
	if toc != nil && toc.Enabled {
		for _, blk := range body {
			if _, ok := blk.(*ast.TableOfContentsBlock); ok {
				hasExplicitMacro = true

				break
			}
		}
	}

	placed := toc == nil || !toc.Enabled || toc.Position == ast.TOCPreamble || hasExplicitMacro
	for _, blk := range body {
		if !placed {
			if err := e.evalTOC(toc, b); err != nil {
				return err
			}
			placed = true
		}
		if _, isMacro := blk.(*ast.TableOfContentsBlock); isMacro {
			if hasExplicitMacro {
				if err := e.evalTOC(toc, b); err != nil {
					return err
				}
			}

			continue
		}
		if err := e.evalBlock(blk, b); err != nil {
			return err
		}
	}
	if !placed {
		return e.evalTOC(toc, b)
	}

	return nil
}

func runPair[T any](enter, exit func(T) error, v T, body func() error) error {
	if err := enter(v); err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}

	return exit(v)
}

//nolint:gocyclo,revive // flat dispatch over a closed Block union, mirrors ast.dispatch
func (e *Evaluator) evalBlock(blk ast.Block, b Backend) error {
	switch t := blk.(type) {
	case *ast.Paragraph:
		return runPair(b.EnterParagraphBlock, b.ExitParagraphBlock, t, func() error {
			return e.evalSimpleContent(t, t.Children(), b)
		})
	case *ast.Section:
		return e.evalSection(t, b)
	case *ast.DocumentAttributeDecl:
		return b.VisitDocumentAttributeDecl(t)
	case *ast.Listing:
		return runPair(b.EnterListingBlock, b.ExitListingBlock, t, func() error { return e.evalTitle(t.Title, b) })
	case *ast.Literal:
		return runPair(b.EnterLiteralBlock, b.ExitLiteralBlock, t, func() error { return e.evalTitle(t.Title, b) })
	case *ast.PassthroughBlock:
		return runPair(b.EnterPassthroughBlock, b.ExitPassthroughBlock, t, func() error { return nil })
	case *ast.Sidebar:
		return runPair(b.EnterSidebarBlock, b.ExitSidebarBlock, t, func() error {
			return e.evalCompoundContent(t, t.Body, t.Title, b)
		})
	case *ast.Example:
		return runPair(b.EnterExampleBlock, b.ExitExampleBlock, t, func() error {
			return e.evalCompoundContent(t, t.Body, t.Title, b)
		})
	case *ast.Open:
		return runPair(b.EnterOpenBlock, b.ExitOpenBlock, t, func() error {
			return e.evalCompoundContent(t, t.Body, t.Title, b)
		})
	case *ast.BlockQuote:
		return runPair(b.EnterQuoteBlock, b.ExitQuoteBlock, t, func() error {
			return e.evalCompoundContent(t, t.Body, t.Title, b)
		})
	case *ast.Verse:
		return runPair(b.EnterVerseBlock, b.ExitVerseBlock, t, func() error {
			return e.evalSimpleContent(t, t.Content, b)
		})
	case *ast.QuotedParagraph:
		return runPair(b.EnterQuotedParagraph, b.ExitQuotedParagraph, t, func() error {
			return e.evalInlines(t.Content, b)
		})
	case *ast.Admonition:
		return runPair(b.EnterAdmonitionBlock, b.ExitAdmonitionBlock, t, func() error {
			return e.evalCompoundContent(t, t.Body, t.Title, b)
		})
	case *ast.ImageBlock:
		return runPair(b.EnterImageBlock, b.ExitImageBlock, t, func() error { return e.evalTitle(t.Title, b) })
	case *ast.OrderedList:
		return runPair(b.EnterOrderedList, b.ExitOrderedList, t, func() error { return e.evalListItems(t.Items, b) })
	case *ast.UnorderedList:
		return runPair(b.EnterUnorderedList, b.ExitUnorderedList, t, func() error { return e.evalListItems(t.Items, b) })
	case *ast.DescriptionList:
		return runPair(b.EnterDescriptionList, b.ExitDescriptionList, t, func() error {
			return e.evalDescriptionItems(t.Items, b)
		})
	case *ast.CalloutList:
		return runPair(b.EnterCalloutList, b.ExitCalloutList, t, func() error { return e.evalCalloutItems(t.Items, b) })
	case *ast.Table:
		return e.evalTable(t, b)
	case *ast.DiscreteHeading:
		return runPair(b.EnterDiscreteHeading, b.ExitDiscreteHeading, t, func() error { return e.evalInlines(t.Title, b) })
	case *ast.ThematicBreak:
		return b.VisitThematicBreak(t)
	case *ast.PageBreak:
		return b.VisitPageBreak(t)
	case *ast.TableOfContentsBlock:
		return nil // handled by evalBlocksWithTOC before reaching here
	case *ast.Comment:
		return nil
	default:
		return fmt.Errorf("eval: unhandled block kind %s", blk.Kind())
	}
}

func (e *Evaluator) evalSection(s *ast.Section, b Backend) error {
	return runPair(b.EnterSection, b.ExitSection, s, func() error {
		if err := runPair(b.EnterSectionHeading, b.ExitSectionHeading, s, func() error {
			return e.evalInlines(s.Title, b)
		}); err != nil {
			return err
		}

		for _, child := range s.Body {
			if err := e.evalBlock(child, b); err != nil {
				return err
			}
		}

		return nil
	})
}

func (e *Evaluator) evalTitle(title []ast.Node, b Backend) error {
	if title == nil {
		return nil
	}

	return runPair(b.EnterBlockTitle, b.ExitBlockTitle, title, func() error { return e.evalInlines(title, b) })
}

func (e *Evaluator) evalSimpleContent(blk ast.Block, content []ast.Node, b Backend) error {
	return runPair(b.EnterSimpleBlockContent, b.ExitSimpleBlockContent, blk, func() error {
		return e.evalInlines(content, b)
	})
}

func (e *Evaluator) evalCompoundContent(blk ast.Block, body []ast.Block, title []ast.Node, b Backend) error {
	if err := e.evalTitle(title, b); err != nil {
		return err
	}

	return runPair(b.EnterCompoundBlockContent, b.ExitCompoundBlockContent, blk, func() error {
		for _, child := range body {
			if err := e.evalBlock(child, b); err != nil {
				return err
			}
		}

		return nil
	})
}

func (e *Evaluator) evalListItems(items []*ast.ListItem, b Backend) error {
	for _, it := range items {
		if err := runPair(b.EnterListItemPrincipal, b.ExitListItemPrincipal, it, func() error {
			return e.evalInlines(it.Content, b)
		}); err != nil {
			return err
		}
		if len(it.Body) == 0 {
			continue
		}
		if err := runPair(b.EnterListItemBlocks, b.ExitListItemBlocks, it, func() error {
			for _, child := range it.Body {
				if err := e.evalBlock(child, b); err != nil {
					return err
				}
			}

			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}

func (e *Evaluator) evalDescriptionItems(items []*ast.DescriptionListItem, b Backend) error {
	for _, it := range items {
		if err := runPair(b.EnterDescriptionListTerm, b.ExitDescriptionListTerm, it, func() error {
			return e.evalInlines(it.Term, b)
		}); err != nil {
			return err
		}
		if err := runPair(b.EnterDescriptionListDescription, b.ExitDescriptionListDescription, it, func() error {
			for _, child := range it.Description {
				if err := e.evalBlock(child, b); err != nil {
					return err
				}
			}

			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}

func (e *Evaluator) evalCalloutItems(items []*ast.CalloutListItem, b Backend) error {
	for _, it := range items {
		if err := e.evalInlines(it.Content, b); err != nil {
			return err
		}
	}

	return nil
}
