package blockparser

import (
	"strconv"
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/diag"
	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

// isIncludeDirective recognizes a line whose first token is the
// lexer's line-start "include::" Directive token.
func isIncludeDirective(l *line.Line) bool {
	t, ok := l.Nth(0)

	return ok && t.Kind == token.Directive
}

// parseInclude resolves an include::target[attrs] directive through
// the configured IncludeResolver, pushes the resolved bytes onto the
// lexer's source stack, and splices the newly lexed lines into the
// parser's line buffer in place of the directive line. It always
// consumes the directive line and never returns a
// block of its own - the included content becomes ordinary subsequent
// lines for parseBlocks to dispatch on.
func (p *Parser) parseInclude(l *line.Line) (ast.Block, error) {
	loc := l.Location()
	toks := l.Tokens()

	i := 1
	var targetToks []token.Token
	for i < len(toks) && toks[i].Kind != token.OpenBracket {
		targetToks = append(targetToks, toks[i])
		i++
	}
	target := reconstitute(targetToks)

	var al *attrs.AttrList
	if i < len(toks) && toks[i].Kind == token.OpenBracket {
		i++
		depth := 1
		attrStart := i
		for i < len(toks) && depth > 0 {
			switch toks[i].Kind {
			case token.OpenBracket:
				depth++
			case token.CloseBracket:
				depth--
			}
			if depth > 0 {
				i++
			}
		}
		al = attrs.ParseAttrList(reconstitute(toks[attrStart:i]))
	}

	p.pos++ // the directive line is consumed either way

	if p.resolver == nil {
		return nil, p.diags.Err(loc, diag.CodeIncludeNotFound,
			"include target %q: no include resolver configured", target)
	}

	for _, frame := range p.includeStack {
		if frame.file == target {
			return nil, p.diags.Err(loc, diag.CodeIncludeCycle,
				"include cycle detected: %q is already being included", target)
		}
	}
	if len(p.includeStack)+1 > p.maxIncludeDepth {
		return nil, p.diags.Err(loc, diag.CodeIncludeDepthExceeded,
			"include depth exceeds configured maximum %d", p.maxIncludeDepth)
	}

	bytes, file, err := p.resolver(target, al)
	if err != nil {
		return nil, p.diags.Err(loc, diag.CodeIncludeNotFound,
			"include target %q: %v", target, err)
	}

	leveloffset := 0
	if al != nil {
		if v, ok := al.NamedValue("leveloffset"); ok {
			leveloffset = parseLeveloffset(v)
		}
	}

	p.lexer.Sources().Push(file, leveloffset, p.maxIncludeDepth, bytes)
	included := p.drainIncludedLines()

	p.includeStack = append(p.includeStack, includeFrame{
		file: target,
		end:  p.pos + len(included),
	})

	spliced := make([]*line.Line, 0, len(p.lines)+len(included))
	spliced = append(spliced, p.lines[:p.pos]...)
	spliced = append(spliced, included...)
	spliced = append(spliced, p.lines[p.pos:]...)
	p.lines = spliced

	return nil, nil
}

// drainIncludedLines pulls tokens from the lexer (now reading the
// source just pushed onto its stack) into per-line groups, the same
// way splitLines drains the primary source at construction time. The
// lexer auto-pops an exhausted source between tokens (token.Lexer.scan),
// so this naturally stops at the included source's end without
// consuming anything belonging to whatever source follows it on the
// stack.
func (p *Parser) drainIncludedLines() []*line.Line {
	var lines []*line.Line
	var cur []token.Token
	for {
		t := p.lexer.Next()
		if t.Kind == token.Eof {
			if len(cur) > 0 {
				lines = append(lines, line.NewLine(cur))
			}

			break
		}
		if t.Kind == token.Newline {
			lines = append(lines, line.NewLine(cur))
			cur = nil

			continue
		}
		cur = append(cur, t)
	}

	return lines
}

// parseLeveloffset parses a leveloffset attribute value ("+1", "-2",
// "3") into a signed int, defaulting to 0 for anything unparsable.
func parseLeveloffset(v string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(v, "+"))
	if err != nil {
		return 0
	}

	return n
}
