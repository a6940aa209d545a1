package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// HeadingInfo describes a level-2 or level-3 heading found in a document.
type HeadingInfo struct {
	// Line is 1-based.
	Line  int
	Level int
	Text  string
	// IsFile reports whether the line extractor treats the heading as a
	// file marker.
	IsFile bool
}

// Outline uses a markdown AST to list the level-2 and level-3 headings of a
// document. Lines inside code blocks are not headings to the AST and are
// never reported, even when the line extractor would match them.
func Outline(source []byte) ([]HeadingInfo, error) {
	var headings []HeadingInfo
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level < 2 || heading.Level > 3 {
			return ast.WalkSkipChildren, nil
		}

		info := HeadingInfo{
			Level: heading.Level,
			Text:  strings.TrimSpace(string(heading.Text(source))),
		}
		if lines := heading.Lines(); lines.Len() > 0 {
			start := lines.At(0).Start
			info.Line = bytes.Count(source[:start], []byte("\n")) + 1
			_, info.IsFile = MatchHeading(lineAt(source, start))
		}

		headings = append(headings, info)
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}

	return headings, nil
}

// lineAt returns the full source line containing offset.
func lineAt(source []byte, offset int) string {
	start := bytes.LastIndexByte(source[:offset], '\n') + 1
	end := len(source)
	if i := bytes.IndexByte(source[offset:], '\n'); i >= 0 {
		end = offset + i + 1
	}
	return string(source[start:end])
}
