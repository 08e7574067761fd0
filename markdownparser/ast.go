package markdownparser

import (
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/shibukawa/parsekit/diagnostic"
)

// extractCodeBlocks walks the AST and returns the title (first H1) and every
// non-empty fenced code block in document order.
func extractCodeBlocks(doc ast.Node, content []byte) (string, []CodeBlock, error) {
	var (
		title   string
		section string
		blocks  []CodeBlock
	)

	index := diagnostic.NewLineIndex(string(content))

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			headingText := extractTextFromHeadingNode(node, content)
			if node.Level == 1 && title == "" {
				title = headingText
			}

			section = headingText

			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			if node.Lines().Len() == 0 {
				return ast.WalkSkipChildren, nil
			}

			var lang string
			if node.Info != nil {
				if fields := strings.Fields(string(node.Info.Segment.Value(content))); len(fields) > 0 {
					lang = strings.ToLower(fields[0])
				}
			}

			blocks = append(blocks, CodeBlock{
				Lang:    lang,
				Code:    codeBlockText(node, content),
				Line:    index.Position(node.Lines().At(0).Start).Line,
				Section: section,
			})

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", nil, err
	}

	return title, blocks, nil
}

func codeBlockText(node *ast.FencedCodeBlock, content []byte) string {
	var code strings.Builder

	lines := node.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		code.Write(line.Value(content))
	}

	return code.String()
}

// extractTextFromHeadingNode extracts text content from a heading node
func extractTextFromHeadingNode(n ast.Node, content []byte) string {
	var text strings.Builder

	err := ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindText {
			if textNode, ok := n.(*ast.Text); ok {
				text.Write(textNode.Segment.Value(content))
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return ""
	}

	return strings.TrimSpace(text.String())
}
