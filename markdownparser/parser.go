// Package markdownparser reads literate documents: markdown files whose
// fenced code blocks hold arithmetic statements or access paths.
package markdownparser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrInvalidSettings    = errors.New("invalid document settings")
)

// Document represents a parsed literate document
type Document struct {
	Metadata map[string]any
	Settings Settings
	Title    string
	Blocks   []CodeBlock
}

// CodeBlock is a fenced code block with the info string lower cased.
type CodeBlock struct {
	Lang    string
	Code    string
	Line    int    // line of the first code line in the original file
	Section string // text of the closest heading above the block
}

// Parse parses a markdown document and collects its fenced code blocks
func Parse(reader io.Reader) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	frontMatter, body, skipped, err := parseFrontMatter(string(content))
	if err != nil {
		return nil, err
	}

	settings, err := parseSettings(frontMatter)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	source := []byte(body)
	doc := md.Parser().Parse(text.NewReader(source))

	title, blocks, err := extractCodeBlocks(doc, source)
	if err != nil {
		return nil, err
	}

	for i := range blocks {
		blocks[i].Line += skipped
	}

	return &Document{
		Metadata: frontMatter,
		Settings: settings,
		Title:    title,
		Blocks:   blocks,
	}, nil
}

// BlocksFor returns the blocks whose language is one of langs.
func (d *Document) BlocksFor(langs ...string) []CodeBlock {
	var result []CodeBlock

	for _, b := range d.Blocks {
		for _, lang := range langs {
			if strings.EqualFold(b.Lang, lang) {
				result = append(result, b)
				break
			}
		}
	}

	return result
}
