package keywords

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/net/html"
)

// StaticSource serves a fixed, already ranked keyword list.
type StaticSource []string

// Keywords returns the first n keywords.
func (s StaticSource) Keywords(_ context.Context, n int) ([]string, error) {
	if n > len(s) {
		n = len(s)
	}
	return append([]string(nil), s[:n]...), nil
}

// ArticleSource ranks keywords from saved article HTML files. Fetching the
// articles is someone else's job; this only reads what is on disk.
type ArticleSource struct {
	fs  afero.Fs
	dir string
	ext string
}

// NewArticleSource reads files with extension ext (e.g. ".html") below dir.
func NewArticleSource(fs afero.Fs, dir, ext string) *ArticleSource {
	return &ArticleSource{fs: fs, dir: dir, ext: strings.ToLower(ext)}
}

// Keywords implements lexicon.KeywordSource.
func (s *ArticleSource) Keywords(ctx context.Context, n int) ([]string, error) {
	paragraphs, err := s.Paragraphs(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(paragraphs, n), nil
}

// Paragraphs returns the paragraph texts of every article, bylines removed.
func (s *ArticleSource) Paragraphs(ctx context.Context) ([]string, error) {
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("check articles directory: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("articles directory %s does not exist", s.dir)
	}

	var paragraphs []string
	err = afero.Walk(s.fs, s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() || strings.ToLower(filepath.Ext(path)) != s.ext {
			return nil
		}
		content, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return fmt.Errorf("read article %s: %w", path, err)
		}
		doc, err := html.Parse(bytes.NewReader(content))
		if err != nil {
			return fmt.Errorf("parse article %s: %w", path, err)
		}
		for _, p := range extractParagraphs(doc) {
			if !isByline(p) {
				paragraphs = append(paragraphs, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk articles directory: %w", err)
	}
	return paragraphs, nil
}

// extractParagraphs returns the text of every <p> element.
func extractParagraphs(doc *html.Node) []string {
	var out []string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := strings.TrimSpace(textContent(n)); text != "" {
				out = append(out, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return sb.String()
}

// isByline matches author lines such as "Von Anna Muster, ARD-Hauptstadtstudio".
func isByline(p string) bool {
	fields := strings.Fields(p)
	return len(fields) > 0 && fields[0] == "Von" && strings.Contains(p, ",") && len(fields) < 8
}
