package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// blockElements end a line of text.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "tr": true, "li": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "pre": true,
	"table": true, "section": true, "article": true, "blockquote": true,
}

var (
	blankLinesRe = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	leadingIDRe  = regexp.MustCompile(`^(\d+)`)
)

// Document is the text extracted from a saved protocol page.
type Document struct {
	Title string
	Text  string
}

// ImportHTML extracts the text of a protocol page. Block elements become
// line breaks; script and style contents are skipped.
func ImportHTML(r io.Reader) (Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return Document{}, fmt.Errorf("parse protocol HTML: %w", err)
	}

	var (
		doc Document
		sb  strings.Builder
	)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "title":
				if n.FirstChild != nil && doc.Title == "" {
					doc.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
		case html.TextNode:
			sb.WriteString(strings.ReplaceAll(n.Data, "\n", " "))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			sb.WriteString("\n")
		}
	}
	walk(root)

	lines := strings.Split(sb.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(spaceRunRe.ReplaceAllString(l, " "))
	}
	text := blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	doc.Text = strings.TrimSpace(text)
	return doc, nil
}

// ImportFile reads a saved protocol. The file name must start with the
// numeric protocol id, e.g. "5713.html" or "5713-21-12.txt". HTML files
// are converted to text; other files are read as plain text.
func ImportFile(path string) (*Protocol, error) {
	base := filepath.Base(path)
	m := leadingIDRe.FindStringSubmatch(base)
	if m == nil {
		return nil, fmt.Errorf("%s: file name must start with the protocol id", base)
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", base, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	p := &Protocol{ProtocolRef: ProtocolRef{ID: ID(id), Publisher: PublisherBundestag}}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".html", ".htm":
		doc, err := ImportHTML(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", base, err)
		}
		p.Title = doc.Title
		p.FullText = doc.Text
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", base, err)
		}
		p.FullText = string(data)
	}
	return p, nil
}
