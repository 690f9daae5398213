// Package importer reads Netscape bookmark files as exported by browsers.
package importer

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/marks/internal/model"
)

// skippedSchemes are link schemes that are not bookmarks worth keeping.
var skippedSchemes = []string{"javascript:", "place:", "data:"}

// ParseHTMLBookmarks parses Netscape bookmark HTML into bookmarks.
//
// Each enclosing folder name becomes a tag, outermost first, after any tags
// listed in the link's TAGS attribute. Duplicate tags are dropped.
func ParseHTMLBookmarks(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark
	var folders []string     // names of the folders enclosing the current node
	var pendingFolder string // folder waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				pendingFolder = tagName(textContent(n))
				return

			case "a":
				href := strings.TrimSpace(attr(n, "href"))
				if href == "" || skipped(href) {
					return
				}

				title := textContent(n)
				if title == "" {
					title = href
				}

				bookmarks = append(bookmarks, model.Bookmark{
					URL:   href,
					Title: title,
					Tags:  mergeTags(model.SplitTagInput(attr(n, "tags")), folders),
				})
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folders = append(folders, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folders = folders[:len(folders)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// mergeTags appends folder tags to explicit tags, dropping blanks and repeats.
func mergeTags(explicit, folders []string) []string {
	seen := make(map[string]bool, len(explicit)+len(folders))
	tags := make([]string, 0, len(explicit)+len(folders))
	for _, list := range [][]string{explicit, folders} {
		for _, t := range list {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}

// tagName turns a folder name into a tag. The tag separator cannot appear
// inside a tag, so it is replaced by a space.
func tagName(folder string) string {
	return strings.TrimSpace(strings.ReplaceAll(folder, model.TagSeparator, " "))
}

func skipped(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// textContent returns the trimmed text content of a node.
func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// attr returns the value of an attribute, case-insensitive.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
