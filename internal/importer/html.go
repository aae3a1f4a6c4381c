package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/favtui/fav/internal/model"
)

// ParseHTML parses Netscape bookmark HTML into favorites suitable for the
// server's import endpoint. The server has no notion of browser folders in
// an import payload, so folder names along the path become lowercase tags;
// the server resolves tag names to ids during import.
func ParseHTML(r io.Reader) ([]model.Favorite, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var favorites []model.Favorite

	// Folder names from the enclosing H3/DL nesting
	var folderStack []string
	var pendingFolder string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder header; pushed when the matching DL opens
				pendingFolder = textContent(n)
				return

			case "a":
				href := attr(n, "href")
				if href == "" {
					return
				}

				title := textContent(n)
				if title == "" {
					title = href
				}

				createdAt := time.Now()
				if addDate := attr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				favorites = append(favorites, model.Favorite{
					URL:       href,
					Title:     title,
					Tags:      folderTags(folderStack),
					CreatedAt: createdAt,
				})
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return favorites, nil
}

// folderTags converts the enclosing folder names into tags, lowercased and
// de-duplicated.
func folderTags(names []string) []model.Tag {
	seen := make(map[string]bool, len(names))
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		lower := strings.ToLower(name)
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		tags = append(tags, model.Tag{Name: lower})
	}
	return tags
}

// textContent returns the text content of a node.
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
	key = strings.ToLower(key)
	for _, a := range n.Attr {
		if strings.ToLower(a.Key) == key {
			return a.Val
		}
	}
	return ""
}
