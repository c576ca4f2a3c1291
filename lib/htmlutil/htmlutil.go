package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under `node`, like goquery's
// Selection.Text but for a bare node.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
	}
}

type Anchor struct {
	Name string
	Href string
}

// GetAnchor reads the first node of `sel` as an anchor, the name is the
// node's text trimmed of surrounding whitespace. ok is false if the
// selection is empty or the node has no href.
func GetAnchor(sel *goquery.Selection) (anchor Anchor, ok bool) {
	if sel.Length() == 0 {
		return Anchor{}, false
	}
	node := sel.Nodes[0]

	href, found := "", false
	for _, a := range node.Attr {
		if a.Key == "href" {
			href, found = a.Val, true
			break
		}
	}
	if !found {
		return Anchor{}, false
	}

	return Anchor{
		Name: strings.TrimSpace(GetText(node)),
		Href: href,
	}, true
}

// LastPathSegment returns everything after the final "/" of href.
// ".../view-thread/12345" -> "12345"
func LastPathSegment(href string) string {
	idx := strings.LastIndex(href, "/")
	return href[idx+1:]
}
