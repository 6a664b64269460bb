// Package htmlutil renders parsed HTML the way a browser's innerText does,
// closely enough for the table cells the library portals produce.
package htmlutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "ul": true, "ol": true,
	"table": true, "h1": true, "h2": true, "h3": true, "h4": true, "dl": true,
	"dt": true, "dd": true,
}

var innerWhitespace = regexp.MustCompile(`[ \t\r\n\f]+`)

// InnerText returns the visible text of node. <br> and block boundaries become
// newlines, source whitespace collapses to single spaces, every line is
// trimmed and blank lines are dropped.
func InnerText(node *html.Node) string {
	var sb strings.Builder
	walk(node, &sb)

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		line = strings.TrimSpace(innerWhitespace.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func walk(node *html.Node, sb *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		sb.WriteString(innerWhitespace.ReplaceAllString(node.Data, " "))
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch node.Data {
		case "br":
			sb.WriteString("\n")
			return
		case "script", "style", "noscript":
			return
		}
	}

	block := node.Type == html.ElementNode && blockElements[node.Data]
	if block {
		sb.WriteString("\n")
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, sb)
	}
	if block {
		sb.WriteString("\n")
	}
}

// Texts returns InnerText for every node of sel, in document order.
func Texts(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	for _, n := range sel.Nodes {
		out = append(out, InnerText(n))
	}
	return out
}

// Parse parses an HTML fragment such as an element's outerHTML.
func Parse(fragment string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(fragment))
}
