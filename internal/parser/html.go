package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// looksLikeHTML reports whether an export body is an HTML page rather than CSV.
// Google answers a request for an unpublished or private sheet with its sign-in
// page and a 200 status, so the status code alone cannot catch it.
func looksLikeHTML(text, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := strings.ToLower(trim(text))
	if len(head) > 64 {
		head = head[:64]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// htmlTitle extracts the <title> of an HTML page, or "" when there is none.
func htmlTitle(text string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
