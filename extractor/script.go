package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ScriptLocator finds the script element that carries a page's embedded
// state, identified by a marker substring in its text.
type ScriptLocator struct {
	// Matcher selects candidate script elements.
	Matcher cascadia.Matcher

	// Marker must occur in the script text.
	Marker string
}

// Find returns the text of the first matching script whose content contains
// the marker.
func (l ScriptLocator) Find(doc *html.Node) (string, bool) {
	var (
		text  string
		found bool
	)
	candidates := cascadia.QueryAll(doc, l.Matcher)
	goquery.NewDocumentFromNode(doc).FindNodes(candidates...).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := s.Text()
		if strings.Contains(t, l.Marker) {
			text, found = t, true
			return false
		}
		return true
	})
	return text, found
}

// Capture applies re to text and returns its first capture group.
func Capture(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}
