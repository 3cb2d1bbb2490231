package sonos

import (
	"encoding/xml"
	"html"
	"regexp"
	"strings"

	"github.com/tessro/sonoctl/internal/core"
)

// DIDLLite represents DIDL-Lite metadata format used by UPnP.
type DIDLLite struct {
	XMLName xml.Name   `xml:"urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/ DIDL-Lite"`
	Items   []DIDLItem `xml:"urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/ item"`
}

// DIDLItem represents a single item in DIDL-Lite metadata.
type DIDLItem struct {
	// Dublin Core namespace elements
	Title   string `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creator string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	// UPnP namespace elements
	Album string `xml:"urn:schemas-upnp-org:metadata-1-0/upnp/ album"`
}

// notImplemented is what a speaker reports as metadata when nothing is
// loaded into its transport.
const notImplemented = "NOT_IMPLEMENTED"

var elementPatterns = map[string]*regexp.Regexp{
	"title":   elementPattern("title"),
	"creator": elementPattern("creator"),
	"album":   elementPattern("album"),
}

// parseTrackMetadata parses Sonos track metadata into a core.Track. It
// returns nil when there is no track.
func parseTrackMetadata(metadata, uri string) *core.Track {
	metadata = strings.TrimSpace(metadata)
	if metadata == "" || metadata == notImplemented {
		return nil
	}

	// Unescape HTML entities
	metadata = html.UnescapeString(metadata)

	var didl DIDLLite
	if err := xml.Unmarshal([]byte(metadata), &didl); err == nil && len(didl.Items) > 0 {
		item := didl.Items[0]
		if item.Title != "" {
			return &core.Track{
				Title:   strings.TrimSpace(item.Title),
				Creator: strings.TrimSpace(item.Creator),
				Album:   strings.TrimSpace(item.Album),
				URI:     uri,
			}
		}
	}

	// Fallback for metadata with unexpected namespace prefixes.
	title := extractXMLElement(metadata, "title")
	if title == "" {
		return nil
	}

	return &core.Track{
		Title:   title,
		Creator: extractXMLElement(metadata, "creator"),
		Album:   extractXMLElement(metadata, "album"),
		URI:     uri,
	}
}

func elementPattern(localName string) *regexp.Regexp {
	// Match <prefix:localName>content</prefix:localName> or <localName>content</localName>
	return regexp.MustCompile(`<(?:\w+:)?` + localName + `[^>]*>([^<]*)</(?:\w+:)?` + localName + `>`)
}

// extractXMLElement extracts content from an XML element, ignoring namespace prefixes.
func extractXMLElement(doc, localName string) string {
	re, ok := elementPatterns[localName]
	if !ok {
		re = elementPattern(localName)
	}
	matches := re.FindStringSubmatch(doc)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}
