package sonos

import (
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrackMetadata(t *testing.T) {
	track := parseTrackMetadata(sampleDIDL, "x-file-cifs://nas/music/song.flac")
	require.NotNil(t, track)
	assert.Equal(t, "Teardrop", track.Title)
	assert.Equal(t, "Massive Attack", track.Creator)
	assert.Equal(t, "Mezzanine", track.Album)
	assert.Equal(t, "x-file-cifs://nas/music/song.flac", track.URI)
	assert.True(t, track.HasCreator())
}

func TestParseTrackMetadataEscaped(t *testing.T) {
	track := parseTrackMetadata(html.EscapeString(sampleDIDL), "")
	require.NotNil(t, track)
	assert.Equal(t, "Teardrop", track.Title)
}

func TestParseTrackMetadataWithoutCreator(t *testing.T) {
	didl := `<DIDL-Lite xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/">` +
		`<item id="-1"><dc:title>Radio Paradise</dc:title></item></DIDL-Lite>`

	track := parseTrackMetadata(didl, "x-rincon-mp3radio://stream")
	require.NotNil(t, track)
	assert.Equal(t, "Radio Paradise", track.Title)
	assert.Empty(t, track.Creator)
	assert.False(t, track.HasCreator())
}

func TestParseTrackMetadataFallback(t *testing.T) {
	// Unknown namespace URIs defeat the DIDL decoder but not the fallback.
	doc := `<x:DIDL xmlns:x="urn:other" xmlns:d="urn:dc"><x:item><d:title>Song</d:title><d:creator>Band</d:creator></x:item></x:DIDL>`

	track := parseTrackMetadata(doc, "")
	require.NotNil(t, track)
	assert.Equal(t, "Song", track.Title)
	assert.Equal(t, "Band", track.Creator)
}

func TestParseTrackMetadataEmpty(t *testing.T) {
	for _, md := range []string{"", "  ", notImplemented, "<DIDL-Lite/>"} {
		assert.Nil(t, parseTrackMetadata(md, ""), "metadata %q", md)
	}
}
