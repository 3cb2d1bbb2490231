package sonos

import (
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakePlayer is a ZonePlayer control endpoint backed by httptest.
type fakePlayer struct {
	UUID     string
	Name     string
	Topology string // inner ZoneGroupState document

	server *httptest.Server

	mu      sync.Mutex
	actions []string
	bodies  []string
}

func newFakePlayer(t *testing.T, uuid, name string) *fakePlayer {
	t.Helper()
	p := &fakePlayer{UUID: uuid, Name: name}
	p.server = httptest.NewServer(http.HandlerFunc(p.handle))
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakePlayer) Location() string {
	return p.server.URL + "/xml/device_description.xml"
}

func (p *fakePlayer) Device() *Device {
	d, err := parseResponse([]byte(ssdpResponse(p.UUID, p.Location())), &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil || d == nil {
		panic(fmt.Sprintf("bad fake device: %v", err))
	}
	d.Name = p.Name
	return d
}

func (p *fakePlayer) Actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.actions...)
}

func (p *fakePlayer) LastBody() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.bodies) == 0 {
		return ""
	}
	return p.bodies[len(p.bodies)-1]
}

func (p *fakePlayer) handle(w http.ResponseWriter, r *http.Request) {
	soapAction := strings.Trim(r.Header.Get("SOAPAction"), `"`)
	service, action, _ := strings.Cut(soapAction, "#")
	body, _ := io.ReadAll(r.Body)

	p.mu.Lock()
	p.actions = append(p.actions, action)
	p.bodies = append(p.bodies, string(body))
	topology := p.Topology
	p.mu.Unlock()

	var args string
	switch action {
	case "GetZoneAttributes":
		args = "<CurrentZoneName>" + html.EscapeString(p.Name) + "</CurrentZoneName>"
	case "GetZoneGroupState":
		args = "<ZoneGroupState>" + html.EscapeString(topology) + "</ZoneGroupState>"
	case "GetPositionInfo":
		args = "<Track>1</Track><TrackDuration>0:03:20</TrackDuration>" +
			"<TrackMetaData>" + html.EscapeString(sampleDIDL) + "</TrackMetaData>" +
			"<TrackURI>x-file-cifs://nas/music/song.flac</TrackURI><RelTime>0:01:00</RelTime>"
	}

	w.Header().Set("Content-Type", `text/xml; charset="utf-8"`)
	fmt.Fprintf(w, `<?xml version="1.0"?>`+
		`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">`+
		`<s:Body><u:%sResponse xmlns:u="%s">%s</u:%sResponse></s:Body></s:Envelope>`,
		action, service, args, action)
}

func ssdpResponse(uuid, location string) string {
	return "HTTP/1.1 200 OK\r\n" +
		"CACHE-CONTROL: max-age = 1800\r\n" +
		"EXT:\r\n" +
		"LOCATION: " + location + "\r\n" +
		"SERVER: Linux UPnP/1.0 Sonos/79.1-56030 (ZPS27)\r\n" +
		"ST: " + sonosURN + "\r\n" +
		"USN: uuid:" + uuid + "::" + sonosURN + "\r\n" +
		"\r\n"
}

// startResponder answers every M-SEARCH it receives with replies.
func startResponder(t *testing.T, replies ...string) string {
	t.Helper()

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 2048)
		for {
			n, remote, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			if !strings.HasPrefix(string(buf[:n]), "M-SEARCH") {
				continue
			}
			for _, reply := range replies {
				_, _ = conn.WriteToUDP([]byte(reply), remote)
			}
		}
	}()

	return conn.LocalAddr().String()
}

func topologyXML(groups ...string) string {
	return "<ZoneGroupState><ZoneGroups>" + strings.Join(groups, "") + "</ZoneGroups><VanishedDevices/></ZoneGroupState>"
}

func groupXML(coordinator string, members ...*fakePlayer) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<ZoneGroup Coordinator="%s" ID="%s:1">`, coordinator, coordinator)
	for _, m := range members {
		fmt.Fprintf(&b, `<ZoneGroupMember UUID="%s" Location="%s" ZoneName="%s"/>`, m.UUID, m.Location(), m.Name)
	}
	b.WriteString("</ZoneGroup>")
	return b.String()
}

const sampleDIDL = `<DIDL-Lite xmlns:dc="http://purl.org/dc/elements/1.1/" ` +
	`xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/" ` +
	`xmlns:r="urn:schemas-rinconnetworks-com:metadata-1-0/" ` +
	`xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/">` +
	`<item id="-1" parentID="-1" restricted="true">` +
	`<res protocolInfo="x-file-cifs:*:audio/flac:*" duration="0:03:20">x-file-cifs://nas/music/song.flac</res>` +
	`<upnp:class>object.item.audioItem.musicTrack</upnp:class>` +
	`<dc:title>Teardrop</dc:title>` +
	`<dc:creator>Massive Attack</dc:creator>` +
	`<upnp:album>Mezzanine</upnp:album>` +
	`</item></DIDL-Lite>`
