package sonos

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	ssdpAddr    = "239.255.255.250:1900"
	sonosURN    = "urn:schemas-upnp-org:device:ZonePlayer:1"
	defaultPort = 1400

	// Responses waiting to be consumed. A household tops out well below this.
	pendingResponses = 64
)

var mSearchRequest = []byte(
	"M-SEARCH * HTTP/1.1\r\n" +
		"HOST: 239.255.255.250:1900\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 1\r\n" +
		"ST: " + sonosURN + "\r\n" +
		"\r\n",
)

// Device represents a discovered Sonos device.
type Device struct {
	IP       string `json:"ip"`
	Port     int    `json:"port"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Locator returns the device description URL, which identifies the device
// on the network.
func (d *Device) Locator() string {
	if d.Location != "" {
		return d.Location
	}
	return d.BaseURL().String() + "/"
}

// BaseURL returns the scheme and host control requests are sent to.
func (d *Device) BaseURL() *url.URL {
	return &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(d.IP, strconv.Itoa(d.Port)),
	}
}

// Discovery finds Sonos devices via SSDP.
type Discovery struct {
	addr string
}

// NewDiscovery creates a Discovery that searches the standard SSDP
// multicast group.
func NewDiscovery() *Discovery {
	return &Discovery{addr: ssdpAddr}
}

// Stream sends an M-SEARCH and yields each ZonePlayer as it answers, until
// timeout elapses. Devices are yielded once each, keyed by UUID. Responses
// that arrive before the deadline are still yielded if the consumer is
// slower than the network.
func (d *Discovery) Stream(ctx context.Context, timeout time.Duration) iter.Seq2[*Device, error] {
	return func(yield func(*Device, error) bool) {
		addr, err := net.ResolveUDPAddr("udp4", d.addr)
		if err != nil {
			yield(nil, fmt.Errorf("resolve ssdp addr: %w", err))
			return
		}

		conn, err := net.ListenUDP("udp4", nil)
		if err != nil {
			yield(nil, fmt.Errorf("listen udp: %w", err))
			return
		}
		defer conn.Close()

		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			yield(nil, fmt.Errorf("set read deadline: %w", err))
			return
		}

		if _, err := conn.WriteToUDP(mSearchRequest, addr); err != nil {
			yield(nil, fmt.Errorf("send m-search: %w", err))
			return
		}
		log.Debug().Str("target", d.addr).Dur("timeout", timeout).Msg("sent m-search")

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		// Unblock a pending read as soon as the search is abandoned.
		stop := context.AfterFunc(ctx, func() {
			_ = conn.SetReadDeadline(time.Now())
		})
		defer stop()

		found := make(chan *Device, pendingResponses)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			defer close(found)
			return readResponses(gctx, conn, found)
		})

		for device := range found {
			if !yield(device, nil) {
				cancel()
				_ = g.Wait()
				return
			}
		}

		if err := g.Wait(); err != nil {
			yield(nil, err)
		}
	}
}

// readResponses reads SSDP responses until the read deadline passes.
func readResponses(ctx context.Context, conn *net.UDPConn, found chan<- *Device) error {
	seen := make(map[string]bool)
	buf := make([]byte, 2048)

	for {
		n, remoteAddr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("read ssdp response: %w", err)
			}
			log.Debug().Err(err).Msg("ssdp read failed")
			continue
		}

		device, err := parseResponse(buf[:n], remoteAddr)
		if err != nil {
			log.Debug().Err(err).Str("from", remoteAddr.String()).Msg("skipping malformed ssdp response")
			continue
		}
		if device == nil || seen[device.UUID] {
			continue
		}
		seen[device.UUID] = true

		select {
		case found <- device:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// parseResponse parses an SSDP response into a Device. It returns nil with
// no error for responses from anything other than a ZonePlayer.
func parseResponse(data []byte, addr *net.UDPAddr) (*Device, error) {
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(data)), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.Header.Get("ST") != sonosURN {
		return nil, nil
	}

	uuid := extractUUID(resp.Header.Get("USN"))
	if uuid == "" {
		return nil, nil
	}

	device := &Device{
		IP:   addr.IP.String(),
		Port: defaultPort,
		UUID: uuid,
	}

	if location := resp.Header.Get("Location"); location != "" {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("parse location: %w", err)
		}
		device.Location = location
		if host := u.Hostname(); host != "" {
			device.IP = host
		}
		if p, err := strconv.Atoi(u.Port()); err == nil {
			device.Port = p
		}
	}

	return device, nil
}

// extractUUID extracts the UUID from a USN header.
func extractUUID(usn string) string {
	// Format: uuid:RINCON_xxx::urn:schemas-upnp-org:device:ZonePlayer:1
	if !strings.HasPrefix(usn, "uuid:") {
		return ""
	}
	id, _, _ := strings.Cut(strings.TrimPrefix(usn, "uuid:"), "::")
	return id
}
