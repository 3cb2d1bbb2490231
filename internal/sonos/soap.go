package sonos

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/huin/goupnp/soap"
)

const (
	// UPnP service endpoints
	AVTransportEndpoint       = "/MediaRenderer/AVTransport/Control"
	RenderingControlEndpoint  = "/MediaRenderer/RenderingControl/Control"
	ZoneGroupTopologyEndpoint = "/ZoneGroupTopology/Control"
	DevicePropertiesEndpoint  = "/DeviceProperties/Control"

	// UPnP service URNs
	AVTransportService       = "urn:schemas-upnp-org:service:AVTransport:1"
	RenderingControlService  = "urn:schemas-upnp-org:service:RenderingControl:1"
	ZoneGroupTopologyService = "urn:schemas-upnp-org:service:ZoneGroupTopology:1"
	DevicePropertiesService  = "urn:schemas-upnp-org:service:DeviceProperties:1"
)

// DefaultCallTimeout bounds a single control call. Discovery has its own
// timeout; this one keeps a hung speaker from hanging a command forever.
const DefaultCallTimeout = 10 * time.Second

// SOAPClient makes UPnP SOAP requests to Sonos devices.
type SOAPClient struct {
	httpClient http.Client
}

// NewSOAPClient creates a new SOAP client.
func NewSOAPClient() *SOAPClient {
	return &SOAPClient{
		httpClient: http.Client{
			Timeout: DefaultCallTimeout,
		},
	}
}

// Call invokes action on the service mounted at endpoint of the device at
// base. in is encoded as the action arguments, in field order; out, if
// non-nil, receives the response arguments.
func (c *SOAPClient) Call(ctx context.Context, base *url.URL, endpoint, service, action string, in, out interface{}) error {
	target := url.URL{
		Scheme: base.Scheme,
		Host:   base.Host,
		Path:   endpoint,
	}

	client := soap.NewSOAPClient(target)
	client.HTTPClient = c.httpClient

	if in == nil {
		in = &struct{}{}
	}
	if err := client.PerformActionCtx(ctx, service, action, in, out); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

// Request argument sets shared by several actions.
type instanceArgs struct {
	InstanceID string
}

func instance() *instanceArgs {
	return &instanceArgs{InstanceID: "0"}
}
