package sonos

import (
	"context"
	"strconv"
)

// Client provides high-level access to Sonos devices.
type Client struct {
	soap *SOAPClient
}

// NewClient creates a new Sonos client.
func NewClient() *Client {
	return &Client{
		soap: NewSOAPClient(),
	}
}

// ZoneName returns the room name the user assigned to the device.
func (c *Client) ZoneName(ctx context.Context, device *Device) (string, error) {
	var out struct {
		CurrentZoneName string
	}
	if err := c.soap.Call(ctx, device.BaseURL(), DevicePropertiesEndpoint, DevicePropertiesService, "GetZoneAttributes", nil, &out); err != nil {
		return "", err
	}
	return out.CurrentZoneName, nil
}

// Play starts playback.
func (c *Client) Play(ctx context.Context, device *Device) error {
	in := struct {
		InstanceID string
		Speed      string
	}{"0", "1"}
	return c.soap.Call(ctx, device.BaseURL(), AVTransportEndpoint, AVTransportService, "Play", &in, nil)
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context, device *Device) error {
	return c.soap.Call(ctx, device.BaseURL(), AVTransportEndpoint, AVTransportService, "Pause", instance(), nil)
}

// SetVolume sets the master volume level. volume must already be in
// [0,100].
func (c *Client) SetVolume(ctx context.Context, device *Device, volume int) error {
	in := struct {
		InstanceID    string
		Channel       string
		DesiredVolume string
	}{"0", "Master", strconv.Itoa(volume)}
	return c.soap.Call(ctx, device.BaseURL(), RenderingControlEndpoint, RenderingControlService, "SetVolume", &in, nil)
}

// PositionInfo contains track position information.
type PositionInfo struct {
	Track         string
	TrackDuration string
	TrackMetaData string
	TrackURI      string
	RelTime       string
}

// GetPositionInfo retrieves the current track position.
func (c *Client) GetPositionInfo(ctx context.Context, device *Device) (*PositionInfo, error) {
	var out PositionInfo
	if err := c.soap.Call(ctx, device.BaseURL(), AVTransportEndpoint, AVTransportService, "GetPositionInfo", instance(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetAVTransportURI points the device's transport at uri.
func (c *Client) SetAVTransportURI(ctx context.Context, device *Device, uri, metadata string) error {
	in := struct {
		InstanceID         string
		CurrentURI         string
		CurrentURIMetaData string
	}{"0", uri, metadata}
	return c.soap.Call(ctx, device.BaseURL(), AVTransportEndpoint, AVTransportService, "SetAVTransportURI", &in, nil)
}
