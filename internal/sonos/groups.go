package sonos

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Group represents a Sonos speaker group.
type Group struct {
	ID          string    `json:"id"`
	Coordinator *Device   `json:"coordinator"`
	Members     []*Device `json:"members"`
	Name        string    `json:"name"`
}

// Solo reports whether uuid is the only member of the group.
func (g *Group) Solo(uuid string) bool {
	return len(g.Members) == 1 && g.Members[0].UUID == uuid
}

// ZoneGroupState contains the parsed zone group topology.
type ZoneGroupState struct {
	Groups []Group `json:"groups"`
}

// GroupOf returns the group that has uuid as a member, or nil.
func (s *ZoneGroupState) GroupOf(uuid string) *Group {
	for i := range s.Groups {
		for _, m := range s.Groups[i].Members {
			if m.UUID == uuid {
				return &s.Groups[i]
			}
		}
	}
	return nil
}

// MemberByName returns the first member whose zone name matches name,
// ignoring case, or nil.
func (s *ZoneGroupState) MemberByName(name string) *Device {
	for _, g := range s.Groups {
		for _, m := range g.Members {
			if strings.EqualFold(m.Name, name) {
				return m
			}
		}
	}
	return nil
}

// GetZoneGroupState retrieves the household's zone group topology as seen
// by device.
func (c *Client) GetZoneGroupState(ctx context.Context, device *Device) (*ZoneGroupState, error) {
	var out struct {
		ZoneGroupState string
	}
	if err := c.soap.Call(ctx, device.BaseURL(), ZoneGroupTopologyEndpoint, ZoneGroupTopologyService, "GetZoneGroupState", nil, &out); err != nil {
		return nil, err
	}
	return parseZoneGroupState(out.ZoneGroupState)
}

// AddToGroup adds a device to the group coordinated by coordinatorUUID.
func (c *Client) AddToGroup(ctx context.Context, device *Device, coordinatorUUID string) error {
	return c.SetAVTransportURI(ctx, device, "x-rincon:"+coordinatorUUID, "")
}

// RemoveFromGroup removes a device from its group (makes it standalone).
func (c *Client) RemoveFromGroup(ctx context.Context, device *Device) error {
	return c.soap.Call(ctx, device.BaseURL(), AVTransportEndpoint, AVTransportService, "BecomeCoordinatorOfStandaloneGroup", instance(), nil)
}

type zoneMember struct {
	UUID      string `xml:"UUID,attr"`
	Location  string `xml:"Location,attr"`
	ZoneName  string `xml:"ZoneName,attr"`
	Invisible string `xml:"Invisible,attr"`
}

type zoneGroup struct {
	Coordinator string       `xml:"Coordinator,attr"`
	ID          string       `xml:"ID,attr"`
	Members     []zoneMember `xml:"ZoneGroupMember"`
}

type zoneGroups struct {
	Groups []zoneGroup `xml:"ZoneGroup"`
}

// parseZoneGroupState parses the XML zone group state. Newer firmware wraps
// the groups in <ZoneGroupState>, older firmware returns <ZoneGroups> as
// the root. Invisible members (bonded subs and surrounds) are dropped.
func parseZoneGroupState(xmlData string) (*ZoneGroupState, error) {
	var wrapped struct {
		XMLName    xml.Name
		ZoneGroups zoneGroups  `xml:"ZoneGroups"`
		Groups     []zoneGroup `xml:"ZoneGroup"`
	}
	if err := xml.Unmarshal([]byte(xmlData), &wrapped); err != nil {
		return nil, fmt.Errorf("parse zone group state: %w", err)
	}

	groups := wrapped.ZoneGroups.Groups
	if wrapped.XMLName.Local == "ZoneGroups" {
		groups = wrapped.Groups
	}

	result := &ZoneGroupState{}
	for _, zg := range groups {
		group := Group{
			ID: zg.ID,
		}

		for _, m := range zg.Members {
			if m.Invisible == "1" {
				continue
			}

			dev := &Device{
				UUID:     m.UUID,
				Name:     m.ZoneName,
				Location: m.Location,
				Port:     defaultPort,
			}
			if u, err := url.Parse(m.Location); err == nil && u.Host != "" {
				dev.IP = u.Hostname()
				if p, err := strconv.Atoi(u.Port()); err == nil {
					dev.Port = p
				}
			}

			if m.UUID == zg.Coordinator {
				group.Coordinator = dev
				group.Name = m.ZoneName
			}
			group.Members = append(group.Members, dev)
		}

		if len(group.Members) > 0 {
			result.Groups = append(result.Groups, group)
		}
	}

	return result, nil
}
