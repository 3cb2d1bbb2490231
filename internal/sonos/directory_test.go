package sonos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tessro/sonoctl/internal/errors"
)

func newTestDirectory(t *testing.T, players ...*fakePlayer) *Directory {
	t.Helper()
	var replies []string
	for _, p := range players {
		replies = append(replies, ssdpResponse(p.UUID, p.Location()))
	}
	return &Directory{
		client:    NewClient(),
		discovery: &Discovery{addr: startResponder(t, replies...)},
	}
}

func TestDirectoryDiscoverReadsNames(t *testing.T) {
	kitchen := newFakePlayer(t, "RINCON_K", "Kitchen")
	office := newFakePlayer(t, "RINCON_O", "Office")
	dir := newTestDirectory(t, kitchen, office)

	names := map[string]string{}
	for speaker, err := range dir.Discover(context.Background(), 300*time.Millisecond) {
		require.NoError(t, err)
		names[speaker.Name()] = speaker.Locator()
	}

	assert.Equal(t, map[string]string{
		"Kitchen": kitchen.Location(),
		"Office":  office.Location(),
	}, names)
	assert.Contains(t, kitchen.Actions(), "GetZoneAttributes")
}

func TestDirectoryFind(t *testing.T) {
	kitchen := newFakePlayer(t, "RINCON_K", "Kitchen")
	office := newFakePlayer(t, "RINCON_O", "Office")
	dir := newTestDirectory(t, kitchen, office)

	speaker, err := dir.Find(context.Background(), "office", 300*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, speaker)
	assert.Equal(t, "Office", speaker.Name())
	assert.Equal(t, office.Location(), speaker.Locator())

	missing, err := dir.Find(context.Background(), "Garage", 200*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDirectoryDiscoverNameFailureIsFatal(t *testing.T) {
	broken := newFakePlayer(t, "RINCON_X", "Broken")
	broken.server.Close()
	dir := newTestDirectory(t, broken)

	var gotErr error
	for _, err := range dir.Discover(context.Background(), 300*time.Millisecond) {
		gotErr = err
	}
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "read name of")
}

func TestSpeakerTransportCalls(t *testing.T) {
	p := newFakePlayer(t, "RINCON_K", "Kitchen")
	s := NewSpeaker(NewClient(), p.Device())
	ctx := context.Background()

	require.NoError(t, s.Play(ctx))
	require.NoError(t, s.Pause(ctx))
	require.NoError(t, s.SetVolume(ctx, 42))
	assert.Contains(t, p.LastBody(), "<DesiredVolume>42</DesiredVolume>")
	assert.Contains(t, p.LastBody(), "<Channel>Master</Channel>")

	track, err := s.CurrentTrack(ctx)
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, "Teardrop", track.Title)
	assert.Equal(t, "Massive Attack", track.Creator)

	assert.Equal(t, []string{"Play", "Pause", "SetVolume", "GetPositionInfo"}, p.Actions())
}

func TestSpeakerJoin(t *testing.T) {
	living := newFakePlayer(t, "RINCON_L", "Living Room")
	kitchen := newFakePlayer(t, "RINCON_K", "Kitchen")
	kitchen.Topology = topologyXML(groupXML("RINCON_L", living), groupXML("RINCON_K", kitchen))

	s := NewSpeaker(NewClient(), kitchen.Device())
	require.NoError(t, s.Join(context.Background(), "living room"))

	assert.Equal(t, []string{"GetZoneGroupState", "SetAVTransportURI"}, kitchen.Actions())
	assert.Contains(t, kitchen.LastBody(), "<CurrentURI>x-rincon:RINCON_L</CurrentURI>")
}

func TestSpeakerJoinUnknownCoordinator(t *testing.T) {
	kitchen := newFakePlayer(t, "RINCON_K", "Kitchen")
	kitchen.Topology = topologyXML(groupXML("RINCON_K", kitchen))

	s := NewSpeaker(NewClient(), kitchen.Device())
	err := s.Join(context.Background(), "Garage")
	assert.ErrorIs(t, err, apperrors.ErrSpeakerNotFound)
	assert.Equal(t, []string{"GetZoneGroupState"}, kitchen.Actions())
}

func TestSpeakerLeave(t *testing.T) {
	living := newFakePlayer(t, "RINCON_L", "Living Room")
	kitchen := newFakePlayer(t, "RINCON_K", "Kitchen")
	kitchen.Topology = topologyXML(groupXML("RINCON_L", living, kitchen))

	s := NewSpeaker(NewClient(), kitchen.Device())
	require.NoError(t, s.Leave(context.Background()))
	assert.Equal(t, []string{"GetZoneGroupState", "BecomeCoordinatorOfStandaloneGroup"}, kitchen.Actions())
}

func TestSpeakerLeaveWhenAlone(t *testing.T) {
	office := newFakePlayer(t, "RINCON_O", "Office")
	office.Topology = topologyXML(groupXML("RINCON_O", office))

	s := NewSpeaker(NewClient(), office.Device())
	require.NoError(t, s.Leave(context.Background()))
	assert.Equal(t, []string{"GetZoneGroupState"}, office.Actions())
}
