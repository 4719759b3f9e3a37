package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	airport := 12
	senaki := NewControlPoint("Senaki", Point{X: 1, Y: 2}, true)
	senaki.AirportID = &airport
	kutaisi := NewControlPoint("Kutaisi", Point{X: 5, Y: 6}, false)
	sam := NewGroundObject("SA-11", "RED|SAM|1", "aa", Point{X: 6, Y: 7})
	sam.Dead = true
	kutaisi.AddGroundObject(sam)
	senaki.ConnectFrontLine(kutaisi)

	snaps := SnapshotAll([]*ControlPoint{senaki, kutaisi})
	require.Len(t, snaps, 2)
	assert.Equal(t, []string{"Kutaisi"}, snaps[0].FrontLines)
	assert.Len(t, snaps[1].GroundObjects, 1)

	restored, err := RestoreControlPoints(snaps)
	require.NoError(t, err)
	require.Len(t, restored, 2)

	assert.Equal(t, senaki.ID, restored[0].ID)
	require.NotNil(t, restored[0].AirportID)
	assert.Equal(t, 12, *restored[0].AirportID)

	fl, ok := restored[0].FrontLineWith(kutaisi.ID)
	require.True(t, ok)
	assert.Same(t, restored[1], fl.Adjacent)

	gos := restored[1].GroundObjects()
	require.Len(t, gos, 1)
	assert.Equal(t, sam.ID, gos[0].ID)
	assert.True(t, gos[0].Dead)
	assert.Same(t, restored[1], gos[0].ControlPoint)
}

func TestSnapshotCopiesAirportID(t *testing.T) {
	airport := 3
	c := NewControlPoint("A", Point{}, true)
	c.AirportID = &airport

	s := SnapshotOf(c)
	airport = 4
	assert.Equal(t, 3, *s.AirportID)
}

func TestRestoreControlPoints_UnknownAdjacent(t *testing.T) {
	_, err := RestoreControlPoints([]ControlPointSnapshot{
		{Name: "A", FrontLines: []string{"B"}},
	})
	assert.True(t, errors.Is(err, ErrUnknownAdjacent))
}
