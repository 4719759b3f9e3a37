package convert

import (
	"testing"
	"time"

	"github.com/dcs-liberation/theater/pkg/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestControlPointRoundTrip(t *testing.T) {
	airport := 23
	snap := core.ControlPointSnapshot{
		ID:        uuid.New(),
		Name:      "Senaki",
		Position:  core.Point{X: -281000, Y: 647000},
		Captured:  true,
		AirportID: &airport,
		GroundObjects: []core.GroundObjectSnapshot{
			{ID: uuid.New(), Name: "Ammo", ObjName: "BLUE|AMMO|1", Category: "ammo", Position: core.Point{X: 1, Y: 2}},
			{ID: uuid.New(), Name: "SAM", ObjName: "BLUE|SAM|1", Category: "aa", Position: core.Point{X: 3, Y: 4}, Dead: true},
		},
		FrontLines: []string{"Kutaisi"},
	}

	row := CoreToControlPoint("Caucasus", 4, snap)
	assert.Equal(t, snap.ID.String(), row.ID)
	assert.Equal(t, "Caucasus", row.Region)
	assert.Equal(t, 4, row.Ordinal)
	assert.True(t, row.AirportID.Valid)
	assert.JSONEq(t, `["Kutaisi"]`, string(row.FrontLines))
	require.Len(t, row.GroundObjects, 2)
	assert.Equal(t, row.ID, row.GroundObjects[1].ControlPointID)
	assert.Equal(t, 1, row.GroundObjects[1].Ordinal)

	back, err := ControlPointToCore(row)
	require.NoError(t, err)
	assert.Equal(t, snap, back)
}

func TestControlPointToCore_NoAirportNoFrontLines(t *testing.T) {
	snap := core.ControlPointSnapshot{ID: uuid.New(), Name: "FOB", Position: core.Point{X: 5, Y: 5}}

	row := CoreToControlPoint("Syria", 0, snap)
	assert.False(t, row.AirportID.Valid)
	assert.Equal(t, datatypes.JSON("[]"), row.FrontLines)

	back, err := ControlPointToCore(row)
	require.NoError(t, err)
	assert.Nil(t, back.AirportID)
	assert.Nil(t, back.FrontLines)
	assert.Equal(t, core.Point{X: 5, Y: 5}, back.Position)
}

func TestControlPointToCore_BadID(t *testing.T) {
	row := CoreToControlPoint("Syria", 0, core.ControlPointSnapshot{ID: uuid.New(), Name: "x"})
	row.ID = "not-a-uuid"

	_, err := ControlPointToCore(row)
	assert.Error(t, err)
}

func TestQueryRecordRoundTrip(t *testing.T) {
	q := core.QueryRecord{
		ID:       7,
		Time:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Region:   "Nevada",
		Command:  ":NEAREST_LAND:",
		Args:     []string{"15,5", "1"},
		Result:   `{"x":9,"y":5}`,
		Duration: 1500 * time.Microsecond,
	}

	row := CoreToQueryRecord(q)
	assert.Equal(t, int64(1500), row.DurationUs)
	assert.JSONEq(t, `["15,5","1"]`, string(row.Args))

	assert.Equal(t, q, QueryRecordToCore(row))
}

func TestJSONToStrings_Invalid(t *testing.T) {
	assert.Nil(t, jsonToStrings(datatypes.JSON("{")))
	assert.Nil(t, jsonToStrings(nil))
}
