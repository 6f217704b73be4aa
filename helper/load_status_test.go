package helper

import (
	"testing"
	"time"

	"github.com/MrFrederic/opensky/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateLoadStatuses_FormingGoesOnCall(t *testing.T) {
	db := newTestDB(t)
	aircraft := createAircraft(t, db, 15)

	load := createLoad(t, db, aircraft.ID, time.Now().Add(4*time.Minute), model.LoadForming, 0)

	UpdateLoadStatuses(db)

	var updated model.Load
	require.NoError(t, db.First(&updated, load.ID).Error)
	assert.Equal(t, model.LoadOnCall, updated.Status)
}

func TestUpdateLoadStatuses_PastDepartureGoesDeparted(t *testing.T) {
	db := newTestDB(t)
	aircraft := createAircraft(t, db, 15)

	forming := createLoad(t, db, aircraft.ID, time.Now().Add(-10*time.Minute), model.LoadForming, 0)
	onCall := createLoad(t, db, aircraft.ID, time.Now().Add(-time.Minute), model.LoadOnCall, 0)

	UpdateLoadStatuses(db)

	var wasForming model.Load
	require.NoError(t, db.First(&wasForming, forming.ID).Error)
	assert.Equal(t, model.LoadDeparted, wasForming.Status)

	var wasOnCall model.Load
	require.NoError(t, db.First(&wasOnCall, onCall.ID).Error)
	assert.Equal(t, model.LoadDeparted, wasOnCall.Status)
}

func TestUpdateLoadStatuses_RepeatTickIsNoOp(t *testing.T) {
	db := newTestDB(t)
	aircraft := createAircraft(t, db, 15)

	load := createLoad(t, db, aircraft.ID, time.Now().Add(-time.Hour), model.LoadDeparted, 0)

	UpdateLoadStatuses(db)
	UpdateLoadStatuses(db)

	var updated model.Load
	require.NoError(t, db.First(&updated, load.ID).Error)
	assert.Equal(t, model.LoadDeparted, updated.Status)
}

func TestUpdateLoadStatuses_FarFutureStaysForming(t *testing.T) {
	db := newTestDB(t)
	aircraft := createAircraft(t, db, 15)

	load := createLoad(t, db, aircraft.ID, time.Now().Add(2*time.Hour), model.LoadForming, 0)

	UpdateLoadStatuses(db)

	var updated model.Load
	require.NoError(t, db.First(&updated, load.ID).Error)
	assert.Equal(t, model.LoadForming, updated.Status)
}
