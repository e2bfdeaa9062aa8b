package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/canon"
	"github.com/roach88/gildedrose/internal/inventory"
)

func TestStamper_StampsAndForwards(t *testing.T) {
	items := []*inventory.Item{
		{Name: "Aged Brie", SellIn: 2, Quality: 0},
		{Name: "Sulfuras", SellIn: 0, Quality: 80},
	}

	rec := NewRecorder()
	second := NewRecorder()
	stamper := NewStamper("run-1", nil, rec, second)
	e := inventory.New(inventory.WithObserver(stamper))

	stamper.SetDay(1)
	e.AdvanceOneDay(items)
	stamper.SetDay(2)
	e.AdvanceOneDay(items)

	records := rec.Records()
	require.Len(t, records, 4)
	assert.Equal(t, 4, second.Len())

	for i, r := range records {
		assert.Equal(t, "run-1", r.RunID)
		assert.Equal(t, int64(i+1), r.Seq)
	}
	assert.Equal(t, 1, records[0].Day)
	assert.Equal(t, 1, records[1].Day)
	assert.Equal(t, 2, records[2].Day)
	assert.Equal(t, "Aged Brie", records[2].Name)
	assert.Equal(t, 2, records[2].NewQuality)
	assert.True(t, records[3].Skipped)
}

func TestStamper_SharedClock(t *testing.T) {
	rec := NewRecorder()
	clock := NewClock()
	clock.Next()
	stamper := NewStamper("run-1", clock, rec)
	stamper.Observe(inventory.Event{Name: "x"})
	assert.Equal(t, int64(2), rec.Records()[0].Seq)
}

func TestRecorder_EmptyNotNil(t *testing.T) {
	rec := NewRecorder()
	assert.NotNil(t, rec.Records())
	assert.Equal(t, 0, rec.Len())
}

func TestRecord_CanonicalMap(t *testing.T) {
	r := Record{
		RunID: "run-1",
		Seq:   3,
		Day:   1,
		Event: inventory.Event{
			Index: 2, Name: "Conjured Aged Brie", Category: inventory.Ripening, Enhanced: true,
			OldSellIn: 1, NewSellIn: 0, OldQuality: 3, NewQuality: 5,
		},
	}

	out, err := canon.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t,
		`{"category":"ripening","day":1,"enhanced":true,"index":2,"name":"Conjured Aged Brie",`+
			`"new_quality":5,"new_sell_in":0,"old_quality":3,"old_sell_in":1,"run_id":"run-1","seq":3,"skipped":false}`,
		string(out))

	r.RunID = ""
	_, hasRun := r.CanonicalMap()["run_id"]
	assert.False(t, hasRun)
}
