package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"packtv/internal/kpi"
)

func TestViewNoData(t *testing.T) {
	out := View("Bins Per Hour", nil, BinsPerHour, 60)
	assert.Contains(t, out, "Bins Per Hour")
	assert.Contains(t, out, "No data")
}

func TestViewRows(t *testing.T) {
	buckets := []kpi.Bucket{
		{Start: "06:00", BinsPerHour: 38, BinHourTarget: 40},
		{Start: "06:10", BinsPerHour: 41, BinHourTarget: 40},
	}
	out := View("Bins Per Hour", buckets, BinsPerHour, 60)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3) // title + one row per bucket
	assert.Contains(t, lines[1], "06:00")
	assert.Contains(t, lines[1], "38.0")
	assert.Contains(t, lines[2], "06:10")
	assert.Contains(t, lines[2], "41.0")
}

func TestViewZeroValues(t *testing.T) {
	buckets := []kpi.Bucket{{Start: "06:00"}}
	out := View("Packs", buckets, PacksPerManHour, 60)
	assert.Contains(t, out, "06:00")
	assert.Contains(t, out, "0.0")
}
