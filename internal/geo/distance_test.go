package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_Zero(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(37.5665, 126.9780, 37.5665, 126.9780))
}

func TestDistanceKm_Symmetric(t *testing.T) {
	d1 := DistanceKm(37.5665, 126.9780, 37.5512, 126.9882)
	d2 := DistanceKm(37.5512, 126.9882, 37.5665, 126.9780)
	assert.Equal(t, d1, d2)
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Seoul City Hall to Namsan Tower foothill, roughly 1.9 km.
	d := DistanceKm(37.5665, 126.9780, 37.5512, 126.9882)
	assert.InDelta(t, 1.92, d, 0.1)
}

func TestDistanceKm_OneKilometerBoundary(t *testing.T) {
	// One degree of latitude is ~111.19 km, so 1 km is ~0.008993 degrees.
	const degPerKm = 1.0 / 111.19492664455873

	at := DistanceKm(37.5, 127.0, 37.5+degPerKm, 127.0)
	assert.InDelta(t, 1.0, at, 1e-9)

	just := DistanceKm(37.5, 127.0, 37.5+degPerKm*1.000001, 127.0)
	assert.Greater(t, just, 1.0)
}
