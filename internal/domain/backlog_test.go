package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgeBucketFor(t *testing.T) {
	tests := []struct {
		days int
		want AgeBucket
	}{
		{0, AgeBucket0To30},
		{30, AgeBucket0To30},
		{31, AgeBucket31To60},
		{60, AgeBucket31To60},
		{61, AgeBucket61To90},
		{90, AgeBucket61To90},
		{91, AgeBucket91To180},
		{180, AgeBucket91To180},
		{181, AgeBucketOver180},
		{4000, AgeBucketOver180},
	}

	for _, tt := range tests {
		got, ok := AgeBucketFor(tt.days)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "age %d", tt.days)
	}
}

func TestAgeBucketFor_PartitionsNonNegativeAges(t *testing.T) {
	for days := 0; days <= 400; days++ {
		b, ok := AgeBucketFor(days)
		assert.True(t, ok)
		assert.Contains(t, AgeBuckets, b)
	}

	_, ok := AgeBucketFor(-1)
	assert.False(t, ok)
}

func TestShipWindowFor(t *testing.T) {
	assert.Equal(t, ShipWindowNoDate, ShipWindowFor(0, false))
	assert.Equal(t, ShipWindowPastDue, ShipWindowFor(-1, true))
	assert.Equal(t, ShipWindow0To30, ShipWindowFor(0, true))
	assert.Equal(t, ShipWindow31To60, ShipWindowFor(31, true))
	assert.Equal(t, ShipWindow61To90, ShipWindowFor(90, true))
	assert.Equal(t, ShipWindowOver90, ShipWindowFor(91, true))
}
