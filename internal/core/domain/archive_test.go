package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpitch/matchbook/internal/core/domain"
)

func TestClassify_Boundary(t *testing.T) {
	match := &domain.Match{Date: "2024-03-01", Time: "18:00"}

	cases := []struct {
		name string
		now  time.Time
		want domain.Partition
	}{
		{"minute before kickoff", time.Date(2024, 3, 1, 17, 59, 0, 0, time.UTC), domain.PartitionUpcoming},
		{"exactly at kickoff", time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC), domain.PartitionUpcoming},
		{"second after kickoff", time.Date(2024, 3, 1, 18, 0, 1, 0, time.UTC), domain.PartitionPast},
		{"next day", time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC), domain.PartitionPast},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.Classify(match, tc.now))
		})
	}
}

func TestClassify_UnparseableScheduleStaysUpcoming(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	for _, match := range []*domain.Match{
		{Date: "soon", Time: "18:00"},
		{Date: "2020-01-01", Time: "evening"},
		{Date: "", Time: ""},
	} {
		assert.Equal(t, domain.PartitionUpcoming, domain.Classify(match, now))
	}
}

func TestStartsAt_UsesGivenLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	match := &domain.Match{Date: "2024-03-01", Time: "18:00"}
	start, err := match.StartsAt(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 18, 0, 0, 0, loc), start)
}
