package domain

import "time"

// Partition buckets a match relative to wall-clock time.
type Partition string

const (
	PartitionUpcoming Partition = "upcoming"
	PartitionPast     Partition = "past"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// StartsAt combines the stored local date and time of day.
func (m *Match) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, m.Date+" "+m.Time, loc)
}

// Classify buckets a match as upcoming or past. The boundary is
// exclusive on the past side: a match starting exactly at now is still
// upcoming. Rows with an unparseable schedule stay upcoming so they
// remain visible.
func Classify(m *Match, now time.Time) Partition {
	start, err := m.StartsAt(now.Location())
	if err != nil {
		return PartitionUpcoming
	}
	if start.Before(now) {
		return PartitionPast
	}
	return PartitionUpcoming
}
