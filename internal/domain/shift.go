package domain

// TimeShiftBucket counts customers whose optimized visit moved by OffsetDays
// relative to the original schedule.
type TimeShiftBucket struct {
	OffsetDays    int
	CustomerCount int
}
