package domain

// TravelSegment is the idle/transit gap between two consecutive visits of the
// same team on the same day. Minutes is never negative.
type TravelSegment struct {
	TeamNumber int
	Day        Weekday
	Variant    Variant
	Minutes    float64
}
