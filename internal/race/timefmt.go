package race

import (
	"fmt"
	"math"
)

// RaceClock is a race time split for display.
type RaceClock struct {
	M, S, MS int
}

// GetTime splits seconds into minutes, seconds and centiseconds.
func GetTime(sec float64) RaceClock {
	if sec < 0 {
		sec = 0
	}
	whole := math.Floor(sec)
	s := int(whole)
	return RaceClock{M: s / 60, S: s % 60, MS: int((sec - whole) * 100)}
}

// Seconds is the inverse of GetTime, exact to the centisecond.
func (c RaceClock) Seconds() float64 {
	return float64(c.M*60+c.S) + float64(c.MS)/100
}

func (c RaceClock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.M, c.S, c.MS)
}
