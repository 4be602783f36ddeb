package race

import (
	"fmt"
	"math"
)

// HUD is the text state of the player's heads-up display. Front-ends
// only draw it.
type HUD struct {
	Status    string
	Lap       string
	Position  string
	Health    string
	LowHealth bool
	Speed     string
	Time      string

	BoostWarning string
	BoostBand    int
	BoostFill    float64

	EndVisible bool
	EndTitle   string
	EndHint    string

	flash float64
	t     *Tuning
}

func NewHUD(t *Tuning) *HUD {
	h := &HUD{t: t}
	h.Reset()
	return h
}

func (h *HUD) Reset() {
	h.Status = "Hit Space to Start"
	h.Lap = fmt.Sprintf("Lap 1/%d", h.t.Game.Laps)
	h.Health = fmt.Sprintf("%d/%dHP", h.t.Car.MaxHP, h.t.Car.MaxHP)
	h.LowHealth = false
	h.Position, h.Speed, h.Time = "", "", ""
	h.BoostWarning = ""
	h.BoostBand, h.BoostFill = 0, 1
	h.EndVisible = false
	h.EndTitle = ""
	h.EndHint = "Press F1 to play again."
	h.flash = -1
}

// Countdown shows the seconds left before the start, or "Go!".
func (h *HUD) Countdown(left float64) {
	if left > 0 {
		h.Status = fmt.Sprintf("%d...", int(math.Ceil(left)))
		return
	}
	h.Status = "Go!"
}

// UpdateStatus reflects a checkpoint crossing. next is the checkpoint now
// expected and count the number of checkpoints on the course.
func (h *HUD) UpdateStatus(next, lap, count int) {
	if lap > h.t.Game.Laps {
		h.Status = "Race complete!"
		return
	}
	if next == 0 {
		next = count
	}
	h.Status = fmt.Sprintf("Stage %d complete", next)
	h.Lap = fmt.Sprintf("Lap %d/%d", lap, h.t.Game.Laps)
}

func (h *HUD) UpdateHP(hp int) {
	if hp < 0 {
		hp = 0
	}
	h.Health = fmt.Sprintf("%d/%dHP", hp, h.t.Car.MaxHP)
	if float64(hp) < float64(h.t.Car.MaxHP)*h.t.Car.LowHP {
		h.LowHealth = true
	}
}

// UpdateGeneral refreshes the sampled speed, time and position lines.
func (h *HUD) UpdateGeneral(kmph float64, clock RaceClock, pos, cars int) {
	h.Speed = fmt.Sprintf("%dkm/h", int(math.Round(kmph)))
	h.Time = clock.String()
	h.Position = fmt.Sprintf("Pos %d/%d", pos, cars)
}

// Update advances the boost warning flash and the boost bar.
func (h *HUD) Update(dt, boostTimer float64) {
	ht := &h.t.HUD
	if boostTimer < 0 {
		h.flash -= dt
	}
	h.BoostWarning = ""
	if boostTimer < 0 && h.flash < 0 {
		if boostTimer == h.t.Car.BoostDownTime {
			h.BoostWarning = "BOOST DOWN"
		} else {
			h.BoostWarning = "OVERHEAT"
		}
		if h.flash <= -ht.FlashPeriod {
			h.flash = ht.FlashOn
		}
	}

	h.BoostBand = len(ht.BoostBands)
	for i, level := range ht.BoostBands {
		if boostTimer >= level {
			h.BoostBand = i
			break
		}
	}
	h.BoostFill = clampF(boostTimer/h.t.Car.BoostTime, 0, 1)
}

// ShowWinner sets the end banner for the first finisher.
func (h *HUD) ShowWinner(name string, clock RaceClock) {
	h.EndTitle = fmt.Sprintf("RACE COMPLETE! %s WON WITH A TIME OF %s", name, clock)
}

func (h *HUD) ShowEnd() {
	h.EndVisible = true
}

func (h *HUD) GameOver() {
	h.Status = "Game Over"
	h.EndTitle = "GAME OVER"
	h.ShowEnd()
}
