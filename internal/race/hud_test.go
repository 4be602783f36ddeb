package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHUDReset(t *testing.T) {
	h := NewHUD(testTuning())
	assert.Equal(t, "Hit Space to Start", h.Status)
	assert.Equal(t, "Lap 1/2", h.Lap)
	assert.Equal(t, "100/100HP", h.Health)
	assert.False(t, h.EndVisible)
	assert.Equal(t, "Press F1 to play again.", h.EndHint)
}

func TestHUDCountdown(t *testing.T) {
	h := NewHUD(testTuning())
	h.Countdown(2.3)
	assert.Equal(t, "3...", h.Status)
	h.Countdown(1)
	assert.Equal(t, "1...", h.Status)
	h.Countdown(0)
	assert.Equal(t, "Go!", h.Status)
}

func TestHUDUpdateStatus(t *testing.T) {
	h := NewHUD(testTuning())
	h.UpdateStatus(1, 1, 4)
	assert.Equal(t, "Stage 1 complete", h.Status)
	assert.Equal(t, "Lap 1/2", h.Lap)

	h.UpdateStatus(0, 2, 4)
	assert.Equal(t, "Stage 4 complete", h.Status)
	assert.Equal(t, "Lap 2/2", h.Lap)

	h.UpdateStatus(0, 3, 4)
	assert.Equal(t, "Race complete!", h.Status)
	assert.Equal(t, "Lap 2/2", h.Lap)
}

func TestHUDHealth(t *testing.T) {
	h := NewHUD(testTuning())
	h.UpdateHP(40)
	assert.Equal(t, "40/100HP", h.Health)
	assert.False(t, h.LowHealth)
	h.UpdateHP(25)
	assert.True(t, h.LowHealth)
	h.UpdateHP(-5)
	assert.Equal(t, "0/100HP", h.Health)
}

func TestHUDGeneral(t *testing.T) {
	h := NewHUD(testTuning())
	h.UpdateGeneral(123.6, GetTime(61.5), 2, 4)
	assert.Equal(t, "124km/h", h.Speed)
	assert.Equal(t, "01:01:50", h.Time)
	assert.Equal(t, "Pos 2/4", h.Position)
}

func TestHUDBoostBar(t *testing.T) {
	h := NewHUD(testTuning())
	h.Update(0.1, 3)
	assert.Equal(t, 0, h.BoostBand)
	assert.Equal(t, 1.0, h.BoostFill)
	assert.Empty(t, h.BoostWarning)

	h.Update(0.1, 0.8)
	assert.Equal(t, 2, h.BoostBand)
	h.Update(0.1, 0.1)
	assert.Equal(t, 4, h.BoostBand)
	h.Update(0.1, -2)
	assert.Equal(t, 0.0, h.BoostFill)
}

func TestHUDOverheatFlash(t *testing.T) {
	h := NewHUD(testTuning())
	h.Update(0.1, -5)
	assert.Equal(t, "OVERHEAT", h.BoostWarning)
	h.Update(0.2, -4.9)
	assert.Equal(t, "OVERHEAT", h.BoostWarning)
	h.Update(0.1, -4.8)
	assert.Empty(t, h.BoostWarning, "flash is off")
	h.Update(0.1, -4.7)
	assert.Equal(t, "OVERHEAT", h.BoostWarning)

	down := NewHUD(testTuning())
	down.Update(0.01, -10)
	assert.Equal(t, "BOOST DOWN", down.BoostWarning)
}

func TestHUDEndBanner(t *testing.T) {
	h := NewHUD(testTuning())
	h.ShowWinner("YOU", GetTime(61.5))
	assert.Equal(t, "RACE COMPLETE! YOU WON WITH A TIME OF 01:01:50", h.EndTitle)
	assert.False(t, h.EndVisible)
	h.ShowEnd()
	assert.True(t, h.EndVisible)

	h.Reset()
	h.GameOver()
	assert.Equal(t, "Game Over", h.Status)
	assert.Equal(t, "GAME OVER", h.EndTitle)
	assert.True(t, h.EndVisible)
}
