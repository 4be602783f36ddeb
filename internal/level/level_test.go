package level

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoverrace/internal/race"
)

func TestParse(t *testing.T) {
	src := `# a comment
Checkpoint 0 0 0

  Waypoint -3 60.5 0
Bomb 1e1 -2 90
`
	recs, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, race.Record{Type: "Checkpoint"}, recs[0])
	assert.Equal(t, race.Record{Type: "Waypoint", X: -3, Z: 60.5}, recs[1])
	assert.Equal(t, race.Record{Type: "Bomb", X: 10, Z: -2, R: 90}, recs[2])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line string
	}{
		{"bad number", "Checkpoint 0 0 0\n\nWall 1 x 0\n", "line 3"},
		{"short", "Wall 1 2\n", "line 1"},
		{"long", "Checkpoint 0 0 0\nWall 1 2 3 4\n", "line 2"},
		{"nan", "Wall NaN 2 3\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadRecord)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestDefaultTrackBuilds(t *testing.T) {
	recs, err := Default()
	require.NoError(t, err)
	assert.Empty(t, Unknown(recs))

	tune := race.DefaultTuning()
	tr, err := race.BuildTrack(recs, &tune, race.NewRand(1))
	require.NoError(t, err)
	assert.Len(t, tr.Checkpoints, 5)
	assert.Len(t, tr.Lanes[0], 13)
	assert.Len(t, tr.Lanes[1], 13)
	assert.Len(t, tr.Bombs, 3)
	assert.Len(t, tr.Fires, 2)
	assert.Zero(t, tr.Skipped)

	_, err = race.NewRace(tr, &tune, race.NewRand(1), nil)
	require.NoError(t, err)
}

func TestLoad(t *testing.T) {
	def, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, def)

	path := filepath.Join(t.TempDir(), "mini.txt")
	require.NoError(t, os.WriteFile(path, []byte("Checkpoint 0 0 0\nWaypoint 0 50 0\nWindmill 3 3 0\n"), 0o644))
	recs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
	assert.Equal(t, []string{"Windmill"}, Unknown(recs))

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("Wall a b c\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrBadRecord)
	assert.Contains(t, err.Error(), "bad.txt")
}

func TestFingerprint(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	b[0].X += 0.5
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(a[1:]))
}
