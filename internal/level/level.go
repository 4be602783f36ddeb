// Package level reads track files. A track is a list of records, one per
// line: a type token, the x and z ground coordinates and a rotation in
// degrees. Blank lines and lines starting with # are ignored.
package level

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"hoverrace/internal/race"
)

//go:embed tracks/default.txt
var defaultTrack []byte

// ErrBadRecord marks a line that is not "<type> <x> <z> <rotation>".
var ErrBadRecord = errors.New("bad level record")

// Parse reads every record from r.
func Parse(r io.Reader) ([]race.Record, error) {
	var records []race.Record
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rec, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return records, nil
}

func parseRecord(text string) (race.Record, error) {
	f := strings.Fields(text)
	if len(f) != 4 {
		return race.Record{}, fmt.Errorf("%w: want 4 fields, got %d", ErrBadRecord, len(f))
	}
	var v [3]float64
	for i, s := range f[1:] {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return race.Record{}, fmt.Errorf("%w: %q is not a number", ErrBadRecord, s)
		}
		v[i] = n
	}
	return race.Record{Type: f[0], X: v[0], Z: v[1], R: v[2]}, nil
}

// Default returns the records of the built-in circuit.
func Default() ([]race.Record, error) {
	return Parse(bytes.NewReader(defaultTrack))
}

// Load reads the track at path, or the built-in circuit when path is empty.
func Load(path string) ([]race.Record, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return records, nil
}

// Fingerprint hashes the records in order. Two tracks with the same
// fingerprint build the same course.
func Fingerprint(records []race.Record) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, r := range records {
		_, _ = d.WriteString(r.Type)
		for _, v := range [3]float64{r.X, r.Z, r.R} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

// Unknown lists the distinct record types that have no construction
// recipe. Such records are skipped when the track is built.
func Unknown(records []race.Record) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range records {
		if race.KnownRecord(r.Type) || seen[r.Type] {
			continue
		}
		seen[r.Type] = true
		out = append(out, r.Type)
	}
	sort.Strings(out)
	return out
}
