package hud

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ChangeMode selects what the detector compares between ticks.
type ChangeMode string

const (
	// ChangeByCount rebuilds only when the number of entries changes.
	// Swapping one status for another of the same count keeps the old rows.
	ChangeByCount ChangeMode = "count"
	// ChangeByContent rebuilds whenever the set of tokens or statuses changes.
	ChangeByContent ChangeMode = "content"
)

func ParseChangeMode(s string) (ChangeMode, error) {
	switch ChangeMode(s) {
	case "", ChangeByCount:
		return ChangeByCount, nil
	case ChangeByContent:
		return ChangeByContent, nil
	}
	return "", fmt.Errorf("unknown change detection mode %q", s)
}

type renderMark struct {
	count       int
	fingerprint uint64
}

// ChangeDetector remembers what was last rendered for every user.
type ChangeDetector struct {
	Mode ChangeMode
	last map[string]renderMark
}

func NewChangeDetector(mode ChangeMode) *ChangeDetector {
	return &ChangeDetector{
		Mode: mode,
		last: make(map[string]renderMark),
	}
}

// ShouldRebuild reports whether the combined count differs from the cached
// one (or nothing is cached) and records the new count when it does.
func (d *ChangeDetector) ShouldRebuild(user string, builtinCount, customCount int) bool {
	combined := builtinCount + customCount
	mark, ok := d.last[user]
	if ok && mark.count == combined {
		return false
	}
	d.last[user] = renderMark{count: combined}
	return true
}

// Changed applies the configured mode to a tick's results.
func (d *ChangeDetector) Changed(user string, tokens []Token, customs []*CustomStatus) bool {
	if d.Mode != ChangeByContent {
		return d.ShouldRebuild(user, len(tokens), len(customs))
	}
	fp := Fingerprint(tokens, customs)
	combined := len(tokens) + len(customs)
	mark, ok := d.last[user]
	if ok && mark.count == combined && mark.fingerprint == fp {
		return false
	}
	d.last[user] = renderMark{count: combined, fingerprint: fp}
	return true
}

// LastCount returns the cached combined count for user.
func (d *ChangeDetector) LastCount(user string) (int, bool) {
	mark, ok := d.last[user]
	return mark.count, ok
}

// Forget drops the cached state of one user.
func (d *ChangeDetector) Forget(user string) {
	delete(d.last, user)
}

// Reset drops every cached entry.
func (d *ChangeDetector) Reset() {
	d.last = make(map[string]renderMark)
}

// Fingerprint hashes token keys and status identities. Values (the oxygen
// level, dynamic text) are left out; those do not move rows.
func Fingerprint(tokens []Token, customs []*CustomStatus) uint64 {
	h := xxhash.New()
	for _, t := range tokens {
		h.WriteString(string(t.Key()))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})
	var buf [8]byte
	for _, c := range customs {
		binary.LittleEndian.PutUint64(buf[:], c.Seq)
		h.Write(buf[:])
	}
	return h.Sum64()
}
