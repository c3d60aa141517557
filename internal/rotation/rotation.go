package rotation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// LevelPath identifies a node in the rotation tree. The empty path is the
// full backup; each entry is a counter at one depth, starting at 1.
type LevelPath []int

// Depth is the number of tree levels below the full backup.
func (p LevelPath) Depth() int { return len(p) }

func (p LevelPath) clone() LevelPath {
	if p == nil {
		return nil
	}
	out := make(LevelPath, len(p))
	copy(out, p)
	return out
}

func (p LevelPath) String() string {
	if len(p) == 0 {
		return "full"
	}
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Policy bounds the rotation tree: MaxLevels is the depth bound (a full
// backup plus up to MaxLevels-1 incremental levels), CountPerLevel the
// number of backups taken at the deepest level before the counter carries
// into its parent.
type Policy struct {
	MaxLevels     int
	CountPerLevel int
}

func (p Policy) Validate() error {
	if p.MaxLevels < 1 {
		return fmt.Errorf("levels must be >= 1, got %d", p.MaxLevels)
	}
	if p.CountPerLevel < 2 {
		return fmt.Errorf("count must be >= 2, got %d", p.CountPerLevel)
	}
	// Counters on disk reach CountPerLevel-1 before the carry retires
	// them, and the two-digit filename encoding keeps lexical order equal
	// to replay order only up to 99.
	if p.CountPerLevel > 100 {
		return fmt.Errorf("count must be <= 100, got %d", p.CountPerLevel)
	}
	return nil
}

// ErrChainCorrupt signals that the archives on disk encode a level path that
// is inconsistent with the configured policy. A backup must not proceed on a
// corrupt chain; restoring from it would silently replay the wrong sequence.
var ErrChainCorrupt = errors.New("backup chain corrupt")
