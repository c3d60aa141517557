package naming

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ArchiveExt is the suffix of every archive produced by the engine.
	ArchiveExt = ".tar.gz"
	// checkpointInfix separates the backup name from the checkpoint depth.
	checkpointInfix = "-snar-"
	// BackupSuffix marks the pre-run rollback copy of a checkpoint.
	BackupSuffix = ".old"
)

// ArchiveName encodes a level path into an archive filename.
// An empty level path is the full backup: NAME.tar.gz. Each level entry is
// appended as "_NN" with two-digit zero padding, so lexical order of the
// resulting filenames equals creation order for counters below 100.
func ArchiveName(name string, level []int) string {
	var b strings.Builder
	b.WriteString(name)
	for _, n := range level {
		fmt.Fprintf(&b, "_%02d", n)
	}
	b.WriteString(ArchiveExt)
	return b.String()
}

// CheckpointName encodes the per-depth incremental state filename: NAME-snar-D.
func CheckpointName(name string, depth int) string {
	return name + checkpointInfix + strconv.Itoa(depth)
}

// CheckpointBackupName is the rollback copy written before each incremental run.
func CheckpointBackupName(name string, depth int) string {
	return CheckpointName(name, depth) + BackupSuffix
}

// ParseArchive decodes the counter values encoded in an archive filename.
// Decoding stops at the first token that is not an integer, which makes the
// parser safe against foreign files sharing the name prefix. The bare full
// backup name decodes to an empty result.
func ParseArchive(name, filename string) []int {
	// NAME.tar.gz has nothing between prefix and extension; the +1 skips
	// the separator in front of the first counter.
	if len(filename) < len(name)+1+len(ArchiveExt) {
		return nil
	}
	body := filename[len(name)+1 : len(filename)-len(ArchiveExt)]
	var level []int
	for _, part := range strings.Split(body, "_") {
		n, err := strconv.Atoi(part)
		if err != nil {
			break
		}
		level = append(level, n)
	}
	return level
}

// IsArchive reports whether filename is an archive belonging to name.
func IsArchive(name, filename string) bool {
	return strings.HasPrefix(filename, name) && strings.HasSuffix(filename, ArchiveExt)
}

// IsCheckpoint reports whether filename is a checkpoint (or a checkpoint
// rollback copy) belonging to name.
func IsCheckpoint(name, filename string) bool {
	return strings.HasPrefix(filename, name+checkpointInfix)
}

// IsCheckpointBackup reports whether filename is a ".old" rollback copy.
func IsCheckpointBackup(name, filename string) bool {
	return IsCheckpoint(name, filename) && strings.HasSuffix(filename, BackupSuffix)
}

// CheckpointDepth extracts the depth from a checkpoint filename.
// Rollback copies report the depth of the checkpoint they back up.
func CheckpointDepth(name, filename string) (int, bool) {
	if !IsCheckpoint(name, filename) {
		return 0, false
	}
	body := strings.TrimPrefix(filename, name+checkpointInfix)
	body = strings.TrimSuffix(body, BackupSuffix)
	depth, err := strconv.Atoi(body)
	if err != nil || depth < 0 {
		return 0, false
	}
	return depth, true
}
