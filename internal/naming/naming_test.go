package naming

import (
	"reflect"
	"testing"
)

func TestArchiveName(t *testing.T) {
	t.Run("full backup", func(t *testing.T) {
		if got := ArchiveName("data", nil); got != "data.tar.gz" {
			t.Errorf("ArchiveName = %q, want data.tar.gz", got)
		}
	})
	t.Run("zero padded levels", func(t *testing.T) {
		if got := ArchiveName("data", []int{1, 3}); got != "data_01_03.tar.gz" {
			t.Errorf("ArchiveName = %q, want data_01_03.tar.gz", got)
		}
	})
	t.Run("two digit counter", func(t *testing.T) {
		if got := ArchiveName("data", []int{10}); got != "data_10.tar.gz" {
			t.Errorf("ArchiveName = %q, want data_10.tar.gz", got)
		}
	})
}

func TestParseArchive_RoundTrip(t *testing.T) {
	levels := [][]int{
		nil,
		{1},
		{1, 1},
		{1, 2},
		{2, 10, 3},
		{99},
	}
	for _, level := range levels {
		filename := ArchiveName("data", level)
		got := ParseArchive("data", filename)
		if len(level) == 0 {
			if len(got) != 0 {
				t.Errorf("ParseArchive(%q) = %v, want empty", filename, got)
			}
			continue
		}
		if !reflect.DeepEqual(got, level) {
			t.Errorf("ParseArchive(%q) = %v, want %v", filename, got, level)
		}
	}
}

func TestParseArchive_StopsAtUnparsableToken(t *testing.T) {
	got := ParseArchive("data", "data_01_xx_02.tar.gz")
	if !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("ParseArchive = %v, want [1]", got)
	}
}

func TestParseArchive_ForeignSuffix(t *testing.T) {
	// A foreign file sharing the prefix has zero parseable tokens.
	if got := ParseArchive("data", "database.tar.gz"); len(got) != 0 {
		t.Errorf("ParseArchive = %v, want empty", got)
	}
}

func TestCheckpointNames(t *testing.T) {
	if got := CheckpointName("data", 2); got != "data-snar-2" {
		t.Errorf("CheckpointName = %q, want data-snar-2", got)
	}
	if got := CheckpointBackupName("data", 2); got != "data-snar-2.old" {
		t.Errorf("CheckpointBackupName = %q, want data-snar-2.old", got)
	}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		filename     string
		archive      bool
		checkpoint   bool
		ckptBackup   bool
	}{
		{"data.tar.gz", true, false, false},
		{"data_01.tar.gz", true, false, false},
		{"data-snar-0", false, true, false},
		{"data-snar-1.old", false, true, true},
		{"other.tar.gz", false, false, false},
		{"data-snar", false, false, false},
		{"data.txt", false, false, false},
	}
	for _, c := range cases {
		if got := IsArchive("data", c.filename); got != c.archive {
			t.Errorf("IsArchive(%q) = %v, want %v", c.filename, got, c.archive)
		}
		if got := IsCheckpoint("data", c.filename); got != c.checkpoint {
			t.Errorf("IsCheckpoint(%q) = %v, want %v", c.filename, got, c.checkpoint)
		}
		if got := IsCheckpointBackup("data", c.filename); got != c.ckptBackup {
			t.Errorf("IsCheckpointBackup(%q) = %v, want %v", c.filename, got, c.ckptBackup)
		}
	}
}

func TestCheckpointDepth(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		d, ok := CheckpointDepth("data", "data-snar-3")
		if !ok || d != 3 {
			t.Errorf("CheckpointDepth = %d, %v; want 3, true", d, ok)
		}
	})
	t.Run("rollback copy", func(t *testing.T) {
		d, ok := CheckpointDepth("data", "data-snar-1.old")
		if !ok || d != 1 {
			t.Errorf("CheckpointDepth = %d, %v; want 1, true", d, ok)
		}
	})
	t.Run("garbage depth", func(t *testing.T) {
		if _, ok := CheckpointDepth("data", "data-snar-x"); ok {
			t.Error("expected false for non-numeric depth")
		}
	})
	t.Run("not a checkpoint", func(t *testing.T) {
		if _, ok := CheckpointDepth("data", "data.tar.gz"); ok {
			t.Error("expected false for archive name")
		}
	})
}
