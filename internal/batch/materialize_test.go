package batch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteJobDirArtifacts(t *testing.T) {
	root := t.TempDir()
	m := &Materializer{OutRoot: root}
	chunk := []string{"3", "comment", "O 0 0 0"}
	orca := Template{Source: SourceLiteral, Text: "! Opt\n"}
	slurm := Template{Source: SourceLiteral, Text: "#!/bin/bash\nsbatch stub\n"}

	if err := m.WriteJobDir(1, chunk, orca, slurm); err != nil {
		t.Fatalf("write job dir: %v", err)
	}

	dir := filepath.Join(root, "1")
	geom, err := os.ReadFile(filepath.Join(dir, GeometryFile))
	if err != nil {
		t.Fatalf("read geometry: %v", err)
	}
	if string(geom) != "3\ncomment\nO 0 0 0\n" {
		t.Fatalf("unexpected geometry content: %q", geom)
	}
	orcaB, err := os.ReadFile(filepath.Join(dir, OrcaInputFile))
	if err != nil {
		t.Fatalf("read orca input: %v", err)
	}
	if string(orcaB) != orca.Text {
		t.Fatalf("orca input not byte-for-byte: %q", orcaB)
	}
	slurmB, err := os.ReadFile(filepath.Join(dir, SlurmFile))
	if err != nil {
		t.Fatalf("read slurm: %v", err)
	}
	if string(slurmB) != slurm.Text {
		t.Fatalf("slurm script not byte-for-byte: %q", slurmB)
	}
	info, err := os.Stat(filepath.Join(dir, CleanupFile))
	if err != nil {
		t.Fatalf("stat cleanup: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Fatalf("cleanup.sh not executable: %v", info.Mode())
	}
	cleanup, err := os.ReadFile(filepath.Join(dir, CleanupFile))
	if err != nil {
		t.Fatalf("read cleanup: %v", err)
	}
	if string(cleanup) != CleanupScript {
		t.Fatalf("cleanup script content changed")
	}
}

func TestWriteJobDirConflict(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "leftover.out"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write leftover: %v", err)
	}

	m := &Materializer{OutRoot: root}
	err := m.WriteJobDir(1, []string{"a"}, Template{}, Template{})
	var ue *UsageError
	if !errors.As(err, &ue) {
		t.Fatalf("expected usage error for non-empty directory, got %v", err)
	}

	forced := &Materializer{OutRoot: root, Force: true}
	if err := forced.WriteJobDir(1, []string{"a"}, Template{}, Template{}); err != nil {
		t.Fatalf("force reuse failed: %v", err)
	}
}

func TestWriteJobDirEmptyExisting(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "1"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	m := &Materializer{OutRoot: root}
	if err := m.WriteJobDir(1, []string{"a"}, Template{}, Template{}); err != nil {
		t.Fatalf("empty existing directory should be reusable: %v", err)
	}
}

func TestWriteJobDirPathIsFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "1"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m := &Materializer{OutRoot: root}
	err := m.WriteJobDir(1, []string{"a"}, Template{}, Template{})
	var ue *UsageError
	if !errors.As(err, &ue) {
		t.Fatalf("expected usage error when target is a file, got %v", err)
	}
}

func TestWriteJobDirDryRun(t *testing.T) {
	root := t.TempDir()
	m := &Materializer{OutRoot: root, DryRun: true}
	if err := m.WriteJobDir(1, []string{"a", "b"}, Template{}, Template{}); err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "1")); !os.IsNotExist(err) {
		t.Fatalf("dry run created a directory")
	}
}
