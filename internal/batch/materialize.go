package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Artifact names written into every job directory.
const (
	GeometryFile  = "geometry.xyz"
	OrcaInputFile = "orca6.inp"
	SlurmFile     = "job.slurm"
	CleanupFile   = "cleanup.sh"
)

// CleanupScript removes common ORCA scratch/intermediate files while keeping
// key outputs (*.out, *.xyz, *.gbw) intact. Written verbatim into every job
// directory with the executable bit set.
const CleanupScript = `#!/usr/bin/env bash
set -euo pipefail
patterns=(
  "*.tmp" "*.trj" "*.pc_*.xyz" "*.engrad" "*.hess"
  "*.molden.input" "*.mdci" "*.mdprop" "orca.*" "scratch" "tmp"
)
shopt -s nullglob
for p in "${patterns[@]}"; do
  rm -rf $p
done
echo "Cleanup done."
`

// Materializer writes numbered job directories under OutRoot.
type Materializer struct {
	OutRoot   string
	Force     bool // allow reuse of non-empty existing directories
	ForceHint bool // mention --force in the conflict message
	DryRun    bool // print intended operations instead of writing
}

// WriteJobDir creates the directory for ordinal (the 1-based position within
// the selection) and writes the four artifacts into it.
func (m *Materializer) WriteJobDir(ordinal int, chunk []string, orca, slurm Template) error {
	dir := filepath.Join(m.OutRoot, strconv.Itoa(ordinal))
	if m.DryRun {
		fmt.Printf("[dry-run] would create folder: %s\n", dir)
		fmt.Printf("[dry-run] would write: %s (lines=%d)\n", filepath.Join(dir, GeometryFile), len(chunk))
		fmt.Printf("[dry-run] would write: %s (len=%d)\n", filepath.Join(dir, OrcaInputFile), len(orca.Text))
		fmt.Printf("[dry-run] would write: %s (len=%d)\n", filepath.Join(dir, SlurmFile), len(slurm.Text))
		fmt.Printf("[dry-run] would write: %s (executable)\n", filepath.Join(dir, CleanupFile))
		return nil
	}
	if err := m.ensureDir(dir); err != nil {
		return err
	}
	geometry := strings.Join(chunk, "\n") + "\n"
	if err := writeFile(filepath.Join(dir, GeometryFile), geometry, 0o644); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, OrcaInputFile), orca.Text, 0o644); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, SlurmFile), slurm.Text, 0o644); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, CleanupFile), CleanupScript, 0o755); err != nil {
		return err
	}
	log.Debug().Str("dir", dir).Msg("job directory written")
	return nil
}

// ensureDir creates dir (with parents) when missing. An existing empty
// directory is fine; a non-empty one is a conflict unless Force is set.
func (m *Materializer) ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return Usagef("path exists and is not a directory: %s", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	if len(entries) > 0 && !m.Force {
		if m.ForceHint {
			return Usagef("directory %s already exists and is not empty, use --force to allow reuse", dir)
		}
		return Usagef("directory %s already exists and is not empty, remove or rename it before running", dir)
	}
	return nil
}

// writeFile writes content and re-applies mode, so an overwrite of an
// existing file under --force still ends up with the requested bits.
func writeFile(path, content string, mode os.FileMode) error {
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode&0o111 != 0 {
		if err := os.Chmod(path, mode); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}
	return nil
}
