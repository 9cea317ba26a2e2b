package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/orcatools/orcabatch/pkg/api"
)

// CreateOptions parameterizes the unconditional create tool.
type CreateOptions struct {
	GeometryList     string
	LinesPerGeometry int
	OrcaInput        string
	SlurmInput       string
	OutRoot          string
	Force            bool
	DryRun           bool
	Manifest         bool
	PushHost         string
}

// PruneOptions parameterizes the prefix+stride prune tool. Prune is nil when
// the flag was not given; OutRoot defaults to the current directory.
type PruneOptions struct {
	GeometryList     string
	LinesPerGeometry int
	OrcaInput        string
	SlurmInput       string
	First            int
	Prune            *int
	OutRoot          string
}

// RunCreate materializes one job directory per chunk: validate, chunk,
// resolve templates, write folders 1..N, then the optional manifest and push
// stages.
func RunCreate(ctx context.Context, opts CreateOptions, cfg Config) error {
	if err := validateCommon(opts.GeometryList, opts.LinesPerGeometry); err != nil {
		return err
	}
	if opts.OutRoot == "" {
		opts.OutRoot = "."
	}

	lines, err := ReadLines(opts.GeometryList)
	if err != nil {
		return err
	}
	chunks := ChunkLines(lines, opts.LinesPerGeometry)
	warnRemainder(len(lines), len(chunks), opts.LinesPerGeometry)
	if len(chunks) == 0 {
		log.Info().Msg("no full geometry chunks to process, nothing to do")
		return nil
	}

	orca, err := ResolveTemplate(opts.OrcaInput)
	if err != nil {
		return err
	}
	slurm, err := ResolveTemplate(opts.SlurmInput)
	if err != nil {
		return err
	}

	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutRoot, 0o755); err != nil {
			return fmt.Errorf("create output root: %w", err)
		}
	}
	absRoot, err := filepath.Abs(opts.OutRoot)
	if err != nil {
		absRoot = opts.OutRoot
	}
	fmt.Printf("Found %d geometry chunk(s) of %d line(s) each.\n", len(chunks), opts.LinesPerGeometry)
	fmt.Printf("Output root: %s\n", absRoot)

	m := &Materializer{OutRoot: opts.OutRoot, Force: opts.Force, ForceHint: true, DryRun: opts.DryRun}
	jobs := make([]api.JobDir, 0, len(chunks))
	for idx, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		ordinal := idx + 1
		if err := m.WriteJobDir(ordinal, chunk, orca, slurm); err != nil {
			return err
		}
		jobs = append(jobs, api.JobDir{
			Ordinal:    ordinal,
			ChunkIndex: idx,
			Path:       filepath.Join(opts.OutRoot, strconv.Itoa(ordinal)),
		})
	}

	if opts.Manifest && !opts.DryRun {
		manifest := api.Manifest{
			Batch: api.BatchSpec{
				GeometryList:     opts.GeometryList,
				LinesPerGeometry: opts.LinesPerGeometry,
				TotalLines:       len(lines),
				TotalChunks:      len(chunks),
				IgnoredLines:     len(lines) - len(chunks)*opts.LinesPerGeometry,
			},
			Jobs:      jobs,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := WriteManifest(opts.OutRoot, manifest); err != nil {
			return err
		}
	}

	if opts.PushHost != "" && !opts.DryRun {
		ordinals := make([]int, len(jobs))
		for i, j := range jobs {
			ordinals[i] = j.Ordinal
		}
		if err := PushBatch(ctx, opts.PushHost, cfg.Push, opts.OutRoot, ordinals); err != nil {
			return err
		}
	}

	fmt.Printf("Done. Created %d folder(s).\n", len(chunks))
	return nil
}

// RunPruneCreate materializes only the selected chunks: the first --first
// unconditionally, plus an optional 1/P stride sample of the rest.
func RunPruneCreate(ctx context.Context, opts PruneOptions) error {
	if err := validateCommon(opts.GeometryList, opts.LinesPerGeometry); err != nil {
		return err
	}
	if opts.First < 0 {
		return Usagef("--first must be >= 0")
	}
	if opts.Prune != nil && *opts.Prune <= 0 {
		return Usagef("--prune must be a positive integer when provided")
	}
	if opts.OutRoot == "" {
		opts.OutRoot = "."
	}

	lines, err := ReadLines(opts.GeometryList)
	if err != nil {
		return err
	}
	chunks := ChunkLines(lines, opts.LinesPerGeometry)
	if len(chunks) == 0 {
		log.Info().Msg("no full geometry chunks available, nothing to do")
		return nil
	}
	warnRemainder(len(lines), len(chunks), opts.LinesPerGeometry)

	indices, err := SelectIndices(len(chunks), opts.First, opts.Prune)
	if err != nil {
		return err
	}
	if len(indices) == 0 {
		log.Info().Msg("selection is empty, nothing to do")
		return nil
	}

	orca, err := ResolveTemplate(opts.OrcaInput)
	if err != nil {
		return err
	}
	slurm, err := ResolveTemplate(opts.SlurmInput)
	if err != nil {
		return err
	}

	m := &Materializer{OutRoot: opts.OutRoot}
	for ord, idx := range indices {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.WriteJobDir(ord+1, chunks[idx], orca, slurm); err != nil {
			return err
		}
	}

	fmt.Printf("Done. Created %d folder(s) from %d geometries.\n", len(indices), len(chunks))
	return nil
}

func validateCommon(geometryList string, n int) error {
	if geometryList == "" {
		return Usagef("--geometry-list is required")
	}
	info, err := os.Stat(geometryList)
	if err != nil || info.IsDir() {
		return Usagef("geometry list file not found: %s", geometryList)
	}
	if n <= 0 {
		return Usagef("--lines-per-geometry must be a positive integer")
	}
	return nil
}

func warnRemainder(totalLines, totalChunks, n int) {
	remainder := totalLines - totalChunks*n
	if remainder > 0 {
		log.Warn().
			Int("total_lines", totalLines).
			Int("lines_per_geometry", n).
			Msgf("ignoring last %d line(s) not forming a complete chunk", remainder)
	}
}
