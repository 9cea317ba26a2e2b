package api

// v0 contains public types describing a prepared batch.

type BatchSpec struct {
	GeometryList     string `json:"geometry_list" yaml:"geometry_list"`
	LinesPerGeometry int    `json:"lines_per_geometry" yaml:"lines_per_geometry"`
	TotalLines       int    `json:"total_lines" yaml:"total_lines"`
	TotalChunks      int    `json:"total_chunks" yaml:"total_chunks"`
	IgnoredLines     int    `json:"ignored_lines" yaml:"ignored_lines"`
}

// JobDir maps a created folder back to its source chunk.
type JobDir struct {
	Ordinal    int    `json:"ordinal" yaml:"ordinal"`
	ChunkIndex int    `json:"chunk_index" yaml:"chunk_index"`
	Path       string `json:"path" yaml:"path"`
}

// Manifest is written as batch.yaml into the output root when requested.
type Manifest struct {
	Batch     BatchSpec `json:"batch" yaml:"batch"`
	Jobs      []JobDir  `json:"jobs" yaml:"jobs"`
	CreatedAt string    `json:"created_at" yaml:"created_at"`
}
