package ports

// DebugSink abstracts debug output for intermediate results.
// It allows saving resolved capture plans and outcomes for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveCaptureJSON saves the resolved options and outcome of one capture.
	// name identifies the capture and is used as the file stem.
	SaveCaptureJSON(name string, data []byte) error

	// SaveBatchJSON saves the aggregated batch report.
	SaveBatchJSON(data []byte) error
}
