package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields propagated through the call chain.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldJobID is the render job ID
	FieldJobID = "job_id"

	// FieldProjectID is the owning project ID
	FieldProjectID = "project_id"

	// FieldStage is the pipeline stage a job is in
	FieldStage = "stage"

	// FieldComponent is the component/module name
	FieldComponent = "component"
)

// Standard metric fields used for aggregation and alerting.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldStatus is an HTTP or job status value
	FieldStatus = "status"

	// FieldSize is the data size in bytes
	FieldSize = "size"
)
