package domain

import "fmt"

// JobStatus represents a stage in the render job pipeline.
// A job moves forward one stage at a time; every running stage may also
// drop into JobStatusFailed. Terminal statuses have no successors.
type JobStatus string

const (
	JobStatusQueued              JobStatus = "queued"
	JobStatusRunningValidation   JobStatus = "running_validation"
	JobStatusRunningOutline      JobStatus = "running_outline"
	JobStatusRunningScript       JobStatus = "running_script"
	JobStatusRunningSlides       JobStatus = "running_slides"
	JobStatusRunningTTS          JobStatus = "running_tts"
	JobStatusRunningRender       JobStatus = "running_render"
	JobStatusRunningQualityCheck JobStatus = "running_quality_check"
	JobStatusAwaitingApproval    JobStatus = "awaiting_approval"
	JobStatusApproved            JobStatus = "approved"
	JobStatusRejected            JobStatus = "rejected"
	JobStatusFailed              JobStatus = "failed"
)

// AllStatuses lists every defined status. Used by the exhaustiveness check
// below and by tests that sweep the whole transition space.
var AllStatuses = []JobStatus{
	JobStatusQueued,
	JobStatusRunningValidation,
	JobStatusRunningOutline,
	JobStatusRunningScript,
	JobStatusRunningSlides,
	JobStatusRunningTTS,
	JobStatusRunningRender,
	JobStatusRunningQualityCheck,
	JobStatusAwaitingApproval,
	JobStatusApproved,
	JobStatusRejected,
	JobStatusFailed,
}

// RenderPath is the ordered sequence of stages the orchestrator walks for a
// successful render, starting from the first stage after queued.
var RenderPath = []JobStatus{
	JobStatusRunningValidation,
	JobStatusRunningOutline,
	JobStatusRunningScript,
	JobStatusRunningSlides,
	JobStatusRunningTTS,
	JobStatusRunningRender,
	JobStatusRunningQualityCheck,
	JobStatusAwaitingApproval,
}

// transitions maps each status to its legal successor set. Self-loops are
// never legal, terminal statuses map to the empty set.
var transitions = map[JobStatus][]JobStatus{
	JobStatusQueued:              {JobStatusRunningValidation, JobStatusFailed},
	JobStatusRunningValidation:   {JobStatusRunningOutline, JobStatusFailed},
	JobStatusRunningOutline:      {JobStatusRunningScript, JobStatusFailed},
	JobStatusRunningScript:       {JobStatusRunningSlides, JobStatusFailed},
	JobStatusRunningSlides:       {JobStatusRunningTTS, JobStatusFailed},
	JobStatusRunningTTS:          {JobStatusRunningRender, JobStatusFailed},
	JobStatusRunningRender:       {JobStatusRunningQualityCheck, JobStatusFailed},
	JobStatusRunningQualityCheck: {JobStatusAwaitingApproval, JobStatusFailed},
	JobStatusAwaitingApproval:    {JobStatusApproved, JobStatusRejected},
	JobStatusApproved:            {},
	JobStatusRejected:            {},
	JobStatusFailed:              {},
}

// stageOrdinal is the 1-based position of each pipeline stage; approved sits
// at the end of the pipeline. Statuses outside the success path report 0.
var stageOrdinal = map[JobStatus]int{
	JobStatusQueued:              0,
	JobStatusRunningValidation:   1,
	JobStatusRunningOutline:      2,
	JobStatusRunningScript:       3,
	JobStatusRunningSlides:       4,
	JobStatusRunningTTS:          5,
	JobStatusRunningRender:       6,
	JobStatusRunningQualityCheck: 7,
	JobStatusAwaitingApproval:    8,
	JobStatusApproved:            9,
	JobStatusRejected:            0,
	JobStatusFailed:              0,
}

func init() {
	// A status added without a declared successor set or progress value is a
	// programming error; fail loudly at startup rather than at transition time.
	for _, s := range AllStatuses {
		if _, ok := transitions[s]; !ok {
			panic(fmt.Sprintf("domain: status %q has no transition entry", s))
		}
		if _, ok := stageOrdinal[s]; !ok {
			panic(fmt.Sprintf("domain: status %q has no progress entry", s))
		}
	}
}

// IsValid reports whether s is a member of the defined status enum.
func (s JobStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether s has an empty successor set.
func (s JobStatus) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// CanTransition reports whether target is in the successor set of current.
// It holds no state and is safe for concurrent use.
func CanTransition(current, target JobStatus) bool {
	for _, next := range transitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

// ProgressForStatus maps a status to its caller-visible progress indicator:
// the stage's position in the pipeline, strictly increasing along the success
// path. Failed, rejected, and queued report 0.
func ProgressForStatus(status JobStatus) int {
	return stageOrdinal[status]
}
