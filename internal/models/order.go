package models

import "time"

type ArtifactOutcome string

type OrderState string

const (
	OutcomeSucceeded ArtifactOutcome = "SUCCEEDED"
	OutcomeFailed    ArtifactOutcome = "FAILED"

	StateAdmitted   OrderState = "ADMITTED"
	StateGenerating OrderState = "GENERATING"
	StateAssembling OrderState = "ASSEMBLING"
	StateDelivering OrderState = "DELIVERING"
	StateCompleted  OrderState = "COMPLETED"
	StateFailed     OrderState = "FAILED"

	ReasonNoArtifactsGenerated = "NoArtifactsGenerated"
	ReasonAssemblyError        = "AssemblyError"
	ReasonInternalError        = "InternalError"
)

type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

type OrderRequest struct {
	Email         string
	PetName       string
	PetDate       string
	Story         string
	Photos        []Photo
	TransactionID string
}

// Artifact is the result of one generation attempt, kept in the same position as
// the photo it came from.
type Artifact struct {
	Index   int
	Outcome ArtifactOutcome
	Image   []byte
	Err     error
}

func (a Artifact) Succeeded() bool {
	return a.Outcome == OutcomeSucceeded
}

// Successes returns the successful artifacts in input order.
func Successes(artifacts []Artifact) []Artifact {
	out := make([]Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		if a.Succeeded() {
			out = append(out, a)
		}
	}
	return out
}

// OrderRun tracks one admitted order through the pipeline.
type OrderRun struct {
	ID            string     `json:"id"`
	Key           OrderKey   `json:"key"`
	State         OrderState `json:"state"`
	Degraded      bool       `json:"degraded"`
	Reason        string     `json:"reason,omitempty"`
	WorkDir       string     `json:"-"`
	Photos        int        `json:"photos"`
	Generated     int        `json:"generated"`
	Failed        int        `json:"failed"`
	TributeError  string     `json:"tribute_error,omitempty"`
	DeliveryError string     `json:"delivery_error,omitempty"`
	AdmittedAt    time.Time  `json:"admitted_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

func (s OrderState) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}
