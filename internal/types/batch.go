package types

import "github.com/google/uuid"

// BatchSkip records an item dropped from a batch with the reason it was
// dropped (e.g. an assignment that already existed).
type BatchSkip struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// BatchFailure records an item whose writes failed. Sibling items are
// unaffected; batch operations are partial-success by contract.
type BatchFailure struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

// BatchResult is the summary every batch operation returns instead of a
// single pass/fail.
type BatchResult[T any] struct {
	Succeeded []T            `json:"succeeded"`
	Skipped   []BatchSkip    `json:"skipped"`
	Failed    []BatchFailure `json:"failed"`
}

func (r *BatchResult[T]) AddSkip(id uuid.UUID, reason string) {
	r.Skipped = append(r.Skipped, BatchSkip{ID: id, Reason: reason})
}

func (r *BatchResult[T]) AddFailure(id uuid.UUID, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.Failed = append(r.Failed, BatchFailure{ID: id, Error: msg})
}
