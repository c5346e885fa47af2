package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus enumerates the states of an enrollment request.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pendente"
	EnrollmentApproved EnrollmentStatus = "aprovado"
	EnrollmentRejected EnrollmentStatus = "rejeitado"
)

// IsDecision reports whether the status is one an administrator may set.
// A decided enrollment can be re-decided (administrators may correct a
// rejection), but nothing moves back to pendente.
func (s EnrollmentStatus) IsDecision() bool {
	return s == EnrollmentApproved || s == EnrollmentRejected
}

// Enrollment links a user to a course. At most one enrollment exists per
// (user, course) pair, whatever its status.
type Enrollment struct {
	ID        uuid.UUID        `json:"_id"`
	UserID    int              `json:"userId"`
	CourseID  uuid.UUID        `json:"cursoId"`
	Status    EnrollmentStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`

	// Resolved summaries, filled by the listing queries that need them.
	User   *UserSummary   `json:"user,omitempty"`
	Course *CourseSummary `json:"curso,omitempty"`
}

// CreateEnrollmentRequest is the payload for requesting enrollment.
// The user identity comes from the caller's claims, not the body.
type CreateEnrollmentRequest struct {
	CourseID uuid.UUID `json:"cursoId" binding:"required"`
}

// SetEnrollmentStatusRequest is the payload for deciding a request.
type SetEnrollmentStatusRequest struct {
	Status EnrollmentStatus `json:"status" binding:"required,oneof=aprovado rejeitado"`
}
