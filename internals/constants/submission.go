package constants

import "strings"

// Jenis pengajuan proposal
const (
	SubmissionRegular   = "REGULAR"
	SubmissionFastTrack = "FAST_TRACK"
)

// Status submission (PENDING → ACCEPTED | REJECTED, final)
const (
	SubmissionPending  = "PENDING"
	SubmissionAccepted = "ACCEPTED"
	SubmissionRejected = "REJECTED"
)

// Status payment (PENDING → PAID | FAILED)
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentFailed  = "FAILED"
)

// NormalizeSubmissionType: "fast-track" / "fast_track" → FAST_TRACK.
// Return "" kalau tidak dikenal.
func NormalizeSubmissionType(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	switch s {
	case SubmissionRegular, SubmissionFastTrack:
		return s
	case "FASTTRACK":
		return SubmissionFastTrack
	}
	return ""
}

// NormalizeDecision: status ACCEPTED/REJECTED atau decision ACCEPT/REJECT → status.
func NormalizeDecision(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case SubmissionAccepted, "ACCEPT":
		return SubmissionAccepted
	case SubmissionRejected, "REJECT":
		return SubmissionRejected
	}
	return ""
}
