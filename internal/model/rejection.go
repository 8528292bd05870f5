package model

import "strings"

type RejectionReason string

const (
	RejectionReasonDuplicate            RejectionReason = "Duplicate"
	RejectionReasonInsufficientEvidence RejectionReason = "InsufficientEvidence"
	RejectionReasonNotInJurisdiction    RejectionReason = "NotInJurisdiction"
	RejectionReasonInvalidComplaint     RejectionReason = "InvalidComplaint"
	RejectionReasonAlreadyResolved      RejectionReason = "AlreadyResolved"
	RejectionReasonOther                RejectionReason = "Other"
)

var rejectionReasons = []RejectionReason{
	RejectionReasonDuplicate,
	RejectionReasonInsufficientEvidence,
	RejectionReasonNotInJurisdiction,
	RejectionReasonInvalidComplaint,
	RejectionReasonAlreadyResolved,
	RejectionReasonOther,
}

// ParseRejectionReason matches a reason code case-insensitively.
func ParseRejectionReason(raw string) (RejectionReason, bool) {
	raw = strings.TrimSpace(raw)
	for _, reason := range rejectionReasons {
		if strings.EqualFold(string(reason), raw) {
			return reason, true
		}
	}
	return "", false
}
