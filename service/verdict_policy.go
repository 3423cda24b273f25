package service

import (
	"societyhub/models"
)

// Policy names accepted by COMPLAINT_VERDICT_POLICY.
const (
	PolicyReject     = "reject"
	PolicyReputation = "reputation"
)

// VerdictOutcome tells the lifecycle engine what to do with a
// complaint after the media validator delivered a verdict.
type VerdictOutcome struct {
	// Reject aborts creation entirely; nothing is persisted and
	// RejectReason carries the validator's explanation.
	Reject       bool
	RejectReason string

	// Status is the initial status when the complaint is persisted.
	Status models.ComplaintStatus

	// ReputationDelta is applied to the author's reputation score.
	ReputationDelta int
}

// VerdictPolicy maps a validator verdict to a creation outcome. The
// policy is chosen once at composition time; the engine never branches
// on policy identity.
type VerdictPolicy interface {
	OnVerdict(verdict *MediaVerdict) VerdictOutcome
}

// NewVerdictPolicy selects a policy by configured name, defaulting to
// hard-reject for any unrecognized value.
func NewVerdictPolicy(name string, reward, penalty int) VerdictPolicy {
	if name == PolicyReputation {
		return &reputationPolicy{reward: reward, penalty: penalty}
	}
	return &rejectPolicy{}
}

// rejectPolicy: a negative verdict is a hard stop, reputation is
// never touched. A positive verdict skips manual pre-verification.
type rejectPolicy struct{}

func (p *rejectPolicy) OnVerdict(verdict *MediaVerdict) VerdictOutcome {
	if !verdict.IsValid {
		return VerdictOutcome{Reject: true, RejectReason: verdict.Reasoning}
	}
	return VerdictOutcome{Status: models.StatusOpen}
}

// reputationPolicy: complaints are always persisted and the author's
// reputation moves with the verdict. Negative verdicts land as
// REJECTED with a penalty instead of failing the request.
type reputationPolicy struct {
	reward  int
	penalty int
}

func (p *reputationPolicy) OnVerdict(verdict *MediaVerdict) VerdictOutcome {
	if !verdict.IsValid {
		return VerdictOutcome{Status: models.StatusRejected, ReputationDelta: -p.penalty}
	}
	return VerdictOutcome{Status: models.StatusOpen, ReputationDelta: p.reward}
}
