package services

import (
	"strings"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
)

type ReportAction string

const (
	ReportApprove ReportAction = "approve"
	ReportRevisi  ReportAction = "revisi"
)

// NextApprover names who becomes responsible after a transition.
type NextApprover int

const (
	ApproverUnchanged NextApprover = iota
	ApproverNone
	ApproverVP
	// ApproverDivisionManager is the Manager of the submitter's routed division.
	ApproverDivisionManager
)

// Transition is the outcome of Advance. NotifySubmitter is set when the
// submitter, rather than the next approver, has to hear about it.
type Transition struct {
	Next            m.ReportStatus
	Approver        NextApprover
	NotifySubmitter bool
}

// Advance computes the approval transition for an authorized actor. It
// holds no authorization logic: callers check CanApproveReport first.
func Advance(status m.ReportStatus, actorRole m.Role, action ReportAction, comment string) (Transition, error) {
	if !status.Pending() {
		return Transition{}, apperr.Conflict("report is " + string(status) + " and cannot be reviewed")
	}

	switch action {
	case ReportRevisi:
		if strings.TrimSpace(comment) == "" {
			return Transition{}, apperr.Validation("comment", "comment is required for revisi")
		}
		return Transition{Next: m.ReportRevisi, Approver: ApproverUnchanged, NotifySubmitter: true}, nil
	case ReportApprove:
	default:
		return Transition{}, apperr.Validation("action", "action must be approve or revisi")
	}

	// VP short-circuits every pending stage.
	if actorRole == m.RoleVP {
		return Transition{Next: m.ReportFinal, Approver: ApproverNone, NotifySubmitter: true}, nil
	}

	switch status {
	case m.ReportPendingSPV:
		if actorRole == m.RoleManager {
			return Transition{Next: m.ReportPendingVP, Approver: ApproverVP}, nil
		}
		return Transition{Next: m.ReportPendingManager, Approver: ApproverDivisionManager}, nil
	case m.ReportPendingManager:
		return Transition{Next: m.ReportPendingVP, Approver: ApproverVP}, nil
	case m.ReportPendingVP:
		return Transition{Next: m.ReportFinal, Approver: ApproverNone, NotifySubmitter: true}, nil
	case m.ReportFinal, m.ReportRevisi:
	}
	return Transition{}, apperr.Conflict("report is " + string(status) + " and cannot be reviewed")
}

// entryChain is the order in which a resubmitted report looks for its
// first approver.
var entryChain = []m.Role{m.RoleSPV, m.RoleManager, m.RoleVP}

// InitialRoute returns the entry status and approver role for a new report
// created by a user with role creator.
func InitialRoute(creator m.Role) (m.ReportStatus, m.Role) {
	if creator == m.RoleStaff {
		return m.ReportPendingSPV, m.RoleSPV
	}
	return m.ReportPendingManager, m.RoleManager
}
