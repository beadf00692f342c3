package services

import (
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
)

type DenyReason string

const (
	DenyWrongRole           DenyReason = "wrong_role"
	DenyWrongDivision       DenyReason = "wrong_division"
	DenyMonitoringDivision  DenyReason = "monitoring_division"
	DenyNotCurrentApprover  DenyReason = "not_current_approver"
	DenyPeerManager         DenyReason = "peer_manager"
	DenyNotOwner            DenyReason = "not_owner"
	DenySelf                DenyReason = "self"
	DenyStatusNotActionable DenyReason = "status_not_actionable"
)

var denyMessages = map[DenyReason]string{
	DenyWrongRole:           "your role may not perform this action",
	DenyWrongDivision:       "wrong division",
	DenyMonitoringDivision:  "Monitoring division cannot manage schedules",
	DenyNotCurrentApprover:  "not current approver",
	DenyPeerManager:         "managers cannot review other manager accounts",
	DenyNotOwner:            "you can only act on your own records",
	DenySelf:                "you cannot perform this action on yourself",
	DenyStatusNotActionable: "entity is not in an actionable state",
}

// Decision is the result of an authorization check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision            { return Decision{Allowed: true} }
func deny(r DenyReason) Decision { return Decision{Reason: r} }

// Err converts a denial into a Forbidden error, nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperr.Forbidden(string(d.Reason), denyMessages[d.Reason])
}

type ScheduleOp string

const (
	OpCreate ScheduleOp = "create"
	OpEdit   ScheduleOp = "edit"
	OpDelete ScheduleOp = "delete"
)

// ScheduleTarget is the part of a schedule the authorizer looks at. For
// OpCreate, Division is the division of the user being scheduled.
type ScheduleTarget struct {
	Division  *m.Division
	CreatedBy string
}

// CanManageSchedule decides create/edit/delete on a schedule. The creator
// of an existing schedule is always allowed.
func CanManageSchedule(actor m.Actor, target ScheduleTarget, op ScheduleOp) Decision {
	if op != OpCreate && target.CreatedBy != "" && target.CreatedBy == actor.ID {
		return allow()
	}
	switch actor.Role {
	case m.RoleVP, m.RoleManager, m.RoleSPV:
	default:
		return deny(DenyWrongRole)
	}
	if actor.Division != nil && *actor.Division == m.DivisionMonitoring {
		return deny(DenyMonitoringDivision)
	}
	if actor.Role == m.RoleVP {
		return allow()
	}
	if !inScope(actor.Division, target.Division) {
		return deny(DenyWrongDivision)
	}
	return allow()
}

// CanReviewAccount decides whether actor may see and approve target's account.
func CanReviewAccount(actor m.Actor, target *m.User) Decision {
	switch actor.Role {
	case m.RoleVP:
		return allow()
	case m.RoleManager:
		if target.Role == m.RoleManager {
			return deny(DenyPeerManager)
		}
		if !inScope(actor.Division, target.Division) {
			return deny(DenyWrongDivision)
		}
		return allow()
	}
	return deny(DenyWrongRole)
}

// CanApproveReport decides approve/revisi on a report. submitterDivision is
// the division of the report's original submitter.
func CanApproveReport(actor m.Actor, report *m.Report, submitterDivision *m.Division) Decision {
	if actor.Role == m.RoleVP {
		return allow()
	}
	if actor.Role == m.RoleManager &&
		(report.Status == m.ReportPendingSPV || report.Status == m.ReportPendingManager) {
		if sameDivision(actor.Division, routed(submitterDivision)) {
			return allow()
		}
		if !report.IsApprover(actor.ID) {
			return deny(DenyWrongDivision)
		}
	}
	if report.IsApprover(actor.ID) {
		return allow()
	}
	return deny(DenyNotCurrentApprover)
}

// ShiftScope selects how a Manager's division is matched against a
// schedule's division when reviewing shift changes.
type ShiftScope string

const (
	// ShiftScopeExact requires the manager's division to equal the
	// schedule's division. Sub-division schedules are VP-only.
	ShiftScopeExact ShiftScope = "exact"
	// ShiftScopeRouted lets TS review Apps and Infra review Fiberzone,
	// like every other division check.
	ShiftScopeRouted ShiftScope = "routed"
)

func ParseShiftScope(s string) ShiftScope {
	if ShiftScope(s) == ShiftScopeRouted {
		return ShiftScopeRouted
	}
	return ShiftScopeExact
}

func (p ShiftScope) covers(actor, target *m.Division) bool {
	if p == ShiftScopeRouted {
		return inScope(actor, target)
	}
	return sameDivision(actor, target)
}

// CanReviewShiftChange decides review rights on a shift change for the
// schedule it targets.
func CanReviewShiftChange(actor m.Actor, schedule *m.Schedule, policy ShiftScope) Decision {
	switch actor.Role {
	case m.RoleVP:
		return allow()
	case m.RoleManager:
		if !policy.covers(actor.Division, schedule.Division) {
			return deny(DenyWrongDivision)
		}
		return allow()
	}
	return deny(DenyWrongRole)
}

// CanRequestShiftChange allows only the schedule's owner.
func CanRequestShiftChange(actor m.Actor, schedule *m.Schedule) Decision {
	if schedule.UserID != actor.ID {
		return deny(DenyNotOwner)
	}
	return allow()
}

// CanRecordActivity allows only the schedule's owner to log actions and
// progress against it.
func CanRecordActivity(actor m.Actor, ownerID string) Decision {
	if ownerID != actor.ID {
		return deny(DenyNotOwner)
	}
	return allow()
}

func CanEditReport(actor m.Actor, report *m.Report) Decision {
	if report.SubmittedBy != actor.ID {
		return deny(DenyNotOwner)
	}
	return allow()
}

func CanDeleteReport(actor m.Actor, report *m.Report) Decision {
	if report.SubmittedBy == actor.ID || actor.Role == m.RoleSuperUser || actor.Role == m.RoleAdmin {
		return allow()
	}
	return deny(DenyNotOwner)
}

func CanManageCategories(actor m.Actor) Decision {
	if actor.Role != m.RoleSuperUser {
		return deny(DenyWrongRole)
	}
	return allow()
}

func CanDeleteUser(actor m.Actor, targetID string) Decision {
	if actor.Role != m.RoleSuperUser {
		return deny(DenyWrongRole)
	}
	if actor.ID == targetID {
		return deny(DenySelf)
	}
	return allow()
}
