package models

type Role string

const (
	RoleSuperUser Role = "SuperUser"
	RoleVP        Role = "VP"
	RoleManager   Role = "Manager"
	RoleSPV       Role = "SPV"
	RoleStaff     Role = "Staff"
	// RoleAdmin is never assignable at registration; it only matters for
	// report deletion on legacy records.
	RoleAdmin Role = "Admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperUser, RoleVP, RoleManager, RoleSPV, RoleStaff:
		return true
	}
	return false
}

type Division string

const (
	DivisionMonitoring Division = "Monitoring"
	DivisionInfra      Division = "Infra"
	DivisionTS         Division = "TS"
	DivisionApps       Division = "Apps"
	DivisionFiberzone  Division = "Fiberzone"
)

var Divisions = []Division{DivisionMonitoring, DivisionInfra, DivisionTS, DivisionApps, DivisionFiberzone}

func (d Division) Valid() bool {
	switch d {
	case DivisionMonitoring, DivisionInfra, DivisionTS, DivisionApps, DivisionFiberzone:
		return true
	}
	return false
}

// IsSubDivision reports whether d routes through a parent division.
func (d Division) IsSubDivision() bool {
	return d == DivisionApps || d == DivisionFiberzone
}

func DivisionPtr(d Division) *Division { return &d }

type AccountStatus string

const (
	AccountPending  AccountStatus = "pending"
	AccountApproved AccountStatus = "approved"
	AccountRejected AccountStatus = "rejected"
)

type ReportStatus string

const (
	ReportPendingSPV     ReportStatus = "Pending SPV"
	ReportPendingManager ReportStatus = "Pending Manager"
	ReportPendingVP      ReportStatus = "Pending VP"
	ReportFinal          ReportStatus = "Final"
	ReportRevisi         ReportStatus = "Revisi"
)

func (s ReportStatus) Pending() bool {
	switch s {
	case ReportPendingSPV, ReportPendingManager, ReportPendingVP:
		return true
	case ReportFinal, ReportRevisi:
		return false
	}
	return false
}

// PendingStatusFor maps an approver role to the status a report waits in.
func PendingStatusFor(r Role) (ReportStatus, bool) {
	switch r {
	case RoleSPV:
		return ReportPendingSPV, true
	case RoleManager:
		return ReportPendingManager, true
	case RoleVP:
		return ReportPendingVP, true
	}
	return "", false
}

type ShiftChangeStatus string

const (
	ShiftChangePending  ShiftChangeStatus = "pending"
	ShiftChangeApproved ShiftChangeStatus = "approved"
	ShiftChangeRejected ShiftChangeStatus = "rejected"
)

// ReviewAction is the reviewer's verdict on a pending account or shift change.
type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewReject  ReviewAction = "reject"
)

func (a ReviewAction) Valid() bool { return a == ReviewApprove || a == ReviewReject }

type ActivityAction string

const (
	ActionStart   ActivityAction = "start"
	ActionFinish  ActivityAction = "finish"
	ActionCancel  ActivityAction = "cancel"
	ActionHold    ActivityAction = "hold"
	ActionRestore ActivityAction = "restore"
)

type ActivityStatus string

const (
	ActivityPending    ActivityStatus = "Pending"
	ActivityInProgress ActivityStatus = "In Progress"
	ActivityFinished   ActivityStatus = "Finished"
	ActivityCancelled  ActivityStatus = "Cancelled"
	ActivityOnHold     ActivityStatus = "On Hold"
)

// Status returns the status an action leads to.
func (a ActivityAction) Status() (ActivityStatus, bool) {
	switch a {
	case ActionStart:
		return ActivityInProgress, true
	case ActionFinish:
		return ActivityFinished, true
	case ActionCancel:
		return ActivityCancelled, true
	case ActionHold:
		return ActivityOnHold, true
	case ActionRestore:
		return ActivityPending, true
	}
	return "", false
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketInProgress TicketStatus = "In Progress"
	TicketClosed     TicketStatus = "Closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketClosed:
		return true
	}
	return false
}

type SiteStatus string

const (
	SiteActive   SiteStatus = "active"
	SiteInactive SiteStatus = "inactive"
)
