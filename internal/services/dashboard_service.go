package services

import (
	"context"

	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
)

type Dashboard struct {
	SchedulesToday      []m.Schedule           `json:"schedules_today"`
	PendingApprovals    []m.Report             `json:"pending_approvals"`
	OpenTickets         []m.Ticket             `json:"open_tickets"`
	PendingAccounts     []m.User               `json:"pending_accounts"`
	PendingShiftChanges []m.ShiftChangeRequest `json:"pending_shift_changes"`
}

type DashboardService struct {
	schedules ScheduleStore
	reports   ReportStore
	tickets   TicketStore
	accounts  *AccountService
	shifts    *ShiftChangeService
	now       Clock
}

func NewDashboardService(schedules ScheduleStore, reports ReportStore, tickets TicketStore,
	accounts *AccountService, shifts *ShiftChangeService) *DashboardService {
	return &DashboardService{
		schedules: schedules,
		reports:   reports,
		tickets:   tickets,
		accounts:  accounts,
		shifts:    shifts,
		now:       systemClock,
	}
}

// Get assembles the actor's landing page. Sections the role has no use
// for come back empty.
func (s *DashboardService) Get(ctx context.Context, actor m.Actor) (*Dashboard, error) {
	d := &Dashboard{
		SchedulesToday:      []m.Schedule{},
		PendingApprovals:    []m.Report{},
		OpenTickets:         []m.Ticket{},
		PendingAccounts:     []m.User{},
		PendingShiftChanges: []m.ShiftChangeRequest{},
	}

	from, to := dayBounds(s.now())
	mine, err := s.schedules.Find(ctx, repo.ScheduleFilter{UserID: actor.ID, StartTo: &to})
	if err != nil {
		return nil, err
	}
	for _, sch := range mine {
		if !sch.EndDate.Before(from) {
			d.SchedulesToday = append(d.SchedulesToday, sch)
		}
	}

	switch actor.Role {
	case m.RoleSPV, m.RoleManager, m.RoleVP:
		if d.PendingApprovals, err = s.reports.Find(ctx, repo.ReportFilter{CurrentApprover: actor.ID}); err != nil {
			return nil, err
		}
	}
	if actor.Role != m.RoleManager && actor.Role != m.RoleVP {
		return d, nil
	}

	tf := repo.TicketFilter{OpenOnly: true}
	if actor.Role == m.RoleManager {
		if actor.Division == nil {
			return d, nil
		}
		tf.Division = *actor.Division
	}
	if d.OpenTickets, err = s.tickets.Find(ctx, tf); err != nil {
		return nil, err
	}
	if d.PendingAccounts, err = s.accounts.ListPending(ctx, actor); err != nil {
		return nil, err
	}
	if d.PendingShiftChanges, err = s.shifts.List(ctx, actor); err != nil {
		return nil, err
	}
	return d, nil
}
