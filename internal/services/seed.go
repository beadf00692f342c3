package services

import (
	"context"
	"time"

	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

type seedUser struct {
	name, email string
	role        m.Role
	division    m.Division
}

var seedUsers = []seedUser{
	{"VP John", "vp@company.com", m.RoleVP, ""},
	{"Manager Mike", "manager.monitoring@company.com", m.RoleManager, m.DivisionMonitoring},
	{"Manager Sarah", "manager.infra@company.com", m.RoleManager, m.DivisionInfra},
	{"Manager Alex", "manager.ts@company.com", m.RoleManager, m.DivisionTS},
	{"SPV Tom", "spv.monitoring@company.com", m.RoleSPV, m.DivisionMonitoring},
	{"SPV Lisa", "spv.infra@company.com", m.RoleSPV, m.DivisionInfra},
	{"SPV Mark", "spv.ts@company.com", m.RoleSPV, m.DivisionTS},
	{"Staff Alice", "staff1.monitoring@company.com", m.RoleStaff, m.DivisionMonitoring},
	{"Staff Bob", "staff2.monitoring@company.com", m.RoleStaff, m.DivisionMonitoring},
	{"Staff Charlie", "staff1.infra@company.com", m.RoleStaff, m.DivisionInfra},
	{"Staff Diana", "staff2.infra@company.com", m.RoleStaff, m.DivisionInfra},
	{"Staff Eve", "staff1.ts@company.com", m.RoleStaff, m.DivisionTS},
	{"Staff Frank", "staff2.ts@company.com", m.RoleStaff, m.DivisionTS},
	{"Super Admin", "superuser@company.com", m.RoleSuperUser, ""},
}

var seedSites = []struct{ name, location, description string }{
	{"Site A - Main Office", "Jakarta", "Main office location"},
	{"Site B - Data Center", "Bali", "Primary data center"},
	{"Site C - Branch Office", "Surabaya", "Regional branch"},
}

var seedCategories = []string{"Meeting", "Survey", "Troubleshoot", "Visit", "Maintenance", "Installasi", "Others"}

// Seeder fills an empty database with demo accounts, sites and categories.
type Seeder struct {
	users      UserStore
	sites      SiteStore
	categories CategoryStore
	log        zerolog.Logger
	now        Clock
}

func NewSeeder(users UserStore, sites SiteStore, categories CategoryStore, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, sites: sites, categories: categories, log: log, now: systemClock}
}

// Run seeds only when the users collection is empty and reports whether
// it did anything.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		s.log.Info().Int64("users", n).Msg("seed: users present, skipping")
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	base := s.now()
	var vpID string
	for i, su := range seedUsers {
		u := &m.User{
			ID:            m.NewID(),
			Username:      su.name,
			Email:         su.email,
			PasswordHash:  string(hash),
			Role:          su.role,
			AccountStatus: m.AccountApproved,
			// Spread creation times so approver lookup order is stable.
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if su.division != "" {
			u.Division = m.DivisionPtr(su.division)
		}
		if err := s.users.Insert(ctx, u); err != nil {
			return false, err
		}
		if su.role == m.RoleVP {
			vpID = u.ID
		}
	}

	for _, ss := range seedSites {
		loc, desc := ss.location, ss.description
		if err := s.sites.Insert(ctx, &m.Site{
			ID:          m.NewID(),
			Name:        ss.name,
			Location:    &loc,
			Description: &desc,
			Status:      m.SiteActive,
			CreatedBy:   vpID,
			CreatedAt:   base,
		}); err != nil {
			return false, err
		}
	}

	for _, name := range seedCategories {
		if err := s.categories.Insert(ctx, &m.ActivityCategory{ID: m.NewID(), Name: name, CreatedAt: base}); err != nil {
			return false, err
		}
	}
	s.log.Info().Int("users", len(seedUsers)).Int("sites", len(seedSites)).Int("categories", len(seedCategories)).
		Msg("seed data created, login vp@company.com / " + seedPassword)
	return true, nil
}
