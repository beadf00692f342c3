package services

import (
	"context"
	"strings"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
)

const DefaultEmailDomain = "@varnion.net.id"

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     m.Role
	Division *m.Division
}

type ProfileUpdate struct {
	Username        string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

type AccountService struct {
	users       UserStore
	notifier    Notifier
	tokens      *TokenIssuer
	emailDomain string
	log         zerolog.Logger
	now         Clock
}

func NewAccountService(users UserStore, notifier Notifier, tokens *TokenIssuer, emailDomain string, log zerolog.Logger) *AccountService {
	if emailDomain == "" {
		emailDomain = DefaultEmailDomain
	}
	return &AccountService{
		users:       users,
		notifier:    notifier,
		tokens:      tokens,
		emailDomain: strings.ToLower(emailDomain),
		log:         log,
		now:         systemClock,
	}
}

// InitialAccountStatus is pending for Staff and Manager; other roles are
// active immediately.
func InitialAccountStatus(r m.Role) m.AccountStatus {
	switch r {
	case m.RoleStaff, m.RoleManager:
		return m.AccountPending
	}
	return m.AccountApproved
}

func (s *AccountService) validateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.Username) == "" {
		return apperr.Validation("username", "username is required")
	}
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(in.Email)), s.emailDomain) {
		return apperr.Validation("email", "email must be a "+s.emailDomain+" address")
	}
	if in.Password == "" {
		return apperr.Validation("password", "password is required")
	}
	if !in.Role.Valid() {
		return apperr.Validation("role", "invalid role")
	}
	if in.Division == nil {
		switch in.Role {
		case m.RoleStaff, m.RoleSPV, m.RoleManager:
			return apperr.Validation("division", "division is required for "+string(in.Role))
		}
		return nil
	}
	if !in.Division.Valid() {
		return apperr.Validation("division", "invalid division")
	}
	if in.Division.IsSubDivision() && in.Role != m.RoleStaff {
		return apperr.Validation("division", string(*in.Division)+" division is only available for Staff")
	}
	return nil
}

// Register validates and stores a new account, then asks the right
// reviewer to look at it when it starts out pending.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (_ *m.User, err error) {
	ctx, span := startSpan(ctx, "account.register", attribute.String("role", string(in.Role)))
	defer func() { endSpan(span, err) }()

	if err := s.validateRegistration(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(err, "hash password")
	}
	u := &m.User{
		ID:            m.NewID(),
		Username:      strings.TrimSpace(in.Username),
		Email:         email,
		PasswordHash:  string(hash),
		Role:          in.Role,
		Division:      in.Division,
		AccountStatus: InitialAccountStatus(in.Role),
		CreatedAt:     s.now(),
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Str("status", string(u.AccountStatus)).Msg("account registered")

	if u.AccountStatus == m.AccountPending {
		s.notifyReviewer(ctx, u)
	}
	return u, nil
}

func (s *AccountService) notifyReviewer(ctx context.Context, u *m.User) {
	var (
		reviewer *m.User
		err      error
		kind     NotiKind
	)
	switch u.Role {
	case m.RoleStaff:
		reviewer, err = s.users.FindApprover(ctx, m.RoleManager, routed(u.Division))
		kind = NotiStaffRegistered
	case m.RoleManager:
		reviewer, err = s.users.FindApprover(ctx, m.RoleVP, nil)
		kind = NotiManagerRegistered
	default:
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", u.ID).Msg("account: reviewer lookup failed")
		return
	}
	if reviewer == nil {
		s.log.Warn().Str("user_id", u.ID).Msg("account: no reviewer available")
		return
	}
	s.notifier.Notify(ctx, reviewer.ID, kind, m.NotiParams{
		ActorName: u.Username,
		Division:  string(u.DivisionOrEmpty()),
	}, u.ID)
}

// Login checks credentials and account status and returns a signed token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *m.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if apperr.Is(err, apperr.KindNotFound) {
		return "", nil, apperr.Unauthorized("invalid email or password")
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, apperr.Unauthorized("invalid email or password")
	}
	switch u.AccountStatus {
	case m.AccountPending:
		return "", nil, apperr.Forbidden("account_pending", "your account is pending approval")
	case m.AccountRejected:
		return "", nil, apperr.Forbidden("account_rejected", "your account has been rejected")
	case m.AccountApproved:
	}
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return "", nil, apperr.Wrap(err, "sign token")
	}
	return tok, u, nil
}

func (s *AccountService) Me(ctx context.Context, actor m.Actor) (*m.User, error) {
	return s.users.Get(ctx, actor.ID)
}

// UpdateProfile changes username and/or password. Only a password change
// needs the current password.
func (s *AccountService) UpdateProfile(ctx context.Context, actor m.Actor, in ProfileUpdate) (*m.User, error) {
	u, err := s.users.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if name := strings.TrimSpace(in.Username); name != "" && name != u.Username {
		set["username"] = name
	}
	if in.NewPassword != "" {
		if in.NewPassword != in.ConfirmPassword {
			return nil, apperr.Validation("confirm_password", "new password and confirmation do not match")
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)) != nil {
			return nil, apperr.Validation("current_password", "current password is incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(err, "hash password")
		}
		set["password_hash"] = string(hash)
	}
	if len(set) == 0 {
		return u, nil
	}
	if err := s.users.UpdateFields(ctx, u.ID, set); err != nil {
		return nil, err
	}
	return s.users.Get(ctx, u.ID)
}

// UpdatePhoto stores the photo as a data URL on the user record.
func (s *AccountService) UpdatePhoto(ctx context.Context, actor m.Actor, dataURL string) error {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return apperr.Validation("file", "profile photo must be an image")
	}
	return s.users.UpdateFields(ctx, actor.ID, bson.M{"profile_photo": dataURL})
}

// ListPending returns the pending accounts actor may review.
func (s *AccountService) ListPending(ctx context.Context, actor m.Actor) ([]m.User, error) {
	switch actor.Role {
	case m.RoleVP:
		return s.users.Find(ctx, repo.UserFilter{Status: m.AccountPending})
	case m.RoleManager:
		if actor.Division == nil {
			return []m.User{}, nil
		}
		return s.users.Find(ctx, repo.UserFilter{
			Status:      m.AccountPending,
			Divisions:   ScopeDivisions(*actor.Division),
			ExcludeRole: m.RoleManager,
		})
	}
	return nil, deny(DenyWrongRole).Err()
}

// Review approves or rejects a pending account.
func (s *AccountService) Review(ctx context.Context, actor m.Actor, userID string, action m.ReviewAction) (_ *m.User, err error) {
	ctx, span := startSpan(ctx, "account.review",
		attribute.String("user_id", userID), attribute.String("action", string(action)))
	defer func() { endSpan(span, err) }()

	if !action.Valid() {
		return nil, apperr.Validation("action", "action must be approve or reject")
	}
	target, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := CanReviewAccount(actor, target).Err(); err != nil {
		return nil, err
	}
	if target.AccountStatus != m.AccountPending {
		return nil, apperr.Conflict("account is already " + string(target.AccountStatus))
	}

	status := m.AccountRejected
	if action == m.ReviewApprove {
		status = m.AccountApproved
	}
	if err := s.users.SetStatusIfPending(ctx, target.ID, status, actor.ID); err != nil {
		return nil, err
	}
	target.AccountStatus = status
	target.ReviewedBy = &actor.ID
	s.log.Info().Str("user_id", target.ID).Str("reviewer", actor.ID).Str("status", string(status)).Msg("account reviewed")

	s.notifier.Notify(ctx, target.ID, NotiAccountReviewed, m.NotiParams{
		ActorName: actor.Name,
		Status:    string(status),
	}, "")
	return target, nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]m.User, error) {
	return s.users.Find(ctx, repo.UserFilter{Status: m.AccountApproved})
}

func (s *AccountService) ListByDivision(ctx context.Context, d m.Division) ([]m.User, error) {
	if !d.Valid() {
		return nil, apperr.Validation("division", "invalid division")
	}
	return s.users.Find(ctx, repo.UserFilter{Status: m.AccountApproved, Divisions: []m.Division{d}})
}

func (s *AccountService) DeleteUser(ctx context.Context, actor m.Actor, id string) error {
	if err := CanDeleteUser(actor, id).Err(); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("by", actor.ID).Msg("user deleted")
	return nil
}
