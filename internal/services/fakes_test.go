package services

import (
	"bytes"
	"context"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// table is an in-memory collection. Rows are stored as bson so reads hand
// out independent copies and $set maps apply the same way Mongo does.
type table[T any] struct {
	mu     sync.Mutex
	entity string
	order  []string
	rows   map[string][]byte
}

func newTable[T any](entity string) *table[T] {
	return &table[T]{entity: entity, rows: map[string][]byte{}}
}

func mustMarshal(v any) []byte {
	b, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func decode[T any](b []byte) *T {
	var out T
	if err := bson.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return &out
}

func (t *table[T]) insert(id string, v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return apperr.Conflict(t.entity + " already exists")
	}
	t.order = append(t.order, id)
	t.rows[id] = mustMarshal(v)
	return nil
}

func (t *table[T]) get(id string) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.rows[id]
	if !ok {
		return nil, apperr.NotFound(t.entity, id)
	}
	return decode[T](b), nil
}

func (t *table[T]) all() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *decode[T](t.rows[id]))
	}
	return out
}

func (t *table[T]) filter(keep func(*T) bool) []T {
	out := []T{}
	for _, v := range t.all() {
		if keep(&v) {
			out = append(out, v)
		}
	}
	return out
}

// update applies set when cond accepts the current row. A missing row is
// NotFound; a rejected cond is Conflict, like a conditional UpdateOne.
func (t *table[T]) update(id string, cond func(*T) bool, set bson.M, inc map[string]int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.rows[id]
	if !ok {
		return apperr.NotFound(t.entity, id)
	}
	if cond != nil && !cond(decode[T](b)) {
		return apperr.Conflict(t.entity + " was modified by another request")
	}
	doc := bson.M{}
	if err := bson.Unmarshal(b, &doc); err != nil {
		panic(err)
	}
	for k, v := range set {
		doc[k] = v
	}
	for k, n := range inc {
		switch cur := doc[k].(type) {
		case int32:
			doc[k] = cur + int32(n)
		case int64:
			doc[k] = cur + int64(n)
		}
	}
	t.rows[id] = mustMarshal(doc)
	return nil
}

func (t *table[T]) mutate(id string, fn func(*T)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.rows[id]
	if !ok {
		return apperr.NotFound(t.entity, id)
	}
	v := decode[T](b)
	fn(v)
	t.rows[id] = mustMarshal(v)
	return nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return apperr.NotFound(t.entity, id)
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return nil
}

func divisionIn(d *m.Division, ds []m.Division) bool {
	return d != nil && slices.Contains(ds, *d)
}

func sameStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ---- users ----

type fakeUsers struct{ *table[m.User] }

func newFakeUsers(users ...*m.User) *fakeUsers {
	f := &fakeUsers{newTable[m.User]("user")}
	for _, u := range users {
		_ = f.Insert(context.Background(), u)
	}
	return f
}

func (f *fakeUsers) Get(_ context.Context, id string) (*m.User, error) { return f.get(id) }

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*m.User, error) {
	for _, u := range f.all() {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user", email)
}

func (f *fakeUsers) FindApprover(_ context.Context, role m.Role, division *m.Division) (*m.User, error) {
	matches := f.filter(func(u *m.User) bool {
		return u.Role == role && u.AccountStatus == m.AccountApproved &&
			(division == nil || sameDivision(u.Division, division))
	})
	if len(matches) == 0 {
		return nil, nil
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].CreatedAt.Before(matches[j].CreatedAt) })
	return &matches[0], nil
}

func (f *fakeUsers) Find(_ context.Context, q repo.UserFilter) ([]m.User, error) {
	return f.filter(func(u *m.User) bool {
		switch {
		case q.Role != "" && u.Role != q.Role:
			return false
		case q.Role == "" && q.ExcludeRole != "" && u.Role == q.ExcludeRole:
			return false
		case len(q.Divisions) > 0 && !divisionIn(u.Division, q.Divisions):
			return false
		case q.Status != "" && u.AccountStatus != q.Status:
			return false
		}
		return true
	}), nil
}

func (f *fakeUsers) Insert(_ context.Context, u *m.User) error {
	if _, err := f.GetByEmail(context.Background(), u.Email); err == nil {
		return apperr.Conflict("email already registered")
	}
	return f.insert(u.ID, u)
}

func (f *fakeUsers) UpdateFields(_ context.Context, id string, set bson.M) error {
	return f.update(id, nil, set, nil)
}

func (f *fakeUsers) SetStatusIfPending(_ context.Context, id string, status m.AccountStatus, reviewerID string) error {
	return f.update(id, func(u *m.User) bool { return u.AccountStatus == m.AccountPending },
		bson.M{"account_status": status, "reviewed_by": reviewerID}, nil)
}

func (f *fakeUsers) Delete(_ context.Context, id string) error { return f.remove(id) }

func (f *fakeUsers) Count(context.Context) (int64, error) { return int64(len(f.all())), nil }

// ---- schedules ----

type fakeSchedules struct{ *table[m.Schedule] }

func newFakeSchedules() *fakeSchedules { return &fakeSchedules{newTable[m.Schedule]("schedule")} }

func (f *fakeSchedules) Get(_ context.Context, id string) (*m.Schedule, error) { return f.get(id) }

func (f *fakeSchedules) Find(_ context.Context, q repo.ScheduleFilter) ([]m.Schedule, error) {
	out := f.filter(func(s *m.Schedule) bool {
		switch {
		case q.UserID != "" && s.UserID != q.UserID:
			return false
		case len(q.Divisions) > 0 && !divisionIn(s.Division, q.Divisions):
			return false
		case q.StartFrom != nil && s.StartDate.Before(*q.StartFrom):
			return false
		case q.StartTo != nil && s.StartDate.After(*q.StartTo):
			return false
		case q.ActiveOn != nil && (s.StartDate.After(*q.ActiveOn) || s.EndDate.Before(*q.ActiveOn)):
			return false
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (f *fakeSchedules) Insert(_ context.Context, s *m.Schedule) error { return f.insert(s.ID, s) }

func (f *fakeSchedules) UpdateFields(_ context.Context, id string, set bson.M) error {
	return f.update(id, nil, set, nil)
}

func (f *fakeSchedules) Delete(_ context.Context, id string) error { return f.remove(id) }

func (f *fakeSchedules) IDsInDivisions(_ context.Context, ds []m.Division) ([]string, error) {
	ids := []string{}
	for _, s := range f.all() {
		if divisionIn(s.Division, ds) {
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}

// ---- shift changes ----

type fakeShiftChanges struct{ *table[m.ShiftChangeRequest] }

func newFakeShiftChanges() *fakeShiftChanges {
	return &fakeShiftChanges{newTable[m.ShiftChangeRequest]("shift change request")}
}

func (f *fakeShiftChanges) Get(_ context.Context, id string) (*m.ShiftChangeRequest, error) {
	return f.get(id)
}

func (f *fakeShiftChanges) Find(_ context.Context, q repo.ShiftChangeFilter) ([]m.ShiftChangeRequest, error) {
	return f.filter(func(r *m.ShiftChangeRequest) bool {
		switch {
		case q.Status != "" && r.Status != q.Status:
			return false
		case q.RequestedBy != "" && r.RequestedBy != q.RequestedBy:
			return false
		case q.ScheduleIDs != nil && !slices.Contains(q.ScheduleIDs, r.ScheduleID):
			return false
		}
		return true
	}), nil
}

func (f *fakeShiftChanges) Insert(_ context.Context, r *m.ShiftChangeRequest) error {
	return f.insert(r.ID, r)
}

func (f *fakeShiftChanges) ReviewIfPending(_ context.Context, id string, set bson.M) error {
	return f.update(id, func(r *m.ShiftChangeRequest) bool { return r.Status == m.ShiftChangePending }, set, nil)
}

func (f *fakeShiftChanges) ReopenIfApprovedBy(_ context.Context, id, reviewer string, at time.Time) error {
	return f.update(id, func(r *m.ShiftChangeRequest) bool {
		return r.Status == m.ShiftChangeApproved && r.ReviewedBy != nil && *r.ReviewedBy == reviewer
	}, bson.M{
		"status": m.ShiftChangePending, "updated_at": at,
		"reviewed_by": nil, "reviewed_at": nil, "review_comment": nil,
	}, nil)
}

// ---- activities ----

type fakeActivities struct{ *table[m.Activity] }

func newFakeActivities() *fakeActivities { return &fakeActivities{newTable[m.Activity]("activity")} }

func (f *fakeActivities) Get(_ context.Context, id string) (*m.Activity, error) { return f.get(id) }

func (f *fakeActivities) Insert(_ context.Context, a *m.Activity) error { return f.insert(a.ID, a) }

func (f *fakeActivities) FindBySchedule(_ context.Context, scheduleID string) ([]m.Activity, error) {
	return f.filter(func(a *m.Activity) bool { return a.ScheduleID == scheduleID }), nil
}

func (f *fakeActivities) Find(_ context.Context, q repo.ActivityFilter) ([]m.Activity, error) {
	return f.filter(func(a *m.Activity) bool {
		if q.UserID != "" && a.UserID != q.UserID {
			return false
		}
		return len(q.Divisions) == 0 || divisionIn(a.Division, q.Divisions)
	}), nil
}

func (f *fakeActivities) PushProgress(_ context.Context, id string, u m.ProgressUpdate) error {
	return f.mutate(id, func(a *m.Activity) { a.ProgressUpdates = append(a.ProgressUpdates, u) })
}

// ---- reports ----

type fakeReports struct {
	*table[m.Report]
	// beforeWrite runs ahead of every conditional write; tests use it to
	// interleave a competing request.
	beforeWrite func()
}

func newFakeReports() *fakeReports { return &fakeReports{table: newTable[m.Report]("report")} }

func (f *fakeReports) Get(_ context.Context, id string) (*m.Report, error) { return f.get(id) }

func (f *fakeReports) Find(_ context.Context, q repo.ReportFilter) ([]m.Report, error) {
	return f.filter(func(r *m.Report) bool {
		if q.SiteID != "" && (r.SiteID == nil || *r.SiteID != q.SiteID) {
			return false
		}
		return q.CurrentApprover == "" || r.IsApprover(q.CurrentApprover)
	}), nil
}

func (f *fakeReports) Insert(_ context.Context, r *m.Report) error { return f.insert(r.ID, r) }

func (f *fakeReports) hook() {
	if h := f.beforeWrite; h != nil {
		f.beforeWrite = nil
		h()
	}
}

func (f *fakeReports) TransitionIf(_ context.Context, id string, status m.ReportStatus, approver *string, set bson.M) error {
	f.hook()
	return f.update(id, func(r *m.Report) bool {
		return r.Status == status && sameStr(r.CurrentApprover, approver)
	}, set, nil)
}

func (f *fakeReports) UpdateIfVersion(_ context.Context, id string, version int, set bson.M) error {
	f.hook()
	return f.update(id, func(r *m.Report) bool { return r.Version == version }, set, map[string]int{"version": 1})
}

func (f *fakeReports) PushComment(_ context.Context, id string, c m.Comment) error {
	return f.mutate(id, func(r *m.Report) { r.Comments = append(r.Comments, c) })
}

func (f *fakeReports) Delete(_ context.Context, id string) error { return f.remove(id) }

func (f *fakeReports) CountBySubmitter(_ context.Context, from, to time.Time, categoryID string) ([]m.SubmitterCount, error) {
	counts := map[string]int{}
	for _, r := range f.all() {
		if r.CreatedAt.Before(from) || !r.CreatedAt.Before(to) {
			continue
		}
		if categoryID != "" && (r.CategoryID == nil || *r.CategoryID != categoryID) {
			continue
		}
		counts[r.SubmittedByName]++
	}
	out := []m.SubmitterCount{}
	for name, n := range counts {
		out = append(out, m.SubmitterCount{Name: name, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// ---- tickets ----

type fakeTickets struct{ *table[m.Ticket] }

func newFakeTickets() *fakeTickets { return &fakeTickets{newTable[m.Ticket]("ticket")} }

func (f *fakeTickets) Get(_ context.Context, id string) (*m.Ticket, error) { return f.get(id) }

func (f *fakeTickets) Find(_ context.Context, q repo.TicketFilter) ([]m.Ticket, error) {
	return f.filter(func(t *m.Ticket) bool {
		switch {
		case q.SiteID != "" && (t.SiteID == nil || *t.SiteID != q.SiteID):
			return false
		case q.Division != "" && t.AssignedToDivision != q.Division:
			return false
		case q.OpenOnly && t.Status == m.TicketClosed:
			return false
		}
		return true
	}), nil
}

func (f *fakeTickets) Insert(_ context.Context, t *m.Ticket) error { return f.insert(t.ID, t) }

func (f *fakeTickets) UpdateFields(_ context.Context, id string, set bson.M) error {
	return f.update(id, nil, set, nil)
}

func (f *fakeTickets) CloseIf(_ context.Context, id string, linked *string) error {
	return f.update(id, func(t *m.Ticket) bool { return sameStr(t.LinkedReportID, linked) },
		bson.M{"status": m.TicketClosed}, nil)
}

func (f *fakeTickets) PushComment(_ context.Context, id string, c m.TicketComment) error {
	return f.mutate(id, func(t *m.Ticket) { t.Comments = append(t.Comments, c) })
}

// ---- sites & categories ----

type fakeSites struct{ *table[m.Site] }

func newFakeSites(sites ...*m.Site) *fakeSites {
	f := &fakeSites{newTable[m.Site]("site")}
	for _, s := range sites {
		_ = f.insert(s.ID, s)
	}
	return f
}

func (f *fakeSites) Get(_ context.Context, id string) (*m.Site, error) { return f.get(id) }

func (f *fakeSites) Find(_ context.Context, activeOnly bool) ([]m.Site, error) {
	return f.filter(func(s *m.Site) bool { return !activeOnly || s.Status == m.SiteActive }), nil
}

func (f *fakeSites) Insert(_ context.Context, s *m.Site) error { return f.insert(s.ID, s) }

func (f *fakeSites) UpdateFields(_ context.Context, id string, set bson.M) error {
	return f.update(id, nil, set, nil)
}

type fakeCategories struct{ *table[m.ActivityCategory] }

func newFakeCategories(cats ...*m.ActivityCategory) *fakeCategories {
	f := &fakeCategories{newTable[m.ActivityCategory]("category")}
	for _, c := range cats {
		_ = f.insert(c.ID, c)
	}
	return f
}

func (f *fakeCategories) Get(_ context.Context, id string) (*m.ActivityCategory, error) {
	return f.get(id)
}

func (f *fakeCategories) FindAll(context.Context) ([]m.ActivityCategory, error) { return f.all(), nil }

func (f *fakeCategories) Insert(_ context.Context, c *m.ActivityCategory) error {
	for _, existing := range f.all() {
		if existing.Name == c.Name {
			return apperr.Conflict("category already exists")
		}
	}
	return f.insert(c.ID, c)
}

func (f *fakeCategories) Delete(_ context.Context, id string) error { return f.remove(id) }

// ---- notifications ----

type sentNoti struct {
	UserID    string
	Kind      NotiKind
	Params    m.NotiParams
	RelatedID string
}

// recorder is a Notifier that keeps what it was asked to send.
type recorder struct {
	mu   sync.Mutex
	sent []sentNoti
}

func (r *recorder) Notify(_ context.Context, userID string, kind NotiKind, p m.NotiParams, relatedID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentNoti{userID, kind, p, relatedID})
}

func (r *recorder) to(userID string) []sentNoti {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []sentNoti
	for _, n := range r.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (r *recorder) kinds() []NotiKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]NotiKind, len(r.sent))
	for i, n := range r.sent {
		out[i] = n.Kind
	}
	return out
}

type fakeNotifications struct {
	*table[m.Notification]
	failInsert error
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{table: newTable[m.Notification]("notification")}
}

func (f *fakeNotifications) Insert(_ context.Context, n *m.Notification) error {
	if f.failInsert != nil {
		return f.failInsert
	}
	return f.insert(n.ID, n)
}

func (f *fakeNotifications) FindByUser(_ context.Context, userID string, limit int64) ([]m.Notification, error) {
	out := f.filter(func(n *m.Notification) bool { return n.UserID == userID })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id, userID string) (*m.Notification, error) {
	n, err := f.get(id)
	if err != nil || n.UserID != userID {
		return nil, apperr.NotFound("notification", id)
	}
	if err := f.update(id, nil, bson.M{"read": true}, nil); err != nil {
		return nil, err
	}
	return f.get(id)
}

func (f *fakeNotifications) CountUnread(_ context.Context, userID string) (int64, error) {
	return int64(len(f.filter(func(n *m.Notification) bool { return n.UserID == userID && !n.Read }))), nil
}

// ---- attachments ----

type storedFile struct {
	Folder, Name string
	Data         []byte
}

type fakeFiles struct {
	mu    sync.Mutex
	files []storedFile
	err   error
}

func (f *fakeFiles) Put(_ context.Context, folder, name string, body io.Reader, _ int64, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, storedFile{folder, name, buf.Bytes()})
	return "/uploads/" + folder + "/" + name, nil
}

// ---- fixtures ----

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func nopLog() zerolog.Logger { return zerolog.Nop() }

func testLogger(w io.Writer) zerolog.Logger { return zerolog.New(w) }

// user builds an approved user. Creation order follows the call order so
// approver lookup is deterministic.
func user(id string, role m.Role, d *m.Division) *m.User {
	seq++
	return &m.User{
		ID:            id,
		Username:      id,
		Email:         id + "@varnion.net.id",
		Role:          role,
		Division:      d,
		AccountStatus: m.AccountApproved,
		CreatedAt:     testNow.Add(time.Duration(seq) * time.Second),
	}
}

var seq int

func attachment(name, body string) *Attachment {
	return &Attachment{Name: name, Size: int64(len(body)), ContentType: "application/pdf", Body: strings.NewReader(body)}
}
