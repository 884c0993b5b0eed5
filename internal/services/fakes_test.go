package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"memberhub/internal/models"
	"memberhub/internal/pdf"
	"memberhub/internal/repositories"
)

// memStore is an in-memory stand-in for Postgres that keeps the same
// compare-and-swap rules as the SQL repositories.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	otps     []*models.OTPEntry
	orgs     map[int64]*models.Organization
	requests map[int64]*models.AdminRequest
	admins   map[int64]*models.Admin
	members  map[int64]*models.Member

	failAdminInsert error
	dupMembershipN  int // first N member inserts hit a membership_id collision
}

func newMemStore() *memStore {
	return &memStore{
		orgs:     map[int64]*models.Organization{},
		requests: map[int64]*models.AdminRequest{},
		admins:   map[int64]*models.Admin{},
		members:  map[int64]*models.Member{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addOrg(name string) *models.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := &models.Organization{ID: s.id(), Name: name, CreatedAt: time.Now()}
	s.orgs[o.ID] = o
	return o
}

// ===== otp =====

type memOTPRepo struct{ s *memStore }

func (r memOTPRepo) Create(_ context.Context, e *models.OTPEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.id()
	e.CreatedAt = time.Now()
	cp := *e
	r.s.otps = append(r.s.otps, &cp)
	return nil
}

func (r memOTPRepo) match(e *models.OTPEntry, contact string, channel models.OTPChannel, purpose models.OTPPurpose) bool {
	return e.Contact == contact && e.Channel == channel && e.Purpose == purpose
}

func (r memOTPRepo) ListActive(_ context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose, now time.Time) ([]*models.OTPEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []*models.OTPEntry
	for i := len(r.s.otps) - 1; i >= 0; i-- {
		e := r.s.otps[i]
		if r.match(e, contact, channel, purpose) && !e.Used && e.ExpiresAt.After(now) {
			cp := *e
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r memOTPRepo) MarkUsed(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.otps {
		if e.ID == id && !e.Used {
			e.Used = true
			return true, nil
		}
	}
	return false, nil
}

func (r memOTPRepo) RegisterFailure(_ context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose, now time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	maxAttempts := 0
	for _, e := range r.s.otps {
		if r.match(e, contact, channel, purpose) && !e.Used && e.ExpiresAt.After(now) {
			e.Attempts++
			if e.Attempts > maxAttempts {
				maxAttempts = e.Attempts
			}
		}
	}
	return maxAttempts, nil
}

func (r memOTPRepo) ExpireActive(_ context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.otps {
		if r.match(e, contact, channel, purpose) && !e.Used && e.ExpiresAt.After(now) {
			e.ExpiresAt = now
		}
	}
	return nil
}

func (r memOTPRepo) CountRecentSends(_ context.Context, contact string, purpose models.OTPPurpose, since time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, e := range r.s.otps {
		if e.Contact == contact && e.Purpose == purpose && !e.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) otpCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.otps)
}

// ===== organizations =====

type memOrgRepo struct{ s *memStore }

func (r memOrgRepo) Create(_ context.Context, o *models.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.orgs {
		if strings.EqualFold(ex.Name, o.Name) {
			return &repositories.DuplicateError{Field: "name"}
		}
	}
	o.ID = r.s.id()
	o.CreatedAt = time.Now()
	cp := *o
	r.s.orgs[o.ID] = &cp
	return nil
}

func (r memOrgRepo) GetByID(_ context.Context, id int64) (*models.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orgs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r memOrgRepo) List(_ context.Context) ([]*models.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []*models.Organization
	for _, o := range r.s.orgs {
		cp := *o
		res = append(res, &cp)
	}
	return res, nil
}

// ===== admins =====

type memAdminRepo struct{ s *memStore }

func (s *memStore) insertAdminLocked(a *models.Admin) error {
	if s.failAdminInsert != nil {
		return s.failAdminInsert
	}
	for _, ex := range s.admins {
		switch {
		case strings.EqualFold(ex.Username, a.Username):
			return &repositories.DuplicateError{Field: "username"}
		case strings.EqualFold(ex.Email, a.Email):
			return &repositories.DuplicateError{Field: "email"}
		}
	}
	a.ID = s.id()
	a.CreatedAt = time.Now()
	cp := *a
	s.admins[a.ID] = &cp
	return nil
}

func (r memAdminRepo) Create(_ context.Context, a *models.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertAdminLocked(a)
}

func (r memAdminRepo) GetByID(_ context.Context, id int64) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAdminRepo) GetByLogin(_ context.Context, login string) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if strings.EqualFold(a.Username, login) || strings.EqualFold(a.Email, login) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memAdminRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if strings.EqualFold(a.Username, username) || strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r memAdminRepo) CountByRole(_ context.Context, role string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, a := range r.s.admins {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}

func (s *memStore) adminCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.admins)
}

// ===== admin requests =====

type memRequestRepo struct{ s *memStore }

func (r memRequestRepo) Create(_ context.Context, req *models.AdminRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.requests {
		if ex.Status != models.RequestPending {
			continue
		}
		switch {
		case strings.EqualFold(ex.Username, req.Username):
			return &repositories.DuplicateError{Field: "username"}
		case strings.EqualFold(ex.Email, req.Email):
			return &repositories.DuplicateError{Field: "email"}
		}
	}
	req.ID = r.s.id()
	req.Status = models.RequestPending
	req.RequestedAt = time.Now()
	cp := *req
	r.s.requests[req.ID] = &cp
	return nil
}

func (r memRequestRepo) GetByID(_ context.Context, id int64) (*models.AdminRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r memRequestRepo) List(_ context.Context, status models.RequestStatus) ([]*models.AdminRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []*models.AdminRequest
	for _, req := range r.s.requests {
		if status == "" || req.Status == status {
			cp := *req
			res = append(res, &cp)
		}
	}
	return res, nil
}

// Approve mutates nothing until the builder and insert succeed, which mirrors the rollback.
func (r memRequestRepo) Approve(_ context.Context, id, reviewerID int64, at time.Time, build repositories.AdminBuilder) (*models.AdminRequest, *models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.requests[id]
	if !ok {
		return nil, nil, repositories.ErrNotFound
	}
	if stored.Status != models.RequestPending {
		return nil, nil, repositories.ErrNotPending
	}
	req := *stored
	req.Status = models.RequestApproved
	req.ReviewedAt = &at
	req.ReviewedBy = &reviewerID
	if o, ok := r.s.orgs[req.OrganizationID]; ok {
		req.OrganizationName = o.Name
	}

	admin, err := build(&req)
	if err != nil {
		return nil, nil, err
	}
	if err := r.s.insertAdminLocked(admin); err != nil {
		return nil, nil, err
	}
	committed := req
	r.s.requests[id] = &committed
	return &req, admin, nil
}

func (r memRequestRepo) Reject(_ context.Context, id, reviewerID int64, reason string, at time.Time) (*models.AdminRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if stored.Status != models.RequestPending {
		return nil, repositories.ErrNotPending
	}
	stored.Status = models.RequestRejected
	stored.RejectionReason = reason
	stored.ReviewedAt = &at
	stored.ReviewedBy = &reviewerID
	cp := *stored
	return &cp, nil
}

func (s *memStore) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// ===== members =====

type memMemberRepo struct{ s *memStore }

func (r memMemberRepo) Create(_ context.Context, m *models.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.dupMembershipN > 0 {
		r.s.dupMembershipN--
		return &repositories.DuplicateError{Field: "membership_id"}
	}
	for _, ex := range r.s.members {
		if ex.MembershipID == m.MembershipID {
			return &repositories.DuplicateError{Field: "membership_id"}
		}
		if strings.EqualFold(ex.Email, m.Email) {
			return &repositories.DuplicateError{Field: "email"}
		}
	}
	m.ID = r.s.id()
	m.CreatedAt = time.Now()
	cp := *m
	r.s.members[m.ID] = &cp
	return nil
}

func (r memMemberRepo) GetByID(_ context.Context, id int64) (*models.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r memMemberRepo) GetByMembershipID(_ context.Context, membershipID string) (*models.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.members {
		if m.MembershipID == membershipID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memMemberRepo) ListByOrganization(_ context.Context, orgID int64, status models.MemberStatus) ([]*models.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []*models.Member
	for _, m := range r.s.members {
		if m.OrganizationID == orgID && (status == "" || m.Status == status) {
			cp := *m
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r memMemberRepo) Review(_ context.Context, id, orgID, reviewerID int64, status models.MemberStatus, at time.Time) (*models.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[id]
	if !ok || m.OrganizationID != orgID {
		return nil, repositories.ErrNotFound
	}
	if m.Status != models.MemberPending {
		return nil, repositories.ErrNotPending
	}
	m.Status = status
	m.ReviewedAt = &at
	m.ReviewedBy = &reviewerID
	cp := *m
	return &cp, nil
}

func (s *memStore) setMemberStatus(id int64, st models.MemberStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[id].Status = st
}

// ===== transports =====

type sentMail struct {
	To, Code string
	Purpose  models.OTPPurpose
}

type fakeEmail struct {
	mu       sync.Mutex
	otps     []sentMail
	approved []string
	rejected []string
	statuses []models.MemberStatus
	err      error
}

func (f *fakeEmail) SendOTP(_ context.Context, to, code string, purpose models.OTPPurpose, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.otps = append(f.otps, sentMail{To: to, Code: code, Purpose: purpose})
	return nil
}

func (f *fakeEmail) SendAdminApproved(_ context.Context, to, username, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.approved = append(f.approved, to+"|"+username)
	return f.err
}

func (f *fakeEmail) SendAdminRejected(_ context.Context, to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected = append(f.rejected, to)
	return f.err
}

func (f *fakeEmail) SendMemberStatus(_ context.Context, _, _ string, status models.MemberStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
	return f.err
}

// lastCode returns the most recent code mailed to "to".
func (f *fakeEmail) lastCode(to string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.otps) - 1; i >= 0; i-- {
		if f.otps[i].To == to {
			return f.otps[i].Code
		}
	}
	return ""
}

type fakeSMS struct {
	mu   sync.Mutex
	sent map[string]string
}

func (f *fakeSMS) SendSMS(_ context.Context, to, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[to] = text
	return nil
}

func (f *fakeSMS) lastCode(to string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	text := f.sent[to]
	if i := strings.LastIndex(text, " "); i >= 0 {
		return text[i+1:]
	}
	return ""
}

type fakeNotifier struct {
	mu   sync.Mutex
	reqs []int64
}

func (f *fakeNotifier) AdminRequestCreated(_ context.Context, req *models.AdminRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req.ID)
}

type fakeCards struct{ last pdf.CardData }

func (f *fakeCards) MemberCard(data pdf.CardData) ([]byte, error) {
	f.last = data
	return []byte("%PDF-1.3 card"), nil
}

const testSecret = "test-secret-test-secret-test-secret!"

func newTestAuth() *authService {
	return NewAuthService(testSecret, time.Hour, 30*time.Minute).(*authService)
}
