package services_test

import (
	"errors"
	"sync"
	"time"

	"github.com/BivekiGroup/bivekinew-sub000/internal/config"
	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/google/uuid"
)

func newAuthTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret: "test-secret-key-minimum-32-characters-long",
		},
		Auth: config.AuthConfig{
			CodeExpiry:    "10m",
			SessionExpiry: "30d",
		},
	}
}

type mockUserRepo struct {
	getByIDFunc          func(id uuid.UUID) (*models.User, error)
	getActiveByEmailFunc func(email string) (*models.User, error)
	createFunc           func(user *models.User) error
	updateFunc           func(user *models.User) error
	deleteFunc           func(id uuid.UUID) error
	getAllFunc           func(limit, offset int) ([]models.User, int64, error)
	existsByEmailFunc    func(email string) (bool, error)
}

func (m *mockUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByIDFunc(id)
}

func (m *mockUserRepo) GetActiveByEmail(email string) (*models.User, error) {
	if m.getActiveByEmailFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getActiveByEmailFunc(email)
}

func (m *mockUserRepo) Create(user *models.User) error {
	if m.createFunc == nil {
		return errors.New("not implemented")
	}
	return m.createFunc(user)
}

func (m *mockUserRepo) Update(user *models.User) error {
	if m.updateFunc == nil {
		return errors.New("not implemented")
	}
	return m.updateFunc(user)
}

func (m *mockUserRepo) Delete(id uuid.UUID) error {
	if m.deleteFunc == nil {
		return errors.New("not implemented")
	}
	return m.deleteFunc(id)
}

func (m *mockUserRepo) GetAll(limit, offset int) ([]models.User, int64, error) {
	if m.getAllFunc == nil {
		return nil, 0, errors.New("not implemented")
	}
	return m.getAllFunc(limit, offset)
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	if m.existsByEmailFunc == nil {
		return false, errors.New("not implemented")
	}
	return m.existsByEmailFunc(email)
}

// fakeCodeRepo keeps codes in memory with the same claim semantics the SQL
// repository enforces: MarkUsed only wins while the code is unused and
// unexpired, under a lock, so redemption races behave like the database.
type fakeCodeRepo struct {
	mu    sync.Mutex
	codes []*models.OneTimeCode
}

func (f *fakeCodeRepo) Create(code *models.OneTimeCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	cp := *code
	f.codes = append(f.codes, &cp)
	return nil
}

func (f *fakeCodeRepo) InvalidateOutstanding(userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.UserID == userID && !c.Used {
			c.Used = true
		}
	}
	return nil
}

func (f *fakeCodeRepo) GetRedeemable(userID uuid.UUID, code string, now time.Time) (*models.OneTimeCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *models.OneTimeCode
	for _, c := range f.codes {
		if c.UserID != userID || c.Code != code || c.Used || !c.ExpiresAt.After(now) {
			continue
		}
		if best == nil || c.CreatedAt.After(best.CreatedAt) {
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeCodeRepo) MarkUsed(id uuid.UUID, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.ID == id && !c.Used && c.ExpiresAt.After(now) {
			c.Used = true
			return true, nil
		}
	}
	return false, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []*models.Session
}

func (f *fakeSessionRepo) Create(session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	cp := *session
	f.sessions = append(f.sessions, &cp)
	return nil
}

func (f *fakeSessionRepo) UpdateToken(id uuid.UUID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.ID == id {
			s.Token = token
		}
	}
	return nil
}

func (f *fakeSessionRepo) GetLiveByToken(token string, now time.Time) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Token == token && s.ExpiresAt.After(now) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) DeleteByToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.sessions[:0]
	for _, s := range f.sessions {
		if s.Token != token {
			kept = append(kept, s)
		}
	}
	f.sessions = kept
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(userID uuid.UUID, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.sessions[:0]
	for _, s := range f.sessions {
		if s.UserID != userID || s.ExpiresAt.After(now) {
			kept = append(kept, s)
		}
	}
	f.sessions = kept
	return nil
}

func (f *fakeSessionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type mockNotifier struct {
	mu       sync.Mutex
	sendFunc func(email, code string, expiresAt time.Time) error
	sent     []string
}

func (m *mockNotifier) SendLoginCode(email, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendFunc != nil {
		if err := m.sendFunc(email, code, expiresAt); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, code)
	return nil
}

func (m *mockNotifier) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1]
}

func (m *mockNotifier) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
