package services_test

import (
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/BivekiGroup/bivekinew-sub000/internal/services"
	"github.com/google/uuid"
)

func activeUser(email string, role models.UserRole) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    email,
		Role:     role,
		IsActive: true,
	}
}

func userRepoFor(user *models.User) *mockUserRepo {
	return &mockUserRepo{
		getActiveByEmailFunc: func(email string) (*models.User, error) {
			if user != nil && email == user.Email {
				return user, nil
			}
			return nil, nil
		},
		getByIDFunc: func(id uuid.UUID) (*models.User, error) {
			if user != nil && id == user.ID {
				return user, nil
			}
			return nil, nil
		},
	}
}

func newTestAuthService(user *models.User) (*services.AuthService, *fakeCodeRepo, *fakeSessionRepo, *mockNotifier) {
	codeRepo := &fakeCodeRepo{}
	sessionRepo := &fakeSessionRepo{}
	notifier := &mockNotifier{}
	svc := services.NewAuthService(userRepoFor(user), codeRepo, sessionRepo, notifier, newAuthTestConfig())
	return svc, codeRepo, sessionRepo, notifier
}

// ==== RequestCode ====

func TestAuthService_RequestCode_Success(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, _, notifier := newTestAuthService(user)

	result, err := svc.RequestCode("bob@x.com", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got failure: %s", result.Message)
	}
	if result.ExpiresAt == nil {
		t.Fatalf("expected expires_at in result")
	}
	until := time.Until(*result.ExpiresAt)
	if until < 9*time.Minute || until > 11*time.Minute {
		t.Errorf("expected ~10m expiry, got %v", until)
	}

	if notifier.sentCount() != 1 {
		t.Fatalf("expected exactly one delivered code, got %d", notifier.sentCount())
	}
	if !regexp.MustCompile(`^[0-9]{6}$`).MatchString(notifier.lastCode()) {
		t.Errorf("delivered code %q is not 6 digits", notifier.lastCode())
	}
}

func TestAuthService_RequestCode_NormalizesEmail(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, _, _ := newTestAuthService(user)

	result, err := svc.RequestCode("  BOB@X.COM ", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success for case/space variant, got: %s", result.Message)
	}
}

func TestAuthService_RequestCode_UnknownEmail_GenericFailure(t *testing.T) {
	svc, _, _, notifier := newTestAuthService(nil)

	result, err := svc.RequestCode("ghost@x.com", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure for unknown email")
	}
	if result.Message != services.GenericAuthFailure {
		t.Errorf("expected generic message %q, got %q", services.GenericAuthFailure, result.Message)
	}
	if notifier.sentCount() != 0 {
		t.Errorf("no code should be sent for unknown email")
	}
}

func TestAuthService_RequestCode_InvalidEmailFormat(t *testing.T) {
	svc, _, _, _ := newTestAuthService(nil)

	result, err := svc.RequestCode("not-an-email", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure for malformed email")
	}
}

func TestAuthService_RequestCode_NotifierFailure_IsError(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, _, notifier := newTestAuthService(user)
	notifier.sendFunc = func(email, code string, expiresAt time.Time) error {
		return errors.New("smtp down")
	}

	result, err := svc.RequestCode("bob@x.com", "127.0.0.1", "go-test")
	if err == nil {
		t.Fatalf("expected error when notifier fails, got result %+v", result)
	}
}

func TestAuthService_RequestCode_InvalidatesPriorCode(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, _, notifier := newTestAuthService(user)

	if _, err := svc.RequestCode("bob@x.com", "127.0.0.1", "go-test"); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	firstCode := notifier.lastCode()

	if _, err := svc.RequestCode("bob@x.com", "127.0.0.1", "go-test"); err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	// The first code must no longer redeem.
	result, err := svc.Login("bob@x.com", firstCode, "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login errored: %v", err)
	}
	if result.Success {
		t.Fatalf("first code redeemed after a second request invalidated it")
	}

	// The second code still works.
	result, err = svc.Login("bob@x.com", notifier.lastCode(), "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login errored: %v", err)
	}
	if !result.Success {
		t.Fatalf("fresh code failed to redeem: %s", result.Message)
	}
}

// ==== Login ====

func requestAndGetCode(t *testing.T, svc *services.AuthService, notifier *mockNotifier, email string) string {
	t.Helper()
	result, err := svc.RequestCode(email, "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("request code failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("request code rejected: %s", result.Message)
	}
	return notifier.lastCode()
}

func TestAuthService_Login_Success(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, sessionRepo, notifier := newTestAuthService(user)
	code := requestAndGetCode(t, svc, notifier, "bob@x.com")

	result, err := svc.Login("bob@x.com", code, "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.User == nil || result.User.ID != user.ID {
		t.Fatalf("expected logged-in user in result")
	}

	claims, err := services.ParseSessionToken(newAuthTestConfig().JWT.Secret, result.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID.String() {
		t.Errorf("expected sub %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != models.RoleCustomer {
		t.Errorf("expected role customer, got %s", claims.Role)
	}

	// The session row must hold the token so it can be looked up and revoked.
	session, err := sessionRepo.GetLiveByToken(result.Token, time.Now().UTC())
	if err != nil || session == nil {
		t.Fatalf("expected a live session for the issued token")
	}
	if claims.SessionID != session.ID.String() {
		t.Errorf("token sid %s does not match session %s", claims.SessionID, session.ID)
	}
}

func TestAuthService_Login_FailureMessagesIdentical(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, _, notifier := newTestAuthService(user)
	requestAndGetCode(t, svc, notifier, "bob@x.com")

	unknown, err := svc.Login("ghost@x.com", "123456", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login errored: %v", err)
	}
	wrongCode, err := svc.Login("bob@x.com", "000000", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login errored: %v", err)
	}

	if unknown.Success || wrongCode.Success {
		t.Fatalf("both logins should fail")
	}
	if unknown.Message != wrongCode.Message {
		t.Errorf("failure messages differ: %q vs %q", unknown.Message, wrongCode.Message)
	}
}

func TestAuthService_Login_CodeIsSingleUse(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, _, notifier := newTestAuthService(user)
	code := requestAndGetCode(t, svc, notifier, "bob@x.com")

	first, err := svc.Login("bob@x.com", code, "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login errored: %v", err)
	}
	if !first.Success {
		t.Fatalf("first redemption failed: %s", first.Message)
	}

	second, err := svc.Login("bob@x.com", code, "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login errored: %v", err)
	}
	if second.Success {
		t.Fatalf("code redeemed twice")
	}
}

func TestAuthService_Login_ConcurrentRedemption_OneWinner(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, _, notifier := newTestAuthService(user)
	code := requestAndGetCode(t, svc, notifier, "bob@x.com")

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]*services.LoginResult, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.Login("bob@x.com", code, "127.0.0.1", "go-test")
			if err != nil {
				t.Errorf("login errored: %v", err)
				return
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, r := range results {
		if r != nil && r.Success {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly 1 of %d concurrent redemptions to win, got %d", attempts, wins)
	}
}

func TestAuthService_Login_ExpiredCode(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	codeRepo := &fakeCodeRepo{}
	sessionRepo := &fakeSessionRepo{}
	svc := services.NewAuthService(userRepoFor(user), codeRepo, sessionRepo, &mockNotifier{}, newAuthTestConfig())

	// Seed a code that expired a minute ago.
	past := time.Now().UTC().Add(-time.Minute)
	if err := codeRepo.Create(&models.OneTimeCode{
		UserID:    user.ID,
		Code:      "654321",
		CreatedAt: past.Add(-10 * time.Minute),
		ExpiresAt: past,
	}); err != nil {
		t.Fatalf("seed code: %v", err)
	}

	result, err := svc.Login("bob@x.com", "654321", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login errored: %v", err)
	}
	if result.Success {
		t.Fatalf("expired code redeemed")
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	// GetActiveByEmail filters inactive users at the store, so the service
	// sees nil and fails with the same generic message.
	svc, _, _, _ := newTestAuthService(nil)

	result, err := svc.Login("inactive@x.com", "123456", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login errored: %v", err)
	}
	if result.Success {
		t.Fatalf("inactive user logged in")
	}
	if result.Message != services.GenericAuthFailure {
		t.Errorf("expected generic message, got %q", result.Message)
	}
}

func TestAuthService_Login_InvalidCodeFormat(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, _, _ := newTestAuthService(user)

	for _, code := range []string{"", "12345", "1234567", "12345a", "12 456"} {
		result, err := svc.Login("bob@x.com", code, "127.0.0.1", "go-test")
		if err != nil {
			t.Fatalf("login errored for %q: %v", code, err)
		}
		if result.Success {
			t.Errorf("malformed code %q accepted", code)
		}
	}
}

func TestAuthService_Login_PurgesExpiredSessions(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, sessionRepo, notifier := newTestAuthService(user)

	// Stale session from a previous device.
	if err := sessionRepo.Create(&models.Session{
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	code := requestAndGetCode(t, svc, notifier, "bob@x.com")
	result, err := svc.Login("bob@x.com", code, "127.0.0.1", "go-test")
	if err != nil || !result.Success {
		t.Fatalf("login failed: %v %+v", err, result)
	}

	if sessionRepo.count() != 1 {
		t.Errorf("expected expired session purged, %d sessions remain", sessionRepo.count())
	}
}

// ==== Logout ====

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	user := activeUser("bob@x.com", models.RoleCustomer)
	svc, _, sessionRepo, notifier := newTestAuthService(user)
	code := requestAndGetCode(t, svc, notifier, "bob@x.com")

	result, err := svc.Login("bob@x.com", code, "127.0.0.1", "go-test")
	if err != nil || !result.Success {
		t.Fatalf("login failed: %v %+v", err, result)
	}

	if err := svc.Logout(result.Token); err != nil {
		t.Fatalf("logout errored: %v", err)
	}

	session, err := sessionRepo.GetLiveByToken(result.Token, time.Now().UTC())
	if err != nil {
		t.Fatalf("session lookup errored: %v", err)
	}
	if session != nil {
		t.Fatalf("session still live after logout")
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	svc, _, _, _ := newTestAuthService(nil)

	if err := svc.Logout("never-issued"); err != nil {
		t.Fatalf("logout of unknown token errored: %v", err)
	}
	if err := svc.Logout(""); err != nil {
		t.Fatalf("logout of empty token errored: %v", err)
	}
}
