package services

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/BivekiGroup/bivekinew-sub000/internal/config"
	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/BivekiGroup/bivekinew-sub000/internal/repositories"
)

// GenericAuthFailure is the single user-facing message for every recoverable
// login failure: unknown email, inactive account, wrong or expired code. One
// message for all of them, so responses reveal nothing about which accounts
// exist.
const GenericAuthFailure = "invalid email or code"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	codePattern  = regexp.MustCompile(`^[0-9]{6}$`)
)

// Notifier delivers a one-time login code to the user. Synchronous: a failed
// delivery fails the whole request-code operation.
type Notifier interface {
	SendLoginCode(email, code string, expiresAt time.Time) error
}

type RequestCodeResult struct {
	Success   bool
	Message   string
	ExpiresAt *time.Time
}

type LoginResult struct {
	Success bool
	Message string
	Token   string
	User    *models.User
}

type AuthService struct {
	userRepo    repositories.UserRepository
	codeRepo    repositories.OneTimeCodeRepository
	sessionRepo repositories.SessionRepository
	notifier    Notifier
	cfg         *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	codeRepo repositories.OneTimeCodeRepository,
	sessionRepo repositories.SessionRepository,
	notifier Notifier,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		codeRepo:    codeRepo,
		sessionRepo: sessionRepo,
		notifier:    notifier,
		cfg:         cfg,
	}
}

// RequestCode issues a fresh one-time code for the email and sends it via the
// notifier. Prior unused codes for the user are invalidated first, so at most
// one redeemable code exists at a time. Recoverable failures come back as
// Success=false; only store or notifier faults surface as errors.
func (s *AuthService) RequestCode(email, ip, userAgent string) (*RequestCodeResult, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return &RequestCodeResult{Success: false, Message: GenericAuthFailure}, nil
	}

	user, err := s.userRepo.GetActiveByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &RequestCodeResult{Success: false, Message: GenericAuthFailure}, nil
	}

	code, err := GenerateLoginCode()
	if err != nil {
		return nil, err
	}

	codeTTL, err := s.cfg.Auth.GetCodeExpiry()
	if err != nil {
		return nil, fmt.Errorf("invalid code_expiry: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(codeTTL)

	if err := s.codeRepo.InvalidateOutstanding(user.ID); err != nil {
		return nil, err
	}

	otc := &models.OneTimeCode{
		UserID:    user.ID,
		Code:      code,
		IPAddress: ip,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := s.codeRepo.Create(otc); err != nil {
		return nil, err
	}

	// A persisted but undelivered code is not a success.
	if err := s.notifier.SendLoginCode(email, code, expiresAt); err != nil {
		return nil, fmt.Errorf("send login code: %w", err)
	}

	return &RequestCodeResult{
		Success:   true,
		Message:   "login code sent",
		ExpiresAt: &expiresAt,
	}, nil
}

// Login redeems a one-time code and mints a session-backed bearer token.
// The code is claimed with a conditional update, so of N concurrent attempts
// with the same code exactly one gets a token.
func (s *AuthService) Login(email, code, ip, userAgent string) (*LoginResult, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) || !codePattern.MatchString(code) {
		return &LoginResult{Success: false, Message: GenericAuthFailure}, nil
	}

	user, err := s.userRepo.GetActiveByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &LoginResult{Success: false, Message: GenericAuthFailure}, nil
	}

	now := time.Now().UTC()

	otc, err := s.codeRepo.GetRedeemable(user.ID, code, now)
	if err != nil {
		return nil, err
	}
	if otc == nil {
		return &LoginResult{Success: false, Message: GenericAuthFailure}, nil
	}

	claimed, err := s.codeRepo.MarkUsed(otc.ID, now)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Lost the race to a concurrent login with the same code.
		return &LoginResult{Success: false, Message: GenericAuthFailure}, nil
	}

	if err := s.sessionRepo.DeleteExpired(user.ID, now); err != nil {
		slog.Warn("failed to purge expired sessions", "user_id", user.ID, "error", err)
	}

	sessionTTL, err := s.cfg.Auth.GetSessionExpiry()
	if err != nil {
		return nil, fmt.Errorf("invalid session_expiry: %w", err)
	}

	session := &models.Session{
		UserID:    user.ID,
		IPAddress: ip,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	// The token embeds the session id, so it can only be minted once the row
	// exists; the row is then updated to hold its own token.
	token, err := GenerateSessionToken(s.cfg.JWT.Secret, user, session.ID, now, sessionTTL)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.UpdateToken(session.ID, token); err != nil {
		return nil, err
	}

	return &LoginResult{
		Success: true,
		Message: "logged in",
		Token:   token,
		User:    user,
	}, nil
}

// Logout deletes every session holding the token. Idempotent; a token with no
// matching session is still a successful logout.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(token)
}

// NormalizeEmail trims and lowercases for the case-insensitive unique match.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
