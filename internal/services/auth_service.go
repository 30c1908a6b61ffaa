package services

import (
	"context"
	"fmt"
	"time"

	"lifeshare/internal/models"
	"lifeshare/internal/repositories"
	"lifeshare/pkg/logger"
	"lifeshare/pkg/sessionstore"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login sessions and account deletion.
type AuthService struct {
	userRepo   repositories.UserRepository
	sessions   sessionstore.Store
	events     EventPublisher
	jwtSecret  []byte
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, sessions sessionstore.Store, events EventPublisher, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		events:     events,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
	}
}

// SessionTTL is how long issued sessions stay valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register hashes the password and stores a new user. A taken username
// yields an error matching models.ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hashedPassword)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return errors.Wrap(err, "failed to register user")
	}
	return nil
}

// Authenticate checks the credentials and issues a session token. Unknown
// users and wrong passwords both yield models.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, *models.Session, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Debug("Login lookup failed")
		return "", nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, session, err := s.IssueSession(user.Username)
	if err != nil {
		return "", nil, err
	}
	if err := s.sessions.Track(ctx, session.Username, session.ID, s.sessionTTL); err != nil {
		return "", nil, errors.Wrap(err, "failed to start session")
	}
	return token, session, nil
}

// IssueSession signs a new session token bound to username. Only sessions
// started by Authenticate are ended by DeleteAccount.
func (s *AuthService) IssueSession(username string) (string, *models.Session, error) {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		Username:  username,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":      session.ID,
		"username": session.Username,
		"exp":      session.ExpiresAt.Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session: %w", err)
	}
	return tokenString, session, nil
}

// ValidateSession parses a session token and rejects it when the
// signature, expiry or revocation check fails.
func (s *AuthService) ValidateSession(ctx context.Context, tokenString string) (*models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.Wrap(models.ErrInvalidSession, err.Error())
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, models.ErrInvalidSession
	}

	username, _ := claims["username"].(string)
	sessionID, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	if username == "" || sessionID == "" || exp == 0 {
		return nil, errors.Wrap(models.ErrInvalidSession, "missing claims")
	}

	revoked, err := s.sessions.IsRevoked(ctx, sessionID)
	if err != nil {
		// Fail closed: an unreachable revocation store must not resurrect sessions.
		logger.Log.WithError(err).Error("Session revocation check failed")
		return nil, errors.Wrap(models.ErrInvalidSession, "revocation check failed")
	}
	if revoked {
		return nil, errors.Wrap(models.ErrInvalidSession, "session revoked")
	}

	return &models.Session{
		ID:        sessionID,
		Username:  username,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// Logout revokes the session for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, session *models.Session) error {
	if session == nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, session.ID, time.Until(session.ExpiresAt)); err != nil {
		return errors.Wrap(err, "failed to end session")
	}
	return nil
}

// DeleteAccount removes the user and everything they wrote, then ends every
// session of the account. The database deletes are all-or-nothing.
func (s *AuthService) DeleteAccount(ctx context.Context, session *models.Session) error {
	if session == nil || session.Username == "" {
		return models.ErrAuthRequired
	}

	if err := s.userRepo.DeleteCascade(ctx, session.Username); err != nil {
		return errors.Wrapf(err, "failed to delete account %s", session.Username)
	}

	publishEvent(s.events, models.StoryEvent{
		Type:     models.EventAccountDeleted,
		Username: session.Username,
	})

	// Every login of the account ends, so a stale token cannot act for a
	// later account registered under the same name.
	if err := s.sessions.RevokeUser(ctx, session.Username); err != nil {
		return errors.Wrap(err, "failed to end sessions")
	}
	return s.Logout(ctx, session)
}
