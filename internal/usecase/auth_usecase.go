package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-management/internal/converter"
	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/domain/entity"
	"clinic-management/internal/domain/repository"
	"clinic-management/internal/service"
	"clinic-management/pkg/jwt"
	"clinic-management/pkg/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrSessionNotFound        = service.ErrSessionNotFound
	ErrConfirmationNotPending = service.ErrConfirmationNotPending
)

// logoutEntityID is the entity id the logout confirmation is keyed on.
const logoutEntityID = 0

type AuthUsecase interface {
	// Authenticate checks credentials for the expected role. Every failure
	// returns ErrInvalidCredentials so callers cannot probe accounts.
	Authenticate(ctx context.Context, username, password string, role entity.Role) (*entity.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ValidateSession(ctx context.Context, token string) (*entity.Session, error)
	GetCurrentUser(ctx context.Context, sessionID string) (*dto.CurrentUserResponse, error)
	RequestLogout(ctx context.Context, session *entity.Session) (*dto.ConfirmationResponse, error)
	ConfirmLogout(ctx context.Context, session *entity.Session) error
	CancelLogout(ctx context.Context, session *entity.Session) (*dto.ConfirmationResponse, error)
}

type authUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	sessionService service.SessionService
	auditService   service.AuditService
	jwtService     *jwt.JWTService
	metrics        *metrics.Metrics
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	sessionService service.SessionService,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	metrics *metrics.Metrics,
) AuthUsecase {
	return &authUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		sessionService: sessionService,
		auditService:   auditService,
		jwtService:     jwtService,
		metrics:        metrics,
	}
}

func (u *authUsecase) Authenticate(ctx context.Context, username, password string, role entity.Role) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || !role.IsValid() {
		return nil, ErrInvalidCredentials
	}

	user, err := u.userRepo.FindByUsernameAndRole(ctx, u.db, username, role)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	role := entity.Role(req.Role)

	user, err := u.Authenticate(ctx, req.Username, req.Password, role)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			u.metrics.LoginAttempts.WithLabelValues(string(role), "rejected").Inc()
		}
		return nil, err
	}

	session, err := u.sessionService.Start(ctx, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	token, _, err := u.jwtService.GenerateToken(session.ID, user.Username, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		_ = u.sessionService.End(ctx, session.ID)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.auditService.LogEvent(ctx, tx, user.Username, entity.AuditActionUserLogin, entity.JSON{
		"role":       string(user.Role),
		"session_id": session.ID,
	}); err != nil {
		_ = u.sessionService.End(ctx, session.ID)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		_ = u.sessionService.End(ctx, session.ID)
		return nil, err
	}

	u.metrics.LoginAttempts.WithLabelValues(string(role), "success").Inc()
	u.log.Infof("User %s logged in as %s", user.Username, user.Role)

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.jwtService.GetExpiry().Seconds()),
		SessionID:   session.ID,
		User:        converter.UserToResponse(user),
	}, nil
}

// ValidateSession resolves a bearer token to its live session. The token's
// identity must still match the stored session.
func (u *authUsecase) ValidateSession(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := u.sessionService.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		u.log.Warnf("Failed to load session: %+v", err)
		return nil, err
	}

	if session.Username != claims.Username || string(session.Role) != claims.Role {
		return nil, ErrInvalidToken
	}

	return session, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, sessionID string) (*dto.CurrentUserResponse, error) {
	session, err := u.sessionService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return converter.SessionToCurrentUser(session), nil
}

func (u *authUsecase) RequestLogout(ctx context.Context, session *entity.Session) (*dto.ConfirmationResponse, error) {
	if err := u.sessionService.RequestConfirmation(ctx, session.ID, entity.ConfirmActionLogout, logoutEntityID); err != nil {
		return nil, err
	}
	return confirmationResponse(entity.ConfirmActionLogout, logoutEntityID, entity.ConfirmationPending), nil
}

// ConfirmLogout ends the session, which clears every confirmation it held.
func (u *authUsecase) ConfirmLogout(ctx context.Context, session *entity.Session) error {
	if err := u.sessionService.EnsurePending(ctx, session.ID, entity.ConfirmActionLogout, logoutEntityID); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.auditService.LogEvent(ctx, tx, session.Username, entity.AuditActionUserLogout, entity.JSON{
		"session_id": session.ID,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.sessionService.End(ctx, session.ID); err != nil {
		return err
	}

	u.log.Infof("User %s logged out", session.Username)
	return nil
}

func (u *authUsecase) CancelLogout(ctx context.Context, session *entity.Session) (*dto.ConfirmationResponse, error) {
	err := u.sessionService.ResolveConfirmation(ctx, session.ID, entity.ConfirmActionLogout, logoutEntityID, entity.ConfirmationCancelled)
	if err != nil {
		return nil, err
	}
	return confirmationResponse(entity.ConfirmActionLogout, logoutEntityID, entity.ConfirmationCancelled), nil
}

func confirmationResponse(action entity.ConfirmAction, entityID uint, state entity.ConfirmationState) *dto.ConfirmationResponse {
	return &dto.ConfirmationResponse{
		Action:   string(action),
		EntityID: entityID,
		State:    string(state),
	}
}
