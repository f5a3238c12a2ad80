package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/auth"
	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication and the caller's own profile
type AuthService struct {
	userRepo    identity.UserRepository
	roleRepo    identity.RoleRepository
	permissions *PermissionService
	tx          shared.TxRunner
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	config      config.AuthConfig
	metrics     *telemetry.Metrics
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service; blacklist and metrics may be nil
func NewAuthService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	permissions *PermissionService,
	tx shared.TxRunner,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	cfg config.AuthConfig,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		permissions: permissions,
		tx:          tx,
		jwtService:  jwtService,
		blacklist:   blacklist,
		config:      cfg,
		metrics:     metrics,
		logger:      logger,
	}
}

// Login authenticates by username or email and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	login := strings.ToLower(strings.TrimSpace(input.Login))
	s.logger.Info("Login attempt", zap.String("login", login))

	var (
		user *identity.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.userRepo.FindByEmail(ctx, login)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, login)
	}
	if err != nil {
		if !isNotFound(err) {
			s.logger.Error("Failed to load user during login", zap.Error(err))
			return nil, internalError("Failed to authenticate")
		}
		s.logger.Warn("User not found during login", zap.String("login", login))
		s.metrics.LoginAttempt("invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("username", user.Username))
			s.metrics.LoginAttempt("locked")
			return nil, ErrAccountLocked
		}
		s.logger.Warn("Login attempt for inactive account", zap.String("username", user.Username))
		s.metrics.LoginAttempt("inactive")
		return nil, ErrAccountInactive
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockoutDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", user.Username),
				zap.Int("attempts", user.FailedAttempts))
			s.metrics.LoginAttempt("locked")
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("username", user.Username),
			zap.Int("failed_attempts", user.FailedAttempts))
		s.metrics.LoginAttempt("invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Don't fail the login
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.metrics.LoginAttempt("success")
	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return result, nil
}

// Register creates an Employee account and logs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	user, err := s.createUser(ctx, input, identity.RoleEmployee, false)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("username", user.Username))

	return s.issueTokens(ctx, user)
}

// SetupAdmin creates the first Admin; it fails once any user holds the Admin role
func (s *AuthService) SetupAdmin(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	user, err := s.createUser(ctx, input, identity.RoleAdmin, true)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Administrator account created", zap.String("username", user.Username))

	return s.issueTokens(ctx, user)
}

func (s *AuthService) createUser(ctx context.Context, input RegisterInput, roleName string, firstOnly bool) (*identity.User, error) {
	user, err := identity.NewUser(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(input.FirstName, input.LastName, user.Email); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		role, err := s.roleRepo.FindByName(ctx, roleName)
		if err != nil {
			if isNotFound(err) {
				return ErrRolesNotSeeded
			}
			return err
		}

		if firstOnly {
			count, err := s.roleRepo.CountUsersWithRole(ctx, role.ID)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrAdminExists
			}
		}

		if exists, err := s.userRepo.ExistsByUsername(ctx, user.Username); err != nil {
			return err
		} else if exists {
			return ErrDuplicateUsername
		}
		if exists, err := s.userRepo.ExistsByEmail(ctx, user.Email); err != nil {
			return err
		} else if exists {
			return ErrDuplicateEmail
		}

		if err := user.AssignRole(role.ID); err != nil {
			return err
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return ErrDuplicateUsername
			}
			return err
		}
		return nil
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, internalError("Failed to create user")
	}

	return user, nil
}

// RefreshToken exchanges a refresh token for a new pair and revokes the old one
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to load user during refresh", zap.Error(err))
		return nil, internalError("Failed to refresh token")
	}
	if !user.CanLogin() {
		if user.IsLocked() {
			return nil, ErrAccountLocked
		}
		return nil, ErrAccountInactive
	}

	subject, dto, err := s.subject(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(refreshToken, subject)
	if err != nil {
		s.logger.Warn("Refresh token rejected", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if s.blacklist != nil {
		if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
			s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
		}
	}

	s.logger.Info("Token refreshed", zap.String("user_id", userID.String()))

	return newAuthResult(pair, dto), nil
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil || input.AccessClaims == nil {
		return nil
	}

	if err := s.blacklist.Revoke(ctx, input.AccessClaims.ID, input.AccessClaims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke access token", zap.Error(err))
		return internalError("Failed to log out")
	}

	if input.RefreshToken != "" {
		refresh, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err == nil && refresh.UserID == input.AccessClaims.UserID {
			if err := s.blacklist.Revoke(ctx, refresh.ID, refresh.RemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke refresh token", zap.Error(err))
			}
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", input.AccessClaims.UserID))
	return nil
}

// IsTokenRevoked reports whether the token or every token of its user was revoked
func (s *AuthService) IsTokenRevoked(ctx context.Context, claims *auth.Claims) (bool, error) {
	if s.blacklist == nil {
		return false, nil
	}
	if revoked, err := s.blacklist.IsRevoked(ctx, claims.ID); err != nil || revoked {
		return revoked, err
	}
	return s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.IssuedAtTime())
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.IsTokenRevoked(ctx, claims)
	if err != nil {
		s.logger.Error("Failed to check token revocation", zap.Error(err))
		return internalError("Failed to validate token")
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

// GetProfile returns the user with roles and effective permissions
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	_, dto, err := s.subject(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// UpdateProfile changes name and email; the email must stay unique
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserDTO, error) {
	user, err := s.findUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" && email != user.Email {
		other, err := s.userRepo.FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID != user.ID:
			return nil, ErrDuplicateEmail
		case err != nil && !isNotFound(err):
			s.logger.Error("Failed to check email", zap.Error(err))
			return nil, internalError("Failed to update profile")
		}
	}
	if email == "" {
		email = user.Email
	}

	if err := user.UpdateProfile(input.FirstName, input.LastName, email); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("Failed to update profile", zap.Error(err))
		return nil, internalError("Failed to update profile")
	}

	s.logger.Info("Profile updated", zap.String("user_id", user.ID.String()))

	return s.GetProfile(ctx, user.ID)
}

// ChangePassword verifies the old password, stores the new one and revokes existing tokens
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.findUser(ctx, input.UserID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to change password", zap.Error(err))
		return internalError("Failed to change password")
	}

	if s.blacklist != nil {
		if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.jwtService.RefreshTokenExpiration()); err != nil {
			s.logger.Error("Failed to revoke tokens after password change", zap.Error(err))
		}
	}

	s.logger.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// ListRoles returns every role with its permission codes
func (s *AuthService) ListRoles(ctx context.Context) ([]RoleDTO, error) {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list roles", zap.Error(err))
		return nil, internalError("Failed to list roles")
	}
	dtos := make([]RoleDTO, len(roles))
	for i, r := range roles {
		dtos[i] = toRoleDTO(r)
	}
	return dtos, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *identity.User) (*AuthResult, error) {
	subject, dto, err := s.subject(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(subject)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, internalError("Failed to generate authentication tokens")
	}

	return newAuthResult(pair, dto), nil
}

// subject gathers the role names and effective permissions of a user
func (s *AuthService) subject(ctx context.Context, user *identity.User) (auth.Subject, UserDTO, error) {
	var roles []*identity.Role
	if len(user.RoleIDs) > 0 {
		var err error
		roles, err = s.roleRepo.FindByIDs(ctx, user.RoleIDs)
		if err != nil {
			s.logger.Error("Failed to load user roles", zap.Error(err))
			return auth.Subject{}, UserDTO{}, internalError("Failed to load user roles")
		}
	}

	permissions, err := s.permissions.EffectivePermissions(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to collect user permissions", zap.Error(err))
		return auth.Subject{}, UserDTO{}, internalError("Failed to load user permissions")
	}

	dto := toUserDTO(user, roles)
	dto.Permissions = permissions

	return auth.Subject{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Roles:       dto.Roles,
		RoleIDs:     user.RoleIDs,
		Permissions: permissions,
	}, dto, nil
}

func (s *AuthService) findUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, internalError("Failed to find user")
	}
	return user, nil
}

func newAuthResult(pair *auth.TokenPair, user UserDTO) *AuthResult {
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  user,
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return ErrTokenMaxRefresh
	default:
		return ErrTokenInvalid
	}
}
