package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is the identity carried by a staff token.
type Claims struct {
	StaffID  string
	Username string
	Role     string
}

// AuthService handles staff registration and token issuing.
type AuthService struct {
	staffRepo  repositories.StaffRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	logger     *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(staffRepo repositories.StaffRepository, jwtSecret string, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		staffRepo:  staffRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   24 * time.Hour,
		logger:     logger,
	}
}

// RegisterStaff hashes the password and stores a new account. The first
// account of the store becomes admin, later ones are clerks.
func (s *AuthService) RegisterStaff(ctx context.Context, staff *models.Staff) error {
	if _, err := s.staffRepo.GetByUsername(ctx, staff.Username); err == nil {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, staff.Username)
	} else if !errors.Is(err, repositories.ErrStaffNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.staffRepo.GetByEmail(ctx, staff.Email); err == nil {
		return fmt.Errorf("%w: %s", ErrEmailTaken, staff.Email)
	} else if !errors.Is(err, repositories.ErrStaffNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	count, err := s.staffRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to register staff: %w", err)
	}
	staff.Role = models.RoleClerk
	if count == 0 {
		staff.Role = models.RoleAdmin
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(staff.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	staff.Password = string(hashedPassword)

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return fmt.Errorf("failed to register staff: %w", err)
	}
	s.logger.Info("staff registered", "username", staff.Username, "role", staff.Role)
	return nil
}

// Login authenticates a staff member and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	staff, err := s.staffRepo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrStaffNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to log in: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": staff.ID,
		"username": staff.Username,
		"role":     staff.Role,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.logger.Debug("token validation failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	claims.StaffID, _ = mapClaims["staff_id"].(string)
	claims.Username, _ = mapClaims["username"].(string)
	claims.Role, _ = mapClaims["role"].(string)
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrInvalidToken)
	}
	return claims, nil
}
