package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"anoa.com/campuscircle/internal/dto"
	"anoa.com/campuscircle/internal/model"
	"anoa.com/campuscircle/internal/repository"
	"anoa.com/campuscircle/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// adminRollPrefix marks roster entries that get the admin role at
// provisioning time. The role lives on the account afterwards; the prefix is
// never consulted again.
const adminRollPrefix = "ADMIN"

// AccessClaims binds a credential to both the account and its roster entry.
type AccessClaims struct {
	StudentID string `json:"student_id"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error)
}

// LoginLimiter guards the login endpoint against credential guessing.
// *LoginThrottle is the redis-backed implementation.
type LoginLimiter interface {
	Allow(ctx context.Context, rollNumber string) (bool, error)
	Reset(ctx context.Context, rollNumber string) error
}

type authService struct {
	students repository.StudentRepository
	users    repository.UserRepository
	throttle LoginLimiter
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(students repository.StudentRepository, users repository.UserRepository, throttle LoginLimiter) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	// Default credential lifetime is 7 days
	ttl := 7 * 24 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_HOURS"); ttlStr != "" {
		if hours, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	return &authService{
		students: students,
		users:    users,
		throttle: throttle,
		secret:   secret,
		tokenTTL: ttl,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error) {
	rollNumber := NormalizeRollNumber(input.RollNumber)

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, rollNumber)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: too many login attempts", apperror.ErrRateLimitExceeded)
		}
	}

	// Exact match on both fields; never reveal which one was wrong
	student, err := s.students.FindByCredentials(ctx, rollNumber, strings.TrimSpace(input.DOB))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	user, err := s.users.FindByStudentID(ctx, student.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// First login: provision the account
		role := model.RoleStudent
		if strings.HasPrefix(rollNumber, adminRollPrefix) {
			role = model.RoleAdmin
		}
		user, err = s.users.Provision(ctx, student, role)
		if err != nil {
			return nil, err
		}
	}

	// The login already succeeded; a stale counter only shortens the window
	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, rollNumber); err != nil {
			log.Printf("Failed to reset login attempts for %s: %v", rollNumber, err)
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	followers, following, err := s.users.FollowCounts(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  *profileResponse(user, followers, following, nil),
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		StudentID: user.StudentID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", err
	}

	return signed, nil
}

// NormalizeRollNumber applies the roster's canonical form: trimmed, upper-cased.
func NormalizeRollNumber(rollNumber string) string {
	return strings.ToUpper(strings.TrimSpace(rollNumber))
}
