package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"inventory/internal/access"
	"inventory/internal/models"
	"inventory/internal/repositories"
	pkgerrors "inventory/pkg/errors"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var errInvalidCredentials = pkgerrors.Unauthorized("invalid credentials")

// RegisterInput is a new account request. Username defaults to Email.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.Role
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	now        func() time.Time
}

// NewAuthService creates a new AuthService. A non-positive ttl means 24 hours.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: ttl,
		now:        time.Now,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them to the database.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		in.Username = in.Email
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}

	errs := map[string]string{}
	if _, err := mail.ParseAddress(in.Email); in.Email == "" || err != nil {
		errs["email"] = "Enter a valid email address."
	}
	if len(in.Password) < minPasswordLength {
		errs["password"] = fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength)
	}
	if !in.Role.IsValid() {
		errs["role"] = fmt.Sprintf("%q is not a valid choice.", in.Role)
	}
	if len(errs) > 0 {
		return nil, pkgerrors.Validation(errs)
	}

	// Check if username or email already exists
	if err := s.ensureFree(ctx, "username", in.Username, s.userRepo.GetByUsername); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, "email", in.Email, s.userRepo.GetByEmail); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash password")
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, pkgerrors.Field("username", "A user with that username already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to register user")
	}
	return user, nil
}

func (s *AuthService) ensureFree(ctx context.Context, field, value string, lookup func(context.Context, string) (*models.User, error)) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return pkgerrors.Field(field, fmt.Sprintf("A user with that %s already exists.", field))
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to look up user")
	}
}

// LoginUser authenticates by email or username and returns a signed JWT.
func (s *AuthService) LoginUser(ctx context.Context, identifier, password string) (string, *models.User, error) {
	user, err := s.findForLogin(ctx, strings.TrimSpace(identifier))
	if err != nil {
		// Do not reveal whether the account exists.
		return "", nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errInvalidCredentials
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to generate token")
	}
	return tokenString, user, nil
}

func (s *AuthService) findForLogin(ctx context.Context, identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		if user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(identifier)); err == nil {
			return user, nil
		}
	}
	return s.userRepo.GetByUsername(ctx, identifier)
}

// ValidateToken parses and validates a JWT token, returning the caller it identifies.
func (s *AuthService) ValidateToken(tokenString string) (access.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return access.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return access.Actor{}, pkgerrors.Unauthorized("invalid or expired token")
	}

	userID, _ := claims["user_id"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return access.Actor{}, pkgerrors.Unauthorized("token has no subject")
	}
	return access.Actor{UserID: userID, Username: username, Role: models.Role(role)}, nil
}

// CurrentUser loads the account behind actor.
func (s *AuthService) CurrentUser(ctx context.Context, actor access.Actor) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, pkgerrors.Unauthorized("account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load user")
	}
	return user, nil
}
