package userapp

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"yatube/internal/config"
	"yatube/internal/core/apperr"
	userEntity "yatube/internal/core/user"
	userPort "yatube/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer            = "yatube"
	minPasswordLength = 8
	maxUsernameLength = 150
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ErrInvalidCredentials is returned by LoginUser for an unknown user or a
// wrong password alike.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)

// Claims is the JWT payload. Subject holds the user id.
type Claims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// UserService handles signup, login and token verification.
type UserService struct {
	UserRepository userPort.UserRepository
	Mailer         userPort.Mailer
	jwtKey         []byte
	tokenTTL       time.Duration
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, mailer userPort.Mailer, jwtKey []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		UserRepository: repo,
		Mailer:         mailer,
		jwtKey:         jwtKey,
		tokenTTL:       tokenTTL,
		now:            time.Now,
	}
}

// LoginUser checks the password and issues a signed token.
func (s *UserService) LoginUser(ctx context.Context, username string, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		config.Logger.Info("Invalid password", zap.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.tokenTTL)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Username: user.Username,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID.String(),
			Issuer:    issuer,
			IssuedAt:  s.now().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// ParseToken verifies a token issued by LoginUser.
func (s *UserService) ParseToken(tokenString string) (*userPort.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrUnauthorized
	}
	if claims.Issuer != issuer {
		return nil, apperr.ErrUnauthorized
	}
	if _, err := uuid.FromString(claims.Subject); err != nil {
		return nil, apperr.ErrUnauthorized
	}

	return &userPort.Identity{UserID: claims.Subject, Username: claims.Username}, nil
}

// RegisterUser creates an account and sends the welcome mail.
func (s *UserService) RegisterUser(ctx context.Context, in userPort.RegisterInput) (*userPort.UserDTO, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	existing, err := s.UserRepository.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case err == nil && existing.Username == in.Username:
		return nil, apperr.Invalid("username", "a user with that username already exists")
	case err == nil:
		return nil, apperr.Invalid("email", "a user with that email already exists")
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &userEntity.User{
		ID:        uuid.Must(uuid.NewV4()),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
	}

	u, err := s.UserRepository.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Invalid("username", "a user with that username already exists")
		}
		return nil, err
	}

	s.sendWelcome(ctx, u)
	return userPort.NewUserDTO(u), nil
}

func (s *UserService) sendWelcome(ctx context.Context, u *userEntity.User) {
	if s.Mailer == nil {
		return
	}
	body := fmt.Sprintf("Hello, %s!\n\nYour yatube account is ready.\n", displayName(u))
	if err := s.Mailer.Send(ctx, []string{u.Email}, "Welcome to yatube", body); err != nil {
		config.Logger.Error("Failed to send welcome mail", zap.String("username", u.Username), zap.Error(err))
	}
}

func displayName(u *userEntity.User) string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

func validateRegistration(in userPort.RegisterInput) error {
	switch {
	case in.Username == "":
		return apperr.Invalid("username", "this field is required")
	case len(in.Username) > maxUsernameLength:
		return apperr.Invalid("username", "ensure this field has no more than 150 characters")
	case !usernamePattern.MatchString(in.Username):
		return apperr.Invalid("username", "letters, digits and @/./+/-/_ only")
	case in.Email == "":
		return apperr.Invalid("email", "this field is required")
	case len(in.Password) < minPasswordLength:
		return apperr.Invalid("password", "this password is too short, it must contain at least 8 characters")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperr.Invalid("email", "enter a valid email address")
	}
	return nil
}
