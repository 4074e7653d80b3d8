package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vet-clinic-appointments/internal/ports/auth"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmailTaken          = errors.New("email already exists")
	ErrInvalidAdminCode    = errors.New("invalid admin code")
	ErrDoctorNotRegistered = errors.New("doctor id and email do not match any registered doctor")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRoleMismatch        = errors.New("role does not match login door")
)

// DoctorRegistry gate del registro de doctores (implementado por doctors.Service).
type DoctorRegistry interface {
	IsRegistered(ctx context.Context, doctorID, email string) (bool, error)
}

// TokenIssuer firma el token de sesión en login (implementado por jwtauth.Issuer).
// Puede ser nil en dev: login devuelve token vacío.
type TokenIssuer interface {
	Issue(c auth.Claims) (string, error)
}

type Service struct {
	repo      Repository
	registry  DoctorRegistry
	issuer    TokenIssuer
	adminCode string
	now       func() time.Time
}

func NewService(repo Repository, registry DoctorRegistry, issuer TokenIssuer, adminCode string) *Service {
	return &Service{
		repo:      repo,
		registry:  registry,
		issuer:    issuer,
		adminCode: adminCode,
		now:       time.Now,
	}
}

type RegisterInput struct {
	Role     string
	Username string
	Email    string
	Password string

	Name     string
	AdminID  string
	DoctorID string
	Phone    string
	City     string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	role := Role(strings.TrimSpace(in.Role))
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if role == "" || username == "" || email == "" || in.Password == "" {
		return User{}, ErrInvalidInput
	}
	if role != RoleAdmin && role != RoleDoctor && role != RolePetParent {
		return User{}, ErrInvalidInput
	}

	// Un admin se registra presentando el código secreto.
	if role == RoleAdmin && in.AdminID != s.adminCode {
		return User{}, ErrInvalidAdminCode
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	// Un doctor solo se registra con un par (doctorId, email) provisionado por admin.
	if role == RoleDoctor {
		ok, err := s.registry.IsRegistered(ctx, in.DoctorID, email)
		if err != nil {
			return User{}, err
		}
		if !ok {
			return User{}, ErrDoctorNotRegistered
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch role {
	case RoleAdmin:
		u.Name = strings.TrimSpace(in.Name)
		u.AdminID = in.AdminID
	case RoleDoctor:
		u.Name = strings.TrimSpace(in.Name)
		u.DoctorID = strings.TrimSpace(in.DoctorID)
	case RolePetParent:
		u.Phone = strings.TrimSpace(in.Phone)
		u.City = strings.TrimSpace(in.City)
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login valida credenciales y la puerta de rol. El admin puede entrar
// por cualquier puerta; el resto debe entrar por la de su rol.
func (s *Service) Login(ctx context.Context, email, password, loginAs string) (User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	if normalizeRole(string(u.Role)) != "admin" &&
		normalizeRole(string(u.Role)) != normalizeRole(loginAs) {
		return User{}, "", ErrRoleMismatch
	}

	var token string
	if s.issuer != nil {
		token, err = s.issuer.Issue(auth.Claims{
			UserID: u.ID,
			Email:  u.Email,
			Role:   string(u.Role),
		})
		if err != nil {
			return User{}, "", err
		}
	}

	return u, token, nil
}

// FindByEmail es el user directory que consume el booking de citas.
func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, strings.TrimSpace(email))
}

// ListDoctors devuelve los usuarios con rol Doctor (vista "available doctors").
func (s *Service) ListDoctors(ctx context.Context) ([]User, error) {
	return s.repo.ListByRole(ctx, RoleDoctor)
}

// ListNonAdmins devuelve todos los usuarios excepto admins.
func (s *Service) ListNonAdmins(ctx context.Context) ([]User, error) {
	return s.repo.ListExcludingRole(ctx, RoleAdmin)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Username *string
	Name     *string
	Phone    *string
	City     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return User{}, err
	}

	if in.Username != nil {
		if strings.TrimSpace(*in.Username) == "" {
			return User{}, ErrInvalidInput
		}
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.City != nil {
		u.City = strings.TrimSpace(*in.City)
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func normalizeRole(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}
