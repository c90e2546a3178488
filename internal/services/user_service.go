package services

import (
	"context"
	"log"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/auth"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Signup registers a new account. The very first account in the system
// becomes the superuser; everyone after that signs up as staff and must
// be promoted by a superuser.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation("name, email, and password are required")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.Validation("password must be at least 6 characters")
	}

	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.Conflict("user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	count, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := models.RoleStaff
	if count == 0 {
		role = models.RoleSuperuser
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	log.Printf("[Users] signup: %s (%s)", user.Email, user.Role)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a user and returns a JWT token.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Validation("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperrors.Validation("account is disabled")
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.Validation("invalid email or password")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation("name, email, and password are required")
	}
	if req.Role != models.RoleSuperuser && req.Role != models.RoleStaff {
		return nil, apperrors.Validation("role must be superuser or staff")
	}
	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.Conflict("user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		if req.Role != models.RoleSuperuser && req.Role != models.RoleStaff {
			return nil, apperrors.Validation("role must be superuser or staff")
		}
		user.Role = req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hashedPassword, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
