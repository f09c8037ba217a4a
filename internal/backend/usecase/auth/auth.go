package authUseCase

import (
	"context"
	"errors"
	"fmt"

	userRepo "github.com/ghaniswara/workmatch/internal/backend/repository/user"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("Username is already taken!")
	ErrInvalidCredentials = errors.New("Invalid username or password")
)

type IAuthUseCase interface {
	SignupUser(ctx context.Context, request entity.SignUpRequest) (*entity.User, error)
	SignIn(ctx context.Context, username, password string) (*entity.AuthResponse, error)
	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type authUseCase struct {
	userRepo userRepo.IUserRepo
	tokens   *jwt.Manager
	cost     int
}

func New(userRepo userRepo.IUserRepo, tokens *jwt.Manager) IAuthUseCase {
	return &authUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
	}
}

func (p *authUseCase) SignupUser(ctx context.Context, req entity.SignUpRequest) (*entity.User, error) {
	taken, err := p.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entity.User{
		Username:            req.Username,
		Email:               req.Email,
		Password:            string(hashedPassword),
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		BirthDate:           req.BirthDate,
		Department:          req.Department,
		JobTitle:            req.JobTitle,
		Gender:              req.Gender,
		InterestedInGenders: req.InterestedInGenders,
		Active:              true,
	}

	return p.userRepo.CreateUser(ctx, user)
}

func (p *authUseCase) SignIn(ctx context.Context, username, password string) (*entity.AuthResponse, error) {
	user, err := p.userRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := p.tokens.CreateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &entity.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
	}, nil
}

func (p *authUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := p.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := p.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}
	return user, nil
}
