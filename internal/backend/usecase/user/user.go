package user

import (
	"context"

	userRepo "github.com/ghaniswara/workmatch/internal/backend/repository/user"
	"github.com/ghaniswara/workmatch/internal/entity"
)

type IUserUseCase interface {
	GetProfile(ctx context.Context, id uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uint, req entity.UpdateProfileRequest) (*entity.User, error)
}

type userUseCase struct {
	userRepo userRepo.IUserRepo
}

func New(userRepo userRepo.IUserRepo) IUserUseCase {
	return &userUseCase{userRepo: userRepo}
}

func (u *userUseCase) GetProfile(ctx context.Context, id uint) (*entity.User, error) {
	return u.userRepo.GetUserByID(ctx, id)
}

func (u *userUseCase) UpdateProfile(ctx context.Context, id uint, req entity.UpdateProfileRequest) (*entity.User, error) {
	return u.userRepo.UpdateProfile(ctx, id, req)
}
