package userRepo

import (
	"context"
	"errors"

	"github.com/ghaniswara/workmatch/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("user not found")

type IUserRepo interface {
	CreateUser(ctx context.Context, user entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id uint) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateProfile(ctx context.Context, id uint, req entity.UpdateProfileRequest) (*entity.User, error)
	// GetPotentialMatches returns active users other than userID whose gender
	// is in genders, excluding excludeIDs. Colleagues from department come first.
	GetPotentialMatches(ctx context.Context, userID uint, genders []entity.Gender, department string, excludeIDs []uint) ([]entity.User, error)
}

type UserRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) IUserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) CreateUser(ctx context.Context, user entity.User) (*entity.User, error) {
	result := r.db.WithContext(ctx).Create(&user)
	return &user, result.Error
}

func (r *UserRepo) GetUserByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &user, result.Error
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &user, result.Error
}

func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count)
	return count > 0, result.Error
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id uint, req entity.UpdateProfileRequest) (*entity.User, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Bio = req.Bio
	user.Department = req.Department
	user.JobTitle = req.JobTitle
	user.ProfileImageURL = req.ProfileImageURL
	user.InterestedInGenders = req.InterestedInGenders

	result := r.db.WithContext(ctx).Save(user)
	return user, result.Error
}

func (r *UserRepo) GetPotentialMatches(ctx context.Context, userID uint, genders []entity.Gender, department string, excludeIDs []uint) ([]entity.User, error) {
	var profiles []entity.User

	if len(genders) == 0 {
		return profiles, nil
	}

	query := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id <> ?", userID).
		Where("active = ?", true).
		Where("gender IN ?", genders)

	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	if department != "" {
		query = query.Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN department = ? THEN 0 ELSE 1 END",
			Vars:               []interface{}{department},
			WithoutParentheses: true,
		}})
	}

	res := query.Order("id").Find(&profiles)
	return profiles, res.Error
}
