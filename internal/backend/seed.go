package backend

import (
	"context"
	"fmt"
	"strings"

	authUseCase "github.com/ghaniswara/workmatch/internal/backend/usecase/auth"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/go-faker/faker/v4"
)

// SeedPassword is the password of every seeded user.
const SeedPassword = "password123"

var (
	departments = []string{"Engineering", "Design", "Marketing", "Sales", "Finance", "People"}
	jobTitles   = []string{"Engineer", "Designer", "Analyst", "Manager", "Consultant"}
)

// Seed registers n fake users through the normal sign-up path. Genders rotate
// through every value and each user is interested in the other genders.
func Seed(ctx context.Context, auth authUseCase.IAuthUseCase, n int) ([]entity.User, error) {
	genders := entity.AllGenders()
	users := make([]entity.User, 0, n)

	for i := 0; i < n; i++ {
		gender := genders[i%len(genders)]

		var interests []entity.Gender
		for _, g := range genders {
			if g != gender {
				interests = append(interests, g)
			}
		}

		username := fmt.Sprintf("%s%d", strings.ToLower(faker.Username()), i)
		req := entity.SignUpRequest{
			Username:            username,
			Email:               username + "@workmatch.test",
			Password:            SeedPassword,
			FirstName:           faker.FirstName(),
			LastName:            faker.LastName(),
			BirthDate:           faker.Date(),
			Department:          departments[i%len(departments)],
			JobTitle:            jobTitles[i%len(jobTitles)],
			Gender:              gender,
			InterestedInGenders: interests,
		}

		user, err := auth.SignupUser(ctx, req)
		if err != nil {
			return users, fmt.Errorf("seed user %s: %w", username, err)
		}
		users = append(users, *user)
	}

	logger.Info("seeded users", "count", len(users), "password", SeedPassword)
	return users, nil
}
