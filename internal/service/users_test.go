package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"bravoo/internal/model"
	"bravoo/internal/repository"
	"bravoo/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestUserService(repo *mocks.MockUserRepository) *UserService {
	return NewUserService(repo, func() time.Time { return testNow })
}

func TestUserService_Auth(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		mockSetup     func(repo *mocks.MockUserRepository)
		expectedError error
		expectedNew   bool
		checkUser     func(t *testing.T, user *model.User)
	}{
		{
			name:          "Too short",
			username:      "a",
			expectedError: ErrInvalidUsername,
		},
		{
			name:          "Too long",
			username:      strings.Repeat("x", 21),
			expectedError: ErrInvalidUsername,
		},
		{
			name:          "Forbidden characters",
			username:      "bad name!",
			expectedError: ErrInvalidUsername,
		},
		{
			name:          "Whitespace only",
			username:      "   ",
			expectedError: ErrInvalidUsername,
		},
		{
			name:     "Existing account logs in without a write",
			username: "fitfan_42",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UserByUsername", mock.Anything, "fitfan_42").
					Return(&model.User{ID: "u1", Username: "fitfan_42", Token: "tok", Stars: 2, Rank: "Gold"}, nil)
			},
			expectedNew: false,
			checkUser: func(t *testing.T, user *model.User) {
				assert.Equal(t, "u1", user.ID)
				assert.Equal(t, 2, user.Stars)
			},
		},
		{
			name:     "Unknown username creates the account",
			username: "  newbie  ",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UserByUsername", mock.Anything, "newbie").
					Return(nil, repository.ErrNotFound)
				repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *model.User) bool {
					return user.Username == "newbie" &&
						user.ID != "" &&
						len(user.Token) == tokenBytes*2 &&
						user.Stars == 0 &&
						user.Gold == 0 &&
						user.Rank == BaseRank.Name
				})).Return(nil)
			},
			expectedNew: true,
			checkUser: func(t *testing.T, user *model.User) {
				assert.Equal(t, "newbie", user.Username)
				assert.Equal(t, BaseRank.Name, user.Rank)
				assert.NotEmpty(t, user.Token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockUserRepository{}
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}

			service := newTestUserService(mockRepo)
			user, isNew, err := service.Auth(context.Background(), tt.username)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				mockRepo.AssertNotCalled(t, "UserByUsername", mock.Anything, mock.Anything)
				mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedNew, isNew)
				if tt.checkUser != nil {
					tt.checkUser(t, user)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Auth_TokensDiffer(t *testing.T) {
	mockRepo := &mocks.MockUserRepository{}
	mockRepo.On("UserByUsername", mock.Anything, mock.Anything).
		Return(nil, repository.ErrNotFound)
	mockRepo.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil)

	service := newTestUserService(mockRepo)

	first, _, err := service.Auth(context.Background(), "player_one")
	assert.NoError(t, err)
	second, _, err := service.Auth(context.Background(), "player_two")
	assert.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUserService_UserByToken(t *testing.T) {
	mockRepo := &mocks.MockUserRepository{}
	mockRepo.On("UserByToken", mock.Anything, "known").
		Return(&model.User{ID: "u1", Token: "known"}, nil)
	mockRepo.On("UserByToken", mock.Anything, "unknown").
		Return(nil, repository.ErrNotFound)

	service := newTestUserService(mockRepo)

	user, err := service.UserByToken(context.Background(), "known")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = service.UserByToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Profile(t *testing.T) {
	service := newTestUserService(&mocks.MockUserRepository{})

	profile := service.Profile(&model.User{
		Username: "fitfan_42",
		Stars:    3,
		Gold:     1200,
		Rank:     "Platinum",
	})

	assert.Equal(t, "fitfan_42", profile.Username)
	assert.Equal(t, "Platinum", profile.Rank.Name)
	assert.NotNil(t, profile.NextRank)
	assert.Equal(t, "Legend", profile.NextRank.Name)
	assert.Equal(t, 1, profile.StarsToLegend)
	// testNow is 2026-08-28, so three days of August remain.
	assert.Equal(t, 3, profile.RemainingDays)
}

func TestUserService_Profile_AtTheCap(t *testing.T) {
	service := newTestUserService(&mocks.MockUserRepository{})

	profile := service.Profile(&model.User{Username: "champ", Stars: MaxStars})

	assert.Equal(t, "Legend", profile.Rank.Name)
	assert.Nil(t, profile.NextRank)
	assert.Equal(t, 0, profile.StarsToLegend)
}

func TestUserService_Leaderboard(t *testing.T) {
	// The store returns rows already ordered by stars desc, then
	// username asc; the service passes them through untouched.
	entries := []*model.LeaderboardEntry{
		{Username: "anna", Stars: 4, Gold: 2000, Rank: "Legend"},
		{Username: "boris", Stars: 4, Gold: 900, Rank: "Legend"},
		{Username: "zoe", Stars: 1, Gold: 3000, Rank: "Silver"},
	}

	mockRepo := &mocks.MockUserRepository{}
	mockRepo.On("TopUsers", mock.Anything, leaderboardLimit).
		Return(entries, nil)

	service := newTestUserService(mockRepo)
	got, err := service.Leaderboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, entries, got)

	mockRepo.AssertExpectations(t)
}
