package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bravoo/internal/model"
	"bravoo/internal/repository"

	"github.com/google/uuid"
)

const (
	usernameMinLen   = 2
	usernameMaxLen   = 20
	tokenBytes       = 32
	leaderboardLimit = 50
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type UserService struct {
	repo UserRepository
	now  func() time.Time
}

func NewUserService(repo UserRepository, now func() time.Time) *UserService {
	return &UserService{
		repo: repo,
		now:  now,
	}
}

// Auth logs the user in by username, creating the account with a fresh
// bearer token on first sight. The second return value reports whether
// the account was just created.
func (s *UserService) Auth(ctx context.Context, username string) (*model.User, bool, error) {
	trimmed := strings.TrimSpace(username)
	if len(trimmed) < usernameMinLen || len(trimmed) > usernameMaxLen || !usernamePattern.MatchString(trimmed) {
		return nil, false, ErrInvalidUsername
	}

	user, err := s.repo.UserByUsername(ctx, trimmed)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := mintToken()
	if err != nil {
		return nil, false, fmt.Errorf("failed to mint token: %w", err)
	}

	user = &model.User{
		ID:        uuid.NewString(),
		Username:  trimmed,
		Token:     token,
		Rank:      BaseRank.Name,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	return user, true, nil
}

func (s *UserService) UserByToken(ctx context.Context, token string) (*model.User, error) {
	user, err := s.repo.UserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}
	return user, nil
}

type Profile struct {
	Username      string
	Stars         int
	Gold          int
	Rank          RankInfo
	NextRank      *RankInfo
	StarsToLegend int
	RemainingDays int
}

// Profile derives the display view for the character screen. Rank is
// recomputed from stars rather than read from the cache.
func (s *UserService) Profile(user *model.User) *Profile {
	rank := RankFor(user.Stars)

	toLegend := MaxStars - user.Stars
	if toLegend < 0 {
		toLegend = 0
	}

	return &Profile{
		Username:      user.Username,
		Stars:         user.Stars,
		Gold:          user.Gold,
		Rank:          rank,
		NextRank:      NextRank(rank.Name),
		StarsToLegend: toLegend,
		RemainingDays: RemainingDays(s.now().UTC()),
	}
}

func (s *UserService) Leaderboard(ctx context.Context) ([]*model.LeaderboardEntry, error) {
	entries, err := s.repo.TopUsers(ctx, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}
	return entries, nil
}

func mintToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
