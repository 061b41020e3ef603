package service

import (
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/beka-birhanu/vinom-labyrinth/logger"
	"github.com/beka-birhanu/vinom-labyrinth/service/i"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid username or password")

// Auth registers players and issues their tokens.
type Auth struct {
	playerRepo i.PlayerRepo
	tokenizer  i.Tokenizer
	logger     logger.Logger
}

var _ i.Authenticator = &Auth{}

// NewAuthService creates an Auth service.
func NewAuthService(pr i.PlayerRepo, t i.Tokenizer, l logger.Logger) (*Auth, error) {
	if pr == nil || t == nil {
		return nil, errors.New("auth service needs a player repo and a tokenizer")
	}
	if l == nil {
		l = logger.Nop{}
	}
	return &Auth{playerRepo: pr, tokenizer: t, logger: l}, nil
}

// Register creates a player with the given credentials.
func (a *Auth) Register(username, password string) error {
	player, err := dmn.NewPlayer(dmn.PlayerConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if _, err := a.playerRepo.ByUsername(username); err == nil {
		return i.ErrUsernameConflict
	}

	if err := a.playerRepo.Save(player); err != nil {
		a.logger.Error(fmt.Sprintf("saving player %s: %s", username, err))
		return err
	}

	a.logger.Info(fmt.Sprintf("player registered: %s", player.ID))
	return nil
}

// SignIn checks the credentials and returns the player with a fresh token.
func (a *Auth) SignIn(username, password string) (*dmn.Player, string, error) {
	player, err := a.playerRepo.ByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !player.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		i.ClaimPlayerID: player.ID.String(),
		i.ClaimUsername: player.Username,
	}, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return player, token, nil
}
