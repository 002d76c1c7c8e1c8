package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/route"
	"github.com/rocketscienceinc/tictactoe-client/pkg/cookie"
)

var ErrEmptyToken = errors.New("backend returned an empty access token")

// LoginFlow exchanges credentials for an access token and stores it as a cookie.
type LoginFlow struct {
	logger    *slog.Logger
	api       loginAPI
	jar       cookieJar
	inspector tokenInspector
	navigator route.Navigator
}

func NewLoginFlow(logger *slog.Logger, api loginAPI, jar cookieJar, inspector tokenInspector, navigator route.Navigator) *LoginFlow {
	return &LoginFlow{
		logger:    logger.With("component", "login"),
		api:       api,
		jar:       jar,
		inspector: inspector,
		navigator: navigator,
	}
}

func (that *LoginFlow) Login(ctx context.Context, email, password string) error {
	log := that.logger.With("method", "Login")

	resp, err := that.api.Login(ctx, entity.LoginRequest{Email: email, Password: password})
	if err != nil {
		log.Error("login failed", "error", err)
		return fmt.Errorf("login failed: %w", err)
	}

	if resp.AccessToken == "" {
		return ErrEmptyToken
	}

	if err = that.jar.Set(ctx, cookie.AccessToken, resp.AccessToken); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}

	if subject, subErr := that.inspector.Subject(resp.AccessToken); subErr == nil {
		log = log.With("user", subject)
	} else {
		log.Warn("could not read token subject", "error", subErr)
	}

	log.Info("logged in")
	that.navigator.Navigate(route.SessionView(resp.AccessToken))

	return nil
}
