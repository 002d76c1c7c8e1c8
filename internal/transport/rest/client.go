package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/pkg/cookie"
)

const (
	pathHighScores = "/high_scores"
	pathSession    = "/session"
	pathLogin      = "/login"

	headerRequestID = "X-Request-ID"
)

// Client talks to the game backend.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
}

func New(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:     logger.With("component", "rest-client"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// HighScores - GET /high_scores, no auth.
func (that *Client) HighScores(ctx context.Context) ([]entity.ScoreEntry, error) {
	var scores []entity.ScoreEntry
	if err := that.do(ctx, http.MethodGet, pathHighScores, "", nil, &scores); err != nil {
		return nil, fmt.Errorf("failed to get high scores: %w", err)
	}

	return scores, nil
}

// StartSession - GET /session, optionally carrying a resumption token.
func (that *Client) StartSession(ctx context.Context, token, resumeToken string) (*entity.Session, error) {
	path := pathSession
	if resumeToken != "" {
		path += "?" + url.Values{"token": {resumeToken}}.Encode()
	}

	var session entity.Session
	if err := that.do(ctx, http.MethodGet, path, token, nil, &session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return &session, nil
}

// GetGame - GET /session/{sessionID}/game/{gameID}.
func (that *Client) GetGame(ctx context.Context, token string, sessionID, gameID entity.ID) (*entity.Game, error) {
	var game entity.Game
	if err := that.do(ctx, http.MethodGet, gamePath(sessionID, gameID), token, nil, &game); err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

// MakeMove - POST /session/{sessionID}/game/{gameID} with {row, col}.
func (that *Client) MakeMove(ctx context.Context, token string, sessionID, gameID entity.ID, move entity.Move) (*entity.Game, error) {
	var game entity.Game
	if err := that.do(ctx, http.MethodPost, gamePath(sessionID, gameID), token, move, &game); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	return &game, nil
}

// NewGame - GET /session/{sessionID}/game.
func (that *Client) NewGame(ctx context.Context, token string, sessionID entity.ID) (*entity.NewGameDetails, error) {
	var details entity.NewGameDetails
	path := fmt.Sprintf("%s/%s/game", pathSession, url.PathEscape(sessionID.String()))
	if err := that.do(ctx, http.MethodGet, path, token, nil, &details); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &details, nil
}

// Login - POST /login.
func (that *Client) Login(ctx context.Context, credentials entity.LoginRequest) (*entity.LoginResponse, error) {
	var resp entity.LoginResponse
	if err := that.do(ctx, http.MethodPost, pathLogin, "", credentials, &resp); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	return &resp, nil
}

func gamePath(sessionID, gameID entity.ID) string {
	return fmt.Sprintf("%s/%s/game/%s", pathSession, url.PathEscape(sessionID.String()), url.PathEscape(gameID.String()))
}

func (that *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	requestID := uuid.NewString()
	log := that.logger.With("method", method, "path", path, "request_id", requestID)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Cookie", cookie.Join(map[string]string{cookie.AccessToken: token}))
	}

	resp, err := that.httpClient.Do(req)
	if err != nil {
		log.Debug("request failed", "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("response received", "status", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &apperror.ResponseError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Body:       data,
		}
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(data, out); err != nil {
		log.Warn("undecodable success response", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%w: %w", apperror.ErrMalformedResponse, err)
	}

	return nil
}

// errorMessage reads the message or error field of an error body.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}

	if body.Message != "" {
		return body.Message
	}

	return body.Error
}
