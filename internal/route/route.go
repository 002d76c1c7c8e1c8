package route

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const (
	SessionViewPath = "/session_view"
	gameSegment     = "game"
)

var ErrNotGameView = errors.New("path is not a game view")

// GameView builds /session_view/<sessionID>/game/<gameID>.
func GameView(sessionID, gameID entity.ID) string {
	return fmt.Sprintf("%s/%s/%s/%s", SessionViewPath, url.PathEscape(sessionID.String()), gameSegment, url.PathEscape(gameID.String()))
}

// SessionView builds the landing path the login flow redirects to.
func SessionView(token string) string {
	if token == "" {
		return SessionViewPath
	}
	return SessionViewPath + "?token=" + url.QueryEscape(token)
}

// ParseGameView extracts the session and game ids from a location. Query string and
// scheme/host are ignored.
func ParseGameView(location string) (entity.ID, entity.ID, error) {
	path := location
	if parsed, err := url.Parse(location); err == nil {
		path = parsed.Path
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 || "/"+parts[0] != SessionViewPath || parts[2] != gameSegment || parts[1] == "" || parts[3] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrNotGameView, location)
	}

	return entity.ID(parts[1]), entity.ID(parts[3]), nil
}

// Navigator moves the client to another page.
type Navigator interface {
	Navigate(path string)
	Location() string
}

// Location is an in-process navigator: the current path plus a change notification.
type Location struct {
	mu      sync.Mutex
	path    string
	changed chan struct{}
}

func NewLocation(path string) *Location {
	return &Location{
		path:    path,
		changed: make(chan struct{}, 1),
	}
}

func (that *Location) Navigate(path string) {
	that.mu.Lock()
	that.path = path
	that.mu.Unlock()

	select {
	case that.changed <- struct{}{}:
	default:
	}
}

func (that *Location) Location() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.path
}

// Changed fires after Navigate. Notifications coalesce.
func (that *Location) Changed() <-chan struct{} {
	return that.changed
}
