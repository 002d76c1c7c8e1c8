package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-client/internal/route"
	"github.com/rocketscienceinc/tictactoe-client/internal/service"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/rest"
	"github.com/rocketscienceinc/tictactoe-client/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
	"github.com/rocketscienceinc/tictactoe-client/pkg/cookie"
)

var (
	ErrAddrNotFound = errors.New("redis host is empty")
	ErrNoSession    = errors.New("no session to start a game in")
)

// app holds what every command needs once the config is loaded.
type app struct {
	logger  *slog.Logger
	storage *storage.RedisStorage
	jar     repository.CookieRepository
	client  *rest.Client

	input *bufio.Scanner
	out   io.Writer
}

// RunApp - runs the command line client until the command finishes or a signal arrives.
func RunApp(in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
	}()

	that := &app{input: bufio.NewScanner(in), out: out}
	defer that.close()

	return that.command().ExecuteContext(ctx)
}

func (that *app) command() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "tictactoe",
		Short:         "Play tic-tac-toe against the game backend from a terminal.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return that.connect(cmd.Context(), configPath)
		},
	}

	cmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "path to the config file")

	cmd.AddCommand(
		that.loginCommand(),
		that.sessionCommand(),
		that.playCommand(),
		that.newGameCommand(),
		that.scoresCommand(),
		that.logoutCommand(),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

// connect loads the config and opens the cookie storage and the backend client.
func (that *app) connect(ctx context.Context, configPath string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	that.logger = initLogger(conf)

	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr(), conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	that.storage = redisStorage
	that.jar = repository.NewCookieRepository(redisStorage.Connection, conf.Cookies.Profile, conf.Cookies.TTL)
	that.client = rest.New(that.logger, conf.API.BaseURL, conf.API.Timeout)

	return nil
}

func (that *app) close() {
	if that.storage == nil {
		return
	}

	if err := that.storage.Close(); err != nil {
		that.logger.Error("could not close redis storage", "component", "app", "error", err)
	}
}

// initLogger writes JSON logs to stderr so they never mix with the board on stdout.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (that *app) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				var err error
				if password, err = that.prompt("Password: "); err != nil {
					return err
				}
			}

			location := route.NewLocation("/")
			flow := usecase.NewLoginFlow(that.logger, that.client, that.jar, service.NewTokenInspector(), location)

			if err := flow.Login(cmd.Context(), email, password); err != nil {
				return err
			}

			fmt.Fprintf(that.out, "Logged in. Next: %s\n", location.Location())

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, asked for when empty")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func (that *app) sessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start a session or find the unfinished game to resume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			location := route.NewLocation(route.SessionViewPath)
			if err := that.openSession(cmd.Context(), location); err != nil {
				return err
			}

			fmt.Fprintln(that.out, location.Location())

			return nil
		},
	}
}

func (that *app) playCommand() *cobra.Command {
	var rows, cols int

	cmd := &cobra.Command{
		Use:   "play [game path]",
		Short: "Play interactively; without a path the session is opened first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := route.NewLocation(route.SessionViewPath)

			if len(args) == 1 {
				location = route.NewLocation(args[0])
			} else if err := that.openSession(cmd.Context(), location); err != nil {
				return err
			}

			return that.play(cmd.Context(), location, rows, cols)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 3, "board rows")
	cmd.Flags().IntVar(&cols, "cols", 3, "board columns")

	return cmd
}

func (that *app) newGameCommand() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "new-game",
		Short: "Create a game in the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if sessionID == "" {
				stored, err := that.jar.Get(ctx, cookie.SessionID)
				if err != nil && !errors.Is(err, repository.ErrCookieNotFound) {
					return err
				}
				sessionID = stored
			}

			location := route.NewLocation(route.SessionViewPath)
			if err := that.startGame(ctx, location, entity.ID(sessionID)); err != nil {
				return err
			}

			fmt.Fprintln(that.out, location.Location())

			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id, the stored one when empty")

	return cmd
}

func (that *app) scoresCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show the high score table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page := view.NewPage(0, 0)

			if err := usecase.NewScoreBoard(that.logger, that.client, page).Update(cmd.Context()); err != nil {
				return err
			}

			return page.RenderScores(that.out)
		},
	}
}

func (that *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token and game hints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return that.jar.Clear(cmd.Context())
		},
	}
}

// openSession runs the session bootstrap. When it leaves the choice of game to us, a new
// game is created in the session it reported.
func (that *app) openSession(ctx context.Context, location *route.Location) error {
	result, err := usecase.NewSessionBootstrapper(that.logger, that.client, that.jar, location).Start(ctx)
	if err != nil {
		return err
	}

	if result.Outcome == usecase.BootstrapResumed {
		return nil
	}

	return that.startGame(ctx, location, result.SessionID)
}

func (that *app) startGame(ctx context.Context, location *route.Location, sessionID entity.ID) error {
	if sessionID.IsEmpty() {
		return ErrNoSession
	}

	token, err := that.jar.Get(ctx, cookie.AccessToken)
	if errors.Is(err, repository.ErrCookieNotFound) {
		return apperror.ErrNotAuthorized
	}
	if err != nil {
		return err
	}

	_, err = usecase.NewNewGameFlow(that.logger, that.client, location).Start(ctx, token, sessionID)

	return err
}

func (that *app) prompt(label string) (string, error) {
	fmt.Fprint(that.out, label)

	if !that.input.Scan() {
		if err := that.input.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}

	return strings.TrimSpace(that.input.Text()), nil
}
