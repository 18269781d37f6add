package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/wordduel-go/internal/dependencies/clock"
	"github.com/mcoot/wordduel-go/internal/dependencies/random"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/board"
	"github.com/mcoot/wordduel-go/internal/services/dictionary"
	"github.com/mcoot/wordduel-go/internal/services/endgame"
	"github.com/mcoot/wordduel-go/internal/services/game"
	"github.com/mcoot/wordduel-go/internal/services/lobby"
	"github.com/mcoot/wordduel-go/internal/services/registry"
	"github.com/mcoot/wordduel-go/internal/services/scoring"
	"github.com/mcoot/wordduel-go/internal/services/tilebag"
	"github.com/mcoot/wordduel-go/internal/services/timer"
	"github.com/mcoot/wordduel-go/internal/storage"
	"github.com/mcoot/wordduel-go/internal/storage/memory"
	redisstorage "github.com/mcoot/wordduel-go/internal/storage/redis"
	"github.com/mcoot/wordduel-go/internal/ws"
)

// Cache type constants
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// Dictionary source constants
const (
	DictionarySourceWordList = "wordlist"
	DictionarySourceAPI      = "api"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage
	Cache   storage.DictionaryCache

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Registry          *registry.Registry
	WordList          *dictionary.WordListSource // Nil when words are checked against the API
	DictionaryService *dictionary.Service
	BoardService      *board.Service
	ScoringService    *scoring.Service
	TilebagService    *tilebag.Service
	TimerService      *timer.Service
	EndgameService    *endgame.Service
	GameController    *game.Controller
	LobbyController   *lobby.Controller
	HubManager        *ws.HubManager
	WSServer          *ws.Server

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger

	// CacheType selects the dictionary cache backend ("memory" or "redis")
	// If empty, defaults to "memory". Rooms always live in memory.
	CacheType string
	// RedisConfig holds Redis connection settings (required if CacheType is "redis")
	RedisConfig *redisstorage.Config

	// DictionarySource selects where words are checked ("wordlist" or "api")
	// If empty, defaults to "wordlist"
	DictionarySource string
	// DictionaryPath is the word list file (optional)
	// If empty, the list is loaded from the cache or must be loaded manually
	DictionaryPath string
	// DictionaryAPIURL overrides the dictionary API base URL (optional)
	DictionaryAPIURL string
	// Dictionary holds lookup timeouts
	// If zero value, defaults to dictionary.DefaultConfig()
	Dictionary dictionary.Config

	// Defaults for create_room options a client leaves out
	Defaults ws.Defaults
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var closers []io.Closer
	store := memory.New()

	// Create dictionary cache based on type
	var cache storage.DictionaryCache
	cacheType := cfg.CacheType
	if cacheType == "" {
		cacheType = CacheTypeMemory
	}

	switch cacheType {
	case CacheTypeMemory:
		cache = store
	case CacheTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when CacheType is redis")
		}
		redisCache, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		cache = redisCache
		closers = append(closers, redisCache)
	default:
		return nil, errors.New("invalid CacheType: must be 'memory' or 'redis'")
	}

	// Create dictionary source
	var source dictionary.Source
	var wordList *dictionary.WordListSource
	switch cfg.DictionarySource {
	case "", DictionarySourceWordList:
		wordList = dictionary.NewWordListSource(cache)
		if cfg.DictionaryPath != "" {
			if err := wordList.LoadFromFile(ctx, cfg.DictionaryPath); err != nil {
				return nil, fmt.Errorf("loading dictionary: %w", err)
			}
		} else if err := wordList.LoadFromStorage(ctx); err != nil && !errors.Is(err, model.ErrDictionaryNotLoaded) {
			return nil, fmt.Errorf("loading dictionary: %w", err)
		}
		source = wordList
	case DictionarySourceAPI:
		source = dictionary.NewAPISource(cfg.DictionaryAPIURL, &http.Client{})
	default:
		return nil, errors.New("invalid DictionarySource: must be 'wordlist' or 'api'")
	}

	dictCfg := cfg.Dictionary
	if dictCfg.ValidityTimeout == 0 || dictCfg.DefinitionTimeout == 0 {
		dictCfg = dictionary.DefaultConfig()
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, cache, source, dictCfg, clk, rnd, cfg.Defaults, logger)
	app.WordList = wordList
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	cache storage.DictionaryCache,
	source dictionary.Source,
	dictCfg dictionary.Config,
	clk clock.Clock,
	rnd random.Random,
	defaults ws.Defaults,
	logger *slog.Logger,
) *App {
	// Create services
	roomRegistry := registry.New(store, clk, logger)
	dictService := dictionary.New(source, cache, dictCfg, logger)
	boardService := board.New()
	scoringService := scoring.New()
	tilebagService := tilebag.New(rnd)
	timerService := timer.New(clk)
	endgameService := endgame.New(scoringService)
	gameController := game.NewController(
		roomRegistry,
		boardService,
		scoringService,
		tilebagService,
		timerService,
		endgameService,
		dictService,
		clk,
		logger,
	)
	lobbyController := lobby.NewController(roomRegistry, tilebagService, timerService, clk, rnd, logger)

	// Committed rooms go out to their players in commit order
	hubManager := ws.NewHubManager(logger)
	roomRegistry.OnCommit(hubManager.Publish)
	wsServer := ws.NewServer(lobbyController, gameController, hubManager, clk, defaults, logger)

	return &App{
		Storage:           store,
		Cache:             cache,
		Clock:             clk,
		Random:            rnd,
		Registry:          roomRegistry,
		DictionaryService: dictService,
		BoardService:      boardService,
		ScoringService:    scoringService,
		TilebagService:    tilebagService,
		TimerService:      timerService,
		EndgameService:    endgameService,
		GameController:    gameController,
		LobbyController:   lobbyController,
		HubManager:        hubManager,
		WSServer:          wsServer,
	}
}

// Close stops the room workers, then the hubs, then external connections
func (a *App) Close() error {
	a.Registry.Close()
	a.HubManager.Close()

	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
