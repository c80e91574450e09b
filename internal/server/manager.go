// Package server exposes games over a websocket transport: a Manager owns
// the live game instances and serializes access per game, a Hub speaks the
// JSON protocol to connected clients.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"papertactics/internal/bot"
	"papertactics/internal/game"
	"papertactics/internal/game/core"
	"papertactics/internal/game/events"
	"papertactics/internal/game/events/subscribers"
)

// gameInstance pairs a game with the lock that serializes access to it.
// The engine itself is a single-threaded state machine; one game = one
// mutex is the whole concurrency model.
type gameInstance struct {
	id   string
	mu   sync.Mutex
	game *game.Game

	host    string
	prefs   game.Preferences
	started bool

	createdAt    time.Time
	lastActivity time.Time
}

// ManagerConfig holds Manager settings.
type ManagerConfig struct {
	MaxGames        int
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
}

// Manager manages all active game instances.
type Manager struct {
	mu     sync.RWMutex
	games  map[string]*gameInstance
	cfg    ManagerConfig
	bus    *events.EventBus
	logger zerolog.Logger
	done   chan struct{}
}

// NewManager creates a game manager and starts its idle-game cleanup loop.
// Call Close to stop it.
func NewManager(cfg ManagerConfig, logger zerolog.Logger) *Manager {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}

	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("game-events", logger, zerolog.DebugLevel))

	m := &Manager{
		games:  make(map[string]*gameInstance),
		cfg:    cfg,
		bus:    bus,
		logger: logger.With().Str("component", "game_manager").Logger(),
		done:   make(chan struct{}),
	}
	go m.runCleanup()
	return m
}

// Close stops the cleanup loop.
func (m *Manager) Close() {
	close(m.done)
}

// UpdateLimits applies new game-count and idle settings, typically after a
// configuration reload. Existing games are unaffected until the next
// cleanup pass.
func (m *Manager) UpdateLimits(maxGames int, idleTimeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg.MaxGames = maxGames
	m.cfg.IdleTimeout = idleTimeout
	m.logger.Info().
		Int("max_games", maxGames).
		Dur("idle_timeout", idleTimeout).
		Msg("Manager limits updated")
}

// CreateGame registers a new game hosted by the given player. Bot games
// start immediately against the default policy; human games wait for a
// second player to join.
func (m *Manager) CreateGame(hostID string, prefs game.Preferences) (string, error) {
	if err := prefs.Validate(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.games) >= m.cfg.MaxGames {
		return "", fmt.Errorf("game limit of %d reached", m.cfg.MaxGames)
	}

	id := uuid.New().String()
	inst := &gameInstance{
		id:           id,
		host:         hostID,
		prefs:        prefs,
		createdAt:    time.Now(),
		lastActivity: time.Now(),
	}

	if prefs.IsAgainstBot {
		g := game.NewGame(id, prefs, game.NewPlayer(hostID), game.NewPlayer("bot:"+id), nil, m.logger)
		g.Policy = bot.NewGreedy(nil)
		g.SetEventBus(m.bus)
		if err := g.Init(); err != nil {
			return "", err
		}
		inst.game = g
		inst.started = true
	}

	m.games[id] = inst
	m.logger.Info().
		Str("game_id", id).
		Str("host", hostID).
		Bool("against_bot", prefs.IsAgainstBot).
		Msg("Game created")
	return id, nil
}

// JoinGame adds a second player to a waiting game and starts it.
func (m *Manager) JoinGame(gameID, playerID string) error {
	inst, err := m.instance(gameID)
	if err != nil {
		return err
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.started {
		return fmt.Errorf("game %s: %w", gameID, core.ErrGameFull)
	}
	if playerID == inst.host {
		return fmt.Errorf("game %s: host cannot join their own game: %w", gameID, core.ErrIntegrity)
	}

	g := game.NewGame(gameID, inst.prefs, game.NewPlayer(inst.host), game.NewPlayer(playerID), nil, m.logger)
	g.SetEventBus(m.bus)
	if err := g.Init(); err != nil {
		return err
	}
	inst.game = g
	inst.started = true
	inst.lastActivity = time.Now()

	m.logger.Info().Str("game_id", gameID).Str("player", playerID).Msg("Game started")
	return nil
}

// MakeTurn submits a move on behalf of a player.
func (m *Manager) MakeTurn(gameID, playerID string, cell core.Cell) error {
	inst, err := m.instance(gameID)
	if err != nil {
		return err
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	if !inst.started {
		return fmt.Errorf("game %s has not started", gameID)
	}
	inst.lastActivity = time.Now()
	return inst.game.MakeTurn(playerID, cell)
}

// View returns the fog-limited projection of a game for one player.
func (m *Manager) View(gameID, playerID string) (game.GameView, error) {
	inst, err := m.instance(gameID)
	if err != nil {
		return game.GameView{}, err
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	if !inst.started {
		return game.GameView{}, fmt.Errorf("game %s has not started", gameID)
	}
	return inst.game.View(playerID)
}

// Players returns the identities attached to a game: the host, and the
// second player once the game has started.
func (m *Manager) Players(gameID string) ([]string, error) {
	inst, err := m.instance(gameID)
	if err != nil {
		return nil, err
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	players := []string{inst.host}
	if inst.started {
		g := inst.game
		if g.Active.ID != inst.host {
			players = append(players, g.Active.ID)
		}
		if g.Passive.ID != inst.host {
			players = append(players, g.Passive.ID)
		}
	}
	return players, nil
}

// GameCount returns the number of registered games.
func (m *Manager) GameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func (m *Manager) instance(gameID string) (*gameInstance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inst, ok := m.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return inst, nil
}

// runCleanup periodically removes games with no recent activity.
func (m *Manager) runCleanup() {
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.removeIdleGames()
		}
	}
}

func (m *Manager) removeIdleGames() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.IdleTimeout <= 0 {
		return
	}
	cutoff := time.Now().Add(-m.cfg.IdleTimeout)
	for id, inst := range m.games {
		inst.mu.Lock()
		idle := inst.lastActivity.Before(cutoff)
		inst.mu.Unlock()
		if idle {
			delete(m.games, id)
			m.logger.Info().Str("game_id", id).Msg("Removed idle game")
		}
	}
}
