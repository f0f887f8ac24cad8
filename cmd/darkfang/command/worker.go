package command

import (
	"fmt"
	"time"

	"github.com/darkfang/darkfang/internal/commands"
	"github.com/darkfang/darkfang/internal/driver"
	"github.com/darkfang/darkfang/internal/game"
	"github.com/darkfang/darkfang/internal/listener"
	"github.com/darkfang/darkfang/internal/messaging"
	"github.com/darkfang/darkfang/internal/session"
	"github.com/darkfang/darkfang/internal/web"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	nats, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	channel := messaging.NewPlayerChannel(nats)

	playerStore, err := cfg.Storage.Players.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating player store: %w", err)
	}
	charStore, err := cfg.Storage.Characters.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}
	roomStore, err := cfg.Storage.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	itemStore, err := cfg.Storage.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	world, err := game.NewWorld(roomStore, itemStore, channel, cfg.Game.StartRoom)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	g := game.NewGame(world, channel, playerStore, charStore, game.Settings{
		Title:          cfg.Game.Title,
		Description:    cfg.Game.Description,
		StartRoom:      cfg.Game.StartRoom,
		MaxCarryWeight: cfg.Game.MaxCarryWeight,
	})
	commands.RegisterAll(g)

	sessions := session.NewManager(g, channel, cfg.Game.Banner)
	cm := listener.NewConnectionManager(sessions)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}

	var driverOpts []driver.DriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}

	workers := service.WorkerList{
		"nats":      nats,
		"driver":    driver.NewDriver([]driver.Manager{world}, driverOpts...),
		"listeners": &listeners,
	}

	if cfg.Web.Addr != "" {
		workers["web"] = web.NewServer(cfg.Web.Addr, g, channel)
	}

	return workers, nil
}
