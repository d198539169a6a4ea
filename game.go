package main

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/ebitenui/ebitenui"
	"go.uber.org/zap"

	"github.com/tmago/duel/adapt"
	"github.com/tmago/duel/agent"
	"github.com/tmago/duel/obj"
	"github.com/tmago/duel/observer"
	"github.com/tmago/duel/prefabs"
	"github.com/tmago/duel/telemetry"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tickSeconds = 1.0 / 60.0
)

type Game struct {
	frames int
	now    time.Time

	debug  bool
	paused bool

	configPath string
	spec       prefabs.DuelSpec
	watcher    *prefabs.Watcher
	logger     *zap.Logger

	input       *obj.Input
	world       *obj.CollisionWorld
	player      *obj.Player
	enemy       *obj.Enemy
	projectiles *obj.Projectiles

	log        *telemetry.Log
	tracker    *telemetry.Tracker
	controller *adapt.Controller
	agent      *agent.Agent

	view       obj.View
	pauseUI    *ebitenui.UI
	groundFill *ebiten.Image
}

func NewGame(configPath string, debug bool, logger *zap.Logger) (*Game, error) {
	spec, err := prefabs.LoadDuelSpec(configPath)
	if err != nil {
		return nil, err
	}

	g := &Game{
		now:        time.Now(),
		debug:      debug,
		configPath: configPath,
		logger:     logger,
		view: obj.View{
			PixelsPerUnit: 40,
			OriginX:       baseWidth / 2,
			OriginY:       baseHeight - 160,
		},
	}
	g.input = obj.NewInput()
	g.pauseUI = NewPauseUI(g)

	if err := g.buildEncounter(spec); err != nil {
		return nil, err
	}

	if configPath != "" {
		w, err := prefabs.NewWatcher(configPath)
		if err != nil {
			logger.Warn("config watch unavailable", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

// buildEncounter wires a fresh encounter from the spec: arena, combatants,
// telemetry, adaptation, and the agent itself.
func (g *Game) buildEncounter(spec prefabs.DuelSpec) error {
	cfg, err := spec.ControllerConfig()
	if err != nil {
		return err
	}

	g.spec = spec
	g.world = obj.NewCollisionWorld(obj.DefaultArena())
	g.projectiles = obj.NewProjectiles(g.world)

	g.log = telemetry.NewLog(spec.Tracker.Window(), spec.Tracker.Interval())
	g.tracker = telemetry.NewTracker(g.log, spec.Tracker.Anchors())

	sink := observer.NewSink(g.logger)
	g.controller = adapt.NewController(g.tracker, sink, cfg)

	g.player = obj.NewPlayer(-5, g.world, g.input, g.log)
	g.enemy = obj.NewEnemy(5, g.world, g.projectiles, spec.Enemy.AttackRange)
	g.enemy.SetOpponent(g.player)

	g.agent = agent.New(spec.Enemy, agent.Deps{
		Mover:     g.enemy,
		Combat:    g.enemy,
		Artillery: g.enemy,
		Locator:   g.enemy,
		Threat:    g.enemy,
		Present:   g.enemy,
		Sink:      sink,
		Tuning:    g.controller,
	})
	g.enemy.OnHurt = g.agent.OnDamaged

	if spec.ScoreScript != "" {
		hook, err := prefabs.CompileScoreHook(spec.ScoreScript)
		if err != nil {
			g.logger.Warn("score script rejected", zap.Error(err))
		} else {
			g.agent.SetScoreHook(hook)
		}
	}

	return nil
}

func (g *Game) reloadConfig() {
	spec, err := prefabs.LoadDuelSpec(g.configPath)
	if err != nil {
		g.logger.Warn("config reload failed", zap.Error(err))
		return
	}
	cfg, err := spec.ControllerConfig()
	if err != nil {
		g.logger.Warn("config reload failed", zap.Error(err))
		return
	}
	g.spec = spec
	g.controller.SetConfig(cfg)
	if spec.ScoreScript != "" {
		if hook, err := prefabs.CompileScoreHook(spec.ScoreScript); err == nil {
			g.agent.SetScoreHook(hook)
		} else {
			g.logger.Warn("score script rejected", zap.Error(err))
		}
	} else {
		g.agent.SetScoreHook(nil)
	}
	g.logger.Info("config reloaded", zap.String("path", g.configPath))
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadConfig()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("config watch error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.drainWatcher()

	// R restarts the encounter with the latest spec, which is how enemy
	// base parameter edits take effect.
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.buildEncounter(g.spec); err != nil {
			return err
		}
	}

	g.frames++
	dt := tickSeconds
	g.now = g.now.Add(time.Duration(dt * float64(time.Second)))

	g.input.Update()
	g.player.Update(dt, g.now, g.enemy, g.projectiles)

	px, py := g.player.Position()
	ex, ey := g.enemy.Position()
	dist := math.Hypot(ex-px, ey-py)
	g.log.Observe(dist, g.player.Blocking(), time.Duration(dt*float64(time.Second)), g.now)
	g.tracker.Update(g.now)
	g.controller.Update(time.Duration(dt * float64(time.Second)))

	if g.enemy.Health().IsAlive() && g.player.Health().IsAlive() {
		g.agent.Update(dt)
	}

	g.projectiles.Update(dt, g.player, g.enemy)
	g.world.Step(dt)
	g.enemy.Tick(dt)

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	g.drawGround(screen, g.world.Arena(), g.view)

	g.player.Draw(screen, g.view)
	g.enemy.Draw(screen, g.view)
	g.projectiles.Draw(screen, g.view)

	if g.debug {
		g.drawDebug(screen)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawGround(screen *ebiten.Image, arena obj.Arena, v obj.View) {
	if g.groundFill == nil {
		g.groundFill = ebiten.NewImage(1, 1)
		g.groundFill.Fill(colornames.Dimgray)
	}
	v.FillRect(screen, g.groundFill, arena.MinX, arena.GroundY, arena.MaxX-arena.MinX, 2)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	p := g.tracker.Profile()
	t := g.controller.Current()
	msg := fmt.Sprintf(
		"FPS %.1f\nstate %s  anim %s  facing %+.0f\nstyle %s  tuning %s (transitioning=%v)\nfreq %.2f  block %.2f  dist %.2f  aggr %.2f  aerial %.2f  ranged %.2f\nplayer hp %.1f  enemy hp %.1f  projectiles %d",
		ebiten.ActualFPS(),
		g.agent.State(), g.enemy.Animation(), g.enemy.Facing(),
		g.controller.Style(), t.Name, g.controller.Transitioning(),
		p.AttackFrequency, p.BlockRate, p.AverageDistance, p.AggressionScore, p.AerialRatio(), p.RangedRatio,
		g.player.Health().Current, g.enemy.Health().Current, g.projectiles.ActiveCount(),
	)
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
