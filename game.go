package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/patrolai/config"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/milk9111/patrolai/scene"
)

type Game struct {
	cfg    *config.Config
	logger *zap.Logger

	scene   *scene.Scene
	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI

	frames  int
	paused  bool
	quit    bool
	mouse   bool
	message string
}

func NewGame(cfg *config.Config, logger *zap.Logger) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		logger: logger,
		mouse:  cfg.Viewer.Mouse,
	}
	s, err := g.load()
	if err != nil {
		return nil, err
	}
	g.scene = s

	if cfg.Viewer.Watch {
		dirs := watchDirs()
		if len(dirs) > 0 {
			w, err := prefabs.NewWatcher(dirs...)
			if err != nil {
				logger.Warn("hot reload disabled", zap.Error(err))
			} else {
				g.watcher = w
				logger.Info("watching prefabs", zap.Strings("dirs", dirs))
			}
		}
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func watchDirs() []string {
	var dirs []string
	for _, dir := range []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (g *Game) load() (*scene.Scene, error) {
	return scene.Load(g.cfg.Sim.Scene, scene.WithLogger(g.logger))
}

func (g *Game) reload() {
	s, err := g.load()
	if err != nil {
		g.message = "reload failed: " + err.Error()
		g.logger.Warn("reload failed", zap.Error(err))
		return
	}
	g.scene = s
	g.message = "reloaded " + time.Now().Format("15:04:05")
	g.logger.Info("scene reloaded", zap.String("scene", s.Name))
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	changed, open := g.watcher.Drain(func(err error) {
		g.logger.Warn("prefab watcher", zap.Error(err))
	})
	if !open {
		g.watcher = nil
		g.logger.Warn("prefab watcher closed, hot reload disabled")
	}
	if changed {
		g.reload()
	}
}

func (g *Game) tick() time.Duration {
	tps := ebiten.ActualTPS()
	if tps < 1 {
		tps = float64(g.cfg.Sim.TPS)
	}
	return time.Duration(float64(time.Second) / tps)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.mouse = !g.mouse
		if !g.mouse {
			g.scene.Player.ClearManual()
		}
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.mouse {
		cx, cy := ebiten.CursorPosition()
		g.scene.Player.SetManual(g.view().toWorld(float64(cx), float64(cy)))
	}
	g.scene.Update(g.tick())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	v := g.view()
	v.drawScene(screen, g.scene)
	g.drawHUD(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) view() view {
	return view{minX: g.scene.Bounds.MinX, minZ: g.scene.Bounds.MinZ, scale: g.cfg.Viewer.Scale}
}

// ScreenSize is the scene bounds in pixels.
func (g *Game) ScreenSize() (int, int) {
	b := g.scene.Bounds
	return int((b.MaxX - b.MinX) * g.cfg.Viewer.Scale), int((b.MaxZ - b.MinZ) * g.cfg.Viewer.Scale)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}

func (g *Game) status() string {
	st := g.scene.Guard.Status()
	lines := fmt.Sprintf("%s  tick %d  TPS %.1f\n", g.scene.Name, g.scene.Ticks(), ebiten.ActualTPS())
	lines += fmt.Sprintf("guard %s/%s  waypoint %d  wait %.2fs  yaw %.0f\n", st.Mode, st.Phase, st.Waypoint, st.Wait, st.Yaw)
	if st.InRange {
		lines += fmt.Sprintf("target %s at %.2f\n", st.Target, st.TargetDistance)
	}
	if st.Colliding {
		lines += fmt.Sprintf("colliding  resume pending %v\n", st.ResumePending)
	}
	if g.mouse {
		lines += "player: mouse (M to release)\n"
	}
	if g.message != "" {
		lines += g.message + "\n"
	}
	return lines
}
