package main

import (
	"fmt"
	"io"
	"log"

	"github.com/geocoin/geocoin/internal/config"
	"github.com/geocoin/geocoin/internal/game"
	"github.com/geocoin/geocoin/internal/geo"
	"github.com/geocoin/geocoin/internal/render"
	"github.com/geocoin/geocoin/internal/storage"
	"github.com/geocoin/geocoin/internal/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "Geocoin"

	cellWidth  = 16
	cellHeight = 16
	gridCols   = screenWidth / cellWidth   // 80
	gridRows   = screenHeight / cellHeight // 45

	maxMapRadius = 14
	mapX         = 1
	mapY         = 3

	statusRow = 35
	logRow    = 37
	logRows   = 6
)

// Game is the Ebitengine game struct. It owns rendering, input and the
// current cache selection; all gameplay state lives in sim.
type Game struct {
	renderer *render.GridRenderer
	buffer   *render.CellBuffer
	hud      *render.HUD
	view     render.MapView
	sim      *game.Sim

	selected     world.CellID
	confirmReset bool
	hover        string
}

func NewGame(cfg config.Config, store game.Store, tracker game.Tracker) *Game {
	radius := min(cfg.Radius, maxMapRadius)
	g := &Game{
		renderer: render.NewGridRenderer(render.NewFontAtlas(), cellWidth, cellHeight),
		buffer:   render.NewCellBuffer(gridCols, gridRows),
		hud:      render.NewHUD(cfg.Language()),
		view:     render.MapView{X: mapX + 1, Y: mapY + 1, Radius: radius},
		sim:      game.NewSim(cfg.Rules(), store, tracker),
		selected: world.NoCell,
	}
	g.sim.Load()
	g.drawScreen()
	return g
}

func (g *Game) drawScreen() {
	buf := g.buffer
	buf.Clear()

	buf.WriteString(2, 0, title, render.ColorWhite, render.ColorBlack)
	buf.WriteString(12, 0, "[ collect coins from nearby caches ]", render.ColorLightCyan, render.ColorBlack)
	if g.hover != "" {
		buf.WriteString(2, 1, g.hover, render.ColorYellow, render.ColorBlack)
	}

	size := g.view.Size()
	buf.Box(mapX, mapY, size+2, size+2, "Map", render.ColorLightGray)
	g.view.Draw(buf, render.BuildScene(g.sim, g.selected))

	panelX := mapX + size + 3
	panelW := gridCols - panelX - 1
	view, ok := g.sim.CacheView(g.selected)
	g.hud.DrawCache(buf, panelX, mapY, panelW, 16, view, ok)
	g.hud.DrawInventory(buf, panelX, mapY+16, panelW, statusRow-mapY-17, &g.sim.Inventory)

	g.hud.DrawStatus(buf, 2, statusRow, g.sim)
	render.DrawLog(buf, 2, logRow, logRows, g.sim.Log)

	help := "WASD: Move  Tab/Click: Select  C: Collect  V: Deposit  G: GPS  R: Reset  ESC: Quit"
	if g.confirmReset {
		help = "Reset the game? Y: confirm  any other key: cancel"
	}
	buf.WriteString(2, gridRows-1, help, render.ColorDarkGray, render.ColorBlack)
}

func (g *Game) Update() error {
	g.sim.Pump()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.confirmReset {
		g.updateResetPrompt()
	} else {
		g.updatePlay()
	}

	g.keepSelection()
	g.updateHover()
	g.drawScreen()
	return nil
}

func (g *Game) updateResetPrompt() {
	pressed := inpututil.AppendJustPressedKeys(nil)
	if len(pressed) == 0 {
		return
	}
	g.confirmReset = false
	if inpututil.IsKeyJustPressed(ebiten.KeyY) {
		g.sim.Reset()
		g.selected = world.NoCell
		return
	}
	g.sim.Log.Add("Reset cancelled.", game.MsgInfo)
}

func (g *Game) updatePlay() {
	switch {
	case justPressed(ebiten.KeyW, ebiten.KeyUp):
		g.sim.Move(game.North)
	case justPressed(ebiten.KeyS, ebiten.KeyDown):
		g.sim.Move(game.South)
	case justPressed(ebiten.KeyA, ebiten.KeyLeft):
		g.sim.Move(game.West)
	case justPressed(ebiten.KeyD, ebiten.KeyRight):
		g.sim.Move(game.East)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleSelection()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.clickSelect(ebiten.CursorPosition())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.transfer(g.sim.Collect, "That cache is empty.")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.transfer(g.sim.Deposit, "You have no coins to deposit.")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		// Failures are already reported in the log.
		_ = g.sim.SetTracking(!g.sim.Tracking())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.confirmReset = true
		g.sim.Log.Add("Reset clears your coins and path. Press Y to confirm.", game.MsgWarning)
	}
}

func (g *Game) transfer(op func(world.CellID) bool, refused string) {
	if !g.view.Shows(g.sim, g.selected) {
		g.sim.Log.Add("Select a cache first.", game.MsgWarning)
		return
	}
	if !op(g.selected) {
		g.sim.Log.Add(refused, game.MsgWarning)
	}
}

// keepSelection drops the selection once its cache leaves the drawn map.
func (g *Game) keepSelection() {
	if g.selected == world.NoCell {
		return
	}
	if !g.view.Shows(g.sim, g.selected) {
		g.selected = world.NoCell
	}
}

func (g *Game) cycleSelection() {
	visible := g.view.Selectable(g.sim)
	if len(visible) == 0 {
		g.selected = world.NoCell
		return
	}
	next := 0
	for i, id := range visible {
		if id == g.selected {
			next = (i + 1) % len(visible)
			break
		}
	}
	g.selected = visible[next]
}

func (g *Game) screenCell(px, py int) (world.Cell, bool) {
	x, y := g.renderer.CellAt(px, py)
	return g.view.FromScreen(g.sim.Board.MustCell(g.sim.PlayerCell()), x, y)
}

func (g *Game) clickSelect(px, py int) {
	c, ok := g.screenCell(px, py)
	if !ok {
		return
	}
	id, ok := g.sim.Board.Lookup(c)
	if !ok {
		return
	}
	if g.view.Shows(g.sim, id) {
		g.selected = id
	}
}

// updateHover describes whatever map cell the mouse is over.
func (g *Game) updateHover() {
	c, ok := g.screenCell(ebiten.CursorPosition())
	if !ok {
		g.hover = ""
		return
	}
	g.hover = render.DescribeCell(g.sim, c)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.buffer)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func newTracker(cfg config.Config) game.Tracker {
	if at, ok, _ := cfg.Device(); ok {
		return geo.Fixed{At: at}
	}
	return geo.NewTracker()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	store, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("%s (%s)", title, cfg.StorageOptions().Backend.OrDefault()))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(cfg, store, newTracker(cfg))); err != nil {
		log.Fatal(err)
	}
}
