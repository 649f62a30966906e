//go:build ebiten

package app

import (
	"context"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wavescape/internal/core"
	"wavescape/internal/render"
	"wavescape/internal/router"
	"wavescape/internal/scenegraph"
	"wavescape/internal/ui"
)

const (
	orbitPerPixel = 0.005
	orbitPerKey   = 0.03
	zoomPerNotch  = 0.1
)

var pageKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}

// Game adapts the scene controller to the ebiten.Game interface.
type Game struct {
	ctx    context.Context
	cfg    *Config
	ctrl   *Controller
	router *router.Router

	camera   *render.OrbitCamera
	painter  *render.Painter
	palette  *render.HeightPalette
	hud      *ui.HUD
	controls *ui.Controls
	overlay  *ui.Overlay

	dragging bool
	lastX    int
	lastY    int
}

// New constructs a Game and navigates to cfg.Route.
func New(ctx context.Context, cfg *Config) (*Game, error) {
	palette, err := render.NewHeightPalette()
	if err != nil {
		return nil, err
	}
	r := router.Default()
	g := &Game{
		ctx:     ctx,
		cfg:     cfg,
		ctrl:    NewController(r, cfg.Seed, cfg.SceneConfig()),
		router:  r,
		painter: render.NewPainter(),
		palette: palette,
	}
	g.overlay = ui.NewOverlay(nil, palette)
	if err := g.navigate(cfg.Route); err != nil {
		return nil, err
	}
	return g, nil
}

// Close stops the active scene.
func (g *Game) Close() { g.ctrl.Close() }

// Route returns the active route.
func (g *Game) Route() router.Route { return g.ctrl.Route() }

func (g *Game) navigate(hash string) error {
	rt, err := g.ctrl.Navigate(g.ctx, hash)
	if err != nil {
		return err
	}
	scene := g.ctrl.Scene()
	pose := core.CameraPose{Position: mgl64.Vec3{0, -7, 5}, Up: mgl64.Vec3{0, 0, 1}, FOV: render.DefaultFOV}
	if provider, ok := scene.(core.CameraProvider); ok {
		pose = provider.Camera()
	}
	g.camera = render.NewOrbitCamera(pose.Position, pose.Target, pose.Up, pose.FOV, g.cfg.TPS)
	g.hud = ui.NewHUD(scene, g.cfg.HUD)
	g.controls = ui.NewControls(scene)
	g.overlay.SetScene(scene)
	g.overlay.SetPage(rt.Label, rt.Page, len(g.router.Routes()))
	ebiten.SetWindowTitle("wavescape: " + rt.Label)
	return nil
}

// Update handles input, eases the camera, and refreshes the panels. Scene
// animation runs on the controller's task, not here.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		g.ctrl.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.ctrl.Close()
		return ebiten.Termination
	}
	for i, key := range pageKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if rt, ok := g.router.ByPage(i + 1); ok && rt.Path != g.ctrl.Route().Path {
			if err := g.navigate(rt.Hash()); err != nil {
				return err
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.SetPaused(!g.ctrl.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.ctrl.Reset(g.ctrl.Seed()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if _, err := g.ctrl.Reseed(); err != nil {
			return err
		}
	}
	if g.ctrl.Route().SpeedControl {
		g.controls.Refresh()
		if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
			g.controls.AdjustKey("speed", 1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
			g.controls.AdjustKey("speed", -1)
		}
	}

	g.updateCamera()
	g.overlay.Update()
	g.hud.Update(g.cfg.Width)
	g.hud.SetStatus(g.status()...)
	return nil
}

func (g *Game) updateCamera() {
	mx, my := ebiten.CursorPosition()
	inView := image.Pt(mx, my).In(image.Rect(0, 0, g.cfg.Width, g.cfg.Height))
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inView:
		g.dragging = true
	case !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.dragging = false
	}
	if g.dragging {
		g.camera.Orbit(-float64(mx-g.lastX)*orbitPerPixel, float64(my-g.lastY)*orbitPerPixel)
	}
	g.lastX, g.lastY = mx, my

	if _, wy := ebiten.Wheel(); wy != 0 && inView {
		g.camera.Zoom(1 - wy*zoomPerNotch)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.Orbit(orbitPerKey, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.Orbit(-orbitPerKey, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Orbit(0, orbitPerKey)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Orbit(0, -orbitPerKey)
	}
	g.camera.Update()
}

func (g *Game) status() []string {
	state := "running"
	if g.ctrl.Paused() {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("%s  t=%.1fs", state, g.ctrl.Elapsed().Seconds()),
		fmt.Sprintf("seed %d", g.ctrl.Seed()),
		fmt.Sprintf("%.0f fps", ebiten.ActualFPS()),
		"1-4 scene  space pause",
		"R reset  S reseed  H heights",
	}
}

// Draw renders the active scene, the overlay, and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	view := screen.SubImage(image.Rect(0, 0, g.cfg.Width, g.cfg.Height)).(*ebiten.Image)
	var frame render.Frame
	g.ctrl.Scene().View(func(root scenegraph.Node) {
		frame = render.Wireframe(root, g.camera, g.cfg.Width, g.cfg.Height)
	})
	g.painter.Draw(view, frame)
	g.overlay.Draw(view, g.cfg.Width, g.cfg.Height)
	g.hud.Draw(screen, g.cfg.Width, g.cfg.Height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width + max(g.cfg.HUD, 0), g.cfg.Height
}
