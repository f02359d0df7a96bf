package tamarack

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RunConfig configures the built-in wireframe viewer.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the window dimensions in pixels.
	Width, Height int
	// ClearColor is the background color. Zero value is black.
	ClearColor Color
	// ShowStats draws an FPS/selection overlay.
	ShowStats bool
}

// viewerDragDeadZone is the movement in pixels past which a left press
// becomes an orbit drag instead of a pick.
const viewerDragDeadZone = 4.0

// dollyWheelStep scales mouse wheel ticks into dolly distance, proportional
// to the current orbit radius so zooming stays usable at any scale.
const dollyWheelStep = 0.1

// orbitSpeed converts drag pixels to orbit radians.
const orbitSpeed = 0.008

// panSpeed converts drag pixels to pan world units per unit of orbit radius.
const panSpeed = 0.002

// boxEdges lists the corner index pairs forming the 12 edges of an AABB,
// matching the corner order returned by AABB.Corners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// viewerGame adapts a Scene to the ebiten game loop: it renders node bounds
// as wireframes through the pick camera and feeds mouse input into the
// picker and camera controls.
type viewerGame struct {
	scene *Scene
	cfg   RunConfig

	leftDown bool
	dragging bool
	startX   int
	startY   int
	lastX    int
	lastY    int

	rightDown  bool
	rightLastX int
	rightLastY int
}

// Run opens a window and drives the scene with the built-in wireframe
// viewer: left-click picks, left-drag orbits, right-drag pans, and the
// wheel dollies. Blocks until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	if cfg.Title == "" {
		cfg.Title = "tamarack"
	}
	if len(scene.Cameras()) == 0 {
		scene.NewCamera(Rect{Width: float32(cfg.Width), Height: float32(cfg.Height)})
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&viewerGame{scene: scene, cfg: cfg})
}

func (g *viewerGame) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.scene.Update(dt)

	cam := g.scene.Cameras()[0]
	mx, my := ebiten.CursorPosition()

	// Left button: click to pick, drag past the dead zone to orbit.
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case left && !g.leftDown:
		g.leftDown = true
		g.dragging = false
		g.startX, g.startY = mx, my
		g.lastX, g.lastY = mx, my
	case left && g.leftDown:
		if !g.dragging {
			dx := float64(mx - g.startX)
			dy := float64(my - g.startY)
			if dx*dx+dy*dy > viewerDragDeadZone*viewerDragDeadZone {
				g.dragging = true
			}
		}
		if g.dragging {
			cam.Orbit(float32(g.lastX-mx)*orbitSpeed, float32(my-g.lastY)*orbitSpeed)
		}
		g.lastX, g.lastY = mx, my
	case !left && g.leftDown:
		g.leftDown = false
		if !g.dragging {
			if _, err := g.scene.Pick(float32(mx), float32(my)); err != nil {
				warnf("pick failed: %v", err)
			}
		}
		g.dragging = false
	}

	// Right button: pan.
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if right {
		if g.rightDown {
			radius := cam.Position.Sub(cam.Target).Len()
			cam.Pan(
				float32(g.rightLastX-mx)*panSpeed*radius,
				float32(my-g.rightLastY)*panSpeed*radius,
			)
		}
		g.rightDown = true
		g.rightLastX, g.rightLastY = mx, my
	} else {
		g.rightDown = false
	}

	// Wheel: dolly, scaled by orbit radius.
	if _, wy := ebiten.Wheel(); wy != 0 {
		radius := cam.Position.Sub(cam.Target).Len()
		cam.Dolly(float32(wy) * dollyWheelStep * radius)
	}

	return nil
}

func (g *viewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.toRGBA())

	cam := g.scene.Cameras()[0]
	g.drawNode(screen, cam, g.scene.Root())

	if g.cfg.ShowStats {
		sel := "(none)"
		if n := g.scene.Picker().Selected(); n != nil {
			sel = n.Name
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %0.1f  TPS: %0.1f\nselected: %s", ebiten.ActualFPS(), ebiten.ActualTPS(), sel))
	}
}

// drawNode draws the wireframe bounds of every visible solid in the subtree.
func (g *viewerGame) drawNode(screen *ebiten.Image, cam *Camera, n *Node) {
	if !n.Visible || n.IsDisposed() {
		return
	}
	if n.Mesh != nil && n.Material != nil {
		g.drawWireBounds(screen, cam, n)
	}
	for _, child := range n.Children() {
		g.drawNode(screen, cam, child)
	}
}

// drawWireBounds projects the node's local AABB corners into screen space
// and strokes the box edges. The line color is the material's emissive glow
// when one is set (the highlight), otherwise the base color.
func (g *viewerGame) drawWireBounds(screen *ebiten.Image, cam *Camera, n *Node) {
	col := n.Material.Color
	e := n.Material.Emissive
	if e.R > 0 || e.G > 0 || e.B > 0 {
		col = e
	}
	rgba := col.toRGBA()

	corners := n.Mesh.Bounds().Corners()
	var sx, sy [8]float32
	var visible [8]bool
	world := n.WorldMatrix()
	for i, c := range corners {
		sx[i], sy[i], visible[i] = cam.WorldToScreen(transformPoint(world, c))
	}
	for _, edge := range boxEdges {
		a, b := edge[0], edge[1]
		if !visible[a] || !visible[b] {
			continue
		}
		vector.StrokeLine(screen, sx[a], sy[a], sx[b], sy[b], 1, rgba, true)
	}
}

func (g *viewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
