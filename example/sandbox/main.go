package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/geom"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	updatesPerSecond = 60
	zoomStep         = 1.25
	minZoom          = 0.25
	maxZoom          = 16
	sampleRate       = beep.SampleRate(44100)
)

var (
	substeps = flag.Int("substeps", 20, "sub-iterations per world step")
	zoom     = flag.Float64("zoom", 2, "terminal columns per world unit")
	mute     = flag.Bool("mute", false, "disable collision sounds")
	useGrid  = flag.Bool("grid", false, "use the spatial grid broad phase")
	workers  = flag.Int("workers", feather2d.DEFAULT_WORKERS, "workers for integration and pair finding")
)

type Sandbox struct {
	screen        tcell.Screen
	width, height int

	world    *feather2d.World
	zoom     float64
	substeps int

	// mouse buttons held during the previous event
	buttons tcell.ButtonMask

	// Stats, averaged every second
	showStats      bool
	sampleTimer    time.Time
	totalStepTime  time.Duration
	totalBodyCount int
	sampleCount    int
	statsLine      string

	// Audio
	audioInit bool
	hit       bool
}

func NewSandbox(zoom float64, substeps int) (*Sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	s := &Sandbox{
		screen:      screen,
		world:       feather2d.NewWorld(),
		zoom:        geom.Clamp(zoom, minZoom, maxZoom),
		substeps:    substeps,
		showStats:   true,
		sampleTimer: time.Now(),
	}
	s.width, s.height = screen.Size()

	if *useGrid {
		s.world.SpatialGrid = feather2d.NewSpatialGrid(2, 1024)
	}
	s.world.Workers = *workers
	s.world.Events.Subscribe(feather2d.COLLISION_ENTER, func(feather2d.Event) {
		s.hit = true
	})

	if err := s.addGround(); err != nil {
		screen.Fini()
		return nil, err
	}

	if !*mute {
		if err := s.initAudio(); err != nil {
			// Non-fatal, the sandbox runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	return s, nil
}

func (s *Sandbox) initAudio() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		s.audioInit = true
	}
	return err
}

func (s *Sandbox) playHitSound() {
	if !s.audioInit {
		return
	}

	sine, err := generators.SineTone(sampleRate, 440+rand.Float64()*440)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(30*time.Millisecond), sine))
}

// addGround adds a static floor spanning the view minus a 10% padding on each side
func (s *Sandbox) addGround() error {
	left, right, _, _ := s.extents()
	padding := (right - left) * 0.1

	ground, err := actor.NewBoxBody(right-left-padding*2, 2, mgl64.Vec2{0, -10}, 1, actor.BodyTypeStatic, 0.5)
	if err != nil {
		return fmt.Errorf("ground: %w", err)
	}
	ground.Id = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	s.world.AddBody(ground)

	return nil
}

// ============================================================================
// Camera
// ============================================================================

// A terminal cell is about twice as tall as it is wide, so one world unit
// covers zoom columns but only zoom/2 rows.
func (s *Sandbox) rowScale() float64 {
	return s.zoom / 2
}

func (s *Sandbox) screenToWorld(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		(float64(x) + 0.5 - float64(s.width)/2) / s.zoom,
		(float64(s.height)/2 - float64(y) - 0.5) / s.rowScale(),
	}
}

func (s *Sandbox) worldToScreen(p mgl64.Vec2) (int, int) {
	x := int(math.Floor(float64(s.width)/2 + p.X()*s.zoom))
	y := int(math.Floor(float64(s.height)/2 - p.Y()*s.rowScale()))
	return x, y
}

func (s *Sandbox) extents() (left, right, bottom, top float64) {
	halfWidth := float64(s.width) / 2 / s.zoom
	halfHeight := float64(s.height) / 2 / s.rowScale()
	return -halfWidth, halfWidth, -halfHeight, halfHeight
}

// ============================================================================
// Simulation
// ============================================================================

func randomStyle() tcell.Style {
	color := tcell.NewRGBColor(int32(55+rand.IntN(200)), int32(55+rand.IntN(200)), int32(55+rand.IntN(200)))
	return tcell.StyleDefault.Foreground(color)
}

func (s *Sandbox) spawnBox(position mgl64.Vec2) {
	width := 1 + rand.Float64()
	height := 1 + rand.Float64()

	body, err := actor.NewBoxBody(width, height, position, 2, actor.BodyTypeDynamic, 0.6)
	if err != nil {
		log.Printf("spawn box: %v", err)
		return
	}
	body.Id = randomStyle()
	s.world.AddBody(body)
}

func (s *Sandbox) spawnCircle(position mgl64.Vec2) {
	radius := 0.75 + rand.Float64()*0.75

	body, err := actor.NewCircleBody(radius, position, 2, actor.BodyTypeDynamic, 0.6)
	if err != nil {
		log.Printf("spawn circle: %v", err)
		return
	}
	body.Id = randomStyle()
	s.world.AddBody(body)
}

func (s *Sandbox) update() {
	if time.Since(s.sampleTimer) > time.Second && s.sampleCount > 0 {
		s.statsLine = fmt.Sprintf("bodies: %.1f  step: %.4fms",
			float64(s.totalBodyCount)/float64(s.sampleCount),
			float64(s.totalStepTime.Microseconds())/1000/float64(s.sampleCount))

		s.totalBodyCount = 0
		s.totalStepTime = 0
		s.sampleCount = 0
		s.sampleTimer = time.Now()
	}

	start := time.Now()
	s.world.Step(1.0/updatesPerSecond, s.substeps)
	s.totalStepTime += time.Since(start)
	s.totalBodyCount += s.world.BodyCount()
	s.sampleCount++

	if s.hit {
		s.playHitSound()
		s.hit = false
	}

	// drop the bodies that fell below the view
	_, _, bottom, _ := s.extents()
	for i := s.world.BodyCount() - 1; i >= 0; i-- {
		body, _ := s.world.GetBody(i)
		if !body.IsStatic() && body.GetAABB().Max.Y() < bottom {
			s.world.RemoveBody(body)
		}
	}
}

// ============================================================================
// Rendering
// ============================================================================

func pointInTriangle(p, a, b, c mgl64.Vec2) bool {
	d1 := geom.Cross(b.Sub(a), p.Sub(a))
	d2 := geom.Cross(c.Sub(b), p.Sub(b))
	d3 := geom.Cross(a.Sub(c), p.Sub(c))

	hasNegative := d1 < 0 || d2 < 0 || d3 < 0
	hasPositive := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNegative && hasPositive)
}

func contains(body *actor.RigidBody, p mgl64.Vec2) bool {
	switch shape := body.Shape().(type) {
	case *actor.Circle:
		return geom.DistanceSquared(p, body.Position()) <= shape.Radius*shape.Radius
	case *actor.Box:
		vertices := body.GetTransformedVertices()
		triangles := shape.Triangles()
		for i := 0; i < len(triangles); i += 3 {
			if pointInTriangle(p, vertices[triangles[i]], vertices[triangles[i+1]], vertices[triangles[i+2]]) {
				return true
			}
		}
	}
	return false
}

func (s *Sandbox) drawBody(body *actor.RigidBody) {
	style, ok := body.Id.(tcell.Style)
	if !ok {
		style = tcell.StyleDefault
	}

	aabb := body.GetAABB()
	x0, y0 := s.worldToScreen(mgl64.Vec2{aabb.Min.X(), aabb.Max.Y()})
	x1, y1 := s.worldToScreen(mgl64.Vec2{aabb.Max.X(), aabb.Min.Y()})

	x0, x1 = geom.ClampInt(x0, 0, s.width-1), geom.ClampInt(x1, 0, s.width-1)
	y0, y1 = geom.ClampInt(y0, 0, s.height-1), geom.ClampInt(y1, 0, s.height-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if contains(body, s.screenToWorld(x, y)) {
				s.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}
}

func (s *Sandbox) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= s.width {
			return
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (s *Sandbox) draw() {
	s.screen.Clear()
	if s.width == 0 || s.height == 0 {
		return
	}

	for _, body := range s.world.Bodies() {
		s.drawBody(body)
	}

	contactStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for _, point := range s.world.ContactPoints() {
		x, y := s.worldToScreen(point)
		if x >= 0 && x < s.width && y >= 0 && y < s.height {
			s.screen.SetContent(x, y, '×', nil, contactStyle)
		}
	}

	if s.showStats {
		textStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		s.drawText(0, 0, s.statsLine, textStyle)
		s.drawText(0, 1, "left click: box  right click: circle  a/z: zoom  ~: stats  esc: quit", textStyle)
	}

	s.screen.Show()
}

// ============================================================================
// Input
// ============================================================================

func (s *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}

		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'a', '+':
				s.zoom = geom.Clamp(s.zoom*zoomStep, minZoom, maxZoom)
			case 'z', '-':
				s.zoom = geom.Clamp(s.zoom/zoomStep, minZoom, maxZoom)
			case '~':
				s.showStats = !s.showStats
			}
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons &^ s.buttons
		s.buttons = buttons

		x, y := ev.Position()
		position := s.screenToWorld(x, y)

		if pressed&tcell.Button1 != 0 {
			s.spawnBox(position)
		}
		if pressed&tcell.Button2 != 0 {
			s.spawnCircle(position)
		}

	case *tcell.EventResize:
		s.width, s.height = s.screen.Size()
		s.screen.Sync()
	}

	return true
}

func (s *Sandbox) run() {
	ticker := time.NewTicker(time.Second / updatesPerSecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !s.handleInput(ev) {
				return
			}

		case <-ticker.C:
			s.update()
			s.draw()
		}
	}
}

func (s *Sandbox) cleanup() {
	if s.audioInit {
		speaker.Close()
	}
	s.screen.Fini()
}

func main() {
	flag.Parse()

	sandbox, err := NewSandbox(*zoom, *substeps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer sandbox.cleanup()

	sandbox.run()
}
