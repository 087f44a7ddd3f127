// Package main is the interactive sky view of the tracking simulation:
// the live az/alt picture on the left, the selected session's focal
// plane on the right.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mountlab/gimbal/camera"
	"github.com/mountlab/gimbal/config"
	"github.com/mountlab/gimbal/geom"
	"github.com/mountlab/gimbal/sim"
	"github.com/mountlab/gimbal/telemetry"
)

const (
	skyX, skyY = 10, 10
	skyW, skyH = 850, 430

	focalX, focalY = 880, 10
	focalW, focalH = 390, 390
)

var targetPalette = []rl.Color{
	rl.SkyBlue, rl.Green, rl.Orange, rl.Red,
	rl.Purple, rl.Yellow, rl.Pink, rl.Lime,
}

func targetColor(id int) rl.Color {
	return targetPalette[id%len(targetPalette)]
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Sim.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	world, err := sim.NewWorld(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Gimbal Sky View")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	paused := false
	stepsPerFrame := float32(1)
	zoom := float32(0.5) // focal plane half-width in degrees
	selected := 0
	cam := camera.New(skyW, skyH)

	// Live tuning state, seeded from the config
	jitter := float32(cfg.Targets.JitterSigma)
	slewAz := float32(cfg.Mount.SlewRateAz)
	slewAlt := float32(cfg.Mount.SlewRateAlt)
	misAngle := float32(cfg.Mount.MisalignAngle)

	var lastStats telemetry.WindowStats
	hasStats := false

	for !rl.WindowShouldClose() {
		// Keyboard
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if rl.IsKeyPressed(rl.KeyN) && paused {
			world.Step()
		}
		if rl.IsKeyPressed(rl.KeyS) {
			world.Scramble()
		}

		handleCamera(cam)

		if !paused {
			for i := 0; i < int(stepsPerFrame); i++ {
				world.Step()
			}
		}

		for _, stats := range world.DrainWindows() {
			lastStats = stats
			hasStats = true
			if *logStats {
				stats.LogStats()
			}
		}
		world.DrainSamples() // the viewer has no use for per-tick samples
		world.Perf().RecordFrame()

		sessions := world.Snapshot()
		count := len(sessions)
		if rl.IsKeyPressed(rl.KeyTab) {
			selected = (selected + 1) % count
		}

		// Click to select the nearest target on the sky panel
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			if idx, ok := nearestTarget(cam, sessions, rl.GetMousePosition()); ok {
				selected = idx
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 14, B: 24, A: 255})

		drawSkyPanel(cam, sessions, selected)
		drawFocalPanel(sessions[selected], zoom)

		// Control panel
		panelX := float32(skyX)
		panelY := float32(skyY + skyH + 15)

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 110, Height: 28}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 120, Y: panelY, Width: 110, Height: 28}, "Step") {
			world.Step()
		}
		if gui.Button(rl.Rectangle{X: panelX + 240, Y: panelY, Width: 110, Height: 28}, "Scramble") {
			world.Scramble()
		}

		rl.DrawText("Speed (ticks/frame)", int32(panelX+370), int32(panelY)-14, 12, rl.Gray)
		stepsPerFrame = gui.SliderBar(
			rl.Rectangle{X: panelX + 370, Y: panelY, Width: 200, Height: 24},
			"1", "20",
			stepsPerFrame, 1, 20,
		)

		rl.DrawText("Focal zoom (deg)", int32(panelX+620), int32(panelY)-14, 12, rl.Gray)
		zoom = gui.SliderBar(
			rl.Rectangle{X: panelX + 620, Y: panelY, Width: 200, Height: 24},
			"0.05", "2.0",
			zoom, 0.05, 2.0,
		)

		// Model tuning column under the focal panel. Changes apply from
		// the next step and diverge from the seeded replay.
		tuneX := float32(focalX + 40)
		tuneY := float32(focalY + focalH + 40)

		rl.DrawText(fmt.Sprintf("Drift jitter (deg/s): %.4f", jitter), int32(tuneX), int32(tuneY)-14, 12, rl.Gray)
		if v := gui.SliderBar(rl.Rectangle{X: tuneX, Y: tuneY, Width: 300, Height: 24}, "0", "0.01", jitter, 0, 0.01); v != jitter {
			jitter = v
			world.SetJitterSigma(float64(v))
		}

		rl.DrawText(fmt.Sprintf("Slew rate az (deg/s): %.2f", slewAz), int32(tuneX), int32(tuneY+42)-14, 12, rl.Gray)
		if v := gui.SliderBar(rl.Rectangle{X: tuneX, Y: tuneY + 42, Width: 300, Height: 24}, "0", "10", slewAz, 0, 10); v != slewAz {
			slewAz = v
			world.SetSlewRates(float64(v), float64(slewAlt))
		}

		rl.DrawText(fmt.Sprintf("Slew rate alt (deg/s): %.2f", slewAlt), int32(tuneX), int32(tuneY+84)-14, 12, rl.Gray)
		if v := gui.SliderBar(rl.Rectangle{X: tuneX, Y: tuneY + 84, Width: 300, Height: 24}, "0", "5", slewAlt, 0, 5); v != slewAlt {
			slewAlt = v
			world.SetSlewRates(float64(slewAz), float64(v))
		}

		rl.DrawText(fmt.Sprintf("Misalign angle (deg): %.3f", misAngle), int32(tuneX), int32(tuneY+126)-14, 12, rl.Gray)
		if v := gui.SliderBar(rl.Rectangle{X: tuneX, Y: tuneY + 126, Width: 300, Height: 24}, "0", "0.5", misAngle, 0, 0.5); v != misAngle {
			misAngle = v
			if err := world.SetMisalignAngle(float64(v)); err != nil {
				slog.Warn("misalignment update rejected", "error", err)
			}
		}

		drawStatus(world, sessions[selected], lastStats, hasStats)

		rl.DrawText("SPACE pause  N step  S scramble  TAB select  ARROWS pan  WHEEL zoom  HOME reset  C copy mount yaml",
			skyX, int32(cfg.Screen.Height-22), 12, rl.LightGray)

		// Copy the mount model to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(mountYAML(cfg, float64(slewAz), float64(slewAlt), float64(misAngle)))
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// handleCamera processes sky chart pan/zoom controls.
func handleCamera(cam *camera.Camera) {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / cam.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1.0 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}

// skyPoint maps an az/alt direction onto the sky panel through the
// camera, azimuth across the x axis and the zenith at the top.
func skyPoint(cam *camera.Camera, az, alt float64) rl.Vector2 {
	sx, sy := cam.SkyToScreen(float32(geom.WrapPos(az)), float32(alt))
	return rl.Vector2{X: skyX + sx, Y: skyY + sy}
}

func nearestTarget(cam *camera.Camera, sessions []sim.Session, mousePos rl.Vector2) (int, bool) {
	best := -1
	bestDist := float32(12 * 12)
	for i, s := range sessions {
		if !cam.IsVisible(float32(geom.WrapPos(s.Target.Az)), float32(s.Target.Alt), 3) {
			continue
		}
		p := skyPoint(cam, s.Target.Az, s.Target.Alt)
		dx := p.X - mousePos.X
		dy := p.Y - mousePos.Y
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

func drawSkyPanel(cam *camera.Camera, sessions []sim.Session, selected int) {
	rl.DrawRectangleLines(skyX, skyY, skyW, skyH, rl.DarkGray)

	gridColor := rl.Color{R: 50, G: 55, B: 70, A: 255}

	// Azimuth grid every 30 degrees, altitude grid every 15
	for az := 0; az < 360; az += 30 {
		sx, _ := cam.SkyToScreen(float32(az), cam.Alt)
		if sx < 0 || sx > skyW {
			continue
		}
		x := skyX + int32(sx)
		rl.DrawLine(x, skyY, x, skyY+skyH, gridColor)
		rl.DrawText(fmt.Sprintf("%d", az), x+3, skyY+skyH-14, 10, rl.Gray)
	}
	for alt := 0; alt <= 90; alt += 15 {
		_, sy := cam.SkyToScreen(cam.Az, float32(alt))
		if sy < 0 || sy > skyH {
			continue
		}
		y := skyY + int32(sy)
		rl.DrawLine(skyX, y, skyX+skyW, y, gridColor)
		rl.DrawText(fmt.Sprintf("%d", alt), skyX+3, y+2, 10, rl.Gray)
	}

	for i, s := range sessions {
		az := float32(geom.WrapPos(s.Target.Az))
		alt := float32(s.Target.Alt)
		if !cam.IsVisible(az, alt, 3) {
			continue
		}

		color := targetColor(s.Target.ID)

		// Commanded position as a faded ring, actual mount as a
		// crosshair, target as a filled dot.
		cmd := skyPoint(cam, s.Mount.CmdAz, s.Mount.CmdAlt)
		rl.DrawCircleLines(int32(cmd.X), int32(cmd.Y), 6, fade(color, 100))

		mnt := skyPoint(cam, s.Mount.Az, s.Mount.Alt)
		rl.DrawLine(int32(mnt.X)-6, int32(mnt.Y), int32(mnt.X)+6, int32(mnt.Y), rl.RayWhite)
		rl.DrawLine(int32(mnt.X), int32(mnt.Y)-6, int32(mnt.X), int32(mnt.Y)+6, rl.RayWhite)

		tgt := skyPoint(cam, s.Target.Az, s.Target.Alt)
		rl.DrawCircle(int32(tgt.X), int32(tgt.Y), 4, color)

		// Markers straddling the azimuth seam show on both edges
		if gx, gy, ok := cam.SeamGhost(az, alt, 3); ok {
			rl.DrawCircle(skyX+int32(gx), skyY+int32(gy), 4, color)
		}

		if i == selected {
			rl.DrawCircleLines(int32(tgt.X), int32(tgt.Y), 9, rl.RayWhite)
		}
	}

	rl.DrawText(fmt.Sprintf("view az %.0f alt %.0f x%.1f", cam.Az, cam.Alt, cam.Zoom),
		skyX+skyW-130, skyY+4, 10, rl.Gray)

	// Sky coordinates under the cursor
	mouse := rl.GetMousePosition()
	if mouse.X >= skyX && mouse.X <= skyX+skyW && mouse.Y >= skyY && mouse.Y <= skyY+skyH {
		az, alt := cam.ScreenToSky(mouse.X-skyX, mouse.Y-skyY)
		rl.DrawText(fmt.Sprintf("cursor %.1f / %.1f", az, alt), skyX+skyW-130, skyY+16, 10, rl.Gray)
	}
}

func drawFocalPanel(s sim.Session, zoom float32) {
	rl.DrawRectangleLines(focalX, focalY, focalW, focalH, rl.DarkGray)
	rl.DrawText(fmt.Sprintf("Focal plane, target %d", s.Target.ID), focalX+6, focalY+6, 12, rl.Gray)

	cx := float32(focalX) + focalW/2
	cy := float32(focalY) + focalH/2
	pxPerDeg := (float32(focalW)/2 - 12) / zoom

	// Boresight crosshair and a half-zoom reference ring
	rl.DrawLine(int32(cx)-10, int32(cy), int32(cx)+10, int32(cy), rl.Gray)
	rl.DrawLine(int32(cx), int32(cy)-10, int32(cx), int32(cy)+10, rl.Gray)
	ringDeg := zoom / 2
	rl.DrawCircleLines(int32(cx), int32(cy), ringDeg*pxPerDeg, rl.Color{R: 60, G: 65, B: 80, A: 255})
	rl.DrawText(fmt.Sprintf("%.2f deg", ringDeg), int32(cx+ringDeg*pxPerDeg)+4, int32(cy)-6, 10, rl.Gray)

	if s.Pointing.Degenerate {
		rl.DrawCircle(int32(cx), int32(cy), 3, rl.LightGray)
		rl.DrawText("on boresight", int32(cx)+8, int32(cy)+8, 12, rl.LightGray)
		return
	}

	ix, iy := geom.XYFromPolar(s.Pointing.OffsetR, s.Pointing.PosAngle)
	px := cx + float32(ix)*pxPerDeg
	py := cy - float32(iy)*pxPerDeg

	// Clamp the marker to the panel when zoomed in hard
	px = clampF(px, focalX+6, focalX+focalW-6)
	py = clampF(py, focalY+6, focalY+focalH-6)

	color := targetColor(s.Target.ID)
	rl.DrawLineV(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: px, Y: py}, fade(color, 128))
	rl.DrawCircle(int32(px), int32(py), 5, color)
	rl.DrawText(fmt.Sprintf("r=%.4f pa=%.1f", s.Pointing.OffsetR, s.Pointing.PosAngle),
		focalX+6, focalY+focalH-18, 12, rl.Gray)
}

func drawStatus(world *sim.World, s sim.Session, lastStats telemetry.WindowStats, hasStats bool) {
	y := int32(skyY + skyH + 55)

	rl.DrawText(fmt.Sprintf("tick %d   t=%.1fs   fps %d", world.Tick(), world.SimTime(), rl.GetFPS()),
		skyX, y, 14, rl.RayWhite)

	azErr := geom.WrapCtr(s.Mount.CmdAz - s.Mount.Az)
	rl.DrawText(fmt.Sprintf("target %d: az %.2f alt %.2f   mount az %.2f alt %.2f   axis err %.3f/%.3f   track err %.4f deg",
		s.Target.ID,
		geom.WrapPos(s.Target.Az), s.Target.Alt,
		geom.WrapPos(s.Mount.Az), s.Mount.Alt,
		azErr, s.Mount.CmdAlt-s.Mount.Alt,
		s.Pointing.ErrDeg),
		skyX, y+20, 14, rl.RayWhite)

	if hasStats {
		rl.DrawText(fmt.Sprintf("window %d: err mean %.4f p90 %.4f rms %.4f   slew az %.1f alt %.1f   wraps %d clamps %d",
			lastStats.WindowEndTick,
			lastStats.ErrMeanDeg, lastStats.ErrP90Deg, lastStats.ErrRMSDeg,
			lastStats.SlewAzDeg, lastStats.SlewAltDeg,
			lastStats.WrapSaves, lastStats.AltClamps),
			skyX, y+40, 14, rl.Color{R: 140, G: 200, B: 255, A: 255})
	}
}

func fade(c rl.Color, a uint8) rl.Color {
	c.A = a
	return c
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mountYAML renders the mount section with the live-tuned rates and
// misalignment angle, ready to paste into a config file.
func mountYAML(cfg *config.Config, slewAz, slewAlt, misAngle float64) string {
	return fmt.Sprintf(`mount:
  slew_rate_az: %.2f
  slew_rate_alt: %.2f
  min_alt: %.1f
  max_alt: %.1f
  misalign_axis: [%.4f, %.4f, %.4f]
  misalign_angle: %.4f
  refraction_k: %.4f
  instrument_rot: %.1f`,
		slewAz, slewAlt,
		cfg.Mount.MinAlt, cfg.Mount.MaxAlt,
		cfg.Mount.MisalignAxis[0], cfg.Mount.MisalignAxis[1], cfg.Mount.MisalignAxis[2],
		misAngle, cfg.Mount.RefractionK, cfg.Mount.InstrumentRot)
}
