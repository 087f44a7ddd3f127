// Package main fits the mount misalignment model to pointing
// observations with CMA-ES.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mountlab/gimbal/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Config YAML with the true mount model (empty = use defaults)")
	numObs := flag.Int("obs", 200, "Number of synthetic pointing observations")
	noise := flag.Float64("noise", 0.002, "Observation noise sigma in degrees")
	seed := flag.Int64("seed", 42, "RNG seed for observation generation")
	maxEvals := flag.Int("max-evals", 400, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load config holding the true model to recover
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	obs, err := GenerateObservations(cfg, *numObs, *noise, *seed)
	if err != nil {
		log.Fatalf("failed to generate observations: %v", err)
	}

	// Open eval log
	logPath := filepath.Join(*outputDir, "calibrate_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()
	logWriter.Write([]string{"eval", "rms_deg", "axis_x", "axis_y", "axis_z", "angle_deg"})

	// Track evaluations
	evalCount := 0
	bestRMS := badModelCost
	var bestX []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			rms := ResidualRMS(obs, r3.Vec{X: x[0], Y: x[1], Z: x[2]}, x[3])
			evalCount++

			if rms < bestRMS {
				bestRMS = rms
				bestX = make([]float64, len(x))
				copy(bestX, x)
			}

			row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", rms)}
			for _, v := range x {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			fmt.Printf("Eval %d/%d: rms=%.6f deg (best=%.6f)\n", evalCount, *maxEvals, rms, bestRMS)
			return rms
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
	}

	// Start from an unrotated guess near the zenith axis
	initX := []float64{0.1, 0.1, 1.0, 0.1}

	fmt.Printf("Starting CMA-ES calibration: %d observations, noise=%.4f deg, max_evals=%d\n",
		len(obs), *noise, *maxEvals)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestX == nil {
		bestX = result.X
	}

	fitAxis, fitAngle := Canonicalize(r3.Vec{X: bestX[0], Y: bestX[1], Z: bestX[2]}, bestX[3])
	trueAxis, trueAngle := Canonicalize(r3.Vec{
		X: cfg.Mount.MisalignAxis[0],
		Y: cfg.Mount.MisalignAxis[1],
		Z: cfg.Mount.MisalignAxis[2],
	}, cfg.Mount.MisalignAngle)

	fmt.Printf("\nCalibration complete after %d evaluations in %s\n",
		evalCount, time.Since(startTime).Round(time.Second))
	fmt.Printf("Best RMS residual: %.6f deg\n", bestRMS)
	fmt.Printf("Fitted axis:  (%.4f, %.4f, %.4f)  angle: %.4f deg\n",
		fitAxis.X, fitAxis.Y, fitAxis.Z, fitAngle)
	fmt.Printf("True axis:    (%.4f, %.4f, %.4f)  angle: %.4f deg\n",
		trueAxis.X, trueAxis.Y, trueAxis.Z, trueAngle)

	// Save the calibrated config
	calCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	calCfg.Mount.MisalignAxis = []float64{fitAxis.X, fitAxis.Y, fitAxis.Z}
	calCfg.Mount.MisalignAngle = fitAngle

	outPath := filepath.Join(*outputDir, "calibrated_config.yaml")
	if err := calCfg.WriteYAML(outPath); err != nil {
		log.Printf("failed to write calibrated config: %v", err)
	} else {
		fmt.Printf("\nCalibrated config saved to: %s\n", outPath)
	}
}
