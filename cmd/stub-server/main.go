package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ytget/image-predictor/internal/config"
	"github.com/ytget/image-predictor/internal/stubserver"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppName     = "Stub Inference Server"
	DefaultAddr = ":5000"
)

func main() {
	addr := flag.String("addr", DefaultAddr, "listen address")
	path := flag.String("path", "", "prediction path (default from PREDICT_PATH or "+stubserver.DefaultPredictPath+")")
	modeName := flag.String("mode", string(stubserver.ModeRanked), "response mode: "+modeNames())
	delay := flag.Duration("delay", 0, "artificial latency per prediction")
	status := flag.Int("status", stubserver.DefaultStatusCode, "status code used by the status mode")
	labels := flag.String("labels", strings.Join(stubserver.DefaultLabels, ","), "comma-separated labels in rank order")
	anyModel := flag.Bool("any-model", false, "accept any non-empty model identifier")
	envFile := flag.String("env", config.DefaultEnvFile, "optional .env file with overrides")
	debug := flag.Bool("debug", false, "run gin in debug mode")
	flag.Parse()

	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	env, err := config.LoadEnv(*envFile)
	if err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	mode, err := stubserver.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := stubserver.Config{
		PredictPath: *path,
		Mode:        mode,
		Labels:      splitLabels(*labels),
		WireModels:  config.DefaultWireMap().Merge(env.ModelMap).WireValues(),
		StatusCode:  *status,
		Delay:       *delay,
	}
	if cfg.PredictPath == "" && env.PredictPath != "" {
		cfg.PredictPath = config.NormalizePredictPath(env.PredictPath)
	}
	if *anyModel {
		cfg.WireModels = nil
	}
	if *debug {
		cfg.GinMode = gin.DebugMode
	}

	server := stubserver.New(cfg)
	if err := server.Run(*addr); err != nil {
		log.Fatalf("Stub server stopped: %v", err)
	}
}

func modeNames() string {
	names := make([]string, 0, len(stubserver.Modes))
	for _, mode := range stubserver.Modes {
		names = append(names, string(mode))
	}
	return strings.Join(names, ", ")
}

func splitLabels(text string) []string {
	var labels []string
	for _, label := range strings.Split(text, ",") {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
