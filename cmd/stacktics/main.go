// Command stacktics hosts the under-bed packing engine: an HTTP server, an
// optional MQTT ingestion path, and an offline render mode for inspecting a
// previously saved plan as an SVG diagram.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/stacktics/underbed/internal/config"
	"github.com/stacktics/underbed/internal/httpapi"
	"github.com/stacktics/underbed/internal/mqttingest"
	"github.com/stacktics/underbed/pack"
	"github.com/stacktics/underbed/pack/render"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	configFile = flag.String("config", "config.yaml", "Path to configuration file")
	httpMode   = flag.Bool("http", false, "Serve the HTTP API")
	httpAddr   = flag.String("http-addr", "", "HTTP bind address (overrides config)")
	mqttMode   = flag.Bool("mqtt", false, "Enable MQTT ingestion alongside (or instead of) HTTP")
	renderIn   = flag.String("render", "", "Offline mode: path to a saved plan JSON file to render")
	renderOut  = flag.String("render-out", "plan.svg", "Output SVG path for --render mode")
)

func main() {
	flag.Parse()
	fmt.Printf("stacktics version: %s\n", Version)

	if *renderIn != "" {
		if err := runRender(*renderIn, *renderOut); err != nil {
			log.Fatalf("render failed: %v", err)
		}
		return
	}

	if !*httpMode && !*mqttMode {
		fmt.Println("stacktics: nothing to do, pass --http and/or --mqtt, or --render <plan.json>")
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var ingester *mqttingest.Ingester
	if *mqttMode {
		ingester = startMQTT(cfg, logger)
		if ingester != nil {
			defer ingester.Stop()
		}
	}

	if *httpMode {
		runHTTP(cfg, logger)
		return
	}

	// MQTT-only mode: block until interrupted.
	waitForShutdown(logger)
}

// runHTTP starts the HTTP server and blocks until an interrupt signal asks
// it to shut down gracefully.
func runHTTP(cfg config.Config, logger *logrus.Logger) {
	server := httpapi.NewServer(cfg, logger)
	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: server.Routes()}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("stacktics HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("http server failed")
		}
	}()

	waitForShutdown(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("http server shutdown failed")
	}
}

// startMQTT connects and subscribes the MQTT ingestion path. A broker
// connection failure is logged, not fatal: the caller keeps running HTTP
// regardless (SPEC_FULL.md §4.2).
func startMQTT(cfg config.Config, logger *logrus.Logger) *mqttingest.Ingester {
	if cfg.MQTT.Broker == "" {
		logger.Warn("mqtt enabled but no broker configured, skipping")
		return nil
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTT.Broker)
	clientID := cfg.MQTT.ClientID
	if clientID == "" {
		clientID = "stacktics"
	}
	opts.SetClientID(clientID)
	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)

	client := mqtt.NewClient(opts)
	ingester := mqttingest.New(client, cfg.MQTT, cfg.PackSettings(), logger)
	ingester.Start()
	return ingester
}

// waitForShutdown blocks until SIGINT or SIGTERM is received.
func waitForShutdown(logger *logrus.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown signal received")
}

// savedPlan is the on-disk shape --render reads: a container, the boxes
// keyed by ID, and a previously computed result.
type savedPlan struct {
	Container pack.Container      `json:"container"`
	Boxes     map[string]pack.Box `json:"boxes"`
	Result    pack.Result         `json:"result"`
}

// runRender implements the offline --render mode: load a saved plan and
// write it as an SVG diagram, no server involved.
func runRender(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading plan file: %w", err)
	}

	var plan savedPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("parsing plan file: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err := render.WriteSVG(out, render.Plan{Container: plan.Container, Boxes: plan.Boxes, Result: plan.Result}); err != nil {
		return fmt.Errorf("rendering svg: %w", err)
	}

	fmt.Printf("wrote %s\n", outPath)
	return nil
}
