// visage-watch runs the live face watcher: camera frames through the
// YuNet detector into the state tracker, with events served on a
// websocket feed and the tracked state on an HTTP API.
//
// Configuration via environment:
//
//	VISAGE_CAMERA    front | back | numeric device index (default front)
//	VISAGE_MODEL     path to the YuNet ONNX model
//	VISAGE_ACCURACY  low | high (default high)
//	VISAGE_NOTIFY    on-change | every-frame (default on-change)
//	VISAGE_INTERVAL  frame cadence, e.g. 100ms
//	VISAGE_PORT      HTTP port (default 8080)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/visagekit/visage/internal/config"
	"github.com/visagekit/visage/internal/log"
	"github.com/visagekit/visage/pkg/capture"
	"github.com/visagekit/visage/pkg/detect"
	"github.com/visagekit/visage/pkg/notify"
	"github.com/visagekit/visage/pkg/visage"
	"github.com/visagekit/visage/pkg/web"
)

func main() {
	log.Init(config.LogLevel())

	camCfg := capture.DefaultConfig()
	camCfg.Device = config.CameraDevice()

	cam, err := capture.OpenWebcam(camCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cam.Close()

	detCfg := detect.DefaultConfig()
	detCfg.ModelPath = config.ModelPath()
	detCfg.Accuracy = config.Accuracy()

	detector, err := detect.NewYuNet(detCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer detector.Close()

	watchCfg := visage.DefaultConfig()
	watchCfg.Mode = config.NotifyMode()
	watchCfg.FrameInterval = config.FrameInterval(watchCfg.FrameInterval)
	watchCfg.LogEvents = true

	center := notify.NewCenter()
	watcher := visage.New(watchCfg, cam, detector, center)

	server := web.NewServer(config.Port(), watcher, center)
	server.StartAsync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info("watching",
		"camera", string(camCfg.Device),
		"accuracy", detCfg.Accuracy.String(),
		"mode", watchCfg.Mode.String(),
		"port", config.Port())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	watcher.Stop()
	if err := server.Shutdown(); err != nil {
		log.Warn("shutdown", "error", err)
	}
}
