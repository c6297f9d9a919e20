// visage-scan runs a single image through a detector backend and
// prints the events and tracked state it produces.
//
// Usage:
//
//	visage-scan [-backend yunet|rekognition] [-mode on-change|every-frame] image.jpg
//
// The rekognition backend uses the standard AWS environment
// (AWS_REGION, credentials chain).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"

	"github.com/visagekit/visage/internal/config"
	"github.com/visagekit/visage/internal/log"
	"github.com/visagekit/visage/pkg/detect"
	"github.com/visagekit/visage/pkg/facestate"
)

func main() {
	backend := flag.String("backend", "yunet", "detector backend: yunet or rekognition")
	mode := flag.String("mode", "on-change", "notify mode: on-change or every-frame")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: visage-scan [-backend yunet|rekognition] image.jpg")
		os.Exit(2)
	}

	log.Init(config.LogLevel())

	frame, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fatal(err)
	}

	detector, err := newDetector(*backend)
	if err != nil {
		fatal(err)
	}
	defer detector.Close()

	obs, err := detector.Detect(frame)
	if err != nil {
		fatal(err)
	}

	notifyMode := facestate.OnChangeOnly
	if *mode == "every-frame" {
		notifyMode = facestate.EveryFrame
	}

	tracker := facestate.NewTracker()
	events := tracker.Process(obs, notifyMode)

	fmt.Printf("faces: %d\n", len(obs.Faces))
	for _, e := range events {
		fmt.Printf("event: %s\n", e.Name())
	}

	state, err := json.MarshalIndent(tracker.State(), "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(state))
}

func newDetector(backend string) (detect.Detector, error) {
	switch backend {
	case "yunet":
		cfg := detect.DefaultConfig()
		cfg.ModelPath = config.ModelPath()
		cfg.Accuracy = config.Accuracy()
		return detect.NewYuNet(cfg)

	case "rekognition":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		cfg := detect.DefaultRekognitionConfig()
		cfg.Accuracy = config.Accuracy()
		return detect.NewRekognition(rekognition.NewFromConfig(awsCfg), cfg), nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
