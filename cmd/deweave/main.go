package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zsiec/deweave/internal/config"
	"github.com/zsiec/deweave/internal/deinterlace"
	"github.com/zsiec/deweave/internal/logger"
	"github.com/zsiec/deweave/pkg/version"
)

func main() {
	var (
		configPath  string
		inPath      string
		outPath     string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "configs/default.yaml", "Path to configuration file")
	flag.StringVar(&inPath, "in", "", "Raw planar input file (interlaced frames)")
	flag.StringVar(&outPath, "out", "", "Raw planar output file (progressive frames)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Println(version.GetInfo().String())
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithField("version", version.GetInfo().Short()).Info("Starting Deweave deinterlacer")
	log.WithField("config_path", configPath).Debug("Configuration loaded")

	if inPath == "" || outPath == "" {
		log.Fatal("Both -in and -out are required")
	}

	format, err := deinterlace.ParseChromaFormat(cfg.Video.Chroma)
	if err != nil {
		log.WithError(err).Fatal("Invalid video chroma")
	}

	if cfg.Metrics.Enabled {
		go startDebugServer(cfg.Metrics, logger.NewLogrusAdapter(logger.WithComponent(log, "debug_server")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streamID := uuid.NewString()
	streamLog := logger.NewLogrusAdapter(logger.WithStream(log, streamID))

	// The lifecycle side negotiates geometry first so the pool can be sized
	// to the output pictures the filter will ask for.
	mode, _ := deinterlace.ParseMode(cfg.Filter.Mode)
	geo, err := deinterlace.NegotiateOutput(format, mode, cfg.Video.Width, cfg.Video.Height)
	if err != nil {
		streamLog.WithError(err).Fatal("Cannot activate deinterlace filter for this stream")
	}

	pool := deinterlace.NewPicturePool(geo, cfg.Filter.PoolSize, streamLog)

	filter, err := deinterlace.New(deinterlace.Config{
		Mode:           cfg.Filter.Mode,
		Format:         format,
		Width:          cfg.Video.Width,
		Height:         cfg.Video.Height,
		AcquireBackoff: cfg.Filter.AcquireBackoff,
	}, pool, streamLog)
	if err != nil {
		streamLog.WithError(err).Fatal("Failed to create deinterlace filter")
	}
	defer filter.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig).Info("Received shutdown signal")
		pool.Shutdown()
		cancel()
	}()

	if err := run(ctx, cfg, filter, pool, format, inPath, outPath, streamLog); err != nil {
		streamLog.WithError(err).Fatal("Pipeline error")
	}

	streamLog.Info("Deinterlacing complete")
}

// run reads raw interlaced frames from inPath, renders them through the
// filter and writes every submitted progressive picture to outPath.
func run(ctx context.Context, cfg *config.Config, filter *deinterlace.Filter,
	pool *deinterlace.PicturePool, format deinterlace.ChromaFormat,
	inPath, outPath string, log logger.Logger,
) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	// Display side: drain submitted pictures to the output file and recycle
	// their buffers.
	writerCtx, stopWriter := context.WithCancel(context.Background())
	writerDone := make(chan error, 1)
	go func() {
		for {
			select {
			case pic := <-pool.Output():
				if err := writePicture(out, pic); err != nil {
					pool.Recycle(pic)
					// With the writer gone nothing drains the pool, so
					// flag shutdown to unblock the render side.
					pool.Shutdown()
					writerDone <- err
					return
				}
				pool.Recycle(pic)
			case <-writerCtx.Done():
				writerDone <- nil
				return
			}
		}
	}()

	src := deinterlace.NewPicture(format, cfg.Video.Width, cfg.Video.Height)
	frameDuration := int64(1_000_000 / cfg.Video.FPS)

	frames := 0
	for {
		if err := readFrame(in, src); err != nil {
			if err == io.EOF {
				break
			}
			stopWriter()
			<-writerDone
			return fmt.Errorf("read frame %d: %w", frames, err)
		}

		src.PTS = int64(frames) * frameDuration
		if err := filter.Render(ctx, src); err != nil {
			stopWriter()
			<-writerDone
			return fmt.Errorf("render frame %d: %w", frames, err)
		}
		frames++

		if ctx.Err() != nil || pool.ShuttingDown() {
			break
		}
	}

	// Wait for every submitted picture to come back before stopping the
	// writer, so nothing is lost at EOF.
	for pool.FreeCount() != cfg.Filter.PoolSize && ctx.Err() == nil && !pool.ShuttingDown() {
		time.Sleep(5 * time.Millisecond)
	}
	stopWriter()
	if err := <-writerDone; err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.WithField("frames", frames).Info("Input drained")
	return nil
}

// readFrame fills every plane of pic from r. Frames are stored tightly
// packed, plane after plane.
func readFrame(r io.Reader, pic *deinterlace.Picture) error {
	for i := range pic.Planes {
		p := &pic.Planes[i]
		if _, err := io.ReadFull(r, p.Data[:p.Pitch*p.Lines]); err != nil {
			if i == 0 && err == io.EOF {
				return io.EOF
			}
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// writePicture appends every plane of pic to w, tightly packed.
func writePicture(w io.Writer, pic *deinterlace.Picture) error {
	for i := range pic.Planes {
		p := &pic.Planes[i]
		if _, err := w.Write(p.Data[:p.Pitch*p.Lines]); err != nil {
			return err
		}
	}
	return nil
}

// startDebugServer serves Prometheus metrics plus health and version
// endpoints.
func startDebugServer(cfg config.MetricsConfig, log logger.Logger) {
	r := mux.NewRouter()
	r.Handle(cfg.Path, promhttp.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(version.GetInfo())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.WithField("addr", addr).Info("Starting debug server")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.WithError(err).Error("Debug server error")
	}
}
