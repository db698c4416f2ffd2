package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
	"github.com/taigrr/lumen/pkg/tracer"
)

const envPrefix = "LUMEN_"

// options holds every setting after defaults, .env, LUMEN_* variables
// and flags have been layered, in that order of increasing priority.
type options struct {
	envFile  string
	logLevel string
	logFile  string

	scene      string
	mesh       string
	material   string
	tint       string
	meshScale  float64
	meshYaw    float64
	background string
	camera     string
	exposure   string
	depth      int
	workers    int
	seed       uint64

	// render
	width       int
	height      int
	samples     int
	supersample int
	output      string

	// view
	fps int

	logger *log.Logger
}

func bindSceneFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVar(&o.envFile, "env-file", ".env", "dotenv file to load before reading LUMEN_* variables")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&o.logFile, "log-file", "", "append logs to this file instead of stderr")
	fs.StringVarP(&o.scene, "scene", "s", "cornell", "built-in scene ("+strings.Join(scene.Names(), ", ")+")")
	fs.StringVarP(&o.mesh, "mesh", "m", "", "render a .glb/.gltf/.obj mesh instead of a built-in scene")
	fs.StringVar(&o.material, "material", "", "override mesh materials, e.g. glass:1.5 or mirror:0.9")
	fs.StringVar(&o.tint, "tint", "", "mesh tint as #rrggbb")
	fs.Float64Var(&o.meshScale, "mesh-scale", 1, "mesh size relative to the fitted two-unit box")
	fs.Float64Var(&o.meshYaw, "mesh-yaw", 0, "mesh turn about the vertical axis, in degrees")
	fs.StringVar(&o.background, "background", "", "override background (sky, black)")
	fs.StringVarP(&o.camera, "camera", "c", "dof", "camera model (pinhole, aa, dof)")
	fs.StringVar(&o.exposure, "exposure", "exp", "exposure curve (exp, filmic)")
	fs.IntVarP(&o.depth, "depth", "d", 0, "maximum bounces (0 = scene default)")
	fs.IntVarP(&o.workers, "workers", "j", 0, "concurrent rows (0 = CPU count)")
	fs.Uint64Var(&o.seed, "seed", 1, "random seed")
}

// envKey maps a flag name to its environment variable.
func envKey(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// loadEnv reads the dotenv file and applies LUMEN_* variables to flags
// the user did not set explicitly. A missing default .env is fine.
func (o *options) loadEnv(flags *pflag.FlagSet) error {
	if err := godotenv.Load(o.envFile); err != nil {
		if flags.Changed("env-file") || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", o.envFile, err)
		}
	}

	var errs error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "env-file" {
			return
		}
		key := envKey(f.Name)
		if v, ok := os.LookupEnv(key); ok {
			if err := flags.Set(f.Name, v); err != nil {
				errs = errors.Join(errs, fmt.Errorf("%s: %w", key, err))
			}
		}
	})
	return errs
}

// setup runs before every subcommand.
func (o *options) setup(cmd *cobra.Command, _ []string) error {
	if err := o.loadEnv(cmd.Flags()); err != nil {
		return err
	}
	logger, err := o.newLogger(cmd)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

// loadScene resolves the built-in scene or mesh plus overrides.
func (o *options) loadScene() (scene.Scene, error) {
	var sc scene.Scene
	if o.mesh != "" {
		m, err := models.Load(o.mesh)
		if err != nil {
			return scene.Scene{}, fmt.Errorf("load mesh: %w", err)
		}
		if o.meshScale <= 0 {
			return scene.Scene{}, fmt.Errorf("mesh-scale must be positive, got %g", o.meshScale)
		}
		opts := scene.MeshOptions{
			Scale: o.meshScale,
			Yaw:   o.meshYaw * math.Pi / 180,
		}
		if o.material != "" {
			mat, err := material.Parse(o.material)
			if err != nil {
				return scene.Scene{}, err
			}
			opts.Material = &mat
		}
		if o.tint != "" {
			tint, err := render.ParseTint(o.tint)
			if err != nil {
				return scene.Scene{}, err
			}
			opts.Tint = tint
		}
		o.logger.Info("loaded mesh", "name", m.Name, "vertices", m.VertexCount(), "triangles", m.TriangleCount(), "materials", m.MaterialCount())
		sc = scene.MeshScene(m, opts)
	} else {
		var err error
		if sc, err = scene.Builtin(o.scene); err != nil {
			return scene.Scene{}, err
		}
	}

	if o.background != "" {
		sc.Background = o.background
	}
	if o.depth > 0 {
		sc.Depth = o.depth
	}
	return sc, nil
}

// progressive builds the tracer and accumulator for sc at w x h.
func (o *options) progressive(sc scene.Scene, w, h int) (*render.Progressive, render.Exposure, error) {
	bg, err := tracer.ParseBackground(sc.Background)
	if err != nil {
		return nil, 0, err
	}
	kind, err := render.ParseCameraKind(o.camera)
	if err != nil {
		return nil, 0, err
	}
	exposure, err := render.ParseExposure(o.exposure)
	if err != nil {
		return nil, 0, err
	}
	if sc.Depth <= 0 {
		return nil, 0, fmt.Errorf("depth must be positive, got %d", sc.Depth)
	}

	tr := tracer.New(sc.Root, bg, o.logger)
	p := render.NewProgressive(tr, render.NewCamera(kind, sc.View), render.ProgressiveConfig{
		Width:   w,
		Height:  h,
		Depth:   sc.Depth,
		Seed:    o.seed,
		Workers: o.workers,
		Logger:  o.logger,
	})
	return p, exposure, nil
}
