// Package config reads deckgen job files. A job describes the guide curves,
// cross-section templates, reinforcement and piers of one bridge together
// with the solver settings and output paths. Jobs are written in TOML or
// YAML; the format is chosen by the file extension.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/paramcamp/deck"
	"gopkg.in/yaml.v3"
)

// DefaultStations is the station count of a job that does not set one.
const DefaultStations = 50

// Job is the contents of a job file.
type Job struct {
	// Name identifies the bridge in logs and default output names.
	Name string `toml:"name" yaml:"name"`

	// Stations is the number of stations sampled on the center curve.
	Stations int `toml:"stations" yaml:"stations"`
	// Policy is the frame policy, "perpendicular" or "tangent-up".
	Policy string `toml:"policy" yaml:"policy"`
	// Loft is the loft type, "normal" or "straight".
	Loft string `toml:"loft" yaml:"loft"`
	// Up is the global up direction. Unset means +Z.
	Up [3]float64 `toml:"up" yaml:"up"`
	// Extension is the fraction by which the edge curves are extended
	// before intersection.
	Extension float64 `toml:"extension" yaml:"extension"`
	Tolerance float64 `toml:"tolerance" yaml:"tolerance"`
	// Partial keeps going when stations are lost instead of failing.
	Partial bool `toml:"partial" yaml:"partial"`
	Workers int  `toml:"workers" yaml:"workers"`

	Center CurveSpec `toml:"center" yaml:"center"`
	Left   CurveSpec `toml:"left" yaml:"left"`
	Right  CurveSpec `toml:"right" yaml:"right"`

	Templates TemplateSpec `toml:"templates" yaml:"templates"`
	Rebar     *RebarSpec   `toml:"rebar" yaml:"rebar"`
	Columns   *ColumnSpec  `toml:"columns" yaml:"columns"`
	Output    OutputSpec   `toml:"output" yaml:"output"`
}

// CurveSpec describes a guide curve by its control points.
type CurveSpec struct {
	// Kind is one of "line", "polyline", "cubic" or "nurbs". Empty means
	// "polyline".
	Kind   string       `toml:"kind" yaml:"kind"`
	Points [][3]float64 `toml:"points" yaml:"points"`

	// The remaining fields apply to "nurbs" only. Degree defaults to 3,
	// or less when there are fewer points.
	Degree  int       `toml:"degree" yaml:"degree"`
	Weights []float64 `toml:"weights" yaml:"weights"`
	Knots   []float64 `toml:"knots" yaml:"knots"`
}

// TemplateSpec describes the four template edges as offsets in the local
// coordinates of a base frame with the given origin and world axes.
type TemplateSpec struct {
	Origin [3]float64   `toml:"origin" yaml:"origin"`
	Left   [][3]float64 `toml:"left" yaml:"left"`
	Top    [][3]float64 `toml:"top" yaml:"top"`
	Right  [][3]float64 `toml:"right" yaml:"right"`
	Bottom [][3]float64 `toml:"bottom" yaml:"bottom"`
}

// RebarSpec describes the reinforcement channels.
type RebarSpec struct {
	// Positions are written as "t,dy".
	Positions []string  `toml:"positions" yaml:"positions"`
	Radius    float64   `toml:"radius" yaml:"radius"`
	Offsets   []float64 `toml:"offsets" yaml:"offsets"`
}

// ColumnSpec describes the piers. They stand on Terrain when it is set and
// on the horizontal plane at height GroundZ otherwise.
type ColumnSpec struct {
	Radius  float64      `toml:"radius" yaml:"radius"`
	GroundZ float64      `toml:"ground_z" yaml:"ground_z"`
	Terrain *TerrainSpec `toml:"terrain" yaml:"terrain"`
}

// TerrainSpec is a ground height grid. Row i, column j lies at
// Origin + (i·Step[0], j·Step[1], Heights[i][j]). When Heights is empty a
// Rows×Cols grid is drawn from [Min, Max) with a generator seeded by Seed.
type TerrainSpec struct {
	Origin  [3]float64  `toml:"origin" yaml:"origin"`
	Step    [2]float64  `toml:"step" yaml:"step"`
	Heights [][]float64 `toml:"heights" yaml:"heights"`

	Rows int     `toml:"rows" yaml:"rows"`
	Cols int     `toml:"cols" yaml:"cols"`
	Min  float64 `toml:"min" yaml:"min"`
	Max  float64 `toml:"max" yaml:"max"`
	Seed int64   `toml:"seed" yaml:"seed"`
}

// Surface builds the terrain mesh.
func (s *TerrainSpec) Surface() (*deck.Mesh, error) {
	heights := s.Heights
	if len(heights) == 0 {
		var err error
		heights, err = deck.RandomHeights(rand.New(rand.NewSource(s.Seed)), s.Rows, s.Cols, s.Min, s.Max)
		if err != nil {
			return nil, err
		}
	}
	return deck.HeightField(deck.Point(vec(s.Origin)), s.Step[0], s.Step[1], heights)
}

// OutputSpec names the files written for a job. Empty paths are skipped,
// except STL, which defaults to the job name.
type OutputSpec struct {
	STL    string `toml:"stl" yaml:"stl"`
	Frames string `toml:"frames" yaml:"frames"`
	Plan   string `toml:"plan" yaml:"plan"`
}

// Load reads the job file at path, fills in defaults and validates it.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	var job *Job
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		job, err = DecodeTOML(data)
	case ".yaml", ".yml":
		job, err = DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: job file %s: unknown format %q", deck.ErrInvalidParameter, path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("job file %s: %w", path, err)
	}
	if job.Name == "" {
		job.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	job.setDefaults()
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("job file %s: %w", path, err)
	}
	return job, nil
}

// DecodeTOML parses a job written in TOML. Keys that do not belong to a Job
// are an error.
func DecodeTOML(data []byte) (*Job, error) {
	job := new(Job)
	md, err := toml.Decode(string(data), job)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", deck.ErrInvalidParameter, strings.Join(keys, ", "))
	}
	return job, nil
}

// DecodeYAML parses a job written in YAML. Keys that do not belong to a Job
// are an error.
func DecodeYAML(data []byte) (*Job, error) {
	job := new(Job)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(job); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return job, nil
}

func (j *Job) setDefaults() {
	if j.Name == "" {
		j.Name = "bridge"
	}
	if j.Stations == 0 {
		j.Stations = DefaultStations
	}
	if j.Rebar != nil && j.Rebar.Radius == 0 {
		j.Rebar.Radius = deck.DefaultRebarRadius
	}
	if j.Columns != nil && j.Columns.Radius == 0 {
		j.Columns.Radius = deck.DefaultColumnRadius
	}
	if j.Output.STL == "" {
		j.Output.STL = j.Name + ".stl"
	}
	j.Output.STL = os.ExpandEnv(j.Output.STL)
	j.Output.Frames = os.ExpandEnv(j.Output.Frames)
	j.Output.Plan = os.ExpandEnv(j.Output.Plan)
}

// Validate checks the settings that can be checked without building any
// geometry. Errors match the deck sentinels.
func (j *Job) Validate() error {
	if j.Stations < 2 {
		return fmt.Errorf("%w: stations must be at least 2, got %d", deck.ErrInvalidParameter, j.Stations)
	}
	if _, err := deck.ParseFramePolicy(j.Policy); err != nil {
		return err
	}
	if _, err := deck.ParseLoftType(j.Loft); err != nil {
		return err
	}
	if j.Extension < 0 || j.Tolerance < 0 || j.Workers < 0 {
		return fmt.Errorf("%w: extension, tolerance and workers must not be negative", deck.ErrInvalidParameter)
	}
	for _, g := range []struct {
		name string
		c    CurveSpec
	}{{"center", j.Center}, {"left", j.Left}, {"right", j.Right}} {
		if len(g.c.Points) == 0 {
			return fmt.Errorf("%w: %s curve has no points", deck.ErrInputMissing, g.name)
		}
	}
	if j.Rebar != nil {
		if len(j.Rebar.Positions) == 0 {
			return fmt.Errorf("%w: rebar has no positions", deck.ErrInvalidParameter)
		}
		if !(j.Rebar.Radius > 0) {
			return fmt.Errorf("%w: rebar radius %g", deck.ErrInvalidParameter, j.Rebar.Radius)
		}
	}
	if j.Columns != nil && !(j.Columns.Radius > 0) {
		return fmt.Errorf("%w: column radius %g", deck.ErrInvalidParameter, j.Columns.Radius)
	}
	return nil
}

// Curve builds the curve described by s.
func (s CurveSpec) Curve() (deck.Curve, error) {
	pts := points(s.Points)
	switch s.Kind {
	case "", "polyline":
		pl, err := deck.NewPolyline(pts...)
		if err != nil {
			return nil, err
		}
		return pl, nil
	case "line":
		if len(pts) != 2 {
			return nil, fmt.Errorf("%w: line needs 2 points, got %d", deck.ErrInvalidParameter, len(pts))
		}
		return deck.Line{P0: pts[0], P1: pts[1]}, nil
	case "cubic":
		if len(pts) != 4 {
			return nil, fmt.Errorf("%w: cubic needs 4 points, got %d", deck.ErrInvalidParameter, len(pts))
		}
		return deck.CubicBez{P0: pts[0], P1: pts[1], P2: pts[2], P3: pts[3]}, nil
	case "nurbs":
		degree := s.Degree
		if degree == 0 {
			degree = min(3, len(pts)-1)
		}
		c, err := deck.NewNURBS(degree, pts, s.Weights, s.Knots)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: unknown curve kind %q", deck.ErrInvalidParameter, s.Kind)
}

// Bridge converts the job into the input and options of [deck.BuildBridge].
func (j *Job) Bridge() (deck.BridgeInput, deck.Options, error) {
	var (
		in   deck.BridgeInput
		opts deck.Options
		err  error
	)
	in.Name = j.Name
	in.Deck.Count = j.Stations
	for _, g := range []struct {
		name string
		spec CurveSpec
		dst  *deck.Curve
	}{
		{"center", j.Center, &in.Deck.Center},
		{"left", j.Left, &in.Deck.Left},
		{"right", j.Right, &in.Deck.Right},
	} {
		if *g.dst, err = g.spec.Curve(); err != nil {
			return in, opts, fmt.Errorf("%s curve: %w", g.name, err)
		}
	}
	base := deck.WorldXY.WithOrigin(deck.Point(vec(j.Templates.Origin)))
	in.Deck.Templates, err = deck.TemplatesFromOffsets(base, [deck.NumEdges][]deck.Vec3{
		deck.EdgeLeft:   vecs(j.Templates.Left),
		deck.EdgeTop:    vecs(j.Templates.Top),
		deck.EdgeRight:  vecs(j.Templates.Right),
		deck.EdgeBottom: vecs(j.Templates.Bottom),
	})
	if err != nil {
		return in, opts, err
	}

	if j.Rebar != nil {
		req := &deck.RebarRequest{Radius: j.Rebar.Radius, Offsets: j.Rebar.Offsets}
		for _, s := range j.Rebar.Positions {
			pos, err := deck.ParseRebarPosition(s)
			if err != nil {
				return in, opts, err
			}
			req.Positions = append(req.Positions, pos)
		}
		in.Rebar = req
	}
	if j.Columns != nil {
		in.Ground = deck.WorldXY.WithOrigin(deck.Pt(0, 0, j.Columns.GroundZ))
		if t := j.Columns.Terrain; t != nil {
			ground, err := t.Surface()
			if err != nil {
				return in, opts, fmt.Errorf("terrain: %w", err)
			}
			in.Ground = ground
		}
		in.ColumnRadius = j.Columns.Radius
	}

	if opts.Sample.Policy, err = deck.ParseFramePolicy(j.Policy); err != nil {
		return in, opts, err
	}
	if opts.Loft.Type, err = deck.ParseLoftType(j.Loft); err != nil {
		return in, opts, err
	}
	opts.Sample.Up = vec(j.Up)
	opts.Extension = j.Extension
	opts.Tolerance = j.Tolerance
	opts.Loft.Tolerance = j.Tolerance
	opts.PartialResults = j.Partial
	opts.Workers = j.Workers
	return in, opts, nil
}

func vec(v [3]float64) deck.Vec3 {
	return deck.Vec(v[0], v[1], v[2])
}

func vecs(vs [][3]float64) []deck.Vec3 {
	if len(vs) == 0 {
		return nil
	}
	out := make([]deck.Vec3, len(vs))
	for i, v := range vs {
		out[i] = vec(v)
	}
	return out
}

func points(vs [][3]float64) []deck.Point {
	out := make([]deck.Point, len(vs))
	for i, v := range vs {
		out[i] = deck.Pt(v[0], v[1], v[2])
	}
	return out
}
