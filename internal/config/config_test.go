package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paramcamp/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxTOML = `
name = "box"
stations = 5
loft = "straight"
workers = 2

[center]
kind = "line"
points = [[0, 0, 0], [20, 0, 0]]

[left]
points = [[0, 3, 0], [20, 3, 0]]

[right]
points = [[0, -3, 0], [20, -3, 0]]

[templates]
left = [[0, -1, 0], [0, 0, 0]]
top = [[-3, 0, 0], [3, 0, 0]]
right = [[0, 0, 0], [0, -1, 0]]
bottom = [[3, -1, 0], [-3, -1, 0]]

[rebar]
positions = ["0.1,-0.5", "0.5, -0.5", "0.9,-0.5"]
offsets = [-2, 0, 2]

[columns]
ground_z = -10

[output]
frames = "frames.yaml"
`

const boxYAML = `
name: box
stations: 5
loft: straight
workers: 2
center:
  kind: line
  points: [[0, 0, 0], [20, 0, 0]]
left:
  points: [[0, 3, 0], [20, 3, 0]]
right:
  points: [[0, -3, 0], [20, -3, 0]]
templates:
  left: [[0, -1, 0], [0, 0, 0]]
  top: [[-3, 0, 0], [3, 0, 0]]
  right: [[0, 0, 0], [0, -1, 0]]
  bottom: [[3, -1, 0], [-3, -1, 0]]
rebar:
  positions: ["0.1,-0.5", "0.5, -0.5", "0.9,-0.5"]
  offsets: [-2, 0, 2]
columns:
  ground_z: -10
output:
  frames: frames.yaml
`

func writeJob(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFormats(t *testing.T) {
	fromTOML, err := Load(writeJob(t, "box.toml", boxTOML))
	require.NoError(t, err)
	fromYAML, err := Load(writeJob(t, "box.yml", boxYAML))
	require.NoError(t, err)
	assert.Equal(t, fromTOML, fromYAML)

	assert.Equal(t, "box", fromTOML.Name)
	assert.Equal(t, 5, fromTOML.Stations)
	assert.Equal(t, [][3]float64{{0, 3, 0}, {20, 3, 0}}, fromTOML.Left.Points)
	require.NotNil(t, fromTOML.Rebar)
	assert.Equal(t, deck.DefaultRebarRadius, fromTOML.Rebar.Radius)
	require.NotNil(t, fromTOML.Columns)
	assert.Equal(t, deck.DefaultColumnRadius, fromTOML.Columns.Radius)
	assert.Equal(t, -10.0, fromTOML.Columns.GroundZ)
	assert.Equal(t, "box.stl", fromTOML.Output.STL)
	assert.Equal(t, "frames.yaml", fromTOML.Output.Frames)
	assert.Empty(t, fromTOML.Output.Plan)
}

func TestLoadDefaults(t *testing.T) {
	job, err := Load(writeJob(t, "viaduct.toml", `
[center]
points = [[0, 0, 0], [10, 0, 0]]
[left]
points = [[0, 1, 0], [10, 1, 0]]
[right]
points = [[0, -1, 0], [10, -1, 0]]
`))
	require.NoError(t, err)
	assert.Equal(t, "viaduct", job.Name)
	assert.Equal(t, DefaultStations, job.Stations)
	assert.Equal(t, "viaduct.stl", job.Output.STL)
	assert.Nil(t, job.Rebar)
	assert.Nil(t, job.Columns)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("DECK_OUT", "/tmp/out")
	job, err := Load(writeJob(t, "a.yaml", `
center: {points: [[0, 0, 0], [10, 0, 0]]}
left: {points: [[0, 1, 0], [10, 1, 0]]}
right: {points: [[0, -1, 0], [10, -1, 0]]}
output: {plan: $DECK_OUT/plan.png}
`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out/plan.png", job.Output.Plan)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, file, contents string
		want                 error
	}{
		{"format", "job.json", `{}`, deck.ErrInvalidParameter},
		{"unknown toml key", "job.toml", boxTOML + "\nspan = 3\n", deck.ErrInvalidParameter},
		{"no center", "job.toml", `stations = 5`, deck.ErrInputMissing},
		{"one station", "job.yaml", "stations: 1\n" + boxYAML[len("\nname: box\nstations: 5\n"):], deck.ErrInvalidParameter},
		{"policy", "job.toml", `policy = "frenet"` + "\n" + boxTOML[len("\nname = \"box\"\n"):], deck.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeJob(t, tt.file, tt.contents))
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeJob(t, "bad.yaml", "center: [1, 2"))
	require.Error(t, err)
	_, err = Load(writeJob(t, "unknown.yaml", boxYAML+"span: 3\n"))
	require.Error(t, err)
}

func TestCurveSpec(t *testing.T) {
	tests := []struct {
		spec  CurveSpec
		start deck.Point
		end   deck.Point
	}{
		{CurveSpec{Points: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}}, deck.Pt(0, 0, 0), deck.Pt(1, 1, 0)},
		{CurveSpec{Kind: "line", Points: [][3]float64{{0, 0, 0}, {2, 0, 1}}}, deck.Pt(0, 0, 0), deck.Pt(2, 0, 1)},
		{CurveSpec{Kind: "cubic", Points: [][3]float64{{0, 0, 0}, {1, 1, 0}, {2, 1, 0}, {3, 0, 0}}}, deck.Pt(0, 0, 0), deck.Pt(3, 0, 0)},
		{CurveSpec{Kind: "nurbs", Points: [][3]float64{{0, 0, 0}, {1, 1, 0}, {2, 0, 0}}}, deck.Pt(0, 0, 0), deck.Pt(2, 0, 0)},
	}
	for _, tt := range tests {
		c, err := tt.spec.Curve()
		require.NoError(t, err, tt.spec.Kind)
		assert.InDelta(t, 0, deck.Start(c).Distance(tt.start), 1e-12, tt.spec.Kind)
		assert.InDelta(t, 0, deck.End(c).Distance(tt.end), 1e-12, tt.spec.Kind)
	}

	c, err := CurveSpec{Kind: "nurbs", Points: [][3]float64{{0, 0, 0}, {1, 1, 0}, {2, 0, 0}}}.Curve()
	require.NoError(t, err)
	assert.Equal(t, 2, c.(deck.NURBS).Degree)

	for _, spec := range []CurveSpec{
		{Kind: "spiral", Points: [][3]float64{{0, 0, 0}, {1, 0, 0}}},
		{Kind: "line", Points: [][3]float64{{0, 0, 0}}},
		{Kind: "cubic", Points: [][3]float64{{0, 0, 0}, {1, 0, 0}}},
		{Points: [][3]float64{{0, 0, 0}}},
		{Kind: "nurbs", Points: [][3]float64{{0, 0, 0}, {1, 0, 0}}, Weights: []float64{1}},
	} {
		c, err := spec.Curve()
		assert.ErrorIs(t, err, deck.ErrInvalidParameter, spec.Kind)
		assert.Nil(t, c)
	}
}

func TestJobBridge(t *testing.T) {
	job, err := Load(writeJob(t, "box.toml", boxTOML))
	require.NoError(t, err)
	in, opts, err := job.Bridge()
	require.NoError(t, err)

	assert.Equal(t, "box", in.Name)
	assert.Equal(t, 5, in.Deck.Count)
	assert.Equal(t, deck.LoftStraight, opts.Loft.Type)
	assert.Equal(t, deck.PerpendicularFrames, opts.Sample.Policy)
	assert.Equal(t, 2, opts.Workers)
	require.NotNil(t, in.Rebar)
	assert.Equal(t, []deck.RebarPosition{{Param: 0.1, Offset: -0.5}, {Param: 0.5, Offset: -0.5}, {Param: 0.9, Offset: -0.5}}, in.Rebar.Positions)
	assert.NotNil(t, in.Ground)

	b, err := deck.BuildBridge(in, &opts)
	require.NoError(t, err)
	assert.InDelta(t, 120, b.Deck.Solid.Volume(), 1e-9)
	assert.Len(t, b.Rebar, 3)
	assert.Len(t, b.Columns, 2)
}

func TestJobBridgeBadRebar(t *testing.T) {
	job, err := Load(writeJob(t, "box.toml", boxTOML))
	require.NoError(t, err)
	job.Rebar.Positions = []string{"0.5"}
	_, _, err = job.Bridge()
	assert.ErrorIs(t, err, deck.ErrInvalidParameter)
}

const slopeTerrain = `
[columns.terrain]
origin = [-5, -5, -10]
step = [5, 5]
heights = [[0, 0, 0], [0.5, 0.5, 0.5], [1, 1, 1], [1.5, 1.5, 1.5], [2, 2, 2], [2.5, 2.5, 2.5], [3, 3, 3]]
`

func TestJobBridgeTerrain(t *testing.T) {
	contents := strings.Replace(boxTOML, "ground_z = -10\n", "ground_z = -10\n"+slopeTerrain, 1)
	job, err := Load(writeJob(t, "box.toml", contents))
	require.NoError(t, err)
	require.NotNil(t, job.Columns.Terrain)
	in, opts, err := job.Bridge()
	require.NoError(t, err)
	require.IsType(t, &deck.Mesh{}, in.Ground)

	b, err := deck.BuildBridge(in, &opts)
	require.NoError(t, err)
	require.Len(t, b.Columns, 2)
	assert.InDelta(t, -9.5, b.Columns[0].Axis.P0.Z, 1e-9)
	assert.InDelta(t, -7.5, b.Columns[1].Axis.P0.Z, 1e-9)
}

func TestJobBridgeRandomTerrain(t *testing.T) {
	terrain := "  terrain:\n" +
		"    origin: [-10, -20, -30]\n" +
		"    step: [5, 5]\n" +
		"    rows: 10\n" +
		"    cols: 12\n" +
		"    min: 5\n" +
		"    max: 17\n" +
		"    seed: 42\n"
	contents := strings.Replace(boxYAML, "  ground_z: -10\n", terrain, 1)
	job, err := Load(writeJob(t, "box.yaml", contents))
	require.NoError(t, err)

	feet := func() []float64 {
		in, opts, err := job.Bridge()
		require.NoError(t, err)
		b, err := deck.BuildBridge(in, &opts)
		require.NoError(t, err)
		require.Len(t, b.Columns, 2)
		var out []float64
		for _, c := range b.Columns {
			z := c.Axis.P0.Z
			assert.True(t, z >= -25 && z <= -13, "foot at %v outside the terrain's range", z)
			out = append(out, z)
		}
		return out
	}
	assert.Equal(t, feet(), feet())
}

func TestJobBridgeBadTerrain(t *testing.T) {
	job, err := Load(writeJob(t, "box.toml", boxTOML))
	require.NoError(t, err)
	job.Columns.Terrain = &TerrainSpec{Step: [2]float64{0, 5}, Heights: [][]float64{{0, 0}, {0, 0}}}
	_, _, err = job.Bridge()
	assert.ErrorIs(t, err, deck.ErrInvalidParameter)

	job.Columns.Terrain = &TerrainSpec{Step: [2]float64{5, 5}, Rows: 3, Cols: 3, Min: 2, Max: 1}
	_, _, err = job.Bridge()
	assert.ErrorIs(t, err, deck.ErrInvalidParameter)
}
