package export

import (
	"io"

	"github.com/paramcamp/deck"
	"gopkg.in/yaml.v3"
)

// Frame is the YAML form of one station frame.
type Frame struct {
	Station int        `yaml:"station"`
	Param   float64    `yaml:"param"`
	Origin  [3]float64 `yaml:"origin,flow"`
	X       [3]float64 `yaml:"x,flow"`
	Y       [3]float64 `yaml:"y,flow"`
	Z       [3]float64 `yaml:"z,flow"`
}

// Frames is the YAML form of the stations of a deck.
type Frames struct {
	Center []Frame `yaml:"center"`
	Left   []Frame `yaml:"left"`
	Right  []Frame `yaml:"right"`
	// Dropped lists the stations no profile was built for.
	Dropped []int `yaml:"dropped,omitempty,flow"`
}

// DeckFrames collects the station frames of d.
func DeckFrames(d *deck.Deck) Frames {
	out := Frames{
		Center: frames(d.Stations),
		Left:   frames(d.Left),
		Right:  frames(d.Right),
	}
	built := make(map[int]bool, len(d.Profiles))
	for _, p := range d.Profiles {
		built[p.Station] = true
	}
	for _, st := range d.Stations {
		if !built[st.Index] {
			out.Dropped = append(out.Dropped, st.Index)
		}
	}
	return out
}

func frames(stations []deck.Station) []Frame {
	out := make([]Frame, len(stations))
	for i, st := range stations {
		f := st.Frame
		out[i] = Frame{
			Station: st.Index,
			Param:   st.Param,
			Origin:  [3]float64{f.Origin.X, f.Origin.Y, f.Origin.Z},
			X:       [3]float64{f.X.X, f.X.Y, f.X.Z},
			Y:       [3]float64{f.Y.X, f.Y.Y, f.Y.Z},
			Z:       [3]float64{f.Z.X, f.Z.Y, f.Z.Z},
		}
	}
	return out
}

// WriteFrames writes the station frames of d as YAML.
func WriteFrames(w io.Writer, d *deck.Deck) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(DeckFrames(d)); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFramesFile writes the station frames of d to the YAML file at path.
func WriteFramesFile(path string, d *deck.Deck) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteFrames(w, d)
	})
}
