// Package scenario loads evaluation scenarios from YAML files for batch runs.
package scenario

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/toolcost/internal/consumption"
)

// Compare picks two tools by 1-based position for the saving comparison.
// Zero means "not selected".
type Compare struct {
	Reference   int `yaml:"reference"`
	Alternative int `yaml:"alternative"`
}

// File is the on-disk shape of a scenario.
type File struct {
	Basis   consumption.Basis        `yaml:"basis"`
	Annual  consumption.AnnualParams `yaml:"annual"`
	Compare Compare                  `yaml:"compare"`
	Tools   []consumption.Spec       `yaml:"tools"`
}

// Default returns a scenario with a 30 m job and the default annual settings.
func Default() *File {
	return &File{
		Basis: consumption.Basis{
			Mode:         consumption.ModeDistance,
			Distance:     30,
			DepthPerHole: consumption.DefaultDepthPerHole,
		},
		Annual: consumption.DefaultAnnualParams(),
	}
}

// Load reads and parses a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse scenario file %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML over Default and normalizes modes and kinds. Numbers may
// carry thousands separators; a number that still does not parse is dropped so
// the field keeps its default.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	lenientNumbers(&doc)

	f := Default()
	if len(doc.Content) > 0 {
		if err := doc.Decode(f); err != nil {
			return nil, err
		}
	}

	f.Basis.Mode = consumption.ParseMode(string(f.Basis.Mode))
	if f.Basis.DepthPerHole <= 0 {
		f.Basis.DepthPerHole = consumption.DefaultDepthPerHole
	}

	for i := range f.Tools {
		kind, err := consumption.ParseKind(string(f.Tools[i].Kind))
		if err != nil {
			return nil, fmt.Errorf("tool %d (%s): %w", i+1, f.Tools[i].Name, err)
		}
		f.Tools[i].Kind = kind
	}

	if err := f.Compare.validate(len(f.Tools)); err != nil {
		return nil, err
	}
	return f, nil
}

// ToolList converts the scenario's specs into tools.
func (f *File) ToolList() ([]consumption.Tool, error) {
	return consumption.Tools(f.Tools)
}

func (c Compare) validate(n int) error {
	if c.Reference < 0 || c.Reference > n {
		return fmt.Errorf("compare.reference %d is outside 1..%d", c.Reference, n)
	}
	if c.Alternative < 0 || c.Alternative > n {
		return fmt.Errorf("compare.alternative %d is outside 1..%d", c.Alternative, n)
	}
	return nil
}

var floatKeys = map[string]bool{
	"distance": true, "depth_per_hole": true,
	"working_days": true, "minutes_per_part": true, "part_value": true,
	"corner_life": true, "insert_life": true, "body_life": true,
	"insert_price": true, "holder_price": true, "regrind_price": true, "body_price": true,
	"recovery_ratio": true, "change_seconds": true,
}

var intKeys = map[string]bool{
	"holes": true, "corners": true, "simultaneous": true, "holder_ratio": true, "regrinds": true,
	"reference": true, "alternative": true,
}

// lenientNumbers rewrites numeric scalars in place: "50,000" becomes 50000,
// "2.7" under an integer key becomes 2, and unparseable values are removed.
func lenientNumbers(n *yaml.Node) {
	if n.Kind != yaml.MappingNode {
		for _, c := range n.Content {
			lenientNumbers(c)
		}
		return
	}

	kept := n.Content[:0]
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		isFloat, isInt := floatKeys[key.Value], intKeys[key.Value]
		if val.Kind == yaml.ScalarNode && (isFloat || isInt) {
			if !normalizeNumber(val, isInt) {
				continue
			}
		} else {
			lenientNumbers(val)
		}
		kept = append(kept, key, val)
	}
	n.Content = kept
}

func normalizeNumber(n *yaml.Node, integer bool) bool {
	raw := strings.TrimSpace(strings.ReplaceAll(n.Value, ",", ""))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}

	n.Style = 0
	if integer {
		n.Tag = "!!int"
		n.Value = strconv.FormatInt(int64(math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Floor(v)))), 10)
		return true
	}
	n.Tag = "!!float"
	n.Value = strconv.FormatFloat(v, 'g', -1, 64)
	return true
}
