package uniprot

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PanelEntry is one accession of a fetch panel.
type PanelEntry struct {
	Accession string `yaml:"accession"`
	Note      string `yaml:"note,omitempty"`
}

// Panel is the list of accessions a profile run fetches.
type Panel struct {
	Name       string       `yaml:"name"`
	Accessions []PanelEntry `yaml:"accessions"`
}

// DefaultPanel mixes human, E. coli, yeast and mouse proteins so that every
// organism class is represented.
var DefaultPanel = Panel{
	Name: "default",
	Accessions: []PanelEntry{
		// Human
		{"P04637", "p53"},
		{"P01308", "Insulin"},
		{"P02768", "Albumin"},
		{"P01009", "Alpha-1-antitrypsin"},
		{"P00748", "Coagulation factor XII"},
		{"P68871", "Hemoglobin subunit beta"},
		{"P02647", "Apolipoprotein A-I"},

		// E. coli
		{"P0A6F5", "Carbamoyl-phosphate synthase"},
		{"P0AG63", "Elongation factor Tu"},
		{"P0A796", "ATP synthase"},
		{"P0A6Y8", "Chaperone protein DnaK"},

		// Yeast
		{"P00924", "Enolase"},
		{"P00330", "Alcohol dehydrogenase"},
		{"P00817", "Pyruvate kinase"},

		// Mouse
		{"P01942", "Hemoglobin subunit alpha"},
		{"P07724", "Serum albumin"},
	},
}

// IDs returns the accessions in panel order, skipping blanks.
func (p Panel) IDs() []string {
	out := make([]string, 0, len(p.Accessions))
	for _, e := range p.Accessions {
		if acc := strings.TrimSpace(e.Accession); acc != "" {
			out = append(out, acc)
		}
	}
	return out
}

// LoadPanel reads a YAML panel file.
func LoadPanel(path string) (*Panel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePanel(data)
}

func ParsePanel(data []byte) (*Panel, error) {
	var p Panel
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode panel: %w", err)
	}
	if len(p.IDs()) == 0 {
		return nil, fmt.Errorf("panel %q has no accessions", p.Name)
	}
	return &p, nil
}
