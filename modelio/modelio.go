package modelio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/symbiota/comopt/core"
)

// ErrBadModel is returned when the document is syntactically valid YAML
// but does not describe a usable community model.
var ErrBadModel = errors.New("modelio: invalid community model")

type fileModel struct {
	ID          string           `yaml:"id"`
	Members     []fileMember     `yaml:"members"`
	Reactions   []fileReaction   `yaml:"reactions"`
	Constraints []fileConstraint `yaml:"constraints"`
}

type fileMember struct {
	ID        string  `yaml:"id"`
	Abundance float64 `yaml:"abundance"`
	Virtual   bool    `yaml:"virtual"`
}

type fileReaction struct {
	ID     string   `yaml:"id"`
	Member string   `yaml:"member"`
	Lower  *float64 `yaml:"lower"`
	Upper  *float64 `yaml:"upper"`
}

type fileConstraint struct {
	Name         string             `yaml:"name"`
	Coefficients map[string]float64 `yaml:"coefficients"`
	Lower        *float64           `yaml:"lower"`
	Upper        *float64           `yaml:"upper"`
	Eq           *float64           `yaml:"eq"`
}

// Load reads and decodes the community model at path.
func Load(path string, opts ...core.CommunityOption) (*core.Community, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("modelio: %w", err)
	}
	defer f.Close()
	return Decode(f, opts...)
}

// Decode reads one YAML community-model document from r, builds the model
// and validates it.
func Decode(r io.Reader, opts ...core.CommunityOption) (*core.Community, error) {
	var doc fileModel
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("modelio: %w", err)
	}
	if doc.ID == "" || len(doc.Members) == 0 {
		return nil, ErrBadModel
	}

	com := core.New(doc.ID, opts...)
	for _, m := range doc.Members {
		if err := com.AddMember(core.Member{
			ID:        m.ID,
			Abundance: m.Abundance,
			Virtual:   m.Virtual,
		}); err != nil {
			return nil, fmt.Errorf("modelio: member %q: %w", m.ID, err)
		}
	}
	for _, r := range doc.Reactions {
		lb, ub := bound(r.Lower, 0), bound(r.Upper, math.Inf(1))
		if err := com.AddReaction(r.ID, r.Member, lb, ub); err != nil {
			return nil, fmt.Errorf("modelio: reaction %q: %w", r.ID, err)
		}
	}
	for _, c := range doc.Constraints {
		lb, ub := bound(c.Lower, math.Inf(-1)), bound(c.Upper, math.Inf(1))
		if c.Eq != nil {
			lb, ub = *c.Eq, *c.Eq
		}
		if err := com.AddConstraint(c.Name, c.Coefficients, lb, ub); err != nil {
			return nil, fmt.Errorf("modelio: constraint %q: %w", c.Name, err)
		}
	}
	if err := com.Validate(); err != nil {
		return nil, fmt.Errorf("modelio: %w", err)
	}
	return com, nil
}

func bound(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
