package dataset

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/rootstock/pkg/errors"
	"github.com/agentstation/rootstock/pkg/xref"
)

// Load reads a YAML dataset snapshot from path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	d := New()
	for _, p := range snap.People {
		if p == nil || p.ID == "" {
			continue
		}
		if err := d.People.Set(p.ID, p); err != nil {
			return nil, err
		}
	}
	for _, r := range snap.Relations {
		if r == nil || r.ID == "" {
			continue
		}
		if err := d.Relations.Set(r.ID, r); err != nil {
			return nil, err
		}
	}
	for _, s := range snap.Sources {
		if s == nil || s.ID == "" {
			continue
		}
		if err := d.Sources.Set(s.ID, s); err != nil {
			return nil, err
		}
	}
	for _, s := range snap.Staging {
		if s == nil || s.ID == "" {
			continue
		}
		if err := d.Staging.Set(s.ID, s); err != nil {
			return nil, err
		}
	}
	if len(snap.XRefs) > 0 {
		d.XRefs = xref.New(xref.WithEntries(snap.XRefs))
	}

	return d, nil
}
