package dataset

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/rootstock/pkg/errors"
)

// snapshot is the on-disk shape of a dataset. Collections are flattened
// to sorted slices so snapshots diff cleanly.
type snapshot struct {
	People    []*Person         `yaml:"people,omitempty"`
	Relations []*Relation       `yaml:"relations,omitempty"`
	Sources   []*Source         `yaml:"sources,omitempty"`
	Staging   []*StagedSource   `yaml:"staging,omitempty"`
	XRefs     map[string]string `yaml:"xrefs,omitempty"`
}

func (d *Dataset) snapshot() *snapshot {
	snap := &snapshot{
		People:    d.People.List(),
		Relations: d.Relations.List(),
		Sources:   d.Sources.List(),
		Staging:   d.Staging.List(),
		XRefs:     d.XRefs.Entries(),
	}

	sort.Slice(snap.People, func(i, j int) bool { return snap.People[i].ID < snap.People[j].ID })
	sort.Slice(snap.Relations, func(i, j int) bool { return snap.Relations[i].ID < snap.Relations[j].ID })
	sort.Slice(snap.Sources, func(i, j int) bool { return snap.Sources[i].ID < snap.Sources[j].ID })
	sort.Slice(snap.Staging, func(i, j int) bool { return snap.Staging[i].ID < snap.Staging[j].ID })

	return snap
}

// Save writes the dataset as a YAML snapshot at path, creating parent
// directories as needed.
func (d *Dataset) Save(path string) error {
	data, err := yaml.Marshal(d.snapshot())
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
