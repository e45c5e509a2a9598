package gedcom

import (
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/rootstock/pkg/errors"
)

// Decode reads a mapped interchange document from r.
func Decode(r io.Reader) (*Mapped, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "mapped input", err)
	}
	var m Mapped
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParse("yaml", "mapped input", err)
	}
	return &m, nil
}

// DecodeFile reads a mapped interchange document from path.
func DecodeFile(path string) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()
	return Decode(f)
}
