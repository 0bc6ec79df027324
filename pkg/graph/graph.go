package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Diagram Serialization API
// =============================================================================

// MarshalDiagram converts a diagram to indented JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDiagramTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDiagram decodes a JSON diagram.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	return readDiagramFrom(bytes.NewReader(data))
}

// WriteDiagramFile writes a diagram to a JSON file.
// The file is created with 0644 permissions.
func WriteDiagramFile(d Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDiagramTo(d, f)
}

// WriteDiagram writes a diagram as JSON to an io.Writer.
func WriteDiagram(d Diagram, w io.Writer) error {
	return writeDiagramTo(d, w)
}

// ReadDiagramFile reads a diagram file. Files ending in .yaml or .yml are
// decoded as YAML with the same field names as the JSON format; everything
// else is decoded as JSON.
func ReadDiagramFile(path string) (Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAMLFrom(f)
	default:
		return readDiagramFrom(f)
	}
}

// ReadDiagram decodes a JSON diagram from an io.Reader.
func ReadDiagram(r io.Reader) (Diagram, error) {
	return readDiagramFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDiagramTo(d Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDiagramFrom(r io.Reader) (Diagram, error) {
	var d Diagram
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Diagram{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// readYAMLFrom decodes YAML into a generic tree and routes it through the
// JSON decoder so both formats share one set of field names.
func readYAMLFrom(r io.Reader) (Diagram, error) {
	var tree any
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
		return Diagram{}, fmt.Errorf("decode yaml: %w", err)
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return Diagram{}, fmt.Errorf("decode yaml: %w", err)
	}
	return readDiagramFrom(bytes.NewReader(data))
}
