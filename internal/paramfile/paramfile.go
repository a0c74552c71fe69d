// Package paramfile reads parameter values from HCL, YAML or JSON files.
//
// Every format holds flat name/value pairs:
//
//	bench_id     = "bench_b"
//	sdr_nodetype = "d430"
//
// Scalar values keep the text they were written with, so an unquoted
// 00123456 stays 00123456. Nested objects and lists are rejected.
package paramfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension is not one of
// .hcl, .yaml, .yml or .json.
var ErrUnsupportedFormat = errors.New("paramfile: unsupported file format")

// Format identifies the syntax of a parameter file.
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the parameter file at path.
func Load(path string) (map[string]string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("paramfile: failed to read %s: %w", path, err)
	}
	values, err := Decode(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("paramfile: %s: %w", path, err)
	}
	return values, nil
}

// Decode parses data in the given format. filename is used in HCL
// diagnostics only.
func Decode(data []byte, format Format, filename string) (map[string]string, error) {
	switch format {
	case FormatHCL:
		return decodeHCL(data, filename)
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeHCL(data []byte, filename string) (map[string]string, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	out := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if val.IsNull() {
			continue
		}
		switch val.Type() {
		case cty.String:
			out[name] = val.AsString()
		case cty.Number, cty.Bool:
			// Unquoted numbers keep their source text.
			if _, ok := attr.Expr.(*hclsyntax.LiteralValueExpr); !ok {
				return nil, fmt.Errorf("%s: expected a literal value, quote expressions as strings", name)
			}
			out[name] = strings.TrimSpace(string(attr.Expr.Range().SliceBytes(data)))
		default:
			return nil, fmt.Errorf("%s: expected a string, number or bool, got %s", name, val.Type().FriendlyName())
		}
	}
	return out, nil
}

func decodeYAML(data []byte) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return out, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return out, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of parameter names to values")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%s: expected a string, number or bool", key.Value)
		}
		if value.Tag == "!!null" {
			continue
		}
		out[key.Value] = value.Value
	}
	return out, nil
}

func decodeJSON(data []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for name, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			out[name] = v
		case json.Number:
			out[name] = v.String()
		case bool:
			out[name] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("%s: expected a string, number or bool, got %T", name, v)
		}
	}
	return out, nil
}

// Source is a binding layer backed by a parameter file.
type Source struct {
	Path string
}

// Name returns the file path.
func (s Source) Name() string { return s.Path }

// Values loads the file.
func (s Source) Values() (map[string]string, error) { return Load(s.Path) }
