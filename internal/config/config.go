package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-jsonnet"
)

// DefaultFilename is picked up from the working directory when no config
// file is named on the command line.
const DefaultFilename = "gluegen.jsonnet"

type Config struct {
	Input            string `json:"input"`
	Output           string `json:"output"`
	Strict           bool   `json:"strict"`
	Quiet            bool   `json:"quiet"`
	NoColor          bool   `json:"noColor"`
	LegacyBitBuffers bool   `json:"legacyBitBuffers"`
}

func Default() Config {
	return Config{
		Input:  "LOCATED_VARIABLES.h",
		Output: "glueVars.cpp",
	}
}

// Load reads a .json or .jsonnet file over the defaults. Relative input and
// output paths are resolved against the config file's directory.
func Load(p string) (Config, error) {
	c := Default()

	var r io.Reader
	switch ext := filepath.Ext(p); ext {
	default:
		return c, fmt.Errorf("config: unknown file ext %q", ext)
	case ".json":
		f, err := os.Open(p)
		if err != nil {
			return c, fmt.Errorf("config: unable to open file %q: %w", p, err)
		}
		defer f.Close()
		r = f
	case ".jsonnet":
		out, err := evaluate(p)
		if err != nil {
			return c, err
		}
		r = strings.NewReader(out)
	}

	if err := Decode(r, &c); err != nil {
		return c, fmt.Errorf("config: for %q %w", p, err)
	}

	dir := filepath.Dir(p)
	c.Input = resolve(dir, c.Input)
	c.Output = resolve(dir, c.Output)
	return c, nil
}

// LoadDefault loads DefaultFilename from dir if it exists. ok is false when
// there is no such file.
func LoadDefault(dir string) (c Config, ok bool, err error) {
	p := filepath.Join(dir, DefaultFilename)
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return Default(), false, nil
	}
	c, err = Load(p)
	return c, err == nil, err
}

func evaluate(p string) (string, error) {
	vm := jsonnet.MakeVM()
	dir, _ := filepath.Split(p)
	vm.Importer(&jsonnet.FileImporter{
		JPaths: []string{dir},
	})
	bb, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("config: unable to open file %q: %w", p, err)
	}
	out, err := vm.EvaluateAnonymousSnippet(p, string(bb))
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return out, nil
}

// Decode reads a JSON object into c. Unknown fields are an error; fields
// missing from the object keep their current value.
func Decode(r io.Reader, c *Config) error {
	coder := json.NewDecoder(r)
	coder.DisallowUnknownFields()
	if err := coder.Decode(c); err != nil {
		return fmt.Errorf("unable to unmarshal: %w", err)
	}
	return nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" || dir == "." {
		return p
	}
	return filepath.Join(dir, p)
}

// Template is the config file written by `gluegen init`.
func Template() string {
	d := Default()
	return fmt.Sprintf(`// gluegen configuration. Paths are relative to this file.
{
  input: %q,
  output: %q,

  // Fail instead of skipping lines that are not declarations.
  strict: false,
  quiet: false,
  noColor: false,

  // Also assign grouped bits into bool_input / bool_output.
  legacyBitBuffers: false,
}
`, d.Input, d.Output)
}
