package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/slicer/pkg/diag"
)

// Config holds every declared option's current value, plus the
// derived per-nozzle machine state the Materials table feeds into.
type Config struct {
	values  map[string]string
	Nozzles [4]NozzleConfig
}

// New returns a Config populated with every Registry option's
// default value and a single PLA nozzle on extruder 0.
func New() *Config {
	c := &Config{values: make(map[string]string, len(Registry))}
	for _, s := range Registry {
		c.values[s.Name] = s.Default
	}
	c.Nozzles[0] = NozzleConfig{
		Material:     "PLA",
		HotendTemp:   200,
		BedTemp:      60,
		NozzleDiam:   0.4,
		FilamentDiam: 1.75,
	}
	return c
}

// Set validates and applies value to the named option, recording a
// diagnostic and leaving the previous value in place on failure.
func (c *Config) Set(name, value string, d *diag.Collector) bool {
	spec, ok := Find(name)
	if !ok {
		if d != nil {
			d.Add(diag.UnknownConfigKey, "unknown config key %q", name)
		}
		return false
	}
	if !validate(spec, value) {
		if d != nil {
			d.Add(diag.ConfigOutOfRange, "%s: value %q out of range or wrong type, keeping %q", name, value, c.values[name])
		}
		return false
	}
	c.values[name] = value
	return true
}

func validate(spec Spec, value string) bool {
	switch spec.Kind {
	case KindBool:
		switch value {
		case "true", "True", "false", "False":
			return true
		}
		return false
	case KindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		return float64(n) >= spec.Min && float64(n) <= spec.Max
	case KindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		return f >= spec.Min && f <= spec.Max
	case KindEnum:
		for _, o := range spec.Options {
			if o == value {
				return true
			}
		}
		return false
	}
	return false
}

// Get returns the raw string value of a declared option.
func (c *Config) Get(name string) string {
	return c.values[name]
}

// Float, Int and Bool parse a declared option's current value under
// the assumption it has already been validated by Set/Load.
func (c *Config) Float(name string) float64 {
	f, _ := strconv.ParseFloat(c.values[name], 64)
	return f
}

func (c *Config) Int(name string) int {
	n, _ := strconv.Atoi(c.values[name])
	return n
}

func (c *Config) Bool(name string) bool {
	return strings.EqualFold(c.values[name], "true")
}

func (c *Config) String(name string) string {
	return c.values[name]
}

// Load reads a key=value configuration file, applying
// each line through Set so the same validation and diagnostics path
// as --set-option is exercised. Section headers and "#"-prefixed
// comments are ignored; blank lines are skipped.
func Load(path string, d *diag.Collector) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := New()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		c.Set(key, val, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes every declared option, grouped by section under a
// "# Section" comment header, to path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	section := ""
	for _, s := range Registry {
		if s.Section != section {
			if section != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "# %s\n", s.Section)
			section = s.Section
		}
		fmt.Fprintf(w, "%s=%s\n", s.Name, c.values[s.Name])
	}
	return nil
}

// ApplyFilament sets nozzle 0's temperatures from a named Material.
// Additional comma-separated names populate nozzles 1, 2, 3 in order.
func (c *Config) ApplyFilament(names []string) error {
	for i, name := range names {
		if i >= len(c.Nozzles) {
			break
		}
		m, err := LookupMaterial(name)
		if err != nil {
			return err
		}
		c.Nozzles[i] = NozzleConfig{
			Material:     m.Name,
			HotendTemp:   m.HotendTemp,
			BedTemp:      m.BedTemp,
			NozzleDiam:   c.Float("nozzle_diam"),
			FilamentDiam: c.Float("filament_diam"),
		}
	}
	return nil
}
