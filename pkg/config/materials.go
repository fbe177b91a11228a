package config

import "fmt"

// Material is one row of the filament Materials table: a named
// temperature profile the CLI's --filament flag looks up to populate
// per-nozzle hotend/bed temperatures.
type Material struct {
	Name       string
	HotendTemp int
	BedTemp    int
}

// Materials is the built-in filament table.
var Materials = []Material{
	{Name: "PLA", HotendTemp: 200, BedTemp: 60},
	{Name: "PETG", HotendTemp: 235, BedTemp: 80},
	{Name: "ABS", HotendTemp: 240, BedTemp: 100},
	{Name: "TPU", HotendTemp: 210, BedTemp: 50},
	{Name: "NYLON", HotendTemp: 250, BedTemp: 80},
}

// LookupMaterial finds a Material by case-sensitive name.
func LookupMaterial(name string) (Material, error) {
	for _, m := range Materials {
		if m.Name == name {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("unknown material %q", name)
}

// NozzleConfig is one extruder's machine-level configuration.
type NozzleConfig struct {
	Material     string
	HotendTemp   int
	BedTemp      int
	NozzleDiam   float64
	FilamentDiam float64
}
