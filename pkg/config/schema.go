// Package config implements the configuration schema:
// an options table organized into Quality, Support, Adhesion,
// Retraction, Materials, and Machine sections, loaded from and saved
// to a key=value text file with "#"-prefixed comments.
package config

// Kind is an option's declared value type.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindEnum
)

// Spec describes one configuration option: its name, type, default,
// valid range or enum options, and a short description.
type Spec struct {
	Name        string
	Section     string
	Kind        Kind
	Default     string
	Min, Max    float64 // KindInt / KindFloat
	Options     []string
	Description string
}

// Registry is the ordered list of every declared option, grouped by
// section. Every option this slicer reads is declared here so
// Load/Save and --help-configs/--show-configs see a single source of
// truth.
var Registry = []Spec{
	// Quality
	{Name: "layer_height", Section: "Quality", Kind: KindFloat, Default: "0.2", Min: 0.05, Max: 0.3, Description: "Layer height in millimeters"},
	{Name: "extrusion_width", Section: "Quality", Kind: KindFloat, Default: "0.4", Min: 0.1, Max: 1.2, Description: "Nominal extrusion width in millimeters"},
	{Name: "shell_count", Section: "Quality", Kind: KindInt, Default: "2", Min: 0, Max: 10, Description: "Number of perimeter shells"},
	{Name: "top_layers", Section: "Quality", Kind: KindInt, Default: "4", Min: 0, Max: 20, Description: "Number of solid top layers"},
	{Name: "bottom_layers", Section: "Quality", Kind: KindInt, Default: "4", Min: 0, Max: 20, Description: "Number of solid bottom layers"},
	{Name: "infill_density", Section: "Quality", Kind: KindFloat, Default: "0.2", Min: 0, Max: 1, Description: "Sparse infill density, 0-1"},
	{Name: "infill_type", Section: "Quality", Kind: KindEnum, Default: "Grid", Options: []string{"Lines", "Triangles", "Grid", "Hexagons"}, Description: "Sparse infill pattern"},
	{Name: "infill_overlap", Section: "Quality", Kind: KindFloat, Default: "0.3", Min: 0, Max: 2, Description: "Infill-to-perimeter overlap in millimeters"},
	{Name: "random_starts", Section: "Quality", Kind: KindBool, Default: "false", Description: "Rotate each inner shell's seam to a random vertex"},

	// Support
	{Name: "support_type", Section: "Support", Kind: KindEnum, Default: "None", Options: []string{"None", "External", "Everywhere"}, Description: "Support generation mode"},
	{Name: "support_density", Section: "Support", Kind: KindFloat, Default: "0.15", Min: 0, Max: 1, Description: "Support infill density, 0-1"},
	{Name: "support_overhang_threshold", Section: "Support", Kind: KindFloat, Default: "45", Min: 0, Max: 90, Description: "Minimum overhang angle in degrees that triggers support"},
	{Name: "support_outset", Section: "Support", Kind: KindFloat, Default: "0.2", Min: 0, Max: 5, Description: "Support shadow-mask outset in millimeters"},

	// Adhesion
	{Name: "adhesion_type", Section: "Adhesion", Kind: KindEnum, Default: "None", Options: []string{"None", "Brim", "Raft"}, Description: "Bed adhesion structure"},
	{Name: "skirt_outset", Section: "Adhesion", Kind: KindFloat, Default: "2", Min: 0, Max: 20, Description: "Skirt outset from the model in millimeters"},
	{Name: "brim_width", Section: "Adhesion", Kind: KindFloat, Default: "5", Min: 0, Max: 50, Description: "Brim width in millimeters"},
	{Name: "raft_outset", Section: "Adhesion", Kind: KindFloat, Default: "5", Min: 0, Max: 50, Description: "Raft outset from the model in millimeters"},
	{Name: "raft_layers", Section: "Adhesion", Kind: KindInt, Default: "2", Min: 1, Max: 10, Description: "Number of raft body layers"},

	// Retraction
	{Name: "retract_dist", Section: "Retraction", Kind: KindFloat, Default: "1", Min: 0, Max: 10, Description: "Retraction distance in millimeters"},
	{Name: "retract_speed", Section: "Retraction", Kind: KindFloat, Default: "40", Min: 1, Max: 150, Description: "Retraction speed in millimeters/second"},
	{Name: "retract_lift", Section: "Retraction", Kind: KindFloat, Default: "0", Min: 0, Max: 5, Description: "Z-hop height on travel moves in millimeters"},
	{Name: "retract_extruder", Section: "Retraction", Kind: KindFloat, Default: "2", Min: 0, Max: 20, Description: "Extra retraction distance applied on a tool change"},

	// Machine
	{Name: "nozzle_diam", Section: "Machine", Kind: KindFloat, Default: "0.4", Min: 0.1, Max: 1.2, Description: "Nozzle diameter in millimeters"},
	{Name: "filament_diam", Section: "Machine", Kind: KindFloat, Default: "1.75", Min: 1, Max: 3.5, Description: "Filament diameter in millimeters"},
	{Name: "feed_rate", Section: "Machine", Kind: KindFloat, Default: "60", Min: 1, Max: 300, Description: "Nominal print feed rate in millimeters/second"},
	{Name: "nozzle_max_speed", Section: "Machine", Kind: KindFloat, Default: "100", Min: 1, Max: 500, Description: "Maximum speed the nozzle can safely extrude at"},
	{Name: "travel_rate_xy", Section: "Machine", Kind: KindFloat, Default: "150", Min: 1, Max: 500, Description: "XY travel (non-extruding) speed in millimeters/second"},
	{Name: "travel_rate_z", Section: "Machine", Kind: KindFloat, Default: "10", Min: 0.1, Max: 50, Description: "Z travel speed in millimeters/second"},
	{Name: "bed_temp", Section: "Machine", Kind: KindInt, Default: "60", Min: 0, Max: 150, Description: "Heated bed temperature in Celsius, 0 disables"},
	{Name: "hotend_temp", Section: "Machine", Kind: KindInt, Default: "200", Min: 0, Max: 300, Description: "Hotend temperature in Celsius"},

	// Materials — per-nozzle filament assignment; the Materials table
	// proper (name -> temperature profile) lives in materials.go.
	{Name: "nozzle_count", Section: "Materials", Kind: KindInt, Default: "1", Min: 1, Max: 4, Description: "Number of active nozzles, 1-4"},
}

// Find returns the Spec for name, or false if it is not declared.
func Find(name string) (Spec, bool) {
	for _, s := range Registry {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
