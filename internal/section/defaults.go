package section

// Default returns the built-in registry used when no registry file is
// configured. It describes a generic capture/processing pipeline.
func Default() *Registry {
	reg, err := New(
		Descriptor{
			ID:       "general",
			Title:    "General",
			Stateful: true,
			Fields: []Field{
				{Key: "color", Label: "Color profile", Kind: Enum, Options: []string{"default", "warm", "cool", "mono"}},
				{Key: "capture_mode", Label: "Capture mode", Kind: Enum, Options: []string{"screen", "window", "udp"}},
				{Key: "target_fps", Label: "Target FPS", Kind: RangedInt, Min: 1, Max: 240, Step: 1},
			},
		},
		Descriptor{
			ID:       "pipeline",
			Title:    "Pipeline",
			Stateful: true,
			Fields: []Field{
				{Key: "enabled", Label: "Enabled", Kind: Boolean},
				{Key: "mode", Label: "Mode", Kind: Enum, Options: []string{"normal", "fast", "precise"}},
				{Key: "window_size", Label: "Window size", Kind: RangedInt, Min: 1, Max: 500, Step: 1},
				{Key: "gain_x", Label: "Gain X", Kind: RangedFloat, Min: 0, Max: 10, Step: 0.1},
				{Key: "gain_y", Label: "Gain Y", Kind: RangedFloat, Min: 0, Max: 10, Step: 0.1},
				{Key: "smoothing", Label: "Smoothing", Kind: RangedInt, Min: 0, Max: 100, Step: 1},
			},
		},
		Descriptor{
			ID:       "output",
			Title:    "Output",
			Stateful: true,
			Fields: []Field{
				{Key: "output_enabled", Label: "Enabled", Kind: Boolean},
				{Key: "delay_min", Label: "Delay min (s)", Kind: RangedFloat, Min: 0, Max: 1, Step: 0.01},
				{Key: "delay_max", Label: "Delay max (s)", Kind: RangedFloat, Min: 0, Max: 1, Step: 0.01},
				{Key: "batch_size", Label: "Batch size", Kind: RangedInt, Min: 1, Max: 64, Step: 1},
			},
		},
		Descriptor{
			ID:       "config",
			Title:    "Config",
			Stateful: false,
		},
	)
	if err != nil {
		panic("section: invalid default registry: " + err.Error())
	}
	return reg
}
