package config

// DefaultConfig returns configuration reproducing the risk scorer's
// built-in §4.4 weight table exactly, plus sane scan/output defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Languages: []string{
				"go", "rust", "python", "typescript", "javascript",
				"java", "csharp", "c", "cpp", "ruby", "php",
			},
			Exclude: []string{
				"vendor/**",
				"node_modules/**",
				"dist/**",
				"build/**",
				"**/testdata/**",
			},
		},
		Risk: RiskConfig{
			ClassificationWeights: map[string]float64{
				"text":                   0.00,
				"syntax":                 0.08,
				"functional":             0.22,
				"text+syntax":            0.10,
				"text+functional":        0.22,
				"syntax+functional":      0.25,
				"text+syntax+functional": 0.28,
			},
			ChangeTypeWeights: map[string]float64{
				"deleted":  0.12,
				"modified": 0.08,
				"renamed":  0.04,
				"moved":    0.00,
				"added":    0.02,
			},
			PublicAPIBoost:         0.12,
			BlastRadiusCoefficient: 0.30,
			DependentCoefficient:   0.15,
		},
		Impact: ImpactConfig{
			Cap: 10_000,
		},
		Output: OutputConfig{
			Format:  "yaml",
			Verbose: false,
		},
	}
}

// Merge merges loaded config with defaults; values present in loaded
// take precedence. Returns a new Config.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Scan = mergeScanConfig(loaded.Scan, defaults.Scan)
	result.Risk = mergeRiskConfig(loaded.Risk, defaults.Risk)
	result.Impact = mergeImpactConfig(loaded.Impact, defaults.Impact)
	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)

	return result
}

func mergeScanConfig(loaded, defaults ScanConfig) ScanConfig {
	result := ScanConfig{}

	if len(loaded.Languages) > 0 {
		result.Languages = loaded.Languages
	} else {
		result.Languages = defaults.Languages
	}

	if len(loaded.Exclude) > 0 {
		result.Exclude = loaded.Exclude
	} else {
		result.Exclude = defaults.Exclude
	}

	return result
}

func mergeRiskConfig(loaded, defaults RiskConfig) RiskConfig {
	result := RiskConfig{}

	if len(loaded.ClassificationWeights) > 0 {
		result.ClassificationWeights = loaded.ClassificationWeights
	} else {
		result.ClassificationWeights = defaults.ClassificationWeights
	}

	if len(loaded.ChangeTypeWeights) > 0 {
		result.ChangeTypeWeights = loaded.ChangeTypeWeights
	} else {
		result.ChangeTypeWeights = defaults.ChangeTypeWeights
	}

	if loaded.PublicAPIBoost != 0 {
		result.PublicAPIBoost = loaded.PublicAPIBoost
	} else {
		result.PublicAPIBoost = defaults.PublicAPIBoost
	}

	if loaded.BlastRadiusCoefficient != 0 {
		result.BlastRadiusCoefficient = loaded.BlastRadiusCoefficient
	} else {
		result.BlastRadiusCoefficient = defaults.BlastRadiusCoefficient
	}

	if loaded.DependentCoefficient != 0 {
		result.DependentCoefficient = loaded.DependentCoefficient
	} else {
		result.DependentCoefficient = defaults.DependentCoefficient
	}

	return result
}

func mergeImpactConfig(loaded, defaults ImpactConfig) ImpactConfig {
	if loaded.Cap != 0 {
		return ImpactConfig{Cap: loaded.Cap}
	}
	return defaults
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	if loaded.Format != "" {
		result.Format = loaded.Format
	} else {
		result.Format = defaults.Format
	}

	// Verbose is set when either loaded or defaults sets it, so an
	// explicit false in loaded cannot turn off a true default.
	result.Verbose = loaded.Verbose || defaults.Verbose

	return result
}

// ValidFormats lists the valid values for output.format.
var ValidFormats = []string{"yaml", "json"}

// IsValidFormat checks if the given format value is valid.
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}
