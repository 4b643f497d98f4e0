package fusion

// VRFSpec is the raw user-supplied VRF definition, validated by
// BuildVRFConfig before use.
type VRFSpec struct {
	Name string `json:"name" yaml:"name"`
	RD   string `json:"rd" yaml:"rd"`

	RTExportEnabled bool   `json:"rt_export_enabled" yaml:"rt_export_enabled"`
	RTExportValue   string `json:"rt_export_value,omitempty" yaml:"rt_export_value"`
	RTImportEnabled bool   `json:"rt_import_enabled" yaml:"rt_import_enabled"`
	RTImportValue   string `json:"rt_import_value,omitempty" yaml:"rt_import_value"`
}

// VRFConfig is a validated, immutable VRF definition. RT values are carried
// only when the corresponding enabled flag is set.
type VRFConfig struct {
	Name string
	RD   string

	RTExportEnabled bool
	RTExportValue   string
	RTImportEnabled bool
	RTImportValue   string
}

// BuildVRFConfig validates and normalizes one VRF specification. Route Target
// values are checked with the Route Distinguisher rule, but only when their
// enabled flag is set; disabled values are dropped entirely.
func BuildVRFConfig(spec VRFSpec) (*VRFConfig, error) {
	if err := ValidateVRFName(spec.Name); err != nil {
		return nil, err
	}
	if err := ValidateRouteDistinguisher(spec.RD); err != nil {
		return nil, err
	}

	cfg := &VRFConfig{
		Name:            spec.Name,
		RD:              spec.RD,
		RTExportEnabled: spec.RTExportEnabled,
		RTImportEnabled: spec.RTImportEnabled,
	}

	if spec.RTExportEnabled {
		if err := ValidateRouteDistinguisher(spec.RTExportValue); err != nil {
			return nil, err
		}
		cfg.RTExportValue = spec.RTExportValue
	}
	if spec.RTImportEnabled {
		if err := ValidateRouteDistinguisher(spec.RTImportValue); err != nil {
			return nil, err
		}
		cfg.RTImportValue = spec.RTImportValue
	}

	return cfg, nil
}
