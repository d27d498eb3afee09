package config

// ReportConfig configures report placeholder resolution.
type ReportConfig struct {
	// SpecPath points at a YAML placeholder spec file; empty selects
	// the compiled-in defaults.
	SpecPath string
}

func loadReportConfig() ReportConfig {
	return ReportConfig{
		SpecPath: getEnv("REPORT_SPEC_PATH", ""),
	}
}
