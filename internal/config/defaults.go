package config

const (
	defaultInputDir   = "data"
	defaultOutputFile = "CardMetadata.json"
	defaultLockName   = ".cardmeta.lock"
	defaultThreshold  = 0.4
	defaultTopN       = 10
	defaultNormalize  = NormalizeNone
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:   defaultInputDir,
			OutputFile: defaultOutputFile,
		},
		Similarity: Similarity{
			Threshold: defaultThreshold,
			TopN:      defaultTopN,
			Normalize: defaultNormalize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
