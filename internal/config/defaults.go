package config

// DefaultTimeout is the discovery timeout, in seconds, used when no
// configuration can be read.
const DefaultTimeout = 1

// Default returns a Record populated with defaults.
func Default() Record {
	return Record{
		Timeout: DefaultTimeout,
		Default: nil,
	}
}
