package simdjson

import "gopkg.in/yaml.v3"

// ConfigFromYAML loads a Config from YAML, starting from DefaultConfig so
// that a partial document only overrides the fields it mentions.
func ConfigFromYAML(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ToYAML dumps the configuration back to YAML, e.g. for embedding the
// effective parser configuration alongside other service config on disk.
func (c Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// UnmarshalYAML lets NumaBinding round-trip through its string form
// ("none"/"local"/"interleaved") instead of a raw integer.
func (b *NumaBinding) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "", "none":
		*b = NumaNone
	case "local":
		*b = NumaLocal
	case "interleaved":
		*b = NumaInterleaved
	default:
		*b = NumaNone
	}
	return nil
}

// MarshalYAML renders NumaBinding as its string form.
func (b NumaBinding) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}
