package deploy

import "strings"

// EnvVar is a single environment variable for the deployed application.
// Order is preserved from the submitted blob.
type EnvVar struct {
	Key   string
	Value string
}

// ParseEnvBlob parses a free-text blob of KEY=VALUE lines. Lines are
// trimmed, blank lines and lines without a key or a '=' are dropped, and
// the value is everything after the first '='. A later occurrence of a key
// overwrites the earlier value in place.
func ParseEnvBlob(blob string) []EnvVar {
	vars := []EnvVar{}
	index := map[string]int{}

	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found || key == "" {
			continue
		}

		if i, ok := index[key]; ok {
			vars[i].Value = value
			continue
		}

		index[key] = len(vars)
		vars = append(vars, EnvVar{Key: key, Value: value})
	}

	return vars
}
