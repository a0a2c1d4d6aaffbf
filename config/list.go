package config

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/viper"
)

// TextList reads a list whose items may contain spaces or commas, such as
// search queries. Its environment variable holds either a JSON array or one
// item per line. Other sources go through viper unchanged.
func TextList(name string) ([]string, error) {
	field, ok := Default[name]
	if !ok {
		return viper.GetStringSlice(name), nil
	}

	raw, ok := os.LookupEnv(field.Env())
	if !ok {
		return viper.GetStringSlice(name), nil
	}

	return parseTextList(raw)
}

func parseTextList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var items []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items, nil
}
