package facts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// ParseCfg parses the output of `rustc --print cfg`: one `key` or
// `key="value"` per line. Bare keys get an empty value. Order is kept.
func ParseCfg(output string) ([]tierdocs.KeyValue, error) {
	var cfg []tierdocs.KeyValue

	for i, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, quoted, hasValue := strings.Cut(line, "=")
		if !hasValue {
			cfg = append(cfg, tierdocs.KeyValue{Key: key})
			continue
		}

		value, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, fmt.Errorf("cfg line %d: malformed value in %q", i+1, line)
		}
		cfg = append(cfg, tierdocs.KeyValue{Key: key, Value: value})
	}

	return cfg, nil
}
