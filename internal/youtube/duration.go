package youtube

import (
	"fmt"
	"strconv"
	"strings"
)

// ShortMaxSeconds is the exclusive duration threshold below which the source
// platform classifies a video as a Short.
const ShortMaxSeconds = 61

// ParseISODuration converts an ISO 8601 duration such as "PT1M3S" into whole
// seconds. Only day/hour/minute/second designators appear in video durations.
func ParseISODuration(raw string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("invalid duration: %s", raw)
	}
	s = s[1:]

	datePart, timePart, _ := strings.Cut(s, "T")

	total := 0
	parse := func(part string, units map[byte]int) error {
		num := ""
		for i := 0; i < len(part); i++ {
			c := part[i]
			if c >= '0' && c <= '9' {
				num += string(c)
				continue
			}

			mult, ok := units[c]
			if !ok || num == "" {
				return fmt.Errorf("invalid duration: %s", raw)
			}

			n, err := strconv.Atoi(num)
			if err != nil {
				return fmt.Errorf("invalid duration: %s", raw)
			}

			total += n * mult
			num = ""
		}

		if num != "" {
			return fmt.Errorf("invalid duration: %s", raw)
		}
		return nil
	}

	if err := parse(datePart, map[byte]int{'D': 86400}); err != nil {
		return 0, err
	}
	if err := parse(timePart, map[byte]int{'H': 3600, 'M': 60, 'S': 1}); err != nil {
		return 0, err
	}

	return total, nil
}

// IsShort reports whether a video of the given duration counts as a Short.
func IsShort(durationSeconds int) bool {
	return durationSeconds < ShortMaxSeconds
}
