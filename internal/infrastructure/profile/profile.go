// Package profile loads an optional governance profile from a TOML file.
// A profile tunes presentation and agency conventions without touching the
// fixed dimensions, score ranges, or risk categorization.
package profile

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"aiahub/internal/errs"
)

type Profile struct {
	Organization string             `toml:"organization"`
	Report       ReportProfile      `toml:"report"`
	Assessments  AssessmentsProfile `toml:"assessments"`
}

type ReportProfile struct {
	Footer string `toml:"footer"`
}

// AssessmentsProfile lists related assessment names the agency tracks on top
// of the built-in ones. New register entries start each of them at
// Not Started.
type AssessmentsProfile struct {
	Extra []string `toml:"extra"`
}

// Load reads and decodes path. Blank extra names are dropped.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errs.Wrapf(err, "read profile %q", path)
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, errs.Wrapf(err, "decode profile %q", path)
	}

	cleaned := make([]string, 0, len(p.Assessments.Extra))
	for _, name := range p.Assessments.Extra {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	p.Assessments.Extra = cleaned

	return p, nil
}
