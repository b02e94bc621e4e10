package docconfig

import (
	"strings"

	docconfigerrors "go-hrdocs/internal/docconfig/errors"
)

// normalizeSections validates sections and fills default titles. All
// problems are reported together under "violations".
func normalizeSections(in []Section) ([]Section, error) {
	type violation struct {
		Index  int    `json:"index"`
		Field  string `json:"field"`
		Reason string `json:"reason"`
	}

	var violations []violation
	if len(in) == 0 {
		violations = append(violations, violation{Index: -1, Field: "sections", Reason: "at least one section is required"})
	}

	seen := make(map[string]bool, len(in))
	out := make([]Section, len(in))
	for i, s := range in {
		s.SectionKey = strings.TrimSpace(s.SectionKey)
		s.Title = strings.TrimSpace(s.Title)

		switch {
		case s.SectionKey == "":
			violations = append(violations, violation{i, "sectionKey", "required"})
		case seen[s.SectionKey]:
			violations = append(violations, violation{i, "sectionKey", "duplicate section key"})
		}
		seen[s.SectionKey] = true

		if !ValidDataSource(s.DataSource) {
			violations = append(violations, violation{i, "dataSource", "unknown data source"})
		}
		if !ValidMode(s.Mode) {
			violations = append(violations, violation{i, "mode", "unknown mode"})
		}

		names := make([]string, 0, len(s.Components))
		for _, n := range s.Components {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		s.Components = names
		if s.Mode != ModeIncludeAll && len(names) == 0 {
			violations = append(violations, violation{i, "components", "required for " + s.Mode})
		}

		if s.Title == "" {
			s.Title = DefaultTitle(s.SectionKey)
		}
		out[i] = s
	}

	if len(violations) > 0 {
		return nil, docconfigerrors.ErrInvalidSection.WithDetails(map[string]any{"violations": violations})
	}
	return out, nil
}
