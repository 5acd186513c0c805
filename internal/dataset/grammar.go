package dataset

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ikalang/ika-backend/internal/domain"
)

// bannedExampleTokens are words from a related language that must never
// appear in pattern examples.
var bannedExampleTokens = []string{"akwukwo", "anyi", "umunna", "ga eje", "ya mere", "mgbe"}

// Default sentence ranges for sections that omit them.
const (
	defaultStoryMin   = 1
	defaultStoryMax   = 3
	defaultLectureMin = 2
	defaultLectureMax = 5
)

// yamlSlot decodes either a bare slot name or a {name, pos, domain} map.
type yamlSlot struct {
	Name   string `yaml:"name"`
	POS    string `yaml:"pos"`
	Domain string `yaml:"domain"`
}

func (s *yamlSlot) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Name = value.Value
		return nil
	}
	type plain yamlSlot
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = yamlSlot(p)
	return nil
}

type yamlPattern struct {
	ID              string     `yaml:"pattern_id"`
	Category        string     `yaml:"category"`
	Example         string     `yaml:"example"`
	ExampleLanguage *string    `yaml:"example_language"`
	Slots           []yamlSlot `yaml:"slots"`
}

// ParsePatterns decodes grammar_patterns.yaml and reports every structural
// problem as a *domain.DatasetError.
func ParsePatterns(file string, data []byte) ([]domain.GrammarPattern, error) {
	var doc struct {
		Patterns []yamlPattern `yaml:"patterns"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.DatasetError{File: file, Problems: []string{err.Error()}}
	}

	var problems []string
	seen := make(map[string]struct{}, len(doc.Patterns))
	patterns := make([]domain.GrammarPattern, 0, len(doc.Patterns))

	if len(doc.Patterns) == 0 {
		problems = append(problems, "no patterns defined")
	}

	for i, yp := range doc.Patterns {
		id := strings.TrimSpace(yp.ID)
		if id == "" {
			problems = append(problems, fmt.Sprintf("patterns[%d]: missing pattern_id", i))
			continue
		}
		if _, dup := seen[id]; dup {
			problems = append(problems, fmt.Sprintf("pattern %s: duplicate pattern_id", id))
			continue
		}
		seen[id] = struct{}{}

		if yp.ExampleLanguage != nil {
			problems = append(problems, fmt.Sprintf("pattern %s: example_language field is not allowed", id))
		}
		example := strings.ToLower(yp.Example)
		for _, banned := range bannedExampleTokens {
			if strings.Contains(example, banned) {
				problems = append(problems, fmt.Sprintf("pattern %s: example contains banned token %q", id, banned))
			}
		}
		if len(yp.Slots) == 0 {
			problems = append(problems, fmt.Sprintf("pattern %s: no slots", id))
		}

		p := domain.GrammarPattern{
			ID:       id,
			Category: strings.TrimSpace(yp.Category),
			Example:  yp.Example,
			Slots:    make([]domain.Slot, 0, len(yp.Slots)),
		}
		for j, ys := range yp.Slots {
			name := strings.TrimSpace(ys.Name)
			if name == "" {
				problems = append(problems, fmt.Sprintf("pattern %s: slots[%d]: missing name", id, j))
				continue
			}
			pos := domain.PartOfSpeech(strings.ToLower(strings.TrimSpace(ys.POS)))
			if pos != "" && !pos.IsValid() {
				problems = append(problems, fmt.Sprintf("pattern %s: slot %s: unknown pos %q", id, name, ys.POS))
				continue
			}
			p.Slots = append(p.Slots, domain.Slot{
				Name:   name,
				POS:    pos,
				Domain: domain.NormalizeDomain(ys.Domain),
			})
		}
		patterns = append(patterns, p)
	}

	if len(problems) > 0 {
		return nil, &domain.DatasetError{File: file, Problems: problems}
	}
	return patterns, nil
}

type yamlSection struct {
	PatternPool  []string `yaml:"pattern_pool"`
	MinSentences *int     `yaml:"min_sentences"`
	MaxSentences *int     `yaml:"max_sentences"`
}

type yamlTemplate struct {
	ID          string       `yaml:"id"`
	PatternPool []string     `yaml:"pattern_pool"`
	Opening     *yamlSection `yaml:"opening"`
	Conflict    *yamlSection `yaml:"conflict"`
	Resolution  *yamlSection `yaml:"resolution"`
	Intro       *yamlSection `yaml:"intro"`
	Explain     *yamlSection `yaml:"explain"`
	Summary     *yamlSection `yaml:"summary"`
}

func (t yamlTemplate) section(name string) *yamlSection {
	switch name {
	case domain.SectionOpening:
		return t.Opening
	case domain.SectionConflict:
		return t.Conflict
	case domain.SectionResolution:
		return t.Resolution
	case domain.SectionIntro:
		return t.Intro
	case domain.SectionExplain:
		return t.Explain
	case domain.SectionSummary:
		return t.Summary
	}
	return nil
}

// ParseTemplates decodes templates.yaml. Every pattern id referenced by a
// pool must be in patternIDs.
func ParseTemplates(file string, data []byte, patternIDs []string) ([]domain.Template, error) {
	var doc struct {
		Poem    []yamlTemplate `yaml:"poem_templates"`
		Story   []yamlTemplate `yaml:"story_templates"`
		Lecture []yamlTemplate `yaml:"lecture_templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.DatasetError{File: file, Problems: []string{err.Error()}}
	}

	known := make(map[string]struct{}, len(patternIDs))
	for _, id := range patternIDs {
		known[id] = struct{}{}
	}

	var problems []string
	checkPool := func(context string, pool []string) {
		for _, id := range pool {
			if _, ok := known[id]; !ok {
				problems = append(problems, fmt.Sprintf("%s references unknown pattern_id %s", context, id))
			}
		}
	}

	var templates []domain.Template
	for i, yt := range doc.Poem {
		id := templateID(yt.ID, domain.KindPoem, i)
		checkPool(fmt.Sprintf("poem_templates[%d]", i), yt.PatternPool)
		templates = append(templates, domain.Template{
			ID:          id,
			Kind:        domain.KindPoem,
			PatternPool: slices.Clone(yt.PatternPool),
		})
	}

	for _, group := range []struct {
		kind     domain.Kind
		key      string
		items    []yamlTemplate
		min, max int
	}{
		{domain.KindStory, "story_templates", doc.Story, defaultStoryMin, defaultStoryMax},
		{domain.KindLecture, "lecture_templates", doc.Lecture, defaultLectureMin, defaultLectureMax},
	} {
		for i, yt := range group.items {
			tmpl := domain.Template{ID: templateID(yt.ID, group.kind, i), Kind: group.kind}
			for _, name := range domain.SectionOrder(group.kind) {
				ctx := fmt.Sprintf("%s[%d].%s", group.key, i, name)
				sec := domain.Section{Name: name, MinSentences: group.min, MaxSentences: group.max}
				if ys := yt.section(name); ys != nil {
					sec.PatternPool = slices.Clone(ys.PatternPool)
					if ys.MinSentences != nil {
						sec.MinSentences = *ys.MinSentences
					}
					if ys.MaxSentences != nil {
						sec.MaxSentences = *ys.MaxSentences
					}
				}
				if sec.MinSentences < 0 || sec.MaxSentences < 0 {
					problems = append(problems, ctx+": negative sentence count")
				}
				if sec.MinSentences > sec.MaxSentences {
					problems = append(problems, fmt.Sprintf("%s: min_sentences %d > max_sentences %d", ctx, sec.MinSentences, sec.MaxSentences))
				}
				checkPool(ctx, sec.PatternPool)
				tmpl.Sections = append(tmpl.Sections, sec)
			}
			templates = append(templates, tmpl)
		}
	}

	if len(templates) == 0 {
		problems = append(problems, "no templates defined")
	}
	if len(problems) > 0 {
		return nil, &domain.DatasetError{File: file, Problems: problems}
	}
	return templates, nil
}

func templateID(id string, kind domain.Kind, i int) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return fmt.Sprintf("%s_%d", kind, i+1)
}

// ParseClosedClass decodes closed_class.yaml into a table.
func ParseClosedClass(file string, data []byte) (domain.ClosedClassTable, error) {
	var raw map[string][]domain.ClosedClassItem
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.DatasetError{File: file, Problems: []string{err.Error()}}
	}

	var problems []string
	table := make(domain.ClosedClassTable, len(raw))
	for category, items := range raw {
		kept := make([]domain.ClosedClassItem, 0, len(items))
		for i, it := range items {
			it.SourceText = strings.TrimSpace(it.SourceText)
			it.TargetText = strings.TrimSpace(it.TargetText)
			if it.SourceText == "" || it.TargetText == "" {
				problems = append(problems, fmt.Sprintf("%s[%d]: english and ika are required", category, i))
				continue
			}
			kept = append(kept, it)
		}
		table[category] = kept
	}
	if len(problems) > 0 {
		slices.Sort(problems)
		return nil, &domain.DatasetError{File: file, Problems: problems}
	}
	return table, nil
}

// ParseRules decodes grammar_rules.yaml.
func ParseRules(file string, data []byte) (domain.GrammarRules, error) {
	var doc struct {
		TenseMarkers map[string]string `yaml:"tense_markers"`
		Negation     struct {
			Marker string `yaml:"marker"`
		} `yaml:"negation"`
		Questions struct {
			YesNoMarker string `yaml:"yes_no_marker"`
		} `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.GrammarRules{}, &domain.DatasetError{File: file, Problems: []string{err.Error()}}
	}

	markers := make(map[string]string, len(doc.TenseMarkers))
	for tense, marker := range doc.TenseMarkers {
		markers[strings.ToLower(strings.TrimSpace(tense))] = strings.TrimSpace(marker)
	}
	return domain.GrammarRules{
		TenseMarkers:   markers,
		NegationMarker: strings.TrimSpace(doc.Negation.Marker),
		QuestionMarker: strings.TrimSpace(doc.Questions.YesNoMarker),
	}, nil
}
