package strategy

import (
	_ "embed"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/genxdata/genxdata/internal/generator/common"
)

//go:embed names.yml
var namesData []byte

type nameCorpus struct {
	MaleFirstNames   []string `yaml:"male_first_names"`
	FemaleFirstNames []string `yaml:"female_first_names"`
	LastNames        []string `yaml:"last_names"`
}

func loadNameCorpus() (*nameCorpus, error) {
	corpus := &nameCorpus{}
	if err := yaml.Unmarshal(namesData, corpus); err != nil {
		return nil, errors.WithMessage(err, "failed to load embedded name corpus")
	}

	return corpus, nil
}

type randomNameParams struct {
	NameType string `json:"name_type" yaml:"name_type"`
	Gender   string `json:"gender"    yaml:"gender"`
	Case     string `json:"case"      yaml:"case"`
	Seed     int64  `json:"seed"      yaml:"seed"`
}

// randomNameStrategy draws person names from the embedded corpus.
// name_type selects first, last or full names, gender narrows the first
// name pool and case reformats the title-cased corpus entries.
type randomNameStrategy struct {
	base

	params randomNameParams
	corpus *nameCorpus
	rng    *rand.Rand
}

var _ Strategy = (*randomNameStrategy)(nil)

func (s *randomNameStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[randomNameParams](ctx.Params)
	if err != nil {
		return err
	}

	if params.NameType == "" {
		params.NameType = "first"
	}

	if params.Gender == "" {
		params.Gender = "any"
	}

	if params.Case == "" {
		params.Case = "title"
	}

	switch params.NameType {
	case "first", "last", "full":
	default:
		return errors.Errorf("unsupported name_type: %q", params.NameType)
	}

	switch params.Gender {
	case "male", "female", "any":
	default:
		return errors.Errorf("unsupported gender: %q", params.Gender)
	}

	switch params.Case {
	case "title", "upper", "lower":
	default:
		return errors.Errorf("unsupported case: %q", params.Case)
	}

	if s.corpus == nil {
		corpus, err := loadNameCorpus()
		if err != nil {
			return err
		}

		s.corpus = corpus
	}

	s.params = *params

	if s.rng == nil {
		s.rng = newRNG(params.Seed)
	}

	return nil
}

func (s *randomNameStrategy) GenerateChunk(count int) ([]any, error) {
	values := make([]any, count)

	for i := 0; i < count; i++ {
		var name string

		switch s.params.NameType {
		case "first":
			name = pick(s.rng, s.firstNames())
		case "last":
			name = pick(s.rng, s.corpus.LastNames)
		default:
			name = pick(s.rng, s.firstNames()) + " " + pick(s.rng, s.corpus.LastNames)
		}

		values[i] = formatCase(name, s.params.Case)
	}

	return values, nil
}

func (s *randomNameStrategy) firstNames() []string {
	switch s.params.Gender {
	case "male":
		return s.corpus.MaleFirstNames
	case "female":
		return s.corpus.FemaleFirstNames
	default:
		return append(append([]string{}, s.corpus.MaleFirstNames...), s.corpus.FemaleFirstNames...)
	}
}

func formatCase(name, caseFormat string) string {
	switch caseFormat {
	case "upper":
		return strings.ToUpper(name)
	case "lower":
		return strings.ToLower(name)
	default:
		// corpus entries are already title cased
		return name
	}
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}

func (s *randomNameStrategy) ResetState() {
	s.rng = newRNG(s.params.Seed)
}

func (s *randomNameStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}
