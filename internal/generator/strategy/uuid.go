package strategy

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/common"
)

type uuidParams struct {
	Version     int    `json:"version"      yaml:"version"`
	Hyphens     *bool  `json:"hyphens"      yaml:"hyphens"`
	Uppercase   bool   `json:"uppercase"    yaml:"uppercase"`
	Prefix      string `json:"prefix"       yaml:"prefix"`
	NumbersOnly bool   `json:"numbers_only" yaml:"numbers_only"`
	Seed        int64  `json:"seed"         yaml:"seed"`
}

// uuidStrategy emits UUID strings. Version 5 derives deterministic
// identifiers from a namespace bound to the column name and seed plus a
// running counter, so streamed chunks continue the same sequence.
// Version 4 draws random identifiers. Both are unique by construction,
// so the unique flag is ignored.
type uuidStrategy struct {
	base

	params    uuidParams
	hyphens   bool
	namespace uuid.UUID
	counter   int
}

var _ Strategy = (*uuidStrategy)(nil)

func (s *uuidStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[uuidParams](ctx.Params)
	if err != nil {
		return err
	}

	if params.Version == 0 {
		params.Version = 5
	}

	if params.Version != 4 && params.Version != 5 {
		return errors.Errorf("unsupported uuid version: %d", params.Version)
	}

	s.params = *params

	s.hyphens = true
	if params.Hyphens != nil {
		s.hyphens = *params.Hyphens
	}

	seed := "no-seed"
	if params.Seed != 0 {
		seed = strconv.FormatInt(params.Seed, 10)
	}

	s.namespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("genxdata:"+ctx.Column+":"+seed))

	if ctx.Mode == ModeStreamBatch {
		key := StateKey{Kind: s.kind, Column: ctx.Column}
		if ctx.State.Has(key) {
			s.counter = ctx.State.Get(key).LastIndex
		}
	}

	return nil
}

func (s *uuidStrategy) GenerateChunk(count int) ([]any, error) {
	values := make([]any, count)

	for i := 0; i < count; i++ {
		var id uuid.UUID
		if s.params.Version == 5 {
			id = uuid.NewSHA1(s.namespace, []byte(strconv.Itoa(s.counter)))
		} else {
			id = uuid.New()
		}

		s.counter++

		values[i] = s.format(id)
	}

	return values, nil
}

func (s *uuidStrategy) format(id uuid.UUID) string {
	out := id.String()

	if !s.hyphens {
		out = strings.ReplaceAll(out, "-", "")
	}

	if s.params.Uppercase {
		out = strings.ToUpper(out)
	}

	if s.params.NumbersOnly {
		out = new(big.Int).SetBytes(id[:]).String()
	}

	return s.params.Prefix + out
}

func (s *uuidStrategy) ResetState() {
	s.counter = 0
}

func (s *uuidStrategy) uniqueByConstruction() bool {
	return true
}

func (s *uuidStrategy) Snapshot() (any, int, string) {
	return nil, s.counter, "string"
}
