package models

import (
	"bytes"

	"github.com/expr-lang/expr"
	"github.com/pkg/errors"
)

const (
	// MinimumRowsAllowed is the floor applied by processors when a config
	// requests fewer rows.
	MinimumRowsAllowed = 100

	DefaultChunkSize = 1000
	DefaultBatchSize = 1000
)

// Metadata type holds dataset-level descriptive fields.
type Metadata struct {
	Name string `json:"name" yaml:"name"`
}

// GenerationConfig type is used to describe the declarative dataset config:
// which columns exist, how many rows to produce, which strategy fills each
// column and where the result goes.
type GenerationConfig struct {
	Metadata    *Metadata         `json:"metadata"    yaml:"metadata"`
	ColumnNames []string          `json:"column_name" yaml:"column_name"`
	RowsCount   int               `json:"num_of_rows" yaml:"num_of_rows"`
	Shuffle     bool              `json:"shuffle"     yaml:"shuffle"`
	Seed        int64             `json:"seed"        yaml:"seed"`
	Configs     []*ColumnConfig   `json:"configs"     yaml:"configs"`
	FileWriter  *FileWriterConfig `json:"file_writer" yaml:"file_writer"`
	Stream      *StreamConfig     `json:"stream"      yaml:"stream"`
	Batch       *BatchConfig      `json:"batch"       yaml:"batch"`
}

// ColumnConfig type declares how one or more columns are populated.
type ColumnConfig struct {
	ColumnNames  []string        `json:"column_names" yaml:"column_names"`
	Strategy     *StrategyConfig `json:"strategy"     yaml:"strategy"`
	Mask         string          `json:"mask"         yaml:"mask"`
	Intermediate bool            `json:"intermediate" yaml:"intermediate"`
	Disabled     bool            `json:"disabled"     yaml:"disabled"`
}

// StrategyConfig type names the generator kind and carries its raw
// parameter map; typed decoding happens once at strategy construction.
type StrategyConfig struct {
	Name   string         `json:"name"   yaml:"name"`
	Params map[string]any `json:"params" yaml:"params"`
	Unique bool           `json:"unique" yaml:"unique"`
}

func (gc *GenerationConfig) ParseFromFile(path string) error {
	err := DecodeFile(path, gc)
	if err != nil {
		return errors.WithMessagef(err, "failed to parse generation config file %q", path)
	}

	return gc.PostProcess()
}

func (gc *GenerationConfig) ParseFromYAML(data []byte) error {
	err := DecodeReader("yaml", bytes.NewReader(data), gc)
	if err != nil {
		return errors.WithMessage(err, "failed to parse YAML generation config")
	}

	return gc.PostProcess()
}

func (gc *GenerationConfig) ParseFromJSON(data []byte) error {
	err := DecodeReader("json", bytes.NewReader(data), gc)
	if err != nil {
		return errors.WithMessage(err, "failed to parse JSON generation config")
	}

	return gc.PostProcess()
}

func (gc *GenerationConfig) PostProcess() error {
	err := gc.Parse()
	if err != nil {
		return errors.WithMessage(err, "failed to parse generation config")
	}

	gc.FillDefaults()

	errs := gc.Validate()
	if len(errs) != 0 {
		return errors.Errorf("failed to validate generation config:\n%v", parseErrsToString(errs))
	}

	return nil
}

// AttachStreamFile loads a stream delivery config from its own file and
// makes it the only delivery target, replacing whatever the generation
// config declared.
func (gc *GenerationConfig) AttachStreamFile(path string) error {
	cfg := &StreamConfig{}
	if err := DecodeFile(path, cfg); err != nil {
		return errors.WithMessagef(err, "failed to parse stream config file %q", path)
	}

	gc.Stream = cfg
	gc.Batch = nil
	gc.FileWriter = nil

	return gc.PostProcess()
}

// AttachBatchFile loads a batch delivery config from its own file and
// makes it the only delivery target, replacing whatever the generation
// config declared.
func (gc *GenerationConfig) AttachBatchFile(path string) error {
	cfg := &BatchConfig{}
	if err := DecodeFile(path, cfg); err != nil {
		return errors.WithMessagef(err, "failed to parse batch config file %q", path)
	}

	gc.Batch = cfg
	gc.Stream = nil
	gc.FileWriter = nil

	return gc.PostProcess()
}

// Name returns the dataset name from metadata, or a placeholder.
func (gc *GenerationConfig) Name() string {
	if gc.Metadata != nil && gc.Metadata.Name != "" {
		return gc.Metadata.Name
	}

	return "unknown"
}

func (gc *GenerationConfig) Parse() error {
	if err := FieldParse(gc.Stream); err != nil {
		return errors.WithMessage(err, "stream")
	}

	if err := FieldParse(gc.Batch); err != nil {
		return errors.WithMessage(err, "batch")
	}

	return nil
}

func (gc *GenerationConfig) FillDefaults() {
	if gc.Configs == nil {
		gc.Configs = make([]*ColumnConfig, 0)
	}

	for _, cfg := range gc.Configs {
		if cfg.Strategy != nil && cfg.Strategy.Params == nil {
			cfg.Strategy.Params = make(map[string]any)
		}
	}

	if gc.FileWriter == nil && gc.Stream == nil && gc.Batch == nil {
		gc.FileWriter = &FileWriterConfig{}
	}

	FieldFillDefaults(gc.FileWriter)
	FieldFillDefaults(gc.Stream)
	FieldFillDefaults(gc.Batch)
}

//nolint:cyclop
func (gc *GenerationConfig) Validate() []error {
	var errs []error

	if gc.RowsCount <= 0 {
		errs = append(errs, errors.Errorf("num_of_rows must be greater than zero: %v", gc.RowsCount))
	}

	if len(gc.ColumnNames) == 0 {
		errs = append(errs, errors.New("column_name must list at least one column"))
	}

	if len(gc.Configs) == 0 {
		errs = append(errs, errors.New("configs must contain at least one entry"))
	}

	for i, cfg := range gc.Configs {
		if cfgErrs := cfg.Validate(); len(cfgErrs) != 0 {
			errs = append(errs, errors.Errorf("configs[%d]:", i))
			errs = append(errs, cfgErrs...)
		}
	}

	if gc.Stream != nil && gc.Batch != nil {
		errs = append(errs, errors.New("stream and batch modes are mutually exclusive, configure only one"))
	}

	if streamErrs := FieldValidate(gc.Stream); len(streamErrs) != 0 {
		errs = append(errs, errors.New("stream:"))
		errs = append(errs, streamErrs...)
	}

	if batchErrs := FieldValidate(gc.Batch); len(batchErrs) != 0 {
		errs = append(errs, errors.New("batch:"))
		errs = append(errs, batchErrs...)
	}

	if fwErrs := FieldValidate(gc.FileWriter); len(fwErrs) != 0 {
		errs = append(errs, errors.New("file_writer:"))
		errs = append(errs, fwErrs...)
	}

	return errs
}

func (c *ColumnConfig) Validate() []error {
	var errs []error

	if len(c.ColumnNames) == 0 {
		errs = append(errs, errors.New("column_names is required"))
	}

	if c.Strategy == nil {
		errs = append(errs, errors.New("strategy is required"))
	} else if c.Strategy.Name == "" {
		errs = append(errs, errors.New("strategy.name is required"))
	}

	if c.Mask != "" {
		if _, err := expr.Compile(c.Mask, expr.AllowUndefinedVariables()); err != nil {
			errs = append(errs, errors.Errorf("invalid mask expression %q: %v", c.Mask, err))
		}
	}

	return errs
}
