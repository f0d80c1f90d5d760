package multistep

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"

	govalidator "github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

var structs = govalidator.New(govalidator.WithRequiredStructEnabled())

// Definition describes a multi-step form: its ordered steps, the fields each
// step owns and the rules of every field.
type Definition struct {
	ID          string                          `yaml:"id" json:"id" validate:"required"`
	Title       string                          `yaml:"title" json:"title"`
	Description string                          `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []StepDef                       `yaml:"steps" json:"steps" validate:"required,min=1,unique=ID,dive"`
	Rules       map[string][]validator.RuleSpec `yaml:"rules,omitempty" json:"rules,omitempty" validate:"dive,dive"`

	compiled  validator.Rules
	fields    []string
	fieldStep map[string]string
}

// StepDef is one page of a form.
type StepDef struct {
	ID       string   `yaml:"id" json:"id" validate:"required"`
	Title    string   `yaml:"title" json:"title"`
	Fields   []string `yaml:"fields" json:"fields" validate:"required,min=1,dive,required"`
	Optional bool     `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// Prepare checks the definition and compiles its rules. A nil registry uses
// validator.NewRegistry.
func (d *Definition) Prepare(reg *validator.Registry) error {
	if err := structs.Struct(d); err != nil {
		return errors.Join(ErrInvalidDefinition, err)
	}

	var errs []error
	d.fields = d.fields[:0]
	d.fieldStep = make(map[string]string)
	for _, step := range d.Steps {
		if State(step.ID) == StateSubmitted {
			errs = append(errs, fmt.Errorf("step id %q is reserved", step.ID))
		}
		for _, field := range step.Fields {
			if owner, ok := d.fieldStep[field]; ok {
				errs = append(errs, fmt.Errorf("field %q declared in steps %q and %q", field, owner, step.ID))
				continue
			}
			d.fieldStep[field] = step.ID
			d.fields = append(d.fields, field)
		}
	}
	for field := range d.Rules {
		if _, ok := d.fieldStep[field]; !ok {
			errs = append(errs, fmt.Errorf("rules for undeclared field %q", field))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidDefinition}, errs...)...)
	}

	compiled, err := validator.CompileRules(d.Rules, reg)
	if err != nil {
		return errors.Join(ErrInvalidDefinition, err)
	}
	d.compiled = compiled
	return nil
}

// CompiledRules returns the rule table built by Prepare.
func (d *Definition) CompiledRules() validator.Rules { return d.compiled }

// Fields returns every field in step order.
func (d *Definition) Fields() []string { return slices.Clone(d.fields) }

func (d *Definition) HasField(field string) bool {
	_, ok := d.fieldStep[field]
	return ok
}

// StepOf returns the step that owns field.
func (d *Definition) StepOf(field string) (string, bool) {
	step, ok := d.fieldStep[field]
	return step, ok
}

// Step returns the step with the given ID and its position.
func (d *Definition) Step(id string) (StepDef, int, bool) {
	for i, step := range d.Steps {
		if step.ID == id {
			return step, i, true
		}
	}
	return StepDef{}, -1, false
}

// LoadDefinition decodes and prepares one YAML definition.
func LoadDefinition(r io.Reader, reg *validator.Registry) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if err := def.Prepare(reg); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinitions loads every *.yaml and *.yml file in dir, keyed by form ID.
func LoadDefinitions(fsys fs.FS, dir string, reg *validator.Registry) (map[string]*Definition, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}

	defs := make(map[string]*Definition)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := path.Ext(entry.Name()); ext != ".yaml" && ext != ".yml" {
			continue
		}

		name := path.Join(dir, entry.Name())
		def, err := loadFile(fsys, name, reg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if _, ok := defs[def.ID]; ok {
			return nil, fmt.Errorf("%s: %w: duplicate form id %q", name, ErrInvalidDefinition, def.ID)
		}
		defs[def.ID] = def
	}
	return defs, nil
}

func loadFile(fsys fs.FS, name string, reg *validator.Registry) (*Definition, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDefinition(f, reg)
}
