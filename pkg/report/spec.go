// Package report projects the field store onto named report placeholders.
package report

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wesleysanjose/ocr/pkg/errx"
)

// PlaceholderSpec maps a canonical report slot name to the OCR field name
// fragments that may satisfy it, in priority order. This is static
// configuration, not user data.
type PlaceholderSpec struct {
	Name    string   `yaml:"placeholder" json:"placeholder"`
	Aliases []string `yaml:"aliases" json:"aliases"`
}

var reportErrors = errx.NewRegistry("REPORT")

var (
	ErrSpecFileInvalid = reportErrors.Register("SPEC_FILE_INVALID", errx.TypeValidation, 400, "Placeholder spec file is invalid")
	ErrEmptyBindValue  = reportErrors.Register("EMPTY_BIND_VALUE", errx.TypeValidation, 400, "Placeholder value must not be empty")
)

// DefaultSpecs returns the compiled-in placeholder table for the standard
// assessment report template.
func DefaultSpecs() []PlaceholderSpec {
	return []PlaceholderSpec{
		{Name: "name", Aliases: []string{"姓名", "患者姓名", "被鉴定人"}},
		{Name: "gender", Aliases: []string{"性别"}},
		{Name: "age", Aliases: []string{"年龄"}},
		{Name: "idNumber", Aliases: []string{"身份证", "身份证号", "证件号"}},
		{Name: "accidentDate", Aliases: []string{"事故日期", "受伤日期", "日期"}},
		{Name: "accidentLocation", Aliases: []string{"事故地点", "地点"}},
		{Name: "hospital", Aliases: []string{"医院", "就诊医院", "住院医院"}},
		{Name: "diagnosis", Aliases: []string{"诊断", "临床诊断", "出院诊断"}},
		{Name: "treatment", Aliases: []string{"治疗", "治疗经过"}},
		{Name: "conclusion", Aliases: []string{"鉴定结论", "结论"}},
		{Name: "disabilityGrade", Aliases: []string{"伤残等级", "等级"}},
	}
}

// LoadSpecs reads a placeholder spec table from a YAML file.
func LoadSpecs(path string) ([]PlaceholderSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reportErrors.NewWithCause(ErrSpecFileInvalid, err).
			WithDetail("path", path)
	}

	var specs []PlaceholderSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, reportErrors.NewWithCause(ErrSpecFileInvalid, err).
			WithDetail("path", path)
	}

	for _, spec := range specs {
		if spec.Name == "" {
			return nil, reportErrors.NewWithMessage(ErrSpecFileInvalid, "placeholder name must not be empty").
				WithDetail("path", path)
		}
	}
	return specs, nil
}
