package extract

import "strings"

// Category buckets an extracted field for grouping and report projection.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryMedical  Category = "medical"
	CategoryIncident Category = "incident"
	CategoryLegal    Category = "legal"
)

// CategoryOrder is the fixed section order used for grouped export and
// classifier precedence.
var CategoryOrder = []Category{
	CategoryPersonal,
	CategoryMedical,
	CategoryIncident,
	CategoryLegal,
}

// ParseCategory validates a category label, e.g. from a drag-and-drop
// payload. An unrecognized label is an error, never a silent default.
func ParseCategory(label string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(label))) {
	case CategoryPersonal:
		return CategoryPersonal, nil
	case CategoryMedical:
		return CategoryMedical, nil
	case CategoryIncident:
		return CategoryIncident, nil
	case CategoryLegal:
		return CategoryLegal, nil
	default:
		return "", extractErrors.New(ErrUnknownCategory).WithDetail("label", label)
	}
}

// categoryKeywords holds the representative substrings per category.
// Precedence follows CategoryOrder; within a list the first match wins but
// any match is sufficient.
var categoryKeywords = map[Category][]string{
	CategoryPersonal: {
		"姓名", "性别", "年龄", "电话", "住址", "地址", "单位", "身份证", "职业", "民族",
		"name", "gender", "age", "phone", "address", "employer",
	},
	CategoryMedical: {
		"医院", "诊断", "医师", "医生", "治疗", "入院", "出院", "住院", "损伤", "伤情", "检查", "科室",
		"hospital", "diagnosis", "physician", "treatment", "admission", "injury", "exam",
	},
	CategoryIncident: {
		"事故", "日期", "时间", "地点", "经过", "原因",
		"accident", "date", "time", "location", "cause",
	},
	CategoryLegal: {
		"鉴定", "法", "责任", "条款", "标准", "伤残", "等级", "结论",
		"assessment", "law", "liability", "clause", "standard", "disability", "conclusion",
	},
}

// Classify maps a field key to a category by case-insensitive substring
// containment, testing personal, then medical, then incident, then legal.
// A key matching no list defaults to personal; there is no "unknown" bucket.
func Classify(key string) Category {
	lowered := strings.ToLower(key)
	for _, category := range CategoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return CategoryPersonal
}
