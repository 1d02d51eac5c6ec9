package types

// ScanConfig holds settings for the taxonomy scan stage.
type ScanConfig struct {
	// RawDir is the directory containing raw tagged item dumps.
	RawDir string `json:"raw_dir" yaml:"raw_dir"`

	// CurriculumPrefix is the required prefix of the level-1
	// curriculum-version field. Records whose level 1 does not start
	// with it are discarded (e.g. "2022").
	CurriculumPrefix string `json:"curriculum_prefix" yaml:"curriculum_prefix"`
}

// SubjectConfig holds the lookup tables for routing taxonomy rows to
// subjects and labeling path components. Passed in at construction so
// tests can supply synthetic tables.
type SubjectConfig struct {
	// SubjectPrefixes maps a numeric subject-code prefix to a subject
	// key. Prefixes are matched most-specific-first: a longer prefix
	// (e.g. "043" history) must not be absorbed by a shorter one
	// (e.g. "04" social studies).
	SubjectPrefixes map[string]string `json:"subject_prefixes" yaml:"subject_prefixes"`

	// SubjectNames maps a subject key to its display name, used as
	// the first path component.
	SubjectNames map[string]string `json:"subject_names" yaml:"subject_names"`

	// GradeLabels maps a prefix-stripped grade value to a display
	// label. Unlisted values fall back to the stripped value.
	GradeLabels map[string]string `json:"grade_labels" yaml:"grade_labels"`
}

// DefaultSubjectConfig returns the subject tables for the 2022
// revised national curriculum.
func DefaultSubjectConfig() SubjectConfig {
	return SubjectConfig{
		SubjectPrefixes: map[string]string{
			"01":  "korean",
			"02":  "english",
			"03":  "math",
			"04":  "social",
			"043": "history",
			"05":  "science",
		},
		SubjectNames: map[string]string{
			"korean":  "국어",
			"english": "영어",
			"math":    "수학",
			"social":  "사회",
			"history": "역사",
			"science": "과학",
		},
		GradeLabels: map[string]string{
			"중1": "중학교 1학년",
			"중2": "중학교 2학년",
			"중3": "중학교 3학년",
			"고1": "고등학교 1학년",
			"고2": "고등학교 2학년",
			"고3": "고등학교 3학년",
		},
	}
}

// StoreConfig holds settings for the mapping relation store.
type StoreConfig struct {
	// DataDir is the base directory for pipeline data
	// (contains index/, reports/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ReportConfig holds settings for the verification report.
type ReportConfig struct {
	// LowConfidenceThreshold flags mapping pairs with confidence
	// strictly below it (default 0.5).
	LowConfidenceThreshold float64 `json:"low_confidence_threshold" yaml:"low_confidence_threshold"`

	// MaxLowConfidencePerSubject caps the low-confidence pairs listed
	// per subject in the report body (default 10). The summary count
	// is uncapped.
	MaxLowConfidencePerSubject int `json:"max_low_confidence_per_subject" yaml:"max_low_confidence_per_subject"`

	// DescriptionCap is the rune length at which unmapped-standard
	// descriptions are truncated with an ellipsis (default 40).
	DescriptionCap int `json:"description_cap" yaml:"description_cap"`
}

// DefaultReportConfig returns the report settings used when a field
// is unset.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		LowConfidenceThreshold:     0.5,
		MaxLowConfidencePerSubject: 10,
		DescriptionCap:             40,
	}
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Scan    ScanConfig    `json:"scan" yaml:"scan"`
	Subject SubjectConfig `json:"subject" yaml:"subject"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Report  ReportConfig  `json:"report" yaml:"report"`
}
