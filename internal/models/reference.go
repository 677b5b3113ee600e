package models

// Platform is the publication target an article is written for
type Platform struct {
	ID      int64  `json:"id" yaml:"id" badgerhold:"key"`
	Name    string `json:"name" yaml:"name"`
	Slug    string `json:"slug" yaml:"slug"`
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// Country is the geographic market an article targets
type Country struct {
	ID   int64  `json:"id" yaml:"id" badgerhold:"key"`
	Code string `json:"code" yaml:"code"` // ISO 3166-1 alpha-2
	Name string `json:"name" yaml:"name"`
}
