package model

// SearchLimit caps the results returned per category by global search
const SearchLimit = 5

const MinSearchQueryLen = 3

type SearchResults struct {
	Doctors    []DoctorProfile `json:"doctors"`
	HealthTips []HealthTip     `json:"health_tips"`
	FAQs       []FAQ           `json:"faqs"`
}
