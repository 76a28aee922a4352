package model

type TipCategory string

const (
	TipCategoryExercise   TipCategory = "bewegung"
	TipCategoryNutrition  TipCategory = "ernährung"
	TipCategoryPrevention TipCategory = "prävention"
	TipCategoryHealth     TipCategory = "gesundheit"
)

func (c TipCategory) Valid() bool {
	switch c {
	case TipCategoryExercise, TipCategoryNutrition, TipCategoryPrevention, TipCategoryHealth:
		return true
	}
	return false
}

type HealthTip struct {
	Base
	Title    string      `json:"title" db:"title"`
	Content  string      `json:"content" db:"content"`
	Category TipCategory `json:"category" db:"category"`
}

type FAQ struct {
	Base
	Question string `json:"question" db:"question"`
	Answer   string `json:"answer" db:"answer"`
}

// TipFilter narrows health tips to one category; the zero value matches all
type TipFilter struct {
	Category TipCategory
}
