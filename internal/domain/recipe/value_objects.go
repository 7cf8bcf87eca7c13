package recipe

// CuisineType represents different cuisine types
type CuisineType string

const (
	CuisineTypeItalian       CuisineType = "italian"
	CuisineTypeFrench        CuisineType = "french"
	CuisineTypeChinese       CuisineType = "chinese"
	CuisineTypeJapanese      CuisineType = "japanese"
	CuisineTypeIndian        CuisineType = "indian"
	CuisineTypeMexican       CuisineType = "mexican"
	CuisineTypeAmerican      CuisineType = "american"
	CuisineTypeMediterranean CuisineType = "mediterranean"
	CuisineTypeThai          CuisineType = "thai"
	CuisineTypeOther         CuisineType = "other"
)

// ComplexityLevel represents how involved a recipe is to prepare
type ComplexityLevel string

const (
	ComplexityLevelEasy   ComplexityLevel = "easy"
	ComplexityLevelMedium ComplexityLevel = "medium"
	ComplexityLevelHard   ComplexityLevel = "hard"
)

// PortionSize represents the serving size class of a recipe
type PortionSize string

const (
	PortionSizeSmall  PortionSize = "small"
	PortionSizeMedium PortionSize = "medium"
	PortionSizeLarge  PortionSize = "large"
)
