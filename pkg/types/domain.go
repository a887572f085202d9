package types

// ModelInfo describes the loaded prediction pipeline.
type ModelInfo struct {
	// example: credit-approval-rf
	Name string `json:"name" example:"credit-approval-rf"`
	// Estimator kind.
	// example: random_forest
	Estimator string `json:"estimator" example:"random_forest"`
	// Artifact path on disk.
	// example: /opt/creditd/models/credit_pipeline.json
	Path string `json:"path,omitempty" example:"/opt/creditd/models/credit_pipeline.json"`
	// Training column names, in order.
	Features []string `json:"features"`
	// Class labels known to the model.
	Classes []int `json:"classes"`
	// Number of trees for ensemble estimators.
	// example: 100
	Trees int `json:"trees,omitempty" example:"100"`
}

// FieldSpec describes one input field of the credit application.
type FieldSpec struct {
	// example: A9
	Name string `json:"name" example:"A9"`
	// numeric or categorical.
	// example: categorical
	Kind string `json:"kind" example:"categorical"`
	// Known categories for categorical fields.
	Options []string `json:"options,omitempty"`
}
