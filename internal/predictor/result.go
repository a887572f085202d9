package predictor

import (
	"golang.org/x/text/message"

	"creditd/internal/credit"
	"creditd/internal/model"
	"creditd/pkg/types"
)

// Verdicts rendered by the HTML form.
const (
	VerdictApproved = "APROBADO"
	VerdictRejected = "RECHAZADO"
)

// ApprovedClass is the class label meaning "approved".
const ApprovedClass = 1

// Result is the outcome of one prediction.
type Result struct {
	// Display is the record as the user entered it.
	Display credit.Record
	// Model is the normalized record the model saw.
	Model       credit.Record
	Class       int
	Probability float64
}

// Approved reports whether the predicted class is the approved class.
func (r Result) Approved() bool { return r.Class == ApprovedClass }

// Verdict returns the textual verdict.
func (r Result) Verdict() string {
	if r.Approved() {
		return VerdictApproved
	}
	return VerdictRejected
}

// Response converts the result to the JSON API payload.
func (r Result) Response() types.PredictResponse {
	return types.PredictResponse{PredictedClass: r.Class, ApprovalProbability: r.Probability}
}

// FormatPercent renders p (0..1) as a percentage with two decimals using the
// service locale, without the percent sign.
func (s *Service) FormatPercent(p float64) string {
	return message.NewPrinter(s.locale).Sprintf("%.2f", p*100)
}

// Banner is the plain-text status line served at the API root.
func (s *Service) Banner() string {
	return "API de predicción de aprobación de crédito - " + estimatorTitle(s.info.Estimator)
}

func estimatorTitle(kind string) string {
	switch kind {
	case model.KindRandomForest:
		return "Random Forest"
	case model.KindLogisticRegression:
		return "Logistic Regression"
	case "":
		return "modelo"
	default:
		return kind
	}
}
