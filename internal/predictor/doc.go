// Package predictor composes the loaded pipeline and the input normalizer
// into the single prediction path used by every interface. It is structured
// into small files by concern:
//
//   - predictor.go: Service type, constructors, Predict.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - result.go: Result and display formatting (verdict, percentage).
//   - status.go: Status/Fields reporting for the HTTP layer.
//   - errors.go: error types and helpers (IsInvalidInput, IsInference).
//
// A Service holds no mutable state after construction and is shared by all
// request handlers without locking.
package predictor
