package predictor

import (
	"time"

	"creditd/internal/credit"
	"creditd/pkg/types"
)

// Status builds the response for /status.
func (s *Service) Status() types.StatusResponse {
	state := "ready"
	if !s.Ready() {
		state = "error"
	}
	now := time.Now()
	return types.StatusResponse{
		State:          state,
		Model:          s.info,
		Clamp:          s.norm.Clamp(),
		Force:          s.norm.Forced(),
		UptimeSeconds:  int64(now.Sub(s.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
}

// Fields describes the input fields in record order, with the model's known
// categories as options for categorical fields.
func (s *Service) Fields() []types.FieldSpec {
	out := make([]types.FieldSpec, 0, len(credit.FieldNames))
	for _, f := range credit.FieldNames {
		k, _ := credit.Kind(f)
		out = append(out, types.FieldSpec{
			Name:    f,
			Kind:    k.String(),
			Options: append([]string(nil), s.categories[f]...),
		})
	}
	return out
}
