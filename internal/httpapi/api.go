package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"creditd/internal/credit"
)

const ifaceJSON = "json"

// predictJSON godoc
// @Summary      Predict credit approval
// @Description  Scores one application with fields A1..A15. Numbers may be sent as JSON numbers or numeric strings; absent, null or empty fields are missing values.
// @Tags         api
// @Accept       json
// @Produce      json
// @Param        application  body      object  true  "Fields A1..A15"
// @Success      200  {object}  types.PredictResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      415  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /predict [post]
func (h *handlers) predictJSON(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	lvl := requestLogLevel(r)
	start := time.Now()

	var rec credit.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		msg := "invalid JSON body"
		var fe *credit.FieldError
		if errors.As(err, &fe) {
			msg = fe.Error()
		}
		observePredictionError(ifaceJSON, http.StatusBadRequest)
		logEnd(r, lvl, http.StatusBadRequest, start, err)
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := h.svc.Predict(r.Context(), rec)
	if err != nil {
		status := statusFor(err)
		observePredictionError(ifaceJSON, status)
		logEnd(r, lvl, status, start, err)
		writeJSONError(w, status, err.Error())
		return
	}
	if e := requestEvent(r, lvl, LevelDebug); e != nil {
		e.Interface("model_record", res.Model).Float64("probability", res.Probability).Msg("predict normalized")
	}
	observePrediction(ifaceJSON, res.Verdict(), res.Probability)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res.Response()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	logEnd(r, lvl, http.StatusOK, start, nil)
}
