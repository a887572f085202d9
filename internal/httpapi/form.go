package httpapi

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"creditd/internal/credit"
)

const ifaceForm = "form"

//go:embed templates/form.html
var templateFS embed.FS

var formTmpl = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type formField struct {
	Name    string
	Numeric bool
	Options []string
	Value   string
}

type formResult struct {
	Verdict  string
	Percent  string
	Approved bool
}

type formView struct {
	Title  string
	Fields []formField
	Error  string
	Result *formResult
}

// view builds the page model. Submitted values that are not among the
// model's categories are kept as an extra option so the form echoes them.
func (h *handlers) view(values map[string]string) formView {
	specs := h.svc.Fields()
	v := formView{Title: h.svc.Banner(), Fields: make([]formField, 0, len(specs))}
	for _, s := range specs {
		f := formField{Name: s.Name, Numeric: s.Kind == "numeric", Value: values[s.Name]}
		if !f.Numeric {
			f.Options = append(f.Options, s.Options...)
			if f.Value != "" && !contains(f.Options, f.Value) {
				f.Options = append(f.Options, f.Value)
			}
		}
		v.Fields = append(v.Fields, f)
	}
	return v
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func (h *handlers) render(w http.ResponseWriter, status int, v formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := formTmpl.Execute(w, v); err != nil {
		zlog.Error().Err(err).Msg("render form")
	}
}

// formPage godoc
// @Summary      Application form
// @Tags         form
// @Produce      html
// @Success      200  {string}  string
// @Router       / [get]
func (h *handlers) formPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.view(nil))
}

// formSubmit godoc
// @Summary      Submit application form
// @Description  Scores the submitted fields and renders the verdict with the approval percentage.
// @Tags         form
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Success      200  {string}  string
// @Failure      400  {string}  string
// @Router       / [post]
func (h *handlers) formSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	lvl := requestLogLevel(r)
	start := time.Now()

	if err := r.ParseForm(); err != nil {
		observePredictionError(ifaceForm, http.StatusBadRequest)
		logEnd(r, lvl, http.StatusBadRequest, start, err)
		v := h.view(nil)
		v.Error = "formulario inválido"
		h.render(w, http.StatusBadRequest, v)
		return
	}
	rec, err := credit.ParseForm(r.PostForm)
	if err != nil {
		observePredictionError(ifaceForm, http.StatusBadRequest)
		logEnd(r, lvl, http.StatusBadRequest, start, err)
		v := h.view(formValues(r))
		v.Error = err.Error()
		var fe *credit.FieldError
		if errors.As(err, &fe) {
			v.Error = "valor inválido en " + fe.Field + ": " + fe.Value
		}
		h.render(w, http.StatusBadRequest, v)
		return
	}

	res, err := h.svc.Predict(r.Context(), rec)
	if err != nil {
		status := statusFor(err)
		observePredictionError(ifaceForm, status)
		logEnd(r, lvl, status, start, err)
		v := h.view(formValues(r))
		v.Error = err.Error()
		h.render(w, status, v)
		return
	}
	if e := requestEvent(r, lvl, LevelDebug); e != nil {
		e.Interface("model_record", res.Model).Float64("probability", res.Probability).Msg("predict normalized")
	}
	observePrediction(ifaceForm, res.Verdict(), res.Probability)

	// the form echoes the submitted text, not the parsed or clamped values
	v := h.view(formValues(r))
	v.Result = &formResult{
		Verdict:  res.Verdict(),
		Percent:  h.svc.FormatPercent(res.Probability),
		Approved: res.Approved(),
	}
	h.render(w, http.StatusOK, v)
	logEnd(r, lvl, http.StatusOK, start, nil)
}

// formValues returns the raw submitted values for the record fields.
func formValues(r *http.Request) map[string]string {
	out := make(map[string]string, len(credit.FieldNames))
	for _, f := range credit.FieldNames {
		out[f] = r.PostForm.Get(f)
	}
	return out
}
