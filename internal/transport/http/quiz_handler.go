package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/quiz"
)

// Messages returned by POST /api/quiz.
const (
	msgMissingFields = "Missing required fields"
	msgInvalidTypes  = "Invalid data types"
	msgInvalidEmail  = "Invalid assessor email format"
	msgInvalidTotal  = "Invalid total score"
	msgInvalidBody   = "Invalid request body"
	msgSaved         = "Quiz response saved successfully"
	msgSaveFailed    = "Failed to save quiz response"
)

const submitSchemaJSON = `{
  "type": "object",
  "properties": {
    "name":           {"type": "string"},
    "email":          {"type": ["string", "null"]},
    "accessorsName":  {"type": ["string", "null"]},
    "accessorsEmail": {"type": ["string", "null"]},
    "responses":      {"type": "object"},
    "sectionScores":  {"type": "array"},
    "totalScore":     {"type": "integer", "minimum": 0, "maximum": 2147483647}
  }
}`

var submitSchema = mustSchema(submitSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(err)
	}
	return schema
}

type QuizHandler struct {
	submissions     *app.SubmissionService
	requireAssessor bool
	log             *zap.Logger
}

func NewQuizHandler(submissions *app.SubmissionService, requireAssessor bool, log *zap.Logger) *QuizHandler {
	return &QuizHandler{submissions: submissions, requireAssessor: requireAssessor, log: log}
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// Submit handles POST /api/quiz. Checks run in a fixed order: presence,
// types, assessor email, total score.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	required := []string{"name", "responses", "sectionScores"}
	if h.requireAssessor {
		required = append(required, "accessorsName", "accessorsEmail")
	}
	for _, key := range required {
		if !present(body[key]) {
			writeError(w, http.StatusBadRequest, msgMissingFields)
			return
		}
	}
	if _, ok := body["totalScore"]; !ok {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	result, err := submitSchema.Validate(gojsonschema.NewGoLoader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidTypes)
		return
	}
	totalInvalid := false
	for _, e := range result.Errors() {
		if e.Field() == "totalScore" {
			totalInvalid = true
			continue
		}
		h.log.Debug("submit payload rejected", zap.String("field", e.Field()), zap.String("reason", e.Description()))
		writeError(w, http.StatusBadRequest, msgInvalidTypes)
		return
	}

	in := app.SubmitInput{
		User: domain.UserInfo{
			Name:           stringField(body, "name"),
			Email:          stringField(body, "email"),
			AccessorsName:  stringField(body, "accessorsName"),
			AccessorsEmail: stringField(body, "accessorsEmail"),
		},
	}
	if email := strings.TrimSpace(in.User.AccessorsEmail); (h.requireAssessor || email != "") && !quiz.ValidEmail(email) {
		writeError(w, http.StatusBadRequest, msgInvalidEmail)
		return
	}
	if totalInvalid {
		writeError(w, http.StatusBadRequest, msgInvalidTotal)
		return
	}
	in.TotalScore = int(body["totalScore"].(float64))

	// Re-encode the loosely typed parts into their concrete shapes.
	if err := remarshal(body["responses"], &in.Responses); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidTypes)
		return
	}
	sectionScores, err := json.Marshal(body["sectionScores"])
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidTypes)
		return
	}
	in.SectionScores = sectionScores

	id, err := h.submissions.Submit(r.Context(), in)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: msgSaveFailed, Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{Success: true, Message: msgSaved, ID: id})
}

// present mirrors a truthiness check: absent, null, empty string and false
// all count as missing.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	}
	return true
}

func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

func remarshal(in any, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
