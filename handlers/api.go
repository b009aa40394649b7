package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Sampa-07/cyber-training/auth"
	"github.com/Sampa-07/cyber-training/i18n"
	"github.com/Sampa-07/cyber-training/progress"
	"github.com/Sampa-07/cyber-training/strength"
)

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// StrengthResponse is the payload of /api/check_password. Field names are
// part of the client contract, see static/js/app.js.
type StrengthResponse struct {
	Status        string   `json:"status"`
	StrengthScore int      `json:"strength_score"`
	Feedback      []string `json:"feedback"`
	Message       string   `json:"message"`
}

func sendJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// CheckPasswordHandler scores a candidate password and logs the sample.
func CheckPasswordHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	if r.Method != http.MethodPost {
		sendJSON(w, http.StatusMethodNotAllowed, APIResponse{Status: "error", Message: i18n.T(lang, "MethodNotAllowed")})
		return
	}

	userID := auth.GetUserID(r)
	if userID == 0 {
		sendJSON(w, http.StatusUnauthorized, APIResponse{Status: "error", Message: i18n.T(lang, "NotAuthenticated")})
		return
	}

	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendJSON(w, http.StatusBadRequest, APIResponse{Status: "error", Message: i18n.T(lang, "InvalidRequestBody")})
		return
	}

	score, feedback := strength.Evaluate(input.Password)

	if err := sampleLog.Append(userID, input.Password, score); err != nil {
		log.Printf("Error storing password sample: %v", err)
		sendJSON(w, http.StatusInternalServerError, APIResponse{Status: "error", Message: i18n.T(lang, "InternalServerError")})
		return
	}

	sendJSON(w, http.StatusOK, StrengthResponse{
		Status:        "success",
		StrengthScore: score,
		Feedback:      feedback,
		Message:       strength.Message(score),
	})
}

// UpdateProgressHandler returns the handler recording quiz results for one
// module. The password and phishing clients historically used different
// field names, both are accepted.
func UpdateProgressHandler(moduleName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r)
		if r.Method != http.MethodPost {
			sendJSON(w, http.StatusMethodNotAllowed, APIResponse{Status: "error", Message: i18n.T(lang, "MethodNotAllowed")})
			return
		}

		userID := auth.GetUserID(r)
		if userID == 0 {
			sendJSON(w, http.StatusUnauthorized, APIResponse{Status: "error", Message: i18n.T(lang, "NotAuthenticated")})
			return
		}

		var input struct {
			QuizScore       *int  `json:"quiz_score"`
			Score           *int  `json:"score"`
			ModuleCompleted *bool `json:"module_completed"`
			IsCompleted     *bool `json:"is_completed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			sendJSON(w, http.StatusBadRequest, APIResponse{Status: "error", Message: i18n.T(lang, "InvalidRequestBody")})
			return
		}

		score := 0
		if input.QuizScore != nil {
			score = *input.QuizScore
		} else if input.Score != nil {
			score = *input.Score
		}
		completed := false
		if input.ModuleCompleted != nil {
			completed = *input.ModuleCompleted
		} else if input.IsCompleted != nil {
			completed = *input.IsCompleted
		}

		err := progressStore.SetScore(userID, moduleName, score, completed)
		if errors.Is(err, progress.ErrRecordNotFound) {
			sendJSON(w, http.StatusNotFound, APIResponse{Status: "error", Message: i18n.T(lang, "ModuleNotFound")})
			return
		}
		if err != nil {
			log.Printf("Error updating %s progress: %v", moduleName, err)
			sendJSON(w, http.StatusInternalServerError, APIResponse{Status: "error", Message: i18n.T(lang, "InternalServerError")})
			return
		}

		sendJSON(w, http.StatusOK, APIResponse{Status: "success"})
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, APIResponse{Status: "healthy", Message: "Cybersecurity Training Platform is running"})
}
