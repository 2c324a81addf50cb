package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse est l'enveloppe attendue par l'application mobile.
// Convention héritée: error est la chaîne "true"/"false" et les erreurs métier
// partent toujours en HTTP 200, le client ne lit jamais le code HTTP.
type APIResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Error: "false", Message: "success", Data: data})
}

// SuccessRanked ajoute le rang du requérant à côté des données de classement
func SuccessRanked(w http.ResponseWriter, data interface{}, myRank int) {
	JSON(w, http.StatusOK, struct {
		Error   string      `json:"error"`
		Message string      `json:"message"`
		MyRank  int         `json:"myRank"`
		Data    interface{} `json:"data"`
	}{Error: "false", Message: "success", MyRank: myRank, Data: data})
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Error: "false", Message: msg})
}

// Error log l'erreur interne et répond avec l'enveloppe métier.
// Rien ne remonte jamais en 500 brut: toujours un JSON lisible.
func Error(w http.ResponseWriter, message string, err error) {
	if err != nil {
		LogError("%s: %v", message, err)
	} else {
		LogError("%s", message)
	}
	JSON(w, http.StatusOK, APIResponse{Error: "true", Message: message})
}

// ErrorSimple répond avec l'enveloppe métier sans erreur interne à logger
func ErrorSimple(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, APIResponse{Error: "true", Message: message})
}
