package utils

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// validate est l'instance partagée du validateur de payloads
var validate = validator.New()

func DecodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

// DecodeAndValidate décode le JSON puis applique les règles `validate` du struct
func DecodeAndValidate(r *http.Request, dest interface{}) error {
	if err := DecodeJSON(r, dest); err != nil {
		return err
	}
	return validate.Struct(dest)
}

// QueryInt lit un paramètre entier de la query string, fallback si absent/malformé
func QueryInt(r *http.Request, key string, fallback int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil {
		return v
	}
	return fallback
}
