package response

import (
	"encoding/json"
	"net/http"
)

type SuccessResponse struct {
	Data            interface{} `json:"data"`
	Message         string      `json:"message,omitempty"`
	Redirect        string      `json:"redirect,omitempty"`
	RedirectAfterMS int64       `json:"redirectAfterMs,omitempty"`
	StatusCode      int         `json:"-"`
}

func (r SuccessResponse) Send(w http.ResponseWriter) {
	if r.StatusCode == 0 {
		r.StatusCode = http.StatusOK
	}
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}
