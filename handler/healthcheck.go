package handler

import (
	"net/http"

	"boothbuzz-admin/response"
)

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	response.SuccessResponse{Data: map[string]string{"status": "ok"}}.Send(w)
}
