package handler

import (
	"net/http"

	"boothbuzz-admin/dashboard"
	"boothbuzz-admin/response"
)

func Dashboard(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		response.SuccessResponse{Data: d.Load(ctx, scopedCity(ctx))}.Send(w)
	}
}
