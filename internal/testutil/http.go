package testutil

import (
	"context"
	"encoding/json"
	"net/http"
)

func withContractor(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, contractorKey{}, id)
}

func contractorFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(contractorKey{}).(int64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error body in the service's {"detail": ...} shape.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
