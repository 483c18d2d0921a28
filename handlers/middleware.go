package handlers

import (
	"context"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
)

type contextKey string

const tenantContextKey contextKey = "tenant"

var tenantPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// TenantMiddleware checks the {tenant} path variable and stores it in the
// request context.
func TenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant := mux.Vars(r)["tenant"]
		if !tenantPattern.MatchString(tenant) {
			writeFailure(w, http.StatusBadRequest, "invalid tenant id", nil)
			return
		}

		ctx := context.WithValue(r.Context(), tenantContextKey, tenant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tenantFrom(ctx context.Context) (string, bool) {
	tenant, ok := ctx.Value(tenantContextKey).(string)
	return tenant, ok
}
