package httpapi

import (
	"context"
	"net/http"
)

type contextKey string

const tenantKey contextKey = "tenant"

// TenantFromContext возвращает идентификатор тенанта запроса.
// Ядро его не интерпретирует — только прокидывает в хранилище.
func TenantFromContext(ctx context.Context) string {
	tenant, _ := ctx.Value(tenantKey).(string)
	return tenant
}

// withTenant кладёт заголовок X-Tenant-ID в контекст запроса.
func withTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tenant := r.Header.Get("X-Tenant-ID"); tenant != "" {
			r = r.WithContext(context.WithValue(r.Context(), tenantKey, tenant))
		}
		next.ServeHTTP(w, r)
	})
}
