package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// APIKeyHeader - заголовок с общим секретом
const APIKeyHeader = "X-API-Key"

// APIKey пропускает запросы к защищённому префиксу только с верным ключом.
// Пути вне префикса не проверяются. onUnauthorized формирует ответ 401.
func APIKey(apiKey, protectedPrefix string, onUnauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	expected := []byte(apiKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, protectedPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(APIKeyHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
				onUnauthorized(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
