package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"estoquefront/internal/pkg/session"
)

// RateLimiter limita requisições por IP em janela fixa. Aplicado apenas ao
// POST /login como proteção contra força bruta de credenciais.
func RateLimiter(counter session.Counter, limit int, window time.Duration) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			key := "rate-limit:" + ip

			count, err := counter.Incr(r.Context(), key, window)
			if err != nil {
				// Contador indisponível não derruba o login.
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				http.Error(w, "Limite de tentativas excedido. Aguarde um instante.", http.StatusTooManyRequests)
				return
			}

			remaining := int64(limit) - count
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			next.ServeHTTP(w, r)
		}
	}
}
