package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var corsAllowHeaders = []string{
	"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version", "Content-Length",
	"Content-MD5", "Content-Type", "Date", "X-Api-Version",
}

// CORS allows any origin and answers preflight requests with 200 and an
// empty body.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowCredentials:          true,
		AllowMethods:              []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:              corsAllowHeaders,
		OptionsResponseStatusCode: http.StatusOK,
	})
}
