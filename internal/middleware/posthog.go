package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/easyledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// businessEvents names the routes worth a product-level event instead of a path-derived one.
var businessEvents = map[string]string{
	"POST /api/v1/invoices":                     "invoice_created",
	"POST /api/v1/invoices/:invoiceID/send":     "invoice_sent",
	"POST /api/v1/invoices/:invoiceID/payments": "payment_registered",
	"POST /api/v1/upload-invoice":               "receipt_analyzed",
	"POST /api/v1/expenses/from-extraction":     "expense_imported",
	"GET /api/v1/exports/ledger.xlsx":           "ledger_exported",
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := EventNameForRoute(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventNameForRoute maps a matched route to its analytics event name,
// e.g. "GET /api/v1/customers" becomes "api_v1_customers". Unmatched routes yield "".
func EventNameForRoute(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	if name, ok := businessEvents[method+" "+fullPath]; ok {
		return name
	}
	name := strings.TrimPrefix(fullPath, "/")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, ":", "")
	return name
}
