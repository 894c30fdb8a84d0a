package errors

import (
	"net/http"
	"sort"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	Status     int
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E199)
	// ============================================

	"E101": {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Detail:     "No boom.json was found in the directory or any of its parents.",
		Suggestion: "Create a boom.json or pass --config",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "boom.json could not be parsed as JSON.",
	},
	"E103": {
		Category:   CategoryConfig,
		Message:    "Unknown provider",
		Detail:     "The provider must be either \"memory\" or \"hash\".",
		Suggestion: `Set "provider": "memory"`,
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid server port",
		Detail:   "The port must be between 1 and 65535.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid path",
		Detail:   "Paths in boom.json must start with \"/\".",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Invalid metrics namespace",
		Detail:   "Metric namespaces may only contain letters, digits and underscores.",
	},
	"E107": {
		Category: CategoryConfig,
		Message:  "Config file not writable",
	},
	"E108": {
		Category:   CategoryConfig,
		Message:    "Config file already exists",
		Suggestion: "Pass --force to overwrite it",
	},

	// ============================================
	// Bridge Errors (E200-E299)
	// ============================================

	"E201": {
		Category: CategoryBridge,
		Message:  "Invalid request body",
		Detail:   "The request body must be a JSON object with a \"to\" field.",
		Status:   http.StatusBadRequest,
	},
	"E202": {
		Category: CategoryBridge,
		Message:  "Invalid navigation target",
		Status:   http.StatusBadRequest,
	},
	"E203": {
		Category:   CategoryBridge,
		Message:    "History not recorded",
		Detail:     "The provider behind this bridge was created without recording.",
		Suggestion: `Set "record": true in boom.json`,
		Status:     http.StatusNotFound,
	},
	"E204": {
		Category: CategoryBridge,
		Message:  "WebSocket upgrade failed",
		Status:   http.StatusBadRequest,
	},
	"E205": {
		Category: CategoryBridge,
		Message:  "Unknown message type",
		Detail:   "WebSocket messages must have type \"navigate\".",
		Status:   http.StatusBadRequest,
	},
	"E206": {
		Category: CategoryBridge,
		Message:  "Provider is static",
		Detail:   "The provider ignores navigations.",
		Status:   http.StatusConflict,
	},

	// ============================================
	// CLI Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryCLI,
		Message:  "Invalid simulate operation",
		Detail:   "Operations are push:PATH, replace:PATH or reset.",
	},
	"E302": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
	"E303": {
		Category:   CategoryCLI,
		Message:    "Unknown error code",
		Suggestion: "Run 'boom explain' to list every code",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
