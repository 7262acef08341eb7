// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"namefinder/internal/config"
	"namefinder/internal/formatters"
	"namefinder/internal/namedetect"
	"namefinder/internal/observability"
	"namefinder/internal/parallel"
	"namefinder/internal/version"

	// Import formatters to register them
	_ "namefinder/internal/formatters/csv"
	_ "namefinder/internal/formatters/json"
	_ "namefinder/internal/formatters/text"
	_ "namefinder/internal/formatters/yaml"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// WebServer represents the web server instance
type WebServer struct {
	port            string
	server          *http.Server
	mux             *http.ServeMux
	defaultLanguage string
	detectors       map[string]*namedetect.Detector
	processor       *parallel.ParallelProcessor
}

// DetectRequest is the body of POST /detect.
type DetectRequest struct {
	Text       string `json:"text"`
	BotMessage string `json:"bot_message,omitempty"`
	Language   string `json:"language,omitempty"`
}

// DetectResponse is the successful reply of POST /detect.
type DetectResponse struct {
	Success       bool                    `json:"success"`
	Language      string                  `json:"language"`
	Stage         string                  `json:"stage"`
	EntityValue   []namedetect.NameEntity `json:"entity_value"`
	OriginalText  []string                `json:"original_text"`
	TaggedText    string                  `json:"tagged_text"`
	ProcessedText string                  `json:"processed_text"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ExportRequest is the body of POST /export.
type ExportRequest struct {
	Format  string          `json:"format"`
	Verbose bool            `json:"verbose"`
	Compact bool            `json:"compact"`
	Records []DetectRequest `json:"records"`
}

// NewWebServer builds one detector per supported language from cfg. The
// detectors are shared by all requests.
func NewWebServer(port string, cfg *config.Config, observer *observability.StandardObserver) (*WebServer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	deps, err := cfg.Dependencies()
	if err != nil {
		return nil, fmt.Errorf("failed to build detector dependencies: %w", err)
	}

	detectors := make(map[string]*namedetect.Detector)
	for _, language := range namedetect.SupportedLanguages() {
		d, err := namedetect.New(cfg.Defaults.EntityName, language, deps, namedetect.WithObserver(observer))
		if err != nil {
			return nil, fmt.Errorf("failed to build %s detector: %w", language, err)
		}
		detectors[language] = d
	}

	ws := NewWebServerWithDetectors(port, cfg.Defaults.Language, detectors)
	ws.processor = parallel.NewParallelProcessor(cfg.Defaults.Workers, observer)
	return ws, nil
}

// NewWebServerWithDetectors serves the given detectors keyed by language.
func NewWebServerWithDetectors(port, defaultLanguage string, detectors map[string]*namedetect.Detector) *WebServer {
	if defaultLanguage == "" {
		defaultLanguage = namedetect.LanguageEnglish
	}
	ws := &WebServer{
		port:            port,
		mux:             http.NewServeMux(),
		defaultLanguage: defaultLanguage,
		detectors:       detectors,
		processor:       parallel.NewParallelProcessor(0, nil),
	}
	ws.setupRoutes()
	return ws
}

// Handler returns the routed handler, for embedding and tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.mux
}

// Start starts the web server
func (ws *WebServer) Start() error {
	// Try ports starting from the specified port
	var lastError error
	for i := 0; i < 10; i++ {
		currentPort := ws.port
		if i > 0 || ws.port == "" {
			currentPort = fmt.Sprintf("%d", 8080+i)
		}

		// Test if port is available first
		listener, err := net.Listen("tcp", ":"+currentPort)
		if err != nil {
			lastError = err
			if i == 0 {
				fmt.Printf("Port %s is not available, trying alternative ports...\n", currentPort)
			}
			continue // Port is busy, try next one
		}
		listener.Close()

		ws.server = ws.createSecureServer(currentPort)

		fmt.Printf("Name finder API started on port %s\n", currentPort)
		fmt.Printf("Local:     http://localhost:%s\n", currentPort)

		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lastError = err
			fmt.Printf("Server on port %s failed: %v\n", currentPort, err)
			continue // Try next port
		}
		return nil
	}

	return fmt.Errorf("could not find an available port in range 8080-8089\n"+
		"Last error: %v\n"+
		"Troubleshooting:\n"+
		"  1. Try a specific port with -port <number>\n"+
		"  2. Ensure you have permission to bind to the requested port", lastError)
}

// Stop stops the web server
func (ws *WebServer) Stop() error {
	if ws.server != nil {
		return ws.server.Close()
	}
	return nil
}

func (ws *WebServer) setupRoutes() {
	ws.mux.HandleFunc("/", ws.serveHome)
	ws.mux.HandleFunc("/health", ws.handleHealth)
	ws.mux.HandleFunc("/detect", ws.handleDetect)
	ws.mux.HandleFunc("/export", ws.handleExport)
}

// createSecureServer creates an HTTP server with security timeouts
func (ws *WebServer) createSecureServer(port string) *http.Server {
	return &http.Server{
		Addr:    ":" + port,
		Handler: ws.mux,
		// Timeout for reading request headers (prevents slow header attacks)
		ReadHeaderTimeout: 15 * time.Second,
		// Timeout for reading entire request
		ReadTimeout: 30 * time.Second,
		// Timeout for writing response
		WriteTimeout: 30 * time.Second,
		// Timeout for idle connections
		IdleTimeout: 60 * time.Second,
	}
}

// serveHome lists the available endpoints
func (ws *WebServer) serveHome(responseWriter http.ResponseWriter, request *http.Request) {
	if request.URL.Path != "/" {
		ws.sendErrorWithStatus(responseWriter, "Not found: "+request.URL.Path, http.StatusNotFound)
		return
	}
	if request.Method != http.MethodGet {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	responseWriter.WriteHeader(http.StatusOK)
	fmt.Fprintf(responseWriter, "%s\n\nGET  /health\nPOST /detect  {\"text\", \"bot_message\", \"language\"}\nPOST /export  {\"format\", \"verbose\", \"compact\", \"records\"}\n\nFormats: %s\nLanguages: %s\n",
		version.Info(), strings.Join(formatters.List(), ", "), strings.Join(namedetect.SupportedLanguages(), ", "))
}

// handleHealth provides a health check endpoint with version information
func (ws *WebServer) handleHealth(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	versionInfo := version.Full()
	healthData := map[string]interface{}{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    version.Name,
		"version":    versionInfo["version"],
		"build_info": versionInfo,
	}

	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(http.StatusOK)
	json.NewEncoder(responseWriter).Encode(healthData)
}

// handleDetect runs one detection
func (ws *WebServer) handleDetect(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var detectRequest DetectRequest
	if err := decodeBody(responseWriter, request, &detectRequest); err != nil {
		ws.sendError(responseWriter, "Invalid JSON in request body")
		return
	}

	result, status, err := ws.detect(detectRequest)
	if err != nil {
		ws.sendErrorWithStatus(responseWriter, err.Error(), status)
		return
	}

	responseWriter.Header().Set("Content-Type", "application/json")
	json.NewEncoder(responseWriter).Encode(DetectResponse{
		Success:       true,
		Language:      result.Language,
		Stage:         string(result.Stage),
		EntityValue:   result.Entities,
		OriginalText:  result.Substrings,
		TaggedText:    result.TaggedText,
		ProcessedText: result.ProcessedText,
	})
}

// handleExport detects names in every record and renders them in the requested format
func (ws *WebServer) handleExport(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var exportRequest ExportRequest
	if err := decodeBody(responseWriter, request, &exportRequest); err != nil {
		ws.sendError(responseWriter, "Invalid JSON in request body")
		return
	}

	if exportRequest.Format == "" {
		ws.sendError(responseWriter, "Format is required")
		return
	}
	if _, exists := formatters.Get(exportRequest.Format); !exists {
		ws.sendError(responseWriter, fmt.Sprintf("Unsupported format '%s'. Available formats: %s",
			exportRequest.Format, strings.Join(formatters.List(), ", ")))
		return
	}

	// Resolve every language before any detection runs
	jobs := make([]parallel.Job, len(exportRequest.Records))
	for i, r := range exportRequest.Records {
		d, err := ws.detectorFor(r.Language)
		if err != nil {
			ws.sendError(responseWriter, fmt.Sprintf("record %d: %v", i+1, err))
			return
		}
		jobs[i] = parallel.Job{Text: r.Text, BotMessage: r.BotMessage, Detect: d.Detect}
	}

	results, _, err := ws.processor.ProcessTexts(request.Context(), nil, jobs, nil)
	if err != nil {
		ws.sendErrorWithStatus(responseWriter, err.Error(), http.StatusInternalServerError)
		return
	}
	records := make([]formatters.Record, 0, len(results))
	for _, r := range results {
		records = append(records, formatters.Record{Text: r.Text, BotMessage: r.BotMessage, Result: r.Detection})
	}

	output, err := formatters.Export(exportRequest.Format, records, formatters.FormatterOptions{
		Verbose: exportRequest.Verbose,
		Compact: exportRequest.Compact,
		NoColor: true, // Always disable color for exports
	})
	if err != nil {
		ws.sendErrorWithStatus(responseWriter, fmt.Sprintf("Failed to format results: %v", err), http.StatusInternalServerError)
		return
	}

	formatInfo := formatters.GetFormatInfo(exportRequest.Format)
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("%s-results-%s%s", version.Name, timestamp, formatInfo.Extension)

	responseWriter.Header().Set("Content-Type", formatInfo.MimeType)
	responseWriter.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	responseWriter.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	responseWriter.WriteHeader(http.StatusOK)
	responseWriter.Write([]byte(output))
}

// detect picks the detector for the request language and maps failures to
// HTTP statuses.
func (ws *WebServer) detect(r DetectRequest) (*namedetect.Result, int, error) {
	d, err := ws.detectorFor(r.Language)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	result, err := d.Detect(r.Text, r.BotMessage)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return result, http.StatusOK, nil
}

// detectorFor returns the detector for language, or the default language's
// detector when language is blank.
func (ws *WebServer) detectorFor(language string) (*namedetect.Detector, error) {
	key := strings.ToLower(strings.TrimSpace(language))
	if key == "" {
		key = ws.defaultLanguage
	}
	d, ok := ws.detectors[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", namedetect.ErrUnsupportedLanguage, language)
	}
	return d, nil
}

func decodeBody(responseWriter http.ResponseWriter, request *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(responseWriter, request.Body, maxBodyBytes)).Decode(v)
}

// sendError sends a bad request error response
func (ws *WebServer) sendError(responseWriter http.ResponseWriter, message string) {
	ws.sendErrorWithStatus(responseWriter, message, http.StatusBadRequest)
}

// sendErrorWithStatus sends an error response with a specific HTTP status code
func (ws *WebServer) sendErrorWithStatus(responseWriter http.ResponseWriter, message string, statusCode int) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(statusCode)
	json.NewEncoder(responseWriter).Encode(ErrorResponse{
		Success: false,
		Error:   ws.enhanceErrorMessage(message, statusCode),
	})
}

// enhanceErrorMessage adds troubleshooting information to error messages
func (ws *WebServer) enhanceErrorMessage(message string, statusCode int) string {
	switch {
	case strings.Contains(message, "Invalid JSON"):
		return message + "\nTroubleshooting: Send a JSON object such as {\"text\": \"my name is yash\"}"
	case strings.Contains(message, namedetect.ErrUnsupportedLanguage.Error()):
		return message + "\nTroubleshooting: Use one of " + strings.Join(namedetect.SupportedLanguages(), ", ")
	case statusCode == http.StatusInternalServerError:
		return message + "\nTroubleshooting: Check server logs for detailed error information"
	default:
		return message
	}
}
