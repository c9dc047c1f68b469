package export

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/analysis"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/pipeline"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/render"
)

// DefaultServePort is the first port the upload server tries.
const DefaultServePort = 8501

// ServePortRange defines the range of ports to try if the default is
// unavailable.
const ServePortRangeStart = 8501
const ServePortRangeEnd = 8599

// maxUploadBytes caps one uploaded spreadsheet.
const maxUploadBytes = 16 << 20

// ServerOptions configure the upload server.
type ServerOptions struct {
	// Port to serve on (0 auto-selects from the default range).
	Port int

	// Render options applied to every upload.
	Render pipeline.Options

	// OpenBrowser opens the page once the server is up.
	OpenBrowser bool

	// Quiet suppresses status messages.
	Quiet bool
}

// Server is a local browser front end for the parse, fold, render
// cycle. Every upload is processed in full and nothing is kept between
// requests; refreshing or re-uploading starts from scratch.
type Server struct {
	opts   ServerOptions
	server *http.Server
}

// NewServer creates an upload server with the given options.
func NewServer(opts ServerOptions) *Server {
	return &Server{opts: opts}
}

// Start starts the upload server and blocks until stopped.
func (s *Server) Start() error {
	if s.opts.Port == 0 {
		port, err := FindAvailablePort(ServePortRangeStart, ServePortRangeEnd)
		if err != nil {
			return fmt.Errorf("could not find available port: %w", err)
		}
		s.opts.Port = port
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.uploadHandler)
	mux.HandleFunc("/render", s.renderHandler)
	mux.HandleFunc("/download", s.downloadHandler)
	mux.HandleFunc("/api/status", s.statusHandler)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.opts.Port),
		Handler: noCacheMiddleware(mux),
	}

	// Open browser after short delay
	if s.opts.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := OpenInBrowser(s.URL()); err != nil && !s.opts.Quiet {
				fmt.Printf("Could not open browser: %v\n", err)
				fmt.Printf("Open %s in your browser\n", s.URL())
			}
		}()
	}

	if !s.opts.Quiet {
		fmt.Printf("\nCategory hierarchy server running at %s\n", s.URL())
		fmt.Println("Press Ctrl+C to stop")
	}

	return s.server.ListenAndServe()
}

// StartWithGracefulShutdown starts the server with signal handling for
// clean shutdown.
func (s *Server) StartWithGracefulShutdown() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-stop:
		if !s.opts.Quiet {
			fmt.Println("\nShutting down...")
		}
		return s.Stop()
	case err := <-errChan:
		return err
	}
}

// Stop gracefully stops the upload server.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the port the server is running on.
func (s *Server) Port() int {
	return s.opts.Port
}

// URL returns the full URL of the upload server.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.opts.Port)
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = uploadTmpl.Execute(w, uploadData{Policy: s.opts.Render.Policy.String()})
}

func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderError(w, http.StatusBadRequest, "The upload could not be read.", err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "Choose a CSV or XLSX file first.", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "The upload could not be read.", err)
		return
	}
	if len(data) > maxUploadBytes {
		s.renderError(w, http.StatusRequestEntityTooLarge, "The file is larger than the 16 MiB upload limit.", nil)
		return
	}

	res, err := pipeline.Render(header.Filename, data, s.opts.Render)
	if err != nil {
		s.renderError(w, http.StatusUnprocessableEntity, "The file could not be processed.", err)
		return
	}

	stats := analysis.Summarize(res.Tree)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = resultTmpl.Execute(w, resultData{
		SourceName:   header.Filename,
		Text:         res.Text,
		Empty:        stats.Total == 0,
		Total:        stats.Total,
		Leaves:       stats.Leaves,
		MaxDepth:     stats.MaxDepth,
		DownloadName: DefaultTextName,
	})
}

func (s *Server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text := r.PostFormValue("text")
	name := filepath.Base(strings.TrimSpace(r.PostFormValue("name")))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = DefaultTextName
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = io.WriteString(w, text)
}

// statusHandler returns the server status as JSON.
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	indent := s.opts.Render.Indent
	if indent == "" {
		indent = render.DefaultIndent
	}
	fmt.Fprintf(w, `{"status":"running","port":%d,"policy":%q,"indent":%q,"max_upload_bytes":%d}`,
		s.opts.Port, s.opts.Render.Policy.String(), indent, maxUploadBytes)
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string, cause error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	data := errorData{Message: message}
	if cause != nil {
		data.Detail = cause.Error()
	}
	_ = errorTmpl.Execute(w, data)
}

// noCacheMiddleware adds headers to prevent browser caching.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}

// Serve is a convenience function to start an upload server with auto
// port selection and graceful shutdown.
func Serve(opts ServerOptions) error {
	return NewServer(opts).StartWithGracefulShutdown()
}

type uploadData struct {
	Policy string
}

type resultData struct {
	SourceName   string
	Text         string
	Empty        bool
	Total        int
	Leaves       int
	MaxDepth     int
	DownloadName string
}

type errorData struct {
	Message string
	Detail  string
}

var uploadTmpl = template.Must(template.New("upload").Parse(uploadHTML))
var resultTmpl = template.Must(template.New("result").Parse(resultHTML))
var errorTmpl = template.Must(template.New("error").Parse(errorHTML))

const pageStyle = `
 body { font-family: sans-serif; max-width: 760px; margin: 40px auto; padding: 0 16px; color: #16161d; }
 h1 { font-size: 1.4rem; }
 .hint { color: #666; font-size: 0.9rem; }
 pre { background: #f6f6f8; border: 1px solid #ddd; border-radius: 6px; padding: 16px; overflow-x: auto; }
 button { padding: 8px 16px; font-size: 0.95rem; cursor: pointer; }
 .actions { display: flex; gap: 12px; align-items: center; }
 .error { background: #fdf0f0; border: 1px solid #e0b4b4; border-radius: 6px; padding: 12px 16px; }
 .detail { color: #8a4b4b; font-family: monospace; font-size: 0.85rem; }
`

const uploadHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Category Hierarchy</title>
<style>` + pageStyle + `
 form.upload { border: 2px dashed #aaa; border-radius: 8px; padding: 24px; }
 .policy { color: #444; font-size: 0.9rem; margin: 12px 0; }
</style>
</head>
<body>
<h1>Category hierarchy builder</h1>
<p class="hint">Upload a CSV or XLSX file with the columns PARENT CATEGORY, MASTER CATEGORY, SUBCATEGORY 1 and SUBCATEGORY 2.</p>
<form class="upload" action="/render" method="post" enctype="multipart/form-data">
 <input type="file" name="file" accept=".csv,.xlsx" required>
 <p class="policy">Empty cells: {{.Policy}}</p>
 <button type="submit">Build hierarchy</button>
</form>
</body>
</html>
`

const resultHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Category Hierarchy</title>
<style>` + pageStyle + `</style>
</head>
<body>
<h1>Category hierarchy</h1>
<p class="hint">{{.SourceName}}: {{.Total}} categories, {{.Leaves}} leaves, depth {{.MaxDepth}}</p>
{{if .Empty}}
<p class="hint">No categories found in this file.</p>
{{else}}
<pre id="tree">{{.Text}}</pre>
<div class="actions">
 <button onclick="copyTree(this)">Copy to clipboard</button>
 <form action="/download" method="post">
  <textarea name="text" hidden>{{.Text}}</textarea>
  <input type="hidden" name="name" value="{{.DownloadName}}">
  <button type="submit">Download {{.DownloadName}}</button>
 </form>
</div>
{{end}}
<p><a href="/">Upload another file</a></p>
<script>
function copyTree(btn) {
 var text = document.getElementById('tree').textContent;
 navigator.clipboard.writeText(text).then(function () {
  btn.textContent = 'Copied';
  setTimeout(function () { btn.textContent = 'Copy to clipboard'; }, 1500);
 }, function () {
  btn.textContent = 'Copy failed';
 });
}
</script>
</body>
</html>
`

const errorHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Category Hierarchy</title>
<style>` + pageStyle + `</style>
</head>
<body>
<h1>Could not build the hierarchy</h1>
<div class="error">
 <p>{{.Message}}</p>
 {{if .Detail}}<p class="detail">{{.Detail}}</p>{{end}}
</div>
<p><a href="/">Try another file</a></p>
</body>
</html>
`
