package adapthttp

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// contentTypes maps file extensions to the Content-Type served for them.
// Unknown extensions fall back to text/plain.
var contentTypes = map[string]string{
	".html": "text/html",
	".js":   "text/javascript",
	".css":  "text/css",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// staticHandler serves files from the web directory: the terminal
// collaborator for every request the dispatch table does not match.
// Directories resolve to their index.html; a miss renders a 404 page
// naming both the requested path and the resolved filesystem path.
func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqPath := r.URL.Path
		if reqPath == "/" || reqPath == "/index.html" {
			reqPath = "/index.html"
		}

		fsPath := filepath.Join(s.webDir, filepath.FromSlash(path.Clean("/"+reqPath)))

		info, err := os.Stat(fsPath)
		if os.IsNotExist(err) {
			s.notFound(w, r.URL.Path, fsPath)
			return
		}
		if err != nil {
			s.staticError(w, err)
			return
		}

		if info.IsDir() {
			indexPath := filepath.Join(fsPath, "index.html")
			if _, err := os.Stat(indexPath); err != nil {
				w.Header().Set("Content-Type", "text/html")
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprintf(w, "<h1>404 Not Found</h1><p>No default file in directory: %s</p>", r.URL.Path)
				return
			}
			s.serveFile(w, indexPath, "text/html")
			return
		}

		ct := contentTypes[strings.ToLower(filepath.Ext(fsPath))]
		if ct == "" {
			ct = "text/plain"
		}
		s.serveFile(w, fsPath, ct)
	})
}

func (s *Server) serveFile(w http.ResponseWriter, fsPath, contentType string) {
	data, err := os.ReadFile(fsPath)
	if err != nil {
		s.staticError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) notFound(w http.ResponseWriter, reqPath, fsPath string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, `<html>
<head><title>404 Not Found</title></head>
<body>
<h1>404 Not Found</h1>
<p>The requested file %s was not found</p>
<p>Checked for it at %s</p>
<a href="/">Back to home</a>
</body>
</html>`, reqPath, fsPath)
}

func (s *Server) staticError(w http.ResponseWriter, err error) {
	s.log.Error("static file read failed", "error", err)
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, "<h1>Server Error</h1><p>Failed to read file: %s</p>", err)
}
