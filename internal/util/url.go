package util

import (
	"net/url"
	"path"
)

// ResolveURLPath joins pathOrURL onto baseURL keeping any path prefix of the
// base. An absolute pathOrURL wins and is returned untouched.
//
//   - ResolveURLPath("http://localhost:11434", "/api/tags") -> "http://localhost:11434/api/tags"
//   - ResolveURLPath("http://gpu-box/ollama/", "api/tags") -> "http://gpu-box/ollama/api/tags"
func ResolveURLPath(baseURL, pathOrURL string) string {
	switch {
	case baseURL == "":
		return pathOrURL
	case pathOrURL == "":
		return baseURL
	}

	if parsed, err := url.Parse(pathOrURL); err == nil && parsed.IsAbs() {
		return pathOrURL
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return pathOrURL
	}

	// url.ResolveReference would drop the base path for "/api/tags"
	base.Path = path.Join("/", base.Path, pathOrURL)
	return base.String()
}
