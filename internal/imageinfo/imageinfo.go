// Package imageinfo classifies uploaded files and derives the cache path of
// their resized variants.
package imageinfo

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPath is returned when a path has no usable file extension.
var ErrInvalidPath = errors.New("path has no file extension")

// JobPrefix is prepended to the image name to build resize job ids.
const JobPrefix = "image-resize-"

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"png":  true,
}

// network schemes keep a single separator so URLs stay valid
var networkSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

var resizedName = regexp.MustCompile(`^(.*)-resized-([0-9a-f]{6})\.([^.]+)$`)

// parts holds the pathinfo-style split of a path, URL or stream identifier.
type parts struct {
	dir  string
	stem string
	ext  string
	// hasExt is false when the basename contains no dot at all
	hasExt bool
}

func split(p string) parts {
	var out parts
	base := p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		base = p[i+1:]
		out.dir = strings.TrimRight(p[:i], "/")
		if out.dir == "" {
			out.dir = "/"
		}
	} else {
		out.dir = "."
	}

	if i := strings.LastIndex(base, "."); i >= 0 {
		out.stem = base[:i]
		out.ext = base[i+1:]
		out.hasExt = true
	} else {
		out.stem = base
	}
	return out
}

// Extension returns the lowercased extension of p without the dot.
func Extension(p string) string {
	return strings.ToLower(split(p).ext)
}

// IsImageFile reports whether p carries one of the supported image extensions.
func IsImageFile(p string) bool {
	return imageExtensions[Extension(p)]
}

// ImageName returns the basename of p.
func ImageName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// JobID returns the queue id for resizing p. Images sharing a basename in
// different directories get different ids.
func JobID(p string) string {
	return JobPrefix + ImageName(p) + "-" + Hash(split(p).dir)
}

// Hash returns the six character md5 prefix used in resized file names.
func Hash(stem string) string {
	sum := md5.Sum([]byte(stem))
	return hex.EncodeToString(sum[:])[:6]
}

// ResizedPath returns the path of the resized variant of p:
//
//	{dir}{sep}{stem}-resized-{hash6}.{ext}
//
// p may be a filesystem path, an http(s) URL or a stream identifier such as
// vfs://root/image.jpg. Stream identifiers use a double separator after the
// directory.
func ResizedPath(p string) (string, error) {
	info := split(p)
	if !info.hasExt || info.ext == "" {
		return "", ErrInvalidPath
	}

	dir := info.dir
	sep := "/"
	switch {
	case dir == "/":
		dir = ""
	case strings.HasSuffix(dir, ":") && strings.HasPrefix(p, dir+"//"):
		// scheme root, e.g. vfs://image.jpg
		sep = "//"
	case isStream(dir):
		sep = "//"
	}

	return dir + sep + info.stem + "-resized-" + Hash(info.stem) + "." + info.ext, nil
}

// IsResizedName reports whether the basename of p was produced by ResizedPath.
func IsResizedName(p string) bool {
	_, ok := OriginalName(p)
	return ok
}

// OriginalName returns the basename the resized file p was derived from.
func OriginalName(p string) (string, bool) {
	m := resizedName.FindStringSubmatch(ImageName(p))
	if m == nil || Hash(m[1]) != m[2] {
		return "", false
	}
	return m[1] + "." + m[3], true
}

func isStream(dir string) bool {
	i := strings.Index(dir, "://")
	if i <= 0 {
		return false
	}
	return !networkSchemes[strings.ToLower(dir[:i])]
}
