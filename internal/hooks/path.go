// Package hooks implements the hook-extraction transform: a POSIX-style
// path model, an import/export collector, a free-identifier collector, a
// folding traversal that lifts qHook call sites into their own synthetic
// modules (qComponent call sites are only recorded for a pure-call
// annotation), and the printer/pipeline that glue those together.
package hooks

import (
	"fmt"
	gopath "path"
	"strings"

	"github.com/ludo-technologies/jscan/domain"
)

// ParsePath splits src into directory, file stem, extension, file name and
// file prefix using POSIX-like rules, independent of the host OS: the
// final "/" separates directory from file name, the final "." in the file
// name separates stem from extension, and the first "." separates the
// file prefix from the rest. A path with no "/" has an empty directory; a
// file name with no "." has an empty extension and FilePrefix == FileName.
func ParsePath(src string) domain.PathData {
	dir := ""
	fileName := src
	if idx := strings.LastIndex(src, "/"); idx >= 0 {
		dir = src[:idx]
		fileName = src[idx+1:]
	}

	fileStem := fileName
	extension := ""
	if idx := strings.LastIndex(fileName, "."); idx >= 0 {
		fileStem = fileName[:idx]
		extension = fileName[idx+1:]
	}

	filePrefix := fileName
	if idx := strings.Index(fileName, "."); idx >= 0 {
		filePrefix = fileName[:idx]
	}

	return domain.PathData{
		Path:       src,
		Dir:        dir,
		FileStem:   fileStem,
		Extension:  extension,
		FileName:   fileName,
		FilePrefix: filePrefix,
	}
}

// dirname returns the POSIX parent directory of path, using the same
// "no slash means empty" rule ParsePath uses (unlike path.Dir, which
// returns "." for a bare file name).
func dirname(p string) string {
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		return p[:idx]
	}
	return ""
}

// FixPath resolves an import specifier referenced from origin. A bare
// specifier (one that doesn't start with ".") is returned unchanged.
// Otherwise the result is the normalized relative path from origin's
// directory to target, re-prefixed with "./" if normalization stripped it.
// FixPath fails if origin is itself an absolute path.
func FixPath(origin, target string) (string, error) {
	if strings.HasPrefix(origin, "/") {
		return "", fmt.Errorf("fix_path: absolute origin path not supported: %s", origin)
	}
	if !strings.HasPrefix(target, ".") {
		return target, nil
	}

	joined := gopath.Join(dirname(origin), target)
	if !strings.HasPrefix(joined, ".") {
		joined = "./" + joined
	}
	return joined, nil
}
