package graph

import "strings"

// stripExtension removes the extension from the final path segment, if any.
func stripExtension(p string) string {
	slash := strings.LastIndexByte(p, '/')
	dot := strings.LastIndexByte(p, '.')
	if dot > slash {
		return p[:dot]
	}
	return p
}

// posixDir returns everything before the final slash, or "" when the path
// has no directory component. Paths in the graph always use forward slashes.
func posixDir(p string) string {
	slash := strings.LastIndexByte(p, '/')
	if slash < 0 {
		return ""
	}
	return p[:slash]
}

// resolveRelative joins an import source against the importer's directory
// and normalizes the result: "." segments are dropped, ".." pops the last
// kept segment (or is dropped at the root).
func resolveRelative(importerDir, source string) string {
	joined := source
	if importerDir != "" {
		joined = importerDir + "/" + source
	}
	var parts []string
	for _, seg := range strings.Split(joined, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}
