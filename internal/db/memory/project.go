package memory

import (
	"strings"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

const idField = "_id"

// project applies an inclusion or exclusion projection. _id is always kept
// unless explicitly excluded.
func project(doc map[string]any, p query.Projection) map[string]any {
	if len(p.Include) > 0 {
		out := make(map[string]any, len(p.Include)+1)
		if id, ok := doc[idField]; ok {
			out[idField] = id
		}
		for _, path := range p.Include {
			copyPath(doc, out, strings.Split(path, "."))
		}
		return out
	}
	for _, path := range p.Exclude {
		deletePath(doc, strings.Split(path, "."))
	}
	return doc
}

func copyPath(src, dst map[string]any, parts []string) {
	v, ok := src[parts[0]]
	if !ok {
		return
	}
	if len(parts) == 1 {
		dst[parts[0]] = v
		return
	}
	child, ok := v.(map[string]any)
	if !ok {
		return
	}
	next, ok := dst[parts[0]].(map[string]any)
	if !ok {
		next = make(map[string]any)
		dst[parts[0]] = next
	}
	copyPath(child, next, parts[1:])
}

func deletePath(doc map[string]any, parts []string) {
	if len(parts) == 1 {
		delete(doc, parts[0])
		return
	}
	if child, ok := doc[parts[0]].(map[string]any); ok {
		deletePath(child, parts[1:])
	}
}
