package curriculum

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Problem is one issue found in a curriculum document.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// DocumentFiles lists the curriculum document candidates at root, which may
// be a single file or a directory tree. Paths are sorted.
func DocumentFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isDocumentPath(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Check validates every curriculum document at root and reports all problems
// instead of stopping at the first. It also returns how many curriculum
// documents were found.
func Check(root string) ([]Problem, int, error) {
	files, err := DocumentFiles(root)
	if err != nil {
		return nil, 0, err
	}

	var problems []Problem
	seen := make(map[Key]string)
	checked := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, checked, err
		}
		if !IsDocument(data) {
			continue
		}
		checked++

		entry, err := ParseDocument(data)
		var schemaErr *SchemaError
		switch {
		case errors.As(err, &schemaErr):
			for _, p := range schemaErr.Problems {
				problems = append(problems, Problem{Path: path, Message: p})
			}
			continue
		case err != nil:
			problems = append(problems, Problem{Path: path, Message: err.Error()})
			continue
		}

		for _, p := range validateEntry(&entry) {
			problems = append(problems, Problem{Path: path, Message: p})
		}
		if first, ok := seen[entry.Key]; ok {
			problems = append(problems, Problem{Path: path, Message: fmt.Sprintf("%s is already defined in %s", entry.Key, first)})
			continue
		}
		seen[entry.Key] = path
	}
	return problems, checked, nil
}
