package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// stdinPath names standard input among the inputs.
const stdinPath = "-"

// Source is one SQL script.
type Source struct {
	Path string
	SQL  string
}

// Name returns the display name of the source.
func (s Source) Name() string {
	if s.Path == stdinPath {
		return "<stdin>"
	}
	return s.Path
}

// CollectFiles expands the arguments into script paths. Directories are
// walked recursively for *.sql files in lexical order; files and "-" are kept
// as given. No arguments means standard input.
func CollectFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{stdinPath}, nil
	}

	var files []string
	for _, arg := range args {
		if arg == stdinPath {
			files = append(files, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read input: %w", err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".sql") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .sql files found in %s", strings.Join(args, ", "))
	}
	return files, nil
}

// ReadSources reads every path. Standard input is read from stdin.
func ReadSources(paths []string, stdin io.Reader) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		var (
			data []byte
			err  error
		)
		if path == stdinPath {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path) //nolint:gosec // reading user-named scripts is the point
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources = append(sources, Source{Path: path, SQL: string(data)})
	}
	return sources, nil
}
