package project

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile lists additional exclude patterns, one per line.
const IgnoreFile = ".wascignore"

// Discover walks every source root below rootDir and returns the files
// whose extension is configured and which no exclude pattern matches.
// Hidden directories are skipped.
func Discover(rootDir string, cfg SourcesConfig) ([]string, error) {
	ignore, err := compileIgnore(rootDir, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	for _, root := range cfg.Roots {
		dir := filepath.Join(rootDir, root)
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			log.Warningf("source root %s does not exist", dir)
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(rootDir, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if path == dir {
					return nil
				}
				if isHidden(d.Name()) || ignore.MatchesPath(rel+"/") {
					log.Debugf("skipping directory %s", rel)
					return filepath.SkipDir
				}
				return nil
			}
			if !hasExtension(d.Name(), cfg.Extensions) {
				return nil
			}
			if ignore.MatchesPath(rel) {
				log.Debugf("excluded %s", rel)
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk source root %s: %w", dir, err)
		}
	}

	sort.Strings(files)
	log.Infof("discovered %d source files in %s", len(files), rootDir)
	return files, nil
}

func compileIgnore(rootDir string, exclude []string) (*gitignore.GitIgnore, error) {
	lines := append([]string(nil), exclude...)

	f, err := os.Open(filepath.Join(rootDir, IgnoreFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", IgnoreFile, err)
	default:
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", IgnoreFile, err)
		}
	}

	return gitignore.CompileIgnoreLines(lines...), nil
}

func hasExtension(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
