package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileNamePrefix = "questions_"

// Lookup order when a category has files in more than one format.
var fileExtensions = []string{".json", ".yaml", ".yml"}

// Repository provides the questions of a category.
type Repository interface {
	Load(category string) ([]Question, error)
	Categories() ([]string, error)
}

// FileRepository reads one questions_<category> file per category from a directory.
type FileRepository struct {
	directory string
	validator *Validator
}

var _ Repository = (*FileRepository)(nil)

func NewFileRepository(directory string) (*FileRepository, error) {
	v, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("NewValidator() > %w", err)
	}
	return &FileRepository{
		directory: directory,
		validator: v,
	}, nil
}

// FilePath returns the path a new file for the category should be written to.
func (r *FileRepository) FilePath(category, extension string) string {
	return filepath.Join(r.directory, fileNamePrefix+category+extension)
}

func (r *FileRepository) findFile(category string) (string, bool) {
	if category == "" || strings.ContainsAny(category, `/\`) {
		return "", false
	}
	for _, ext := range fileExtensions {
		path := r.FilePath(category, ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads every question of a category. Any invalid record fails the whole load.
func (r *FileRepository) Load(category string) ([]Question, error) {
	path, ok := r.findFile(category)
	if !ok {
		available, err := r.Categories()
		if err != nil {
			return nil, fmt.Errorf("r.Categories() > %w", err)
		}
		return nil, &CategoryNotFoundError{
			Category:  category,
			Available: available,
		}
	}

	questions, err := readQuestionFile(path)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if messages := r.validator.Validate(questions[i]); len(messages) > 0 {
			return nil, &ValidationError{
				File:     path,
				Index:    i,
				ID:       questions[i].ID,
				Messages: messages,
			}
		}
	}
	return questions, nil
}

// Categories lists the categories found in the directory, sorted.
// A missing directory has no categories.
func (r *FileRepository) Categories() ([]string, error) {
	paths, err := r.files()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(paths))
	categories := make([]string, 0, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		category := strings.TrimPrefix(strings.TrimSuffix(name, filepath.Ext(name)), fileNamePrefix)
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

// Validate checks every record of every question file and returns all problems found.
// Unlike Load it keeps going after the first bad record.
func (r *FileRepository) Validate() ([]error, error) {
	paths, err := r.files()
	if err != nil {
		return nil, err
	}

	var problems []error
	for _, path := range paths {
		questions, err := readQuestionFile(path)
		if err != nil {
			problems = append(problems, err)
			continue
		}

		ids := make(map[string]int, len(questions))
		for i, q := range questions {
			messages := r.validator.Validate(q)
			if first, ok := ids[q.ID]; ok && q.ID != "" {
				messages = append(messages, fmt.Sprintf("id duplicates record #%d", first+1))
			} else {
				ids[q.ID] = i
			}
			if len(messages) > 0 {
				problems = append(problems, &ValidationError{
					File:     path,
					Index:    i,
					ID:       q.ID,
					Messages: messages,
				})
			}
		}
	}
	return problems, nil
}

func (r *FileRepository) files() ([]string, error) {
	entries, err := os.ReadDir(r.directory)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir(%s) > %w", r.directory, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, fileNamePrefix) {
			continue
		}
		if !isQuestionFileExtension(filepath.Ext(name)) {
			continue
		}
		paths = append(paths, filepath.Join(r.directory, name))
	}
	sort.Strings(paths)
	return paths, nil
}

func isQuestionFileExtension(ext string) bool {
	for _, e := range fileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func readQuestionFile(path string) ([]Question, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var questions []Question
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(contents, &questions); err != nil {
			return nil, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(contents, &questions); err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
		}
	}

	for i := range questions {
		if questions[i].Hint == "" {
			questions[i].Hint = DefaultHint
		}
	}
	return questions, nil
}

// Save replaces the file a category is loaded from, keeping its format.
// A category without a file is written as YAML. Returns the written path.
func (r *FileRepository) Save(category string, questions []Question) (string, error) {
	if category == "" || strings.ContainsAny(category, `/\`) {
		return "", fmt.Errorf("invalid category name: %q", category)
	}
	path, ok := r.findFile(category)
	if !ok {
		path = r.FilePath(category, ".yaml")
	}
	if err := writeQuestionFile(path, questions); err != nil {
		return "", err
	}
	return path, nil
}

// Exists reports whether a file backs the category.
func (r *FileRepository) Exists(category string) bool {
	_, ok := r.findFile(category)
	return ok
}

func writeQuestionFile(path string, questions []Question) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}

	if filepath.Ext(path) == ".json" {
		contents, err := json.MarshalIndent(questions, "", "  ")
		if err != nil {
			return fmt.Errorf("json.MarshalIndent() > %w", err)
		}
		if err := os.WriteFile(path, append(contents, '\n'), 0644); err != nil {
			return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
		}
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(questions); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	return encoder.Close()
}
