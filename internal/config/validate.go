package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report TOML key names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.DocumentsDir, err = expandPath(strings.TrimSpace(c.Paths.DocumentsDir)); err != nil {
		return fmt.Errorf("paths.documents_dir: %w", err)
	}

	c.Dataset.URL = strings.TrimSpace(c.Dataset.URL)
	c.Dataset.Subset = strings.ToLower(strings.TrimSpace(c.Dataset.Subset))
	for i, r := range c.Dataset.Remove {
		c.Dataset.Remove[i] = strings.ToLower(strings.TrimSpace(r))
	}

	if len(c.Categories) == 0 {
		c.Categories = DefaultCategories()
	}
	categories := make(map[string]Category, len(c.Categories))
	for name, cat := range c.Categories {
		for i, g := range cat.Newsgroups {
			cat.Newsgroups[i] = strings.TrimSpace(g)
		}
		if cat.Dir, err = expandPath(strings.TrimSpace(cat.Dir)); err != nil {
			return fmt.Errorf("categories.%s.dir: %w", name, err)
		}
		categories[strings.TrimSpace(name)] = cat
	}
	c.Categories = categories

	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return fmt.Errorf("config: %w", err)
	}
	return c.validateCategories()
}

func (c *Config) validateCategories() error {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cat := c.Categories[name]
		if name == "" {
			return errors.New("config: categories: empty category name")
		}
		hasGroups, hasDir := len(cat.Newsgroups) > 0, cat.Dir != ""
		if hasGroups == hasDir {
			return fmt.Errorf("config: categories.%s: set exactly one of newsgroups or dir", name)
		}
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("config: %s must be set", field)
	case "oneof":
		return fmt.Errorf("config: %s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value()))
	case "gte", "lte":
		return fmt.Errorf("config: %s must be %s %s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Errorf("config: %s failed %q validation", field, fe.Tag())
	}
}
