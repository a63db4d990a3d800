// Package load builds a nexo schema from a declarative YAML document.
//
// The document lists models with their optional table and id overrides and
// their relationship declarations:
//
//	models:
//	  - name: User
//	    relations:
//	      - name: posts
//	        kind: many
//	        model: Post
//	  - name: Post
//	    table: posts
//	    relations:
//	      - name: author
//	        kind: one
//	        model: User
//	        foreign_key: author_id
//	        lazy: false
//	      - name: tags
//	        kind: many_through
//	        model: Tag
//	        pivot: post_tags
//	  - name: Tag
//
// Query modifiers cannot be expressed in YAML; attach them in code with the
// rel builders instead when needed.
package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/nexo"
	"github.com/syssam/nexo/schema/rel"
)

type document struct {
	Models []modelSpec `yaml:"models"`
}

type modelSpec struct {
	Name      string         `yaml:"name"`
	Table     string         `yaml:"table"`
	ID        string         `yaml:"id"`
	Relations []relationSpec `yaml:"relations"`
}

type relationSpec struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Model      string `yaml:"model"`
	ForeignKey string `yaml:"foreign_key"`
	LocalKey   string `yaml:"local_key"`
	Pivot      string `yaml:"pivot"`
	Lazy       *bool  `yaml:"lazy"`
}

// Parse builds a validated schema from YAML data.
func Parse(data []byte) (*nexo.Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load: parsing schema document: %w", err)
	}
	if len(doc.Models) == 0 {
		return nil, fmt.Errorf("load: schema document declares no models")
	}
	models := make([]*nexo.Model, 0, len(doc.Models))
	for _, ms := range doc.Models {
		if ms.Name == "" {
			return nil, fmt.Errorf("load: model with empty name")
		}
		m, err := buildModel(ms)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return nexo.NewSchema(models...)
}

// ParseFile builds a validated schema from a YAML file.
func ParseFile(path string) (*nexo.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: reading schema file: %w", err)
	}
	return Parse(data)
}

func buildModel(ms modelSpec) (*nexo.Model, error) {
	var opts []nexo.ModelOption
	if ms.Table != "" {
		opts = append(opts, nexo.Table(ms.Table))
	}
	if ms.ID != "" {
		opts = append(opts, nexo.ID(ms.ID))
	}
	builders := make([]*rel.Builder, 0, len(ms.Relations))
	for _, rs := range ms.Relations {
		b, err := buildRelation(ms.Name, rs)
		if err != nil {
			return nil, err
		}
		builders = append(builders, b)
	}
	if len(builders) > 0 {
		opts = append(opts, nexo.Relations(builders...))
	}
	return nexo.NewModel(ms.Name, opts...), nil
}

func buildRelation(model string, rs relationSpec) (*rel.Builder, error) {
	var b *rel.Builder
	switch rs.Kind {
	case "one":
		b = rel.One(rs.Name, rs.Model)
	case "many":
		b = rel.Many(rs.Name, rs.Model)
	case "many_through":
		b = rel.ManyThrough(rs.Name, rs.Model)
	default:
		return nil, fmt.Errorf("load: relation %q on model %q: unknown kind %q", rs.Name, model, rs.Kind)
	}
	if rs.ForeignKey != "" {
		b.ForeignKey(rs.ForeignKey)
	}
	if rs.LocalKey != "" {
		b.LocalKey(rs.LocalKey)
	}
	if rs.Pivot != "" {
		b.Through(rs.Pivot)
	}
	if rs.Lazy != nil {
		b.Lazy(*rs.Lazy)
	}
	return b, nil
}
