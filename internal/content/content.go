// Package content is the copy shown on the portfolio: profile, about text,
// education, projects and skills.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

type Profile struct {
	Name      string `yaml:"name"`
	Title     string `yaml:"title"`
	Tagline   string `yaml:"tagline"`
	ResumeURL string `yaml:"resume_url"`
}

type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Year        string `yaml:"year"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	GithubURL   string   `yaml:"github_url"`
	DemoURL     string   `yaml:"demo_url"`
}

type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Content struct {
	Profile        Profile     `yaml:"profile"`
	About          string      `yaml:"about"`
	Education      []Education `yaml:"education"`
	SoftSkills     []string    `yaml:"soft_skills"`
	ArtisticSkills []string    `yaml:"artistic_skills"`
	Projects       []Project   `yaml:"projects"`
	Skills         []string    `yaml:"skills"`
	Social         []Link      `yaml:"social"`

	// AboutHTML is About rendered from markdown.
	AboutHTML template.HTML `yaml:"-"`
}

var md = goldmark.New(goldmark.WithExtensions(extension.Typographer))

// Parse decodes content YAML and renders the about markdown.
func Parse(r io.Reader) (*Content, error) {
	var c Content
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if c.Profile.Name == "" {
		return nil, fmt.Errorf("content: profile name is required")
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(c.About), &buf); err != nil {
		return nil, fmt.Errorf("render about: %w", err)
	}
	c.AboutHTML = template.HTML(buf.String())
	return &c, nil
}

// Load reads content from path, or the built-in content when path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultContent))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
